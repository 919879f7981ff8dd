package satutil

import (
	"math"
	"math/big"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

var (
	// SatsPerBTC represents a single bitcoin in satoshis.
	SatsPerBTC = uint64(math.Pow10(8))
	// SatsPerBTCDecimal represents a single bitcoin in satoshis as decimal.Decimal.
	SatsPerBTCDecimal = decimal.NewFromInt(int64(SatsPerBTC))
)

func init() {
	decimal.DivisionPrecision = 8
}

// ToBTC converts an amount of satoshis to bitcoin as decimal.Decimal.
func ToBTC(sats uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(sats), 0).
		Div(SatsPerBTCDecimal)
}

// FeeRateSatsPerVByte returns the fee rate of a transaction given its
// absolute fee and virtual size. A zero vsize yields a zero rate.
func FeeRateSatsPerVByte(feeSats uint64, vsizeVBytes int64) decimal.Decimal {
	if vsizeVBytes <= 0 {
		return decimal.Zero
	}
	fee := decimal.NewFromBigInt(new(big.Int).SetUint64(feeSats), 0)
	return fee.Div(decimal.NewFromInt(vsizeVBytes))
}

// FormatSats renders an amount of satoshis in BTC notation, eg. "0.00061 BTC".
func FormatSats(sats uint64) string {
	return btcutil.Amount(sats).String()
}
