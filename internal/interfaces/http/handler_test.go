package httpinterface_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nimbuswallet/nimbusd/internal/core/application"
	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
	staticsource "github.com/nimbuswallet/nimbusd/internal/infrastructure/sources/static"
	"github.com/nimbuswallet/nimbusd/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/nimbuswallet/nimbusd/internal/interfaces/http"
)

func newTestService(t *testing.T, state staticsource.State) *httpinterface.Service {
	t.Helper()

	dbManager := inmemory.NewDbManager()
	source := staticsource.NewService(state)
	t.Cleanup(source.Close)

	provider := application.NewSnapshotProvider(source, source, source)
	transferSvc := application.NewTransferService(
		dbManager.TransferRepository(),
	)
	balanceSvc := application.NewBalanceService(
		provider, dbManager.TransferRepository(), nil,
	)
	transferSvc.AddObserver(balanceSvc)
	activitySvc := application.NewActivityService(
		provider, dbManager.TransferRepository(), dbManager.TagRepository(),
	)

	_, err := provider.Refresh(context.Background())
	require.NoError(t, err)

	return httpinterface.NewService(httpinterface.ServiceOpts{
		Port:        9737,
		NoCors:      true,
		BalanceSvc:  balanceSvc,
		ActivitySvc: activitySvc,
		TransferSvc: transferSvc,
		Provider:    provider,
	})
}

func TestGetBalance(t *testing.T) {
	reserve := uint64(1000)
	svc := newTestService(t, staticsource.State{
		OnchainBalanceSat: 150000,
		Channels: []domain.Channel{
			{
				ID:                              "chan1",
				CapacitySat:                     100000,
				CounterpartyBalanceSat:          40000,
				OutboundCapacitySat:             59000,
				InboundCapacitySat:              39000,
				UnspendablePunishmentReserveSat: &reserve,
				IsReady:                         true,
				IsUsable:                        true,
			},
		},
	})

	rec := httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/balance", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var reply struct {
		application.BalanceSnapshot
		TotalBtc string `json:"totalBtc"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))

	require.Equal(t, uint64(150000), reply.OnchainSat)
	require.Equal(t, uint64(59000), reply.SpendingSat)
	require.Equal(t, uint64(1000), reply.ReserveSat)
	require.Equal(t, uint64(60000), reply.LightningSat)
	require.Equal(t, uint64(210000), reply.TotalSat)
	require.Equal(t, "0.0021", reply.TotalBtc)
}

func TestTransferLifecycleOverHTTP(t *testing.T) {
	svc := newTestService(t, staticsource.State{})

	body, _ := json.Marshal(map[string]interface{}{
		"type":      "open",
		"amountSat": 50000,
		"txid":      "aa11",
	})
	rec := httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost, "/v1/transfers", bytes.NewReader(body),
	))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Transfer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.True(t, created.IsPending())

	rec = httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(
		http.MethodGet, "/v1/transfers/pending", nil,
	))
	require.Equal(t, http.StatusOK, rec.Code)

	var pending []domain.Transfer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)

	rec = httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost, "/v1/transfers/"+created.ID+"/resolve", nil,
	))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(
		http.MethodGet, "/v1/transfers/pending", nil,
	))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Empty(t, pending)
}

func TestRecordTransferBadRequest(t *testing.T) {
	svc := newTestService(t, staticsource.State{})

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "non positive amount",
			body: map[string]interface{}{"type": "open", "amountSat": 0},
		},
		{
			name: "unknown type",
			body: map[string]interface{}{"type": "swap", "amountSat": 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			rec := httptest.NewRecorder()
			svc.ServeHTTP(rec, httptest.NewRequest(
				http.MethodPost, "/v1/transfers", bytes.NewReader(body),
			))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestActivityFeedAndTags(t *testing.T) {
	svc := newTestService(t, staticsource.State{
		Transactions: []ports.TxInfo{
			{
				TxID:      "tx1",
				Timestamp: 1700000000,
				ValueSat:  25000,
				FeeSat:    500,
				IsSend:    true,
				Exists:    true,
			},
		},
		Payments: []ports.PaymentInfo{
			{
				PaymentHash: "hash1",
				Timestamp:   1700001000,
				AmountSat:   4000,
				Status:      domain.PaymentStatusSucceeded,
			},
		},
	})

	rec := httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(
		http.MethodGet, "/v1/activity", nil,
	))
	require.Equal(t, http.StatusOK, rec.Code)

	var feed []application.FeedEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))

	items := 0
	for _, entry := range feed {
		if !entry.IsLabel() {
			items++
		}
	}
	require.Equal(t, 2, items)

	body, _ := json.Marshal(map[string]string{"tag": "coffee"})
	rec = httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost, "/v1/activity/tx1/tags", bytes.NewReader(body),
	))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(
		http.MethodGet, "/v1/activity?tags=coffee", nil,
	))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))

	items = 0
	for _, entry := range feed {
		if !entry.IsLabel() {
			items++
			require.Equal(t, "tx1", entry.Item.ID)
		}
	}
	require.Equal(t, 1, items)

	rec = httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(
		http.MethodDelete, "/v1/activity/tx1/tags/coffee", nil,
	))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(
		http.MethodGet, "/v1/activity?tags=coffee", nil,
	))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	for _, entry := range feed {
		require.True(t, entry.IsLabel())
	}
}
