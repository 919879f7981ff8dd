package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// HTTPListeningPortKey is the port where the HTTP interface for the
	// mobile shell will listen on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of
	// the wallet core
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// SnapshotFileKey is the path of a JSON state file served by the static
	// chain/node sources, used for local development runs without a live
	// backend
	SnapshotFileKey = "SNAPSHOT_FILE"
	// RefreshIntervalKey is the interval in seconds between two periodic
	// snapshot refreshes
	RefreshIntervalKey = "REFRESH_INTERVAL"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic memory statistics
	StatsIntervalKey = "STATS_INTERVAL"
	// NoCorsKey disables the CORS wrapper on the HTTP interface
	NoCorsKey = "NO_CORS"

	DbLocation       = "db"
	ProfilerLocation = "stats"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("nimbusd", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("NIMBUS")
	vip.AutomaticEnv()

	vip.SetDefault(HTTPListeningPortKey, 9737)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(SnapshotFileKey, "")
	vip.SetDefault(RefreshIntervalKey, 30)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)
	vip.SetDefault(NoCorsKey, false)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory the badger stores live in.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	port := GetInt(HTTPListeningPortKey)
	if port <= 0 || port > 65535 {
		return fmt.Errorf("http listening port must be in range [1, 65535]")
	}

	if interval := GetInt(RefreshIntervalKey); interval <= 0 {
		return fmt.Errorf("refresh interval must be a positive number of seconds")
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(datadir); err != nil {
		return err
	}
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
