package stats

import (
	"bufio"
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const gigabyte = 1 << 30

// EnableMemoryStatistics starts a goroutine that periodically logs memory
// usage of the process. On context cancellation the default Prometheus
// metrics are dumped to dumpPath.
func EnableMemoryStatistics(
	ctx context.Context, interval time.Duration, dumpPath string,
) {
	ticker := time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
				PrintNumOfRoutines()
			case <-ctx.Done():
				ticker.Stop()
				if err := DumpPrometheusDefaults(dumpPath); err != nil {
					log.Warnf("failed to dump metrics: %s", err)
				}
				return
			}
		}
	}()
}

func toGigabytes(bytes uint64) float64 {
	return float64(bytes) / gigabyte
}

// PrintMemoryStatistics logs memory statistics using the go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Infof(
		"Total allocated: %.3fGB, Heap allocated: %.3fGB, "+
			"Allocated objects count: %v, Freed objects count: %v",
		toGigabytes(memStats.TotalAlloc),
		toGigabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

// DumpPrometheusDefaults writes the metrics of the default Prometheus
// gatherer to the given file.
func DumpPrometheusDefaults(path string) error {
	file, err := os.OpenFile(
		path,
		os.O_APPEND|os.O_CREATE|os.O_RDWR,
		0644,
	)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	metricFamily, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}

// PrintNumOfRoutines logs the number of currently running goroutines.
func PrintNumOfRoutines() {
	log.Infof("Num of go routines: %v", runtime.NumGoroutine())
}
