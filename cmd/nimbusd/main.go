package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nimbuswallet/nimbusd/config"
	"github.com/nimbuswallet/nimbusd/internal/core/application"
	staticsource "github.com/nimbuswallet/nimbusd/internal/infrastructure/sources/static"
	dbbadger "github.com/nimbuswallet/nimbusd/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/nimbuswallet/nimbusd/internal/interfaces/http"
	"github.com/nimbuswallet/nimbusd/pkg/stats"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbManager, err := dbbadger.NewDbManager(config.GetDbDir(), nil)
	if err != nil {
		log.WithError(err).Panic("error while opening db")
	}
	defer dbManager.Close()

	var nodeSvc *staticsource.Service
	if path := config.GetString(config.SnapshotFileKey); len(path) > 0 {
		nodeSvc, err = staticsource.NewServiceFromFile(path)
		if err != nil {
			log.WithError(err).Panic("error while loading snapshot file")
		}
	} else {
		nodeSvc = staticsource.NewService(staticsource.State{})
	}
	defer nodeSvc.Close()

	provider := application.NewSnapshotProvider(nodeSvc, nodeSvc, nodeSvc)
	transferSvc := application.NewTransferService(
		dbManager.TransferRepository(),
	)
	nodeListener := application.NewNodeListener(nodeSvc, transferSvc)
	balanceSvc := application.NewBalanceService(
		provider, dbManager.TransferRepository(), nodeListener,
	)
	transferSvc.AddObserver(balanceSvc)
	activitySvc := application.NewActivityService(
		provider, dbManager.TransferRepository(), dbManager.TagRepository(),
	)

	nodeListener.ObserveNode()
	defer nodeListener.StopObserveNode()

	httpSvc := httpinterface.NewService(httpinterface.ServiceOpts{
		Port:        config.GetInt(config.HTTPListeningPortKey),
		NoCors:      config.GetBool(config.NoCorsKey),
		BalanceSvc:  balanceSvc,
		ActivitySvc: activitySvc,
		TransferSvc: transferSvc,
		Provider:    provider,
	})

	log.Debug("starting daemon")
	go func() {
		if err := httpSvc.Start(); err != nil {
			log.WithError(err).Panic("error listening on http interface")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(
			config.GetInt(config.StatsIntervalKey),
		) * time.Second
		dumpPath := filepath.Join(config.GetDatadir(), config.ProfilerLocation)
		stats.EnableMemoryStatistics(ctx, interval, dumpPath)
	}

	go refreshPeriodically(ctx, provider)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), 10*time.Second,
	)
	defer shutdownCancel()
	if err := httpSvc.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("error while stopping http interface")
	}

	log.Debug("exiting")
}

// refreshPeriodically keeps balances and activity moving even when the
// mobile shell never calls the refresh endpoint.
func refreshPeriodically(
	ctx context.Context, provider application.SnapshotProvider,
) {
	interval := time.Duration(
		config.GetInt(config.RefreshIntervalKey),
	) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := provider.Refresh(ctx); err != nil {
		log.Warnf("initial snapshot refresh: %s", err)
	}

	for {
		select {
		case <-ticker.C:
			if _, err := provider.Refresh(ctx); err != nil {
				log.Warnf("periodic snapshot refresh: %s", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
