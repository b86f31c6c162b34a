package di

import (
	"langtrack/internal/providers"
	"langtrack/internal/services"
	"langtrack/internal/session"
	"langtrack/internal/signals"
	"langtrack/internal/storage"
	"langtrack/internal/structures"
)

// Tracking is the ledger without the HTTP surface, used by one-shot CLI
// commands.
type Tracking struct {
	Config  *structures.Config
	Logger  providers.Logger
	Service services.TrackingServiceInterface
}

func provideCollector(conf *structures.Config, ext signals.Extractor, logger providers.Logger) *signals.Collector {
	return signals.NewCollector(ext, conf.Tracking.SignalTimeout, logger)
}

func provideLedger(service services.TrackingServiceInterface) session.Ledger {
	return service
}

// provideTracking restores snapshot stores up front and hands the store to the
// caller, which owns closing it. The snapshot backend persists on Close.
func provideTracking(conf *structures.Config, logger providers.Logger, store storage.Store, service services.TrackingServiceInterface) (*Tracking, func(), error) {
	if snap, ok := store.(storage.Snapshotter); ok {
		if err := snap.Restore(); err != nil {
			return nil, nil, err
		}
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeStorage, "Store close error: %s", err)
		}
		logger.Close()
	}
	return &Tracking{Config: conf, Logger: logger, Service: service}, cleanup, nil
}
