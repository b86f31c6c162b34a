package storage

import (
	"context"
	"langtrack/internal/providers"
	"langtrack/internal/storage/interfaces"
	"langtrack/internal/structures"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic store maintenance and brackets the process lifetime
// with Restore and Persist for stores that snapshot to disk.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	store   Store
	cron    *cron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	spec := "@every " + s.config.Persistence.SaveInterval.String()
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.maintain(); err != nil {
			s.logger.Errorf(providers.TypeStorage, "Error while maintaining store: %s", err)
		}
	})
	if err != nil {
		s.logger.Errorf(providers.TypeStorage, "Invalid maintenance schedule %q: %s", spec, err)
		return
	}

	s.cron.Start()
}

func (s *Scheduler) maintain() error {
	m, ok := s.store.(Maintainer)
	if !ok {
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Persistence.SaveInterval)
	defer cancel()

	if err := m.Maintain(ctx); err != nil {
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.logger.Debugf(providers.TypeStorage, "Store maintenance done in %s", time.Since(start))
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) Restore() error {
	snap, ok := s.store.(Snapshotter)
	if !ok {
		return nil
	}
	return snap.Restore()
}

func (s *Scheduler) Persist() error {
	snap, ok := s.store.(Snapshotter)
	if !ok {
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStorage, "Persisting ledger snapshot...")
	start := time.Now()
	if err := snap.Persist(); err != nil {
		s.logger.Errorf(providers.TypeStorage, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store Store) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		metrics: metrics,
		store:   store,
	}
}
