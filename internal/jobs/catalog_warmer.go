package jobs

import (
	"context"
	"time"

	"hotelbook/internal/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type CatalogWarmer interface {
	Warm(ctx context.Context) (int, error)
}

type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Maintenance refreshes the hotel cache and drops expired session state on a
// cron schedule. Either dependency may be nil.
type Maintenance struct {
	Catalog  CatalogWarmer
	Sessions SessionPurger
	// Timeout bounds one run. Zero means one minute.
	Timeout time.Duration

	cron *cron.Cron
}

// Start schedules RunOnce with a standard five-field spec and starts the
// scheduler in its own goroutine.
func (m *Maintenance) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { m.RunOnce(context.Background()) }); err != nil {
		return err
	}
	m.cron = c
	go c.Start()
	logrus.WithField("spec", spec).Info("maintenance scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running job until ctx is done.
func (m *Maintenance) Stop(ctx context.Context) {
	if m.cron == nil {
		return
	}
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce performs one warm and purge pass. Failures are logged, never returned.
func (m *Maintenance) RunOnce(ctx context.Context) {
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if m.Catalog != nil {
		n, err := m.Catalog.Warm(ctx)
		if err != nil {
			utils.LogWarn("", "jobs", "warm_catalog", err)
		} else {
			logrus.WithFields(logrus.Fields{"module": "jobs", "hotels": n}).Debug("catalog warmed")
		}
	}
	if m.Sessions != nil {
		n, err := m.Sessions.PurgeExpired(ctx)
		if err != nil {
			utils.LogWarn("", "jobs", "purge_sessions", err)
		} else if n > 0 {
			logrus.WithFields(logrus.Fields{"module": "jobs", "purged": n}).Info("expired sessions purged")
		}
	}
}
