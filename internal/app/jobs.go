package app

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rushikulya/marketkit/internal/session"
)

// initJobs starts the periodic catalog refresh. A refresh is a plain reload
// of every collection; an overlapping manual load is harmless because the
// last response to arrive wins.
func (a *Application) initJobs() {
	spec := a.appConfig.Catalog.RefreshInterval
	if spec == "" {
		return
	}
	a.sched = cron.New()
	_, err := a.sched.AddFunc(spec, a.refreshAsync)
	if err != nil {
		zap.S().Errorf("refresh schedule %q invalid: %v", spec, err)
		return
	}
	a.sched.Start()
	zap.S().Infof("catalog refresh scheduled: %s", spec)
}

// refreshAsync fans the three reloads out on a bounded worker pool and does
// not wait for them; failures are logged, never surfaced, since no view
// initiated this load.
func (a *Application) refreshAsync() {
	workers := a.appConfig.Catalog.RefreshWorkers
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		zap.S().Errorf("refresh pool: %v", err)
		return
	}
	defer pool.Release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	jobs := []func(){
		func() {
			if _, err := a.products.Load(ctx); err != nil {
				zap.S().Warnf("background products reload: %v", err)
			}
		},
		func() {
			if _, err := a.services.Load(ctx); err != nil {
				zap.S().Warnf("background services reload: %v", err)
			}
		},
	}
	if a.sessions.Current().Kind == session.KindAdmin {
		jobs = append(jobs, func() {
			if _, err := a.sellers.Load(ctx); err != nil {
				zap.S().Warnf("background sellers reload: %v", err)
			}
		})
	}

	var done = make(chan struct{})
	remaining := len(jobs)
	for _, job := range jobs {
		job := job
		if err := pool.Submit(func() {
			job()
			done <- struct{}{}
		}); err != nil {
			zap.S().Warnf("refresh submit: %v", err)
			remaining--
		}
	}
	for i := 0; i < remaining; i++ {
		<-done
	}
}

// RefreshAll reloads every catalog the current role can see and fails on the
// first error. Used by views that need fresh data before rendering.
func (a *Application) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := a.products.Load(ctx)
		return err
	})
	g.Go(func() error {
		_, err := a.services.Load(ctx)
		return err
	})
	if _, ok := a.sessions.AuthHeader(); ok {
		g.Go(func() error {
			_, err := a.sellers.Load(ctx)
			return err
		})
	}
	return g.Wait()
}
