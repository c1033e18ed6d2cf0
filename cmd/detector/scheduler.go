// cmd/detector/scheduler.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// StartScheduler installs the optional background headline refresh. It
// returns nil when REFRESH_INTERVAL_MINUTES is unset.
func StartScheduler(s *Server) *cron.Cron {
	if s.cfg.RefreshIntervalMinutes <= 0 {
		return nil
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %dm", s.cfg.RefreshIntervalMinutes)

	_, err := c.AddFunc(spec, func() {
		defer RecoverFromPanic("scheduler")
		s.refreshHeadlines()
	})
	if err != nil {
		Logger().Error("cron [%s] failed: %v", spec, err)
		return nil
	}

	c.Start()
	Logger().Info("Scheduled headline refresh every %d minutes", s.cfg.RefreshIntervalMinutes)
	return c
}

// refreshHeadlines fetches the latest headlines in the background and
// tells connected pages to re-render.
func (s *Server) refreshHeadlines() {
	if s.hub.ClientCount() == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fetched := s.fetcher.FetchAll(ctx, s.sources, s.cfg.MaxPerSource)
	Logger().Info("Background refresh fetched %d headlines (%d feed errors)",
		len(fetched.Headlines), len(fetched.Errors))

	s.hub.Broadcast("refresh", map[string]int{
		"headlines": len(fetched.Headlines),
		"errors":    len(fetched.Errors),
	})
}
