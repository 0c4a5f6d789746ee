package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/omarshaarawi/matchbot/internal/service"
)

type Scheduler struct {
	s            gocron.Scheduler
	matchService *service.MatchService
	sendMessage  func(string) error
	interval     time.Duration
}

func NewScheduler(matchService *service.MatchService, sendMessage func(string) error, interval time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("watch interval must be positive, got %s", interval)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:            s,
		matchService: matchService,
		sendMessage:  sendMessage,
		interval:     interval,
	}, nil
}

func (s *Scheduler) Start() error {
	// Watched matches - every interval, skipping a run while the last is busy
	_, err := s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.checkWatched),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("watched-matches"),
	)
	if err != nil {
		return fmt.Errorf("failed to create watch job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) checkWatched() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	for _, report := range s.matchService.CheckWatched(ctx) {
		if err := s.sendMessage(report); err != nil {
			slog.Error("Failed to post score update", "error", err)
		}
	}
}
