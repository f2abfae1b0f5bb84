package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RetentionService sweeps expired conversation history on a schedule.
// Deletion is entirely external to the reply engine: the engine only stamps
// each message with its retention expiry at write time.
type RetentionService struct {
	messages MessageStore
	cron     *cron.Cron
	schedule string
}

func NewRetentionService(messages MessageStore, schedule string) *RetentionService {
	if schedule == "" {
		schedule = "@hourly"
	}
	return &RetentionService{
		messages: messages,
		cron:     cron.New(),
		schedule: schedule,
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *RetentionService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (s *RetentionService) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep deletes every message past its retention expiry.
func (s *RetentionService) Sweep() {
	deleted, err := s.messages.DeleteExpired(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Retention sweep failed")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("Retention sweep removed expired messages")
	}
}
