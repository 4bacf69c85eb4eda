package cron

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"products.GO/core/logx"
)

// StartCron schedules every registered job and starts the scheduler.
// schedules overrides a job's registered spec by name; an empty override is ignored.
func StartCron(schedules map[string]string) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLogger(cron.PrintfLogger(logx.Printf{Level: zerolog.DebugLevel})),
		cron.WithChain(
			cron.Recover(cron.PrintfLogger(logx.Printf{Level: zerolog.ErrorLevel})),
			cron.SkipIfStillRunning(cron.PrintfLogger(logx.Printf{Level: zerolog.WarnLevel})),
		),
	)
	for _, j := range Jobs() {
		spec := j.Schedule
		if s := schedules[j.Name]; s != "" {
			spec = s
		}
		job := j
		if _, err := c.AddFunc(spec, func() {
			if err := job.Exec(context.Background()); err != nil {
				logx.Error().Err(err).Str("job", job.Name).Msg("cron job failed")
			}
		}); err != nil {
			return nil, fmt.Errorf("register job %s (%q): %w", j.Name, spec, err)
		}
		logx.Info().Str("job", j.Name).Str("schedule", spec).Msg("cron job scheduled")
	}
	c.Start()
	return c, nil
}
