package cron

import (
	"context"

	"github.com/anuarbek-t/sociograph/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCronJobs schedules the daily removed-connection marker sweep.
func StartCronJobs(sweeper *jobs.MarkerSweeper) {
	c := cron.New()

	c.AddFunc("0 3 * * *", func() {
		if err := sweeper.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Marker sweep failed")
		}
	})

	c.Start()
}
