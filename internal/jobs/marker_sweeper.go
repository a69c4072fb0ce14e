package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/anuarbek-t/sociograph/internal/repository"
	"github.com/sirupsen/logrus"
)

// MarkerSweeper purges removed-connection markers past their 30-day window
// so the collection does not grow without bound.
type MarkerSweeper struct {
	RemovedRepo *repository.RemovedConnectionRepository
}

func NewMarkerSweeper(removedRepo *repository.RemovedConnectionRepository) *MarkerSweeper {
	return &MarkerSweeper{
		RemovedRepo: removedRepo,
	}
}

// Run deletes every expired marker.
func (s *MarkerSweeper) Run(ctx context.Context) error {
	deleted, err := s.RemovedRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to sweep removed-connection markers: %v", err)
	}

	logrus.WithField("deleted", deleted).Info("Removed-connection marker sweep completed")
	return nil
}
