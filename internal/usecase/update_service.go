package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// LeaguePuller refreshes every raw document for a league.
type LeaguePuller interface {
	Pull(ctx context.Context, leagueID string) error
}

// PointsProcessor rebuilds the adjusted per-gameweek documents.
type PointsProcessor interface {
	ProcessPoints(ctx context.Context, leagueID string) error
}

// MoveTracker rebuilds a derived move-history document. Both the waiver and
// trade trackers satisfy it.
type MoveTracker interface {
	Track(ctx context.Context, leagueID string) error
}

// Notifier delivers any updates that have not been sent yet.
type Notifier interface {
	SendPending(ctx context.Context, leagueID string) error
}

type updateTask struct {
	name     string
	required bool
	run      func(ctx context.Context, leagueID string) error
}

// UpdateService is the in-process update pipeline: pull, score, rebuild both
// trackers, then deliver notifications. Steps run strictly in order because
// each consumes what the previous one wrote; the first failed required step
// aborts the run so later steps never see half-written data.
type UpdateService struct {
	tasks  []updateTask
	logger *logging.Logger
}

func NewUpdateService(
	puller LeaguePuller,
	points PointsProcessor,
	waivers MoveTracker,
	trades MoveTracker,
	notifier Notifier,
	logger *logging.Logger,
) *UpdateService {
	if logger == nil {
		logger = logging.Default()
	}

	tasks := []updateTask{
		{name: "pull", required: true, run: puller.Pull},
		{name: "points", required: true, run: points.ProcessPoints},
		{name: "waivers", required: true, run: waivers.Track},
		{name: "trades", required: true, run: trades.Track},
	}
	if notifier != nil {
		// Delivery failures must not fail the run: the data on disk is already
		// consistent, and the notification ledger lets the next run catch up.
		tasks = append(tasks, updateTask{name: "notify", required: false, run: notifier.SendPending})
	}

	return &UpdateService{
		tasks:  tasks,
		logger: logger,
	}
}

// Run executes the pipeline for one league.
func (s *UpdateService) Run(ctx context.Context, leagueID string) error {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	for _, task := range s.tasks {
		s.logger.InfoContext(ctx, "update step starting", "step", task.name, "league_id", leagueID)
		if err := task.run(ctx, leagueID); err != nil {
			if task.required {
				return crerr.Wrapf(err, "update step %s", task.name)
			}
			s.logger.WarnContext(ctx, "optional update step failed", "step", task.name, "league_id", leagueID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "update complete", "league_id", leagueID)
	return nil
}
