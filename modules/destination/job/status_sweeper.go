package job

import (
	"context"
	"fmt"
	"time"

	"go-destinations-api/core/jobs"
	"go-destinations-api/core/logger"
	"go-destinations-api/modules/destination/entity"
	"go-destinations-api/modules/destination/repository"
	"go-destinations-api/modules/destination/service"
)

// SweepReport summarizes one pass over the active destinations.
type SweepReport struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Checked int    `json:"checked"`
	Updated int    `json:"updated"`
	Errors  int    `json:"errors"`
}

// StatusSweeper expires active destinations whose scheduled time has
// passed. Because the initial fetch filters on status=active, running the
// sweep twice in a row updates nothing the second time.
type StatusSweeper struct {
	repo repository.DestinationRepositoryInterface
	now  func() time.Time
}

func NewStatusSweeper(repo repository.DestinationRepositoryInterface) *StatusSweeper {
	return &StatusSweeper{
		repo: repo,
		now:  time.Now,
	}
}

func (s *StatusSweeper) Name() string {
	return "DestinationStatusSweeper"
}

// Execute adapts Sweep to the generic job contract.
func (s *StatusSweeper) Execute(ctx context.Context) *jobs.Result {
	report := s.Sweep(ctx, s.now())
	return &jobs.Result{
		Success: report.Success,
		Message: report.Message,
		Data: map[string]any{
			"checked": report.Checked,
			"updated": report.Updated,
			"errors":  report.Errors,
		},
	}
}

// Sweep checks every active destination against now and persists the
// active->past transition where due. A bad record or a failed write is
// counted and skipped; it never aborts the rest of the batch. Only a
// failure to fetch the batch itself fails the sweep as a whole, in which
// case nothing is updated and retrying is left to the scheduler.
func (s *StatusSweeper) Sweep(ctx context.Context, now time.Time) *SweepReport {
	active, err := s.repo.GetActive(ctx)
	if err != nil {
		logger.Error("StatusSweeper:Sweep:GetActive:Error:", err)
		return &SweepReport{
			Success: false,
			Message: fmt.Sprintf("Error fetching active destinations: %v", err),
		}
	}

	report := &SweepReport{Success: true, Checked: len(active)}

	for i := range active {
		d := &active[i]

		decision, appErr := service.EvaluateExpiry(d, now)
		if appErr != nil {
			logger.Warn("StatusSweeper:Sweep:EvaluateExpiry:Skipped",
				"destination_id", d.ID.String(), "code", appErr.Code, "error", appErr.Error())
			report.Errors++
			continue
		}
		if decision != service.DecisionTransitionToPast {
			continue
		}

		updated, err := s.repo.UpdateStatus(ctx, d.ID, entity.DestinationStatusPast)
		if err != nil {
			logger.Error("StatusSweeper:Sweep:UpdateStatus:Error:", err, "destination_id", d.ID.String())
			report.Errors++
			continue
		}
		if updated {
			report.Updated++
		}
	}

	report.Message = fmt.Sprintf("Updated %d destination(s) to past status", report.Updated)
	logger.Info("StatusSweeper:Sweep:Done",
		"checked", report.Checked, "updated", report.Updated, "errors", report.Errors)
	return report
}
