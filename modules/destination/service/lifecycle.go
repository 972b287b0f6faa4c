package service

import (
	"time"

	"go-destinations-api/core/errors"
	"go-destinations-api/modules/destination/entity"

	"github.com/google/uuid"
)

// Decision is the outcome of an expiry evaluation.
type Decision int

const (
	DecisionNoChange Decision = iota
	DecisionTransitionToPast
)

func (d Decision) String() string {
	if d == DecisionTransitionToPast {
		return "transition_to_past"
	}
	return "no_change"
}

// EvaluateExpiry decides whether an event should move from active to past.
// Non-active events are never touched, so the active->past and
// active->cancelled transitions stay one-way. A malformed schedule is
// reported to the caller but scoped to this single event.
func EvaluateExpiry(d *entity.Destination, now time.Time) (Decision, *errors.AppError) {
	if d.Status != entity.DestinationStatusActive {
		return DecisionNoChange, nil
	}

	at, err := EffectiveTime(d.ScheduledDate, d.ScheduledTime)
	if err != nil {
		return DecisionNoChange, err
	}

	if at.After(now) {
		return DecisionNoChange, nil
	}
	return DecisionTransitionToPast, nil
}

// CanCancel checks every cancellation precondition: only the organizer may
// cancel, a cancelled event cannot be cancelled again, and a past event
// cannot be cancelled at all. Pastness is re-derived from the schedule at
// request time instead of trusting the persisted status, so a cancel racing
// the background sweep is rejected deterministically even when the sweep
// has not caught up yet.
func CanCancel(d *entity.Destination, requesterID uuid.UUID, now time.Time) *errors.AppError {
	if d.UserID != requesterID {
		return errors.New(errors.ErrForbidden, "only the organizer can cancel this destination")
	}

	if d.Status == entity.DestinationStatusCancelled {
		return errors.New(errors.ErrAlreadyCancelled, "destination is already cancelled")
	}

	at, err := EffectiveTime(d.ScheduledDate, d.ScheduledTime)
	if err != nil {
		return err
	}

	if at.Before(now) {
		return errors.New(errors.ErrPastEvent, "cannot cancel past destinations")
	}

	return nil
}
