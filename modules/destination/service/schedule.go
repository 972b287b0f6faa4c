package service

import (
	"strconv"
	"strings"
	"time"

	"go-destinations-api/core/constants"
	"go-destinations-api/core/errors"
)

// EffectiveTime converts a scheduled date plus optional time into the
// single instant every "is this event past" decision compares against.
//
// With a time present the instant is date+time (seconds default to 0 when
// the string only carries HH:MM). Without one the event is all-day and the
// instant is the end of that date, 23:59:59, so the event stays current for
// its whole calendar day and expires the moment the day ends.
//
// Instants are wall-clock naive and constructed in UTC; callers must pass
// "now" in the same frame.
func EffectiveTime(scheduledDate string, scheduledTime *string) (time.Time, *errors.AppError) {
	day, err := time.ParseInLocation(constants.ScheduledDateLayout, scheduledDate, time.UTC)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrMalformedDate, "invalid scheduled date: "+scheduledDate, err)
	}

	if scheduledTime == nil || *scheduledTime == "" {
		return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.UTC), nil
	}

	hour, minute, second, appErr := parseClock(*scheduledTime)
	if appErr != nil {
		return time.Time{}, appErr
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, time.UTC), nil
}

// parseClock decomposes HH:MM or HH:MM:SS into its numeric components.
func parseClock(clock string) (hour, minute, second int, appErr *errors.AppError) {
	malformed := func(err error) (int, int, int, *errors.AppError) {
		return 0, 0, 0, errors.NewAppError(errors.ErrMalformedTime, "invalid scheduled time: "+clock, err)
	}

	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return malformed(nil)
	}

	var err error
	if hour, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return malformed(err)
	}
	if minute, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return malformed(err)
	}
	if len(parts) == 3 {
		if second, err = strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
			return malformed(err)
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return malformed(nil)
	}

	return hour, minute, second, nil
}
