package service

import (
	"testing"
	"time"

	"go-destinations-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestEffectiveTime_WithTime(t *testing.T) {
	at, appErr := EffectiveTime("2024-06-01", strPtr("10:30:00"))

	require.Nil(t, appErr)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), at)
}

func TestEffectiveTime_SecondsDefaultToZero(t *testing.T) {
	at, appErr := EffectiveTime("2024-06-01", strPtr("10:30"))

	require.Nil(t, appErr)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), at)
}

func TestEffectiveTime_AllDayUsesEndOfDay(t *testing.T) {
	tests := []struct {
		name          string
		scheduledTime *string
	}{
		{"nil time", nil},
		{"empty time", strPtr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at, appErr := EffectiveTime("2024-06-01", tt.scheduledTime)

			require.Nil(t, appErr)
			assert.Equal(t, time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC), at)
		})
	}
}

func TestEffectiveTime_MalformedDate(t *testing.T) {
	for _, date := range []string{"", "2024-13-01", "06/01/2024", "not-a-date", "2024-06-32"} {
		t.Run(date, func(t *testing.T) {
			_, appErr := EffectiveTime(date, nil)

			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrMalformedDate, appErr.Code)
		})
	}
}

func TestEffectiveTime_MalformedTime(t *testing.T) {
	for _, clock := range []string{"10", "10:30:00:00", "aa:bb", "24:00", "10:60", "10:30:60", "-1:00"} {
		t.Run(clock, func(t *testing.T) {
			_, appErr := EffectiveTime("2024-06-01", strPtr(clock))

			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrMalformedTime, appErr.Code)
		})
	}
}

func TestEffectiveTime_ToleratesWhitespaceInClock(t *testing.T) {
	at, appErr := EffectiveTime("2024-06-01", strPtr(" 9: 15"))

	require.Nil(t, appErr)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 15, 0, 0, time.UTC), at)
}
