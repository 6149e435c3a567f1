package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

func TestOccupiesTime(t *testing.T) {
	cases := map[string]bool{
		"pending":     true,
		"CONFIRMED":   true,
		"completed":   true,
		"cancelled":   false,
		"Archived":    false,
		" cancelled ": false,
	}
	for raw, want := range cases {
		assert.Equal(t, want, Status(raw).OccupiesTime(), raw)
	}
}

func TestTransitions(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("happy path to archive", func(t *testing.T) {
		ap := &models.Appointment{Status: string(InitialStatus())}

		require.NoError(t, Confirm(ap, now))
		assert.Equal(t, string(StatusConfirmed), ap.Status)
		require.NotNil(t, ap.ConfirmedAt)

		require.NoError(t, Complete(ap, now))
		assert.Equal(t, string(StatusCompleted), ap.Status)

		require.NoError(t, Archive(ap, now))
		assert.Equal(t, string(StatusArchived), ap.Status)
		require.NotNil(t, ap.ArchivedAt)
	})

	t.Run("legacy upper-case status is accepted", func(t *testing.T) {
		ap := &models.Appointment{Status: "PENDING"}
		require.NoError(t, Cancel(ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
	})

	t.Run("cancelled cannot be confirmed", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCancelled)}
		err := Confirm(ap, now)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("pending cannot be completed", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		assert.True(t, httperr.IsBusiness(Complete(ap, now), "invalid_state"))
	})

	t.Run("unknown action", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		assert.True(t, httperr.IsBusiness(Transition(ap, "delete", now), "invalid_action"))
	})
}
