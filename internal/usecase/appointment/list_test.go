package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

func seededList() (*fakeRepo, *ListAppointments) {
	repo := newFakeRepo()
	repo.specialists[1].Timezone = "Europe/Moscow"

	// 23:30 Moscow on March 1st.
	repo.add(activeAppointment(1, "2026-03-01T20:30:00Z", "2026-03-01T21:30:00Z", "pending"))
	repo.add(activeAppointment(1, "2026-03-02T07:00:00Z", "2026-03-02T08:00:00Z", "CONFIRMED"))
	repo.add(activeAppointment(1, "2026-04-01T07:00:00Z", "2026-04-01T08:00:00Z", "pending"))

	return repo, NewListAppointments(repo)
}

func TestListAppointments_ByDateUsesSpecialistZone(t *testing.T) {
	_, uc := seededList()

	out, err := uc.ByDate(context.Background(), 1, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "confirmed", out[0].Status)
	assert.Equal(t, 10, out[0].StartTime.Hour())
	assert.Equal(t, "Europe/Moscow", out[0].StartTime.Location().String())

	out, err = uc.ByDate(context.Background(), 1, "2026-03-01")
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestListAppointments_ByMonth(t *testing.T) {
	_, uc := seededList()

	out, err := uc.ByMonth(context.Background(), 1, 2026, 3)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.True(t, out[0].StartTime.Before(out[1].StartTime))

	_, err = uc.ByMonth(context.Background(), 1, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}

func TestListAppointments_ForUser(t *testing.T) {
	repo, uc := seededList()
	owner := uint(9)
	ap := activeAppointment(1, "2026-03-03T07:00:00Z", "2026-03-03T08:00:00Z", "pending")
	ap.UserID = &owner
	repo.add(ap)

	out, err := uc.ForUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC), out[0].StartTime.UTC())

	out, err = uc.ForUser(context.Background(), 1234)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestListAppointments_InvalidDate(t *testing.T) {
	_, uc := seededList()
	_, err := uc.ByDate(context.Background(), 1, "March 2")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
