package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

type statusFixture struct {
	repo     *fakeRepo
	cache    *fakeCache
	recorder *fakeRecorder
	uc       *ChangeAppointmentStatus
}

func newStatusFixture() *statusFixture {
	f := &statusFixture{
		repo:     newFakeRepo(),
		cache:    newFakeCache(),
		recorder: &fakeRecorder{},
	}
	f.uc = NewChangeAppointmentStatus(f.repo, f.cache, f.recorder)
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

func (f *statusFixture) seed(status string, owner *uint) uint {
	ap := activeAppointment(1, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z", status)
	ap.UserID = owner
	return f.repo.add(ap).ID
}

func TestChangeStatus_AdminLifecycle(t *testing.T) {
	f := newStatusFixture()
	id := f.seed("pending", nil)

	for _, step := range []struct{ action, want string }{
		{ActionConfirm, "confirmed"},
		{ActionComplete, "completed"},
		{ActionArchive, "archived"},
	} {
		ap, err := f.uc.Execute(context.Background(), ChangeStatusInput{
			AppointmentID: id,
			Action:        step.action,
			ActorID:       1,
			ActorRole:     models.RoleAdmin,
		})
		require.NoError(t, err, step.action)
		assert.Equal(t, step.want, ap.Status)
	}

	stored := f.repo.appointments[id]
	assert.NotNil(t, stored.ConfirmedAt)
	assert.NotNil(t, stored.CompletedAt)
	assert.NotNil(t, stored.ArchivedAt)
	assert.Equal(t, []uint{1, 1, 1}, f.cache.invalidated)

	require.Len(t, f.recorder.events, 3)
	assert.Equal(t, "appointment_confirmed", f.recorder.events[0].Action)
	assert.Equal(t, "appointment_archived", f.recorder.events[2].Action)
}

func TestChangeStatus_InvalidTransition(t *testing.T) {
	f := newStatusFixture()
	id := f.seed("pending", nil)

	_, err := f.uc.Execute(context.Background(), ChangeStatusInput{
		AppointmentID: id, Action: ActionComplete, ActorRole: models.RoleAdmin,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, "pending", f.repo.appointments[id].Status)
	assert.Empty(t, f.cache.invalidated)
}

func TestChangeStatus_UnknownAction(t *testing.T) {
	f := newStatusFixture()
	id := f.seed("pending", nil)

	_, err := f.uc.Execute(context.Background(), ChangeStatusInput{
		AppointmentID: id, Action: "reopen", ActorRole: models.RoleAdmin,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_action"))
}

func TestChangeStatus_ClientRules(t *testing.T) {
	owner := uint(7)
	stranger := uint(8)

	t.Run("cancel own", func(t *testing.T) {
		f := newStatusFixture()
		id := f.seed("confirmed", &owner)

		ap, err := f.uc.Execute(context.Background(), ChangeStatusInput{
			AppointmentID: id, Action: ActionCancel, ActorID: owner, ActorRole: models.RoleClient,
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", ap.Status)
		assert.NotNil(t, ap.CancelledAt)
	})

	t.Run("cancel foreign", func(t *testing.T) {
		f := newStatusFixture()
		id := f.seed("pending", &owner)

		_, err := f.uc.Execute(context.Background(), ChangeStatusInput{
			AppointmentID: id, Action: ActionCancel, ActorID: stranger, ActorRole: models.RoleClient,
		})
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})

	t.Run("confirm own", func(t *testing.T) {
		f := newStatusFixture()
		id := f.seed("pending", &owner)

		_, err := f.uc.Execute(context.Background(), ChangeStatusInput{
			AppointmentID: id, Action: ActionConfirm, ActorID: owner, ActorRole: models.RoleClient,
		})
		assert.True(t, httperr.IsBusiness(err, "forbidden_action"))
	})
}

func TestChangeStatus_MissingAppointment(t *testing.T) {
	f := newStatusFixture()

	_, err := f.uc.Execute(context.Background(), ChangeStatusInput{
		AppointmentID: 404, Action: ActionCancel, ActorRole: models.RoleAdmin,
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
