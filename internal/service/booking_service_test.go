package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository/inmem"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/schedule"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

func newBookingService(t *testing.T) (*service.BookingService, *inmem.Store) {
	t.Helper()
	store := inmem.NewStore()
	return service.NewBookingService(store, zap.NewNop()), store
}

func futureInterval(hoursAhead int) schedule.Interval {
	start := time.Now().Add(time.Duration(hoursAhead) * time.Hour).Truncate(time.Minute)
	return schedule.Interval{Start: start, End: start.Add(30 * time.Minute)}
}

func publishOne(t *testing.T, svc *service.BookingService, ownerID int64, iv schedule.Interval) *model.Slot {
	t.Helper()
	slots, err := svc.Publish(context.Background(), ownerID, []schedule.Interval{iv}, "court 1", "")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	return slots[0]
}

func TestReserveConcurrentSingleWinner(t *testing.T) {
	svc, store := newBookingService(t)
	slot := publishOne(t, svc, 10, futureInterval(24))

	const n = 64
	var wg sync.WaitGroup
	results := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			subject := int64(100 + i)
			_, results[i] = svc.Reserve(context.Background(), slot.ID, subject, subject)
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, service.ErrSlotUnavailable):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, n-1, lost)
	assert.Equal(t, 1, store.AppointmentCount())
}

func TestReserveCreatesPendingAppointment(t *testing.T) {
	svc, _ := newBookingService(t)
	slot := publishOne(t, svc, 10, futureInterval(24))

	appt, err := svc.Reserve(context.Background(), slot.ID, 200, 300)
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	assert.Equal(t, slot.ID, appt.SlotID)
	assert.Equal(t, int64(10), appt.ProfessionalID)
	assert.Equal(t, int64(200), appt.SubjectID)
	assert.Equal(t, int64(300), appt.BookedByID)
	assert.Equal(t, slot.StartTime, appt.StartTime)

	got, err := svc.OwnerSlots(context.Background(), 10, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.SlotStatusReserved, got[0].Status)
}

func TestReserveMissingSlot(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Reserve(context.Background(), 999, 1, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestReserveExpiredSlot(t *testing.T) {
	svc, store := newBookingService(t)
	slot := publishOne(t, svc, 10, futureInterval(1))

	svc.WithClock(func() time.Time { return slot.StartTime.Add(time.Minute) })

	_, err := svc.Reserve(context.Background(), slot.ID, 200, 200)
	assert.ErrorIs(t, err, service.ErrSlotExpired)
	assert.Equal(t, 0, store.AppointmentCount())

	// The slot was not consumed by the failed attempt.
	got, err := store.SlotByID(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusFree, got.Status)
}

func TestReserveCancelledSlot(t *testing.T) {
	svc, _ := newBookingService(t)
	slot := publishOne(t, svc, 10, futureInterval(24))

	require.NoError(t, svc.CancelSlot(context.Background(), slot.ID, 10))

	_, err := svc.Reserve(context.Background(), slot.ID, 200, 200)
	assert.ErrorIs(t, err, service.ErrSlotUnavailable)
}

func TestPublishFiltersOverlaps(t *testing.T) {
	svc, _ := newBookingService(t)
	base := time.Now().Add(48 * time.Hour).Truncate(time.Hour)

	candidates := []schedule.Interval{
		{Start: base, End: base.Add(30 * time.Minute)},
		{Start: base.Add(30 * time.Minute), End: base.Add(60 * time.Minute)},
	}

	first, err := svc.Publish(context.Background(), 10, candidates, "gym", "")
	require.NoError(t, err)
	assert.Len(t, first, 2)

	// Publishing the identical set again persists nothing.
	second, err := svc.Publish(context.Background(), 10, candidates, "gym", "")
	require.NoError(t, err)
	assert.Empty(t, second)

	// A half-overlapping candidate is dropped, a touching one survives.
	third, err := svc.Publish(context.Background(), 10, []schedule.Interval{
		{Start: base.Add(45 * time.Minute), End: base.Add(75 * time.Minute)},
		{Start: base.Add(60 * time.Minute), End: base.Add(90 * time.Minute)},
	}, "gym", "")
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, base.Add(60*time.Minute), third[0].StartTime)
}

func TestPublishFiltersWithinBatch(t *testing.T) {
	svc, _ := newBookingService(t)
	base := time.Now().Add(48 * time.Hour).Truncate(time.Hour)

	// step < duration: raw candidates overlap each other.
	rule := schedule.Rule{
		Weekdays:        []time.Weekday{base.Weekday()},
		WindowStartMin:  9 * 60,
		WindowEndMin:    10 * 60,
		DurationMinutes: 30,
		StepMinutes:     15,
		Weeks:           1,
		ReferenceDate:   base,
	}
	candidates, err := svc.GenerateCandidates(rule)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	published, err := svc.Publish(context.Background(), 10, candidates, "gym", "")
	require.NoError(t, err)
	require.Len(t, published, 2)

	for i := 1; i < len(published); i++ {
		assert.False(t, published[i].StartTime.Before(published[i-1].EndTime))
	}
}

func TestPublishIndependentOwners(t *testing.T) {
	svc, _ := newBookingService(t)
	iv := futureInterval(24)

	publishOne(t, svc, 10, iv)
	// Same window for another owner is not an overlap.
	publishOne(t, svc, 11, iv)
}

func TestCancelSlotByNonOwner(t *testing.T) {
	svc, store := newBookingService(t)
	slot := publishOne(t, svc, 10, futureInterval(24))

	err := svc.CancelSlot(context.Background(), slot.ID, 99)
	assert.ErrorIs(t, err, service.ErrForbidden)

	got, err := store.SlotByID(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusFree, got.Status)
}

func TestCancelReservedSlot(t *testing.T) {
	svc, _ := newBookingService(t)
	slot := publishOne(t, svc, 10, futureInterval(24))

	_, err := svc.Reserve(context.Background(), slot.ID, 200, 200)
	require.NoError(t, err)

	err = svc.CancelSlot(context.Background(), slot.ID, 10)
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestAppointmentTransitions(t *testing.T) {
	svc, _ := newBookingService(t)
	ctx := context.Background()

	slot := publishOne(t, svc, 10, futureInterval(24))
	appt, err := svc.Reserve(ctx, slot.ID, 200, 300)
	require.NoError(t, err)

	// Completion is professional-only.
	err = svc.CompleteAppointment(ctx, appt.ID, 200)
	assert.ErrorIs(t, err, service.ErrForbidden)

	require.NoError(t, svc.CompleteAppointment(ctx, appt.ID, 10))

	got, err := svc.AppointmentByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, got.Status)

	// Terminal: no further transitions.
	err = svc.CancelAppointment(ctx, appt.ID, 10)
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestCancelAppointmentBySubject(t *testing.T) {
	svc, _ := newBookingService(t)
	ctx := context.Background()

	slot := publishOne(t, svc, 10, futureInterval(24))
	appt, err := svc.Reserve(ctx, slot.ID, 200, 300)
	require.NoError(t, err)

	require.NoError(t, svc.CancelAppointment(ctx, appt.ID, 200))

	got, err := svc.AppointmentByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)

	// The slot stays reserved; re-offering the window is a new publish.
	slots, err := svc.OwnerSlots(ctx, 10, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, model.SlotStatusReserved, slots[0].Status)
}
