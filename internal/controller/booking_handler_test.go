package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/auth"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository/inmem"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/schedule"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

type bookingFixture struct {
	e       *echo.Echo
	booking *service.BookingService
	tokens  *auth.TokenManager
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	store := inmem.NewStore()
	booking := service.NewBookingService(store, zap.NewNop())
	tokens := newTestTokens()

	e := echo.New()
	e.Validator = newRequestValidator()
	api := e.Group("/api/v1", Authenticate(tokens))
	NewBookingHandler(booking, nil, 4).RegisterRoutes(api)

	return &bookingFixture{e: e, booking: booking, tokens: tokens}
}

func (f *bookingFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *bookingFixture) publishSlot(t *testing.T, ownerID int64) *model.Slot {
	t.Helper()

	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	slots, err := f.booking.Publish(context.Background(), ownerID,
		[]schedule.Interval{{Start: start, End: start.Add(time.Hour)}}, "Box 1", "")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	return slots[0]
}

func TestReserveEndpoint(t *testing.T) {
	f := newBookingFixture(t)
	slot := f.publishSlot(t, 100)
	booker := issueToken(t, f.tokens, 200, model.RoleGuardian)

	rec := f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/slots/%d/reserve", slot.ID), booker,
		`{"athlete_id": 300}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var appt model.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appt))
	assert.Equal(t, slot.ID, appt.SlotID)
	assert.Equal(t, int64(300), appt.SubjectID)
	assert.Equal(t, int64(200), appt.BookedByID)
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
}

func TestReserveEndpointConflicts(t *testing.T) {
	f := newBookingFixture(t)
	slot := f.publishSlot(t, 100)
	booker := issueToken(t, f.tokens, 200, model.RoleGuardian)
	path := fmt.Sprintf("/api/v1/slots/%d/reserve", slot.ID)

	rec := f.do(t, http.MethodPost, path, booker, `{"athlete_id": 300}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// second reservation of the same slot
	rec = f.do(t, http.MethodPost, path, booker, `{"athlete_id": 301}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// unknown slot
	rec = f.do(t, http.MethodPost, "/api/v1/slots/99999/reserve", booker, `{"athlete_id": 300}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReserveEndpointAuth(t *testing.T) {
	f := newBookingFixture(t)
	slot := f.publishSlot(t, 100)
	path := fmt.Sprintf("/api/v1/slots/%d/reserve", slot.ID)

	// no token
	rec := f.do(t, http.MethodPost, path, "", `{"athlete_id": 300}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// professionals do not book for athletes
	professional := issueToken(t, f.tokens, 100, model.RoleProfessional)
	rec = f.do(t, http.MethodPost, path, professional, `{"athlete_id": 300}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// missing athlete_id fails validation
	booker := issueToken(t, f.tokens, 200, model.RoleGuardian)
	rec = f.do(t, http.MethodPost, path, booker, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFreeSlotsEndpoint(t *testing.T) {
	f := newBookingFixture(t)
	slot := f.publishSlot(t, 100)
	booker := issueToken(t, f.tokens, 200, model.RoleAthlete)

	rec := f.do(t, http.MethodGet, "/api/v1/slots", booker, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var slots []*model.Slot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	require.Len(t, slots, 1)
	assert.Equal(t, slot.ID, slots[0].ID)

	// filtered to another professional the list is empty
	rec = f.do(t, http.MethodGet, "/api/v1/slots?professional_id=999", booker, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	assert.Empty(t, slots)
}

func TestCancelSlotEndpoint(t *testing.T) {
	f := newBookingFixture(t)
	slot := f.publishSlot(t, 100)
	path := fmt.Sprintf("/api/v1/slots/%d", slot.ID)

	// another professional cannot withdraw the slot
	stranger := issueToken(t, f.tokens, 999, model.RoleProfessional)
	rec := f.do(t, http.MethodDelete, path, stranger, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	owner := issueToken(t, f.tokens, 100, model.RoleProfessional)
	rec = f.do(t, http.MethodDelete, path, owner, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// already cancelled
	rec = f.do(t, http.MethodDelete, path, owner, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAppointmentTransitionEndpoints(t *testing.T) {
	f := newBookingFixture(t)
	slot := f.publishSlot(t, 100)

	appt, err := f.booking.Reserve(context.Background(), slot.ID, 300, 200)
	require.NoError(t, err)

	professional := issueToken(t, f.tokens, 100, model.RoleProfessional)
	booker := issueToken(t, f.tokens, 200, model.RoleGuardian)

	// only the professional completes
	rec := f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/appointments/%d/complete", appt.ID), booker, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/appointments/%d/complete", appt.ID), professional, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// completed appointments stay completed
	rec = f.do(t, http.MethodPost, fmt.Sprintf("/api/v1/appointments/%d/cancel", appt.ID), booker, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}
