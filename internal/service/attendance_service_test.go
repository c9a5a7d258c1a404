package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

func TestSessionDate(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	// late evening in Santiago is already the next day in UTC
	local := time.Date(2024, 9, 2, 22, 30, 0, 0, santiago)
	day := sessionDate(local)

	assert.Equal(t, time.UTC, day.Location())
	assert.Equal(t, 3, day.Day())
	assert.Zero(t, day.Hour())
	assert.Zero(t, day.Minute())
}

func TestMarkRejectsUnknownStatus(t *testing.T) {
	svc := NewAttendanceService(nil, nil, nil, nil, nil, zap.NewNop())

	_, err := svc.Mark(context.Background(), 1, 2, 3, time.Now(), model.AttendanceStatus("vacationing"))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCanCheckInFor(t *testing.T) {
	userID := int64(40)
	guardianID := int64(7)
	athlete := &model.Athlete{ID: 2, UserID: &userID, GuardianID: &guardianID}

	tests := []struct {
		name     string
		guardian *model.Guardian
		actorID  int64
		role     model.Role
		want     bool
	}{
		{"own athlete account", nil, 40, model.RoleAthlete, true},
		{"someone else's athlete account", nil, 41, model.RoleAthlete, false},
		{"matching guardian", &model.Guardian{ID: 7}, 50, model.RoleGuardian, true},
		{"unrelated guardian", &model.Guardian{ID: 8}, 50, model.RoleGuardian, false},
		{"guardian without row", nil, 50, model.RoleGuardian, false},
		{"teacher", nil, 99, model.RoleTeacher, true},
		{"admin", nil, 99, model.RoleAdmin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canCheckInFor(athlete, tt.guardian, tt.actorID, tt.role))
		})
	}
}

func TestCanCheckInForUnlinkedAthlete(t *testing.T) {
	athlete := &model.Athlete{ID: 2}

	assert.False(t, canCheckInFor(athlete, nil, 40, model.RoleAthlete))
	assert.False(t, canCheckInFor(athlete, &model.Guardian{ID: 7}, 50, model.RoleGuardian))
}
