package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/geo"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository"
)

type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	sessionRepo    *repository.SessionRepository
	courseRepo     *repository.CourseRepository
	athleteRepo    *repository.AthleteRepository
	guardianRepo   *repository.GuardianRepository
	logger         *zap.Logger
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	sessionRepo *repository.SessionRepository,
	courseRepo *repository.CourseRepository,
	athleteRepo *repository.AthleteRepository,
	guardianRepo *repository.GuardianRepository,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		sessionRepo:    sessionRepo,
		courseRepo:     courseRepo,
		athleteRepo:    athleteRepo,
		guardianRepo:   guardianRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *AttendanceService) WithClock(now func() time.Time) *AttendanceService {
	s.now = now
	return s
}

// CheckIn records a geolocated self check-in for an athlete. Athletes may
// only check in their own linked row, guardians only athletes under their
// guardianship. The record is marked verified only when the reported
// position falls inside the course venue radius; an out-of-radius check-in
// is still stored so staff can review it.
func (s *AttendanceService) CheckIn(ctx context.Context, courseID, athleteID, actorID int64, actorRole model.Role, lat, lng float64) (*model.AttendanceRecord, error) {
	if err := s.authorizeCheckIn(ctx, athleteID, actorID, actorRole); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsActive {
		return nil, ErrNotFound
	}

	enrolled, err := s.courseRepo.IsEnrolled(ctx, courseID, athleteID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: athlete %d not enrolled in course %d", ErrForbidden, athleteID, courseID)
	}

	now := s.now()
	verified := geo.WithinRadius(lat, lng, course.VenueLat, course.VenueLng, course.CheckInRadius)

	rec := &model.AttendanceRecord{
		CourseID:    courseID,
		AthleteID:   athleteID,
		SessionDate: sessionDate(now),
		Status:      model.AttendancePresent,
		CheckedInAt: &now,
		Lat:         &lat,
		Lng:         &lng,
		Verified:    verified,
		RecordedBy:  actorID,
	}
	if err := s.attendanceRepo.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("Athlete checked in",
		zap.Int64("course_id", courseID),
		zap.Int64("athlete_id", athleteID),
		zap.Bool("verified", verified),
		zap.Float64("distance_m", geo.DistanceM(lat, lng, course.VenueLat, course.VenueLng)),
	)
	return rec, nil
}

func (s *AttendanceService) authorizeCheckIn(ctx context.Context, athleteID, actorID int64, role model.Role) error {
	if role != model.RoleAthlete && role != model.RoleGuardian {
		return nil
	}

	athlete, err := s.athleteRepo.GetByID(ctx, athleteID)
	if err != nil {
		return err
	}
	if athlete == nil {
		return ErrNotFound
	}

	var guardian *model.Guardian
	if role == model.RoleGuardian {
		if guardian, err = s.guardianRepo.GetByUserID(ctx, actorID); err != nil {
			return err
		}
	}

	if !canCheckInFor(athlete, guardian, actorID, role) {
		return fmt.Errorf("%w: athlete %d is not linked to this account", ErrForbidden, athleteID)
	}
	return nil
}

// canCheckInFor decides whether the actor may check in the athlete. Staff
// roles pass; an athlete must own the row, a guardian must be its guardian.
func canCheckInFor(athlete *model.Athlete, guardian *model.Guardian, actorID int64, role model.Role) bool {
	switch role {
	case model.RoleAthlete:
		return athlete.UserID != nil && *athlete.UserID == actorID
	case model.RoleGuardian:
		return guardian != nil && athlete.GuardianID != nil && *athlete.GuardianID == guardian.ID
	default:
		return true
	}
}

// Mark records a staff-entered attendance status for one athlete and date.
// It overwrites a previous mark for the same session.
func (s *AttendanceService) Mark(ctx context.Context, courseID, athleteID, recordedBy int64, date time.Time, status model.AttendanceStatus) (*model.AttendanceRecord, error) {
	switch status {
	case model.AttendancePresent, model.AttendanceLate, model.AttendanceAbsent, model.AttendanceJustified:
	default:
		return nil, fmt.Errorf("%w: unknown attendance status %q", ErrInvalidState, status)
	}

	enrolled, err := s.courseRepo.IsEnrolled(ctx, courseID, athleteID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: athlete %d not enrolled in course %d", ErrForbidden, athleteID, courseID)
	}

	rec := &model.AttendanceRecord{
		CourseID:    courseID,
		AthleteID:   athleteID,
		SessionDate: sessionDate(date),
		Status:      status,
		Verified:    true, // staff entry needs no geolocation proof
		RecordedBy:  recordedBy,
	}
	if err := s.attendanceRepo.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *AttendanceService) ListByCourseDate(ctx context.Context, courseID int64, date time.Time) ([]*model.AttendanceRecord, error) {
	return s.attendanceRepo.ListByCourseDate(ctx, courseID, sessionDate(date))
}

func (s *AttendanceService) ListByAthlete(ctx context.Context, athleteID int64, from, to time.Time) ([]*model.AttendanceRecord, error) {
	return s.attendanceRepo.ListByAthlete(ctx, athleteID, from, to)
}

// ClockIn opens a work session for a teacher. A teacher can hold at most one
// open session at a time.
func (s *AttendanceService) ClockIn(ctx context.Context, teacherID int64, lat, lng *float64) (*model.StaffSession, error) {
	open, err := s.sessionRepo.GetOpen(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrOpenSession
	}

	sess := &model.StaffSession{
		TeacherID: teacherID,
		ClockInAt: s.now(),
		InLat:     lat,
		InLng:     lng,
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Teacher clocked in",
		zap.Int64("teacher_id", teacherID),
		zap.Int64("session_id", sess.ID),
	)
	return sess, nil
}

// ClockOut closes the teacher's open session.
func (s *AttendanceService) ClockOut(ctx context.Context, teacherID int64, lat, lng *float64) (*model.StaffSession, error) {
	open, err := s.sessionRepo.GetOpen(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenSession
	}

	at := s.now()
	if err := s.sessionRepo.Close(ctx, open.ID, at, lat, lng); err != nil {
		return nil, err
	}
	open.ClockOutAt = &at
	open.OutLat = lat
	open.OutLng = lng

	s.logger.Info("Teacher clocked out",
		zap.Int64("teacher_id", teacherID),
		zap.Int64("session_id", open.ID),
		zap.Duration("worked", open.Duration()),
	)
	return open, nil
}

func (s *AttendanceService) Sessions(ctx context.Context, teacherID int64, from, to time.Time) ([]*model.StaffSession, error) {
	return s.sessionRepo.ListByTeacher(ctx, teacherID, from, to)
}

// sessionDate truncates a timestamp to its UTC calendar day.
func sessionDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
