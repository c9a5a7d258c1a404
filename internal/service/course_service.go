package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository"
)

type CourseService struct {
	courseRepo  *repository.CourseRepository
	athleteRepo *repository.AthleteRepository
	logger      *zap.Logger
}

func NewCourseService(courseRepo *repository.CourseRepository, athleteRepo *repository.AthleteRepository, logger *zap.Logger) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		athleteRepo: athleteRepo,
		logger:      logger,
	}
}

func (s *CourseService) Create(ctx context.Context, c *model.Course) error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidState)
	}
	c.IsActive = true
	if err := s.courseRepo.Create(ctx, c); err != nil {
		return err
	}
	s.logger.Info("Course created",
		zap.Int64("course_id", c.ID),
		zap.String("name", c.Name),
	)
	return nil
}

func (s *CourseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	n, err := s.courseRepo.EnrolledCount(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Enrolled = n
	return c, nil
}

func (s *CourseService) List(ctx context.Context) ([]*model.Course, error) {
	return s.courseRepo.List(ctx)
}

func (s *CourseService) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Course, error) {
	return s.courseRepo.ListByTeacher(ctx, teacherID)
}

func (s *CourseService) Update(ctx context.Context, c *model.Course) error {
	return s.courseRepo.Update(ctx, c)
}

func (s *CourseService) Deactivate(ctx context.Context, id int64) error {
	return s.courseRepo.Deactivate(ctx, id)
}

// Enroll adds an athlete to a course, enforcing capacity.
func (s *CourseService) Enroll(ctx context.Context, courseID, athleteID int64) (*model.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsActive {
		return nil, ErrNotFound
	}

	athlete, err := s.athleteRepo.GetByID(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if athlete == nil || !athlete.IsActive {
		return nil, ErrNotFound
	}

	enrolled, err := s.courseRepo.IsEnrolled(ctx, courseID, athleteID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrDuplicate
	}

	e, err := s.courseRepo.Enroll(ctx, courseID, athleteID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrCapacityFull
	}

	s.logger.Info("Athlete enrolled",
		zap.Int64("course_id", courseID),
		zap.Int64("athlete_id", athleteID),
	)
	return e, nil
}

func (s *CourseService) Withdraw(ctx context.Context, courseID, athleteID int64) error {
	if err := s.courseRepo.Withdraw(ctx, courseID, athleteID); err != nil {
		return err
	}
	s.logger.Info("Athlete withdrawn",
		zap.Int64("course_id", courseID),
		zap.Int64("athlete_id", athleteID),
	)
	return nil
}

func (s *CourseService) Roster(ctx context.Context, courseID int64) ([]*model.Enrollment, error) {
	return s.courseRepo.Roster(ctx, courseID)
}
