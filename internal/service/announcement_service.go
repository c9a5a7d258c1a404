package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository"
)

type AnnouncementService struct {
	announcementRepo *repository.AnnouncementRepository
	courseRepo       *repository.CourseRepository
	athleteRepo      *repository.AthleteRepository
	guardianRepo     *repository.GuardianRepository
	logger           *zap.Logger
}

func NewAnnouncementService(
	announcementRepo *repository.AnnouncementRepository,
	courseRepo *repository.CourseRepository,
	athleteRepo *repository.AthleteRepository,
	guardianRepo *repository.GuardianRepository,
	logger *zap.Logger,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		courseRepo:       courseRepo,
		athleteRepo:      athleteRepo,
		guardianRepo:     guardianRepo,
		logger:           logger,
	}
}

func (s *AnnouncementService) Publish(ctx context.Context, a *model.Announcement) error {
	if a.Title == "" || a.Body == "" {
		return fmt.Errorf("%w: title and body required", ErrInvalidState)
	}

	switch a.Audience {
	case model.AudienceAll:
		a.CourseID = nil
		a.Role = ""
	case model.AudienceCourse:
		if a.CourseID == nil {
			return fmt.Errorf("%w: course audience needs a course id", ErrInvalidState)
		}
		course, err := s.courseRepo.GetByID(ctx, *a.CourseID)
		if err != nil {
			return err
		}
		if course == nil {
			return ErrNotFound
		}
		a.Role = ""
	case model.AudienceRole:
		if !a.Role.Valid() {
			return fmt.Errorf("%w: role audience needs a valid role", ErrInvalidState)
		}
		a.CourseID = nil
	default:
		return fmt.Errorf("%w: unknown audience %q", ErrInvalidState, a.Audience)
	}

	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return err
	}

	s.logger.Info("Announcement published",
		zap.Int64("announcement_id", a.ID),
		zap.String("audience", string(a.Audience)),
	)
	return nil
}

// Feed returns the announcements visible to the viewer, newest first. Course
// scoping is resolved from the viewer's own memberships, never from input.
func (s *AnnouncementService) Feed(ctx context.Context, viewerID int64, role model.Role, limit int) ([]*model.Announcement, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	courseIDs, err := s.viewerCourseIDs(ctx, viewerID, role)
	if err != nil {
		return nil, err
	}
	return s.announcementRepo.ListVisible(ctx, role, courseIDs, limit)
}

// viewerCourseIDs resolves the course memberships of the viewer: enrollments
// for an athlete, the athletes' enrollments for a guardian, taught courses
// for a teacher, every course for admins and coordinators.
func (s *AnnouncementService) viewerCourseIDs(ctx context.Context, viewerID int64, role model.Role) ([]int64, error) {
	switch role {
	case model.RoleAthlete:
		athlete, err := s.athleteRepo.GetByUserID(ctx, viewerID)
		if err != nil || athlete == nil {
			return nil, err
		}
		return s.courseRepo.CourseIDsByAthlete(ctx, athlete.ID)
	case model.RoleGuardian:
		guardian, err := s.guardianRepo.GetByUserID(ctx, viewerID)
		if err != nil || guardian == nil {
			return nil, err
		}
		athletes, err := s.athleteRepo.ListByGuardian(ctx, guardian.ID)
		if err != nil {
			return nil, err
		}
		var lists [][]int64
		for _, a := range athletes {
			ids, err := s.courseRepo.CourseIDsByAthlete(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			lists = append(lists, ids)
		}
		return mergeCourseIDs(lists...), nil
	case model.RoleTeacher:
		courses, err := s.courseRepo.ListByTeacher(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		return courseIDsOf(courses), nil
	default:
		courses, err := s.courseRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		return courseIDsOf(courses), nil
	}
}

func courseIDsOf(courses []*model.Course) []int64 {
	ids := make([]int64, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids
}

// mergeCourseIDs unions id lists, dropping duplicates, first occurrence wins.
func mergeCourseIDs(lists ...[]int64) []int64 {
	seen := make(map[int64]struct{})
	var out []int64
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// Delete removes an announcement. Authors remove their own; admins remove any.
func (s *AnnouncementService) Delete(ctx context.Context, id, actorID int64, actorRole model.Role) error {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	if a.AuthorID != actorID && actorRole != model.RoleAdmin {
		return ErrForbidden
	}
	return s.announcementRepo.Delete(ctx, id)
}
