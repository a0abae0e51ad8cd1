package service

import (
	"context"
	"time"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
)

const feedLimit = 50

// AnnouncementService handles notices and the per-reader feed.
type AnnouncementService struct {
	repo        *repository.AnnouncementRepository
	classRepo   *repository.ClassRepository
	studentRepo *repository.StudentRepository
	events      refresh.Publisher
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(
	repo *repository.AnnouncementRepository,
	classRepo *repository.ClassRepository,
	studentRepo *repository.StudentRepository,
	events refresh.Publisher,
) *AnnouncementService {
	return &AnnouncementService{repo: repo, classRepo: classRepo, studentRepo: studentRepo, events: events}
}

// List returns every announcement of a branch, including scheduled ones.
func (s *AnnouncementService) List(ctx context.Context, branchID int) ([]model.Announcement, error) {
	return s.repo.List(ctx, branchID)
}

func (s *AnnouncementService) Create(ctx context.Context, actor *Claims, branchID int, req model.AnnouncementRequest) (*model.Announcement, error) {
	a, err := s.fromRequest(ctx, branchID, req)
	if err != nil {
		return nil, err
	}
	a.AuthorID = &actor.UserID
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionCreated, branchID, a.ID)
	return a, nil
}

// Update edits an announcement. Teachers may only edit their own.
func (s *AnnouncementService) Update(ctx context.Context, actor *Claims, branchID, id int, req model.AnnouncementRequest) (*model.Announcement, error) {
	if err := s.checkAuthor(ctx, actor, branchID, id); err != nil {
		return nil, err
	}
	a, err := s.fromRequest(ctx, branchID, req)
	if err != nil {
		return nil, err
	}
	a.ID = id
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, id)
	return s.repo.GetByID(ctx, branchID, id)
}

func (s *AnnouncementService) Delete(ctx context.Context, actor *Claims, branchID, id int) error {
	if err := s.checkAuthor(ctx, actor, branchID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, branchID, id); err != nil {
		return err
	}
	s.changed(refresh.ActionDeleted, branchID, id)
	return nil
}

// Feed returns the published announcements addressed to the caller.
func (s *AnnouncementService) Feed(ctx context.Context, actor *Claims, branchID int) ([]model.Announcement, error) {
	scope, err := s.feedScope(ctx, actor, branchID)
	if err != nil {
		return nil, err
	}
	return s.repo.Feed(ctx, scope, feedLimit)
}

func (s *AnnouncementService) feedScope(ctx context.Context, actor *Claims, branchID int) (model.FeedScope, error) {
	scope := model.FeedScope{BranchID: branchID, Audiences: []model.Audience{model.AudienceAll}}

	switch actor.Role {
	case model.RoleStudent:
		scope.Audiences = append(scope.Audiences, model.AudienceStudents)
		if actor.StudentID != nil {
			st, err := s.studentRepo.GetByID(ctx, branchID, *actor.StudentID)
			if err != nil && !repository.IsNotFound(err) {
				return scope, err
			}
			if st != nil && st.ClassID != nil {
				scope.ClassIDs = []int{*st.ClassID}
			}
		}
	case model.RoleParent:
		scope.Audiences = append(scope.Audiences, model.AudienceParents)
		children, err := s.studentRepo.ListByGuardian(ctx, actor.UserID)
		if err != nil {
			return scope, err
		}
		for _, c := range children {
			if c.ClassID != nil {
				scope.ClassIDs = append(scope.ClassIDs, *c.ClassID)
			}
		}
	case model.RoleTeacher:
		scope.Audiences = append(scope.Audiences, model.AudienceStaff)
		if actor.StaffID != nil {
			class, err := s.classRepo.GetByMentor(ctx, *actor.StaffID)
			if err != nil && !repository.IsNotFound(err) {
				return scope, err
			}
			if class != nil {
				scope.ClassIDs = []int{class.ID}
			}
		}
	default:
		// Administrative roles read every audience.
		scope.Audiences = append(scope.Audiences, model.AudienceStaff, model.AudienceStudents, model.AudienceParents)
		classes, err := s.classRepo.List(ctx, branchID)
		if err != nil {
			return scope, err
		}
		for _, c := range classes {
			scope.ClassIDs = append(scope.ClassIDs, c.ID)
		}
	}
	return scope, nil
}

func (s *AnnouncementService) fromRequest(ctx context.Context, branchID int, req model.AnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{
		BranchID:  branchID,
		Title:     req.Title,
		Body:      req.Body,
		Audience:  req.Audience,
		PublishAt: time.Now().UTC(),
	}
	if req.PublishAt != nil {
		a.PublishAt = req.PublishAt.UTC()
	}
	if req.Audience == model.AudienceClass {
		if _, err := s.classRepo.GetByID(ctx, branchID, *req.ClassID); err != nil {
			return nil, err
		}
		a.ClassID = req.ClassID
	}
	return a, nil
}

func (s *AnnouncementService) checkAuthor(ctx context.Context, actor *Claims, branchID, id int) error {
	a, err := s.repo.GetByID(ctx, branchID, id)
	if err != nil {
		return err
	}
	if actor.Role == model.RoleTeacher && (a.AuthorID == nil || *a.AuthorID != actor.UserID) {
		return ErrForbidden
	}
	return nil
}

func (s *AnnouncementService) changed(action refresh.Action, branchID, id int) {
	s.events.Publish(refresh.Changed(refresh.TopicAnnouncements, action, branchID, id))
}
