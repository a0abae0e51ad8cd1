package service

import (
	"context"
	"errors"
	"time"

	"github.com/edunexus/schoolhub/internal/calendar"
	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/rs/zerolog"
)

// LibraryService handles the catalogue and circulation.
type LibraryService struct {
	repo     *repository.LibraryRepository
	settings *SettingService
	cfg      *config.Config
	events   refresh.Publisher
	log      zerolog.Logger

	now func() time.Time
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(repo *repository.LibraryRepository, settings *SettingService, cfg *config.Config, events refresh.Publisher, log zerolog.Logger) *LibraryService {
	return &LibraryService{
		repo:     repo,
		settings: settings,
		cfg:      cfg,
		events:   events,
		log:      log.With().Str("component", "library_service").Logger(),
		now:      time.Now,
	}
}

func (s *LibraryService) ListBooks(ctx context.Context, branchID int, q string) ([]model.Book, error) {
	return s.repo.ListBooks(ctx, branchID, q)
}

func (s *LibraryService) CreateBook(ctx context.Context, branchID int, req model.BookRequest) (*model.Book, error) {
	b := &model.Book{BranchID: branchID, ISBN: req.ISBN, Title: req.Title, Author: req.Author, TotalCopies: req.TotalCopies}
	if err := s.repo.CreateBook(ctx, b); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionCreated, branchID, b.ID)
	return b, nil
}

// UpdateBook edits a book. Reducing copies below those on loan fails the
// availability check constraint.
func (s *LibraryService) UpdateBook(ctx context.Context, branchID, id int, req model.BookRequest) (*model.Book, error) {
	b := &model.Book{ID: id, BranchID: branchID, ISBN: req.ISBN, Title: req.Title, Author: req.Author, TotalCopies: req.TotalCopies}
	if err := s.repo.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, id)
	return b, nil
}

func (s *LibraryService) DeleteBook(ctx context.Context, branchID, id int) error {
	if err := s.repo.DeleteBook(ctx, branchID, id); err != nil {
		return err
	}
	s.changed(refresh.ActionDeleted, branchID, id)
	return nil
}

// ListIssues lists circulation records. Students only see their own.
func (s *LibraryService) ListIssues(ctx context.Context, actor *Claims, branchID int, f model.IssueFilter) ([]model.BookIssue, error) {
	if actor.Role == model.RoleStudent {
		if actor.StudentID == nil {
			return nil, ErrForbidden
		}
		f.StudentID = *actor.StudentID
	}
	return s.repo.ListIssues(ctx, branchID, f)
}

// Issue lends a copy of a book to a student.
func (s *LibraryService) Issue(ctx context.Context, actor *Claims, branchID int, req model.IssueBookRequest) (*model.BookIssue, error) {
	today := s.today()
	if req.DueDate < today {
		return nil, ErrInvalidDate
	}

	issue, err := s.repo.Issue(ctx, branchID, req, today, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNoCopies) {
			return nil, ErrNoCopiesAvailable
		}
		return nil, err
	}
	s.changed(refresh.ActionCreated, branchID, issue.ID)
	return issue, nil
}

// Return closes a circulation record, charging the overdue fine.
func (s *LibraryService) Return(ctx context.Context, branchID, id int) (*model.BookIssue, error) {
	issue, err := s.repo.GetIssue(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	if issue.ReturnedOn != nil {
		return nil, ErrAlreadyReturned
	}

	perDay, err := s.settings.FinePerDay(ctx, branchID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	fine := OverdueFine(issue.DueDate, today, perDay)

	returned, err := s.repo.Return(ctx, branchID, id, today, fine)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyClosed) {
			return nil, ErrAlreadyReturned
		}
		return nil, err
	}
	if fine > 0 {
		s.log.Info().Int("issue_id", id).Int64("fine", fine).Msg("Overdue fine charged")
	}
	s.changed(refresh.ActionUpdated, branchID, id)
	return returned, nil
}

func (s *LibraryService) today() string {
	return calendar.DateOf(s.now(), s.cfg.Location).Key()
}

func (s *LibraryService) changed(action refresh.Action, branchID, id int) {
	s.events.Publish(refresh.Changed(refresh.TopicLibrary, action, branchID, id))
}

// OverdueFine charges perDay for every day returnedOn is past dueDate.
// Malformed dates charge nothing.
func OverdueFine(dueDate, returnedOn string, perDay int64) int64 {
	due, ok := calendar.ParseDay(dueDate, time.UTC)
	if !ok {
		return 0
	}
	ret, ok := calendar.ParseDay(returnedOn, time.UTC)
	if !ok || !ret.After(due) {
		return 0
	}
	days := 0
	for d := due; d.Before(ret); d = d.AddDays(1) {
		days++
	}
	return int64(days) * perDay
}
