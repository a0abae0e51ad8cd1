package service

import (
	"context"
	"time"

	"github.com/edunexus/schoolhub/internal/calendar"
	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/repository"
)

// DashboardService handles the branch dashboard.
type DashboardService struct {
	repo *repository.DashboardRepository
	cfg  *config.Config
	now  func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository, cfg *config.Config) *DashboardService {
	return &DashboardService{repo: repo, cfg: cfg, now: time.Now}
}

// GetDashboardData returns the headline counts and who is away today.
func (s *DashboardService) GetDashboardData(ctx context.Context, branchID int) (*model.Dashboard, error) {
	today := calendar.DateOf(s.now(), s.cfg.Location).Key()

	stats, err := s.repo.GetSummaryCounts(ctx, branchID, today)
	if err != nil {
		return nil, err
	}

	away, err := s.repo.GetStaffOnLeave(ctx, branchID, today)
	if err != nil {
		return nil, err
	}
	if away == nil {
		away = []model.StaffOnLeave{}
	}

	return &model.Dashboard{Stats: stats, StaffOnLeave: away}, nil
}
