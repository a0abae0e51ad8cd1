package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/rs/zerolog"
)

// publicSettings may be read without signing in.
var publicSettings = []string{model.SettingSchoolName, model.SettingWeeklyHoliday}

type SettingService struct {
	settingRepo *repository.SettingRepository
	cfg         *config.Config
	events      refresh.Publisher
	log         zerolog.Logger
}

func NewSettingService(settingRepo *repository.SettingRepository, cfg *config.Config, events refresh.Publisher, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		cfg:         cfg,
		events:      events,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

func (s *SettingService) GetAllSettings(ctx context.Context, branchID int) (map[string]string, error) {
	settingsList, err := s.settingRepo.GetAll(ctx, branchID)
	if err != nil {
		s.log.Error().Err(err).Int("branch_id", branchID).Msg("failed to get all settings")
		return nil, err
	}

	settingsMap := make(map[string]string, len(settingsList))
	for _, setting := range settingsList {
		settingsMap[setting.Key] = setting.Value
	}
	return settingsMap, nil
}

// PublicSettings returns the subset of settings shown on the sign-in page.
func (s *SettingService) PublicSettings(ctx context.Context, branchID int) (map[string]string, error) {
	all, err := s.GetAllSettings(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(publicSettings))
	for _, k := range publicSettings {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// UpdateSettings validates well-known keys and upserts all values in one
// transaction.
func (s *SettingService) UpdateSettings(ctx context.Context, branchID int, settingsMap map[string]string) error {
	for key, value := range settingsMap {
		if err := validateSetting(key, value); err != nil {
			return err
		}
	}
	if err := s.settingRepo.UpsertMany(ctx, branchID, settingsMap); err != nil {
		s.log.Error().Err(err).Int("branch_id", branchID).Msg("failed to update settings")
		return err
	}
	s.events.Publish(refresh.Changed(refresh.TopicSettings, refresh.ActionUpdated, branchID, 0))
	return nil
}

func (s *SettingService) GetSettingByKey(ctx context.Context, branchID int, key string) (string, error) {
	setting, err := s.settingRepo.GetByKey(ctx, branchID, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// WeeklyHolidays returns the branch's non-attendance weekdays. The
// weekly_holiday setting holds a comma-separated list of day names and
// overrides the configured default.
func (s *SettingService) WeeklyHolidays(ctx context.Context, branchID int) ([]time.Weekday, error) {
	raw, err := s.GetSettingByKey(ctx, branchID, model.SettingWeeklyHoliday)
	if err != nil {
		if repository.IsNotFound(err) {
			return []time.Weekday{s.cfg.WeeklyHoliday}, nil
		}
		return nil, err
	}
	days, err := parseWeekdays(raw)
	if err != nil {
		s.log.Warn().Err(err).Int("branch_id", branchID).Msg("Ignoring malformed weekly_holiday setting")
		return []time.Weekday{s.cfg.WeeklyHoliday}, nil
	}
	return days, nil
}

// FinePerDay returns the overdue library fine in minor units. Unset means no fine.
func (s *SettingService) FinePerDay(ctx context.Context, branchID int) (int64, error) {
	raw, err := s.GetSettingByKey(ctx, branchID, model.SettingLibraryFine)
	if err != nil {
		if repository.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	fine, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || fine < 0 {
		s.log.Warn().Str("value", raw).Int("branch_id", branchID).Msg("Ignoring malformed library fine setting")
		return 0, nil
	}
	return fine, nil
}

func validateSetting(key, value string) error {
	switch key {
	case model.SettingWeeklyHoliday:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		if _, err := parseWeekdays(value); err != nil {
			return err
		}
	case model.SettingLibraryFine:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidValue, key)
		}
	}
	return nil
}

func parseWeekdays(raw string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, ok := config.ParseWeekday(part)
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidValue, part)
		}
		days = append(days, d)
	}
	return days, nil
}
