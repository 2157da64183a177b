package service

import (
	"diario-server/internal/domain"
	"diario-server/internal/repository"
)

type SettingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get() (*domain.Settings, error) {
	return s.repo.Get()
}

func (s *SettingsService) Update(req *domain.UpdateSettingsRequest) (*domain.Settings, error) {
	settings, err := s.repo.Get()
	if err != nil {
		return nil, err
	}

	if req.RetentionDays != nil {
		settings.RetentionDays = *req.RetentionDays
	}
	if req.AutoCleanEnabled != nil {
		settings.AutoCleanEnabled = *req.AutoCleanEnabled
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}

	if err := s.repo.Save(settings); err != nil {
		return nil, err
	}

	return settings, nil
}
