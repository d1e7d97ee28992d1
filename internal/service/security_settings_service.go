package service

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/enrollment-portal-api/internal/dto"
)

// Derived risk labels for the security settings panel.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// SecuritySettings holds the in-process security configuration. Nothing is
// persisted; the panel is deliberately local state.
type SecuritySettings struct {
	PasswordMinLength     int
	RequireComplexity     bool
	MaxFailedAttempts     int
	LockoutMinutes        int
	IdleTimeoutMinutes    int
	AlertThreshold        int
	EnforceAdminTwoFactor bool
}

// DefaultSecuritySettings returns the baseline configuration.
func DefaultSecuritySettings() SecuritySettings {
	return SecuritySettings{
		PasswordMinLength:     12,
		RequireComplexity:     true,
		MaxFailedAttempts:     5,
		LockoutMinutes:        15,
		IdleTimeoutMinutes:    60,
		AlertThreshold:        3,
		EnforceAdminTwoFactor: true,
	}
}

// SecuritySettingsService manages the in-memory security configuration and
// its derived risk label.
type SecuritySettingsService interface {
	Get() dto.SecuritySettingsResponse
	Update(payload dto.SecuritySettingsUpdateRequest) (dto.SecuritySettingsResponse, error)
}

type securitySettingsService struct {
	mu        sync.Mutex
	settings  SecuritySettings
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSecuritySettingsService constructs the security settings service.
func NewSecuritySettingsService(validate *validator.Validate, logger zerolog.Logger) SecuritySettingsService {
	return &securitySettingsService{
		settings:  DefaultSecuritySettings(),
		validator: validate,
		logger:    logger.With().Str("component", "security_settings_service").Logger(),
	}
}

func (s *securitySettingsService) Get() dto.SecuritySettingsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return newSecuritySettingsResponse(s.settings)
}

func (s *securitySettingsService) Update(payload dto.SecuritySettingsUpdateRequest) (dto.SecuritySettingsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SecuritySettingsResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if payload.PasswordMinLength != nil {
		s.settings.PasswordMinLength = *payload.PasswordMinLength
	}
	if payload.RequireComplexity != nil {
		s.settings.RequireComplexity = *payload.RequireComplexity
	}
	if payload.MaxFailedAttempts != nil {
		s.settings.MaxFailedAttempts = *payload.MaxFailedAttempts
	}
	if payload.LockoutMinutes != nil {
		s.settings.LockoutMinutes = *payload.LockoutMinutes
	}
	if payload.IdleTimeoutMinutes != nil {
		s.settings.IdleTimeoutMinutes = *payload.IdleTimeoutMinutes
	}
	if payload.AlertThreshold != nil {
		s.settings.AlertThreshold = *payload.AlertThreshold
	}
	if payload.EnforceAdminTwoFactor != nil {
		s.settings.EnforceAdminTwoFactor = *payload.EnforceAdminTwoFactor
	}

	s.logger.Info().Str("risk_level", AssessRisk(s.settings)).Msg("security settings updated")

	return newSecuritySettingsResponse(s.settings), nil
}

// AssessRisk derives the risk label from threshold comparisons.
func AssessRisk(settings SecuritySettings) string {
	switch {
	case settings.PasswordMinLength < 8,
		!settings.RequireComplexity,
		settings.MaxFailedAttempts > 10,
		settings.IdleTimeoutMinutes > 240:
		return RiskHigh
	case !settings.EnforceAdminTwoFactor:
		return RiskMedium
	default:
		return RiskLow
	}
}

func newSecuritySettingsResponse(settings SecuritySettings) dto.SecuritySettingsResponse {
	return dto.SecuritySettingsResponse{
		PasswordMinLength:     settings.PasswordMinLength,
		RequireComplexity:     settings.RequireComplexity,
		MaxFailedAttempts:     settings.MaxFailedAttempts,
		LockoutMinutes:        settings.LockoutMinutes,
		IdleTimeoutMinutes:    settings.IdleTimeoutMinutes,
		AlertThreshold:        settings.AlertThreshold,
		EnforceAdminTwoFactor: settings.EnforceAdminTwoFactor,
		RiskLevel:             AssessRisk(settings),
	}
}
