package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-portal-api/internal/dto"
)

func TestAssessRisk(t *testing.T) {
	base := DefaultSecuritySettings()
	require.Equal(t, RiskLow, AssessRisk(base))

	short := base
	short.PasswordMinLength = 6
	require.Equal(t, RiskHigh, AssessRisk(short))

	noComplexity := base
	noComplexity.RequireComplexity = false
	require.Equal(t, RiskHigh, AssessRisk(noComplexity))

	lenientLockout := base
	lenientLockout.MaxFailedAttempts = 11
	require.Equal(t, RiskHigh, AssessRisk(lenientLockout))

	longIdle := base
	longIdle.IdleTimeoutMinutes = 300
	require.Equal(t, RiskHigh, AssessRisk(longIdle))

	noTwoFactor := base
	noTwoFactor.EnforceAdminTwoFactor = false
	require.Equal(t, RiskMedium, AssessRisk(noTwoFactor))
}

func TestSecuritySettingsServiceUpdateIsPartial(t *testing.T) {
	svc := NewSecuritySettingsService(testValidator(), testLogger())

	minLength := 6
	response, err := svc.Update(dto.SecuritySettingsUpdateRequest{PasswordMinLength: &minLength})
	require.NoError(t, err)
	require.Equal(t, 6, response.PasswordMinLength)
	require.Equal(t, RiskHigh, response.RiskLevel)

	defaults := DefaultSecuritySettings()
	require.Equal(t, defaults.MaxFailedAttempts, response.MaxFailedAttempts)
	require.Equal(t, defaults.IdleTimeoutMinutes, response.IdleTimeoutMinutes)

	restored := 12
	response, err = svc.Update(dto.SecuritySettingsUpdateRequest{PasswordMinLength: &restored})
	require.NoError(t, err)
	require.Equal(t, RiskLow, response.RiskLevel)
}

func TestSecuritySettingsServiceRejectsOutOfRange(t *testing.T) {
	svc := NewSecuritySettingsService(testValidator(), testLogger())

	tooShort := 1
	_, err := svc.Update(dto.SecuritySettingsUpdateRequest{PasswordMinLength: &tooShort})
	require.Error(t, err)
}
