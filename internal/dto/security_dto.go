package dto

// SecuritySettingsResponse serializes the in-memory security configuration
// together with its derived risk label.
type SecuritySettingsResponse struct {
	PasswordMinLength     int    `json:"password_min_length"`
	RequireComplexity     bool   `json:"require_complexity"`
	MaxFailedAttempts     int    `json:"max_failed_attempts"`
	LockoutMinutes        int    `json:"lockout_minutes"`
	IdleTimeoutMinutes    int    `json:"idle_timeout_minutes"`
	AlertThreshold        int    `json:"alert_threshold"`
	EnforceAdminTwoFactor bool   `json:"enforce_admin_two_factor"`
	RiskLevel             string `json:"risk_level"`
}

// SecuritySettingsUpdateRequest captures partial updates to the security
// configuration.
type SecuritySettingsUpdateRequest struct {
	PasswordMinLength     *int  `json:"password_min_length" validate:"omitempty,gte=4,lte=128"`
	RequireComplexity     *bool `json:"require_complexity"`
	MaxFailedAttempts     *int  `json:"max_failed_attempts" validate:"omitempty,gte=1,lte=100"`
	LockoutMinutes        *int  `json:"lockout_minutes" validate:"omitempty,gte=1,lte=1440"`
	IdleTimeoutMinutes    *int  `json:"idle_timeout_minutes" validate:"omitempty,gte=5,lte=1440"`
	AlertThreshold        *int  `json:"alert_threshold" validate:"omitempty,gte=1,lte=100"`
	EnforceAdminTwoFactor *bool `json:"enforce_admin_two_factor"`
}
