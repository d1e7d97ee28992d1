package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/enrollment-portal-api/internal/models"
	"github.com/noah-isme/enrollment-portal-api/internal/repository"
)

// AuditEntry captures the details of an auditable event before
// anonymization. Actor and IP are raw here and masked on record.
type AuditEntry struct {
	Actor      string
	IP         string
	Action     string
	EntityType string
	EntityID   *string
	Result     string
	Message    string
	Payload    map[string]interface{}
}

// AuditRecorder persists anonymized audit trail entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

type auditRecorder struct {
	repo   repository.AuditLogRepository
	logger zerolog.Logger
}

// NewAuditRecorder constructs the audit recorder.
func NewAuditRecorder(repo repository.AuditLogRepository, logger zerolog.Logger) AuditRecorder {
	return &auditRecorder{
		repo:   repo,
		logger: logger.With().Str("component", "audit_recorder").Logger(),
	}
}

func (r *auditRecorder) Record(ctx context.Context, entry AuditEntry) error {
	model := models.AuditLog{
		ActorMask:  MaskActor(entry.Actor),
		IPMask:     MaskIP(entry.IP),
		Action:     strings.ToLower(strings.TrimSpace(entry.Action)),
		EntityType: strings.ToLower(strings.TrimSpace(entry.EntityType)),
		EntityID:   entry.EntityID,
		Result:     normalizeResult(entry.Result),
		Message:    strings.TrimSpace(entry.Message),
		Payload:    sanitizePayload(entry.Payload),
	}

	if err := r.repo.Create(ctx, &model); err != nil {
		r.logger.Error().Err(err).Str("action", model.Action).Msg("failed to persist audit entry")
		return err
	}

	return nil
}

// MaskActor anonymizes an actor reference. Email-shaped values keep the
// first rune of the local part and the domain; anything else keeps only the
// first rune.
func MaskActor(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ""
	}

	if at := strings.Index(actor, "@"); at > 0 {
		local := []rune(actor[:at])
		return string(local[0]) + "***" + actor[at:]
	}

	runes := []rune(actor)
	return string(runes[0]) + "***"
}

// MaskIP anonymizes an IPv4 address by blanking the last octet. Values that
// are not dotted quads are masked entirely.
func MaskIP(ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return ""
	}

	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return "***"
	}
	parts[3] = "xxx"
	return strings.Join(parts, ".")
}

func normalizeResult(result string) string {
	switch strings.ToLower(strings.TrimSpace(result)) {
	case models.AuditResultSuccess:
		return models.AuditResultSuccess
	case models.AuditResultWarning:
		return models.AuditResultWarning
	case models.AuditResultFailed:
		return models.AuditResultFailed
	default:
		return models.AuditResultOther
	}
}

func sanitizePayload(payload map[string]interface{}) datatypes.JSONMap {
	sanitized := datatypes.JSONMap{}
	for key, value := range payload {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "email") || strings.Contains(lower, "token") || strings.Contains(lower, "ip") {
			sanitized[key] = "***"
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}
