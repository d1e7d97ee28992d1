package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/enrollment-portal-api/internal/dto"
	"github.com/noah-isme/enrollment-portal-api/internal/repository"
)

// ErrLogAccessForbidden indicates the caller's role is not allowed to view
// the system-wide audit log.
var ErrLogAccessForbidden = errors.New("insufficient role for activity logs")

// activityLogLimit is a hard cap on returned rows, not a page size.
const activityLogLimit = 300

// ElevatedRoles are the account roles allowed to view system-wide audit
// logs. The same set backs the route-level RBAC guard.
var ElevatedRoles = []string{"admin", "registrar"}

// ActivityLogService retrieves filtered, capped audit entry lists.
type ActivityLogService interface {
	List(ctx context.Context, actorRole string, req dto.ActivityLogListRequest) (dto.ActivityLogListResponse, error)
}

type activityLogService struct {
	repo      repository.AuditLogRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewActivityLogService constructs the activity log service.
func NewActivityLogService(repo repository.AuditLogRepository, validate *validator.Validate, logger zerolog.Logger) ActivityLogService {
	return &activityLogService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "activity_log_service").Logger(),
		now:       time.Now,
	}
}

func (s *activityLogService) List(ctx context.Context, actorRole string, req dto.ActivityLogListRequest) (dto.ActivityLogListResponse, error) {
	// The role gate runs before anything touches the database. The database
	// function enforces the same restriction server side; this check is the
	// fast path.
	if !isElevatedRole(actorRole) {
		return dto.ActivityLogListResponse{}, ErrLogAccessForbidden
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.ActivityLogListResponse{}, err
	}

	since := s.lowerBound(req.Range)

	var query *string
	if trimmed := strings.TrimSpace(req.Query); trimmed != "" {
		query = &trimmed
	}

	filter := repository.AuditLogFilter{
		Since:  &since,
		Result: req.Result,
		Query:  query,
		Limit:  activityLogLimit,
	}

	tracer := otel.Tracer("github.com/noah-isme/enrollment-portal-api/internal/service/activity_log")
	ctx, span := tracer.Start(ctx, "activity_logs.filtered")
	span.SetAttributes(
		attribute.String("activity.range", req.Range),
		attribute.String("activity.result", req.Result),
		attribute.Bool("activity.has_query", query != nil),
		attribute.Int("activity.limit", filter.Limit),
	)
	defer span.End()

	entries, err := s.repo.Filtered(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("range", req.Range).Msg("failed to query activity logs")
		span.RecordError(err)
		span.SetStatus(codes.Error, "activity_logs_query_failed")
		return dto.ActivityLogListResponse{}, err
	}
	span.SetAttributes(attribute.Int("activity.rows", len(entries)))

	items := make([]dto.ActivityLogEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityLogEntryResponse(entry))
	}

	return dto.ActivityLogListResponse{Items: items, Count: len(items)}, nil
}

// lowerBound translates a named time range to an absolute lower bound.
// There is no upper bound; queries always run up to now.
func (s *activityLogService) lowerBound(timeRange string) time.Time {
	now := s.now()
	switch timeRange {
	case dto.ActivityRangeLast7Days:
		return now.AddDate(0, 0, -7)
	case dto.ActivityRangeLast30Days:
		return now.AddDate(0, 0, -30)
	default:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
}

func isElevatedRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, elevated := range ElevatedRoles {
		if role == elevated {
			return true
		}
	}
	return false
}
