package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/enrollment-portal-api/internal/models"
)

// Supported time ranges for activity log queries.
const (
	ActivityRangeToday      = "today"
	ActivityRangeLast7Days  = "last7days"
	ActivityRangeLast30Days = "last30days"
)

// ActivityResultAll is the sentinel meaning "no result filter".
const ActivityResultAll = "all"

// ActivityLogListRequest defines the filters for retrieving audit entries.
type ActivityLogListRequest struct {
	Range  string `json:"range" validate:"required,oneof=today last7days last30days"`
	Result string `json:"result" validate:"required,oneof=all success warning failed"`
	Query  string `json:"query"`
}

// ActivityLogEntryResponse is the display form of one audit entry. Payload
// retains the full anonymized row for the detail view so no second fetch is
// needed.
type ActivityLogEntryResponse struct {
	ID        uint                   `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Actor     string                 `json:"actor"`
	Target    string                 `json:"target"`
	Result    string                 `json:"result"`
	Message   string                 `json:"message"`
	Payload   map[string]interface{} `json:"payload"`
}

// ActivityLogListResponse wraps the capped audit entry list.
type ActivityLogListResponse struct {
	Items []ActivityLogEntryResponse `json:"items"`
	Count int                        `json:"count"`
}

// NewActivityLogEntryResponse converts an audit model into its display form.
func NewActivityLogEntryResponse(entry models.AuditLog) ActivityLogEntryResponse {
	return ActivityLogEntryResponse{
		ID:        entry.ID,
		Timestamp: formatTimestamp(entry.CreatedAt),
		Actor:     actorLabel(entry.ActorMask),
		Target:    targetLabel(entry.EntityType, entry.EntityID),
		Result:    entry.Result,
		Message:   entry.Message,
		Payload:   payloadFromJSON(entry.Payload),
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func actorLabel(mask string) string {
	if strings.TrimSpace(mask) == "" {
		return "unknown"
	}
	return mask
}

func targetLabel(entityType string, entityID *string) string {
	entityType = strings.TrimSpace(entityType)
	id := ""
	if entityID != nil {
		id = strings.TrimSpace(*entityID)
	}

	switch {
	case entityType != "" && id != "":
		return entityType + ":" + id
	case entityType != "":
		return entityType
	case id != "":
		return id
	default:
		return Placeholder
	}
}

func payloadFromJSON(data datatypes.JSONMap) map[string]interface{} {
	if data == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}(data)
}
