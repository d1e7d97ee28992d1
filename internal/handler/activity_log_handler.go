package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/enrollment-portal-api/internal/dto"
	"github.com/noah-isme/enrollment-portal-api/internal/service"
	"github.com/noah-isme/enrollment-portal-api/internal/utils"
)

// ActivityLogHandler exposes the audit log viewer endpoint.
type ActivityLogHandler struct {
	service service.ActivityLogService
	logger  zerolog.Logger
}

// NewActivityLogHandler constructs the handler.
func NewActivityLogHandler(service service.ActivityLogService, logger zerolog.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_log_handler").Logger(),
	}
}

// Register attaches activity log routes to the router group.
func (h *ActivityLogHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityLogHandler) list(c *fiber.Ctx) error {
	req := dto.ActivityLogListRequest{
		Range:  c.Query("range", dto.ActivityRangeToday),
		Result: c.Query("result", dto.ActivityResultAll),
		Query:  c.Query("q"),
	}

	response, err := h.service.List(c.Context(), userRoleFromContext(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLogAccessForbidden):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to list activity logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load activity logs")
	}

	return utils.SendSuccessWithMeta(c, "activity logs", response, fiber.Map{"limit_applied": true})
}
