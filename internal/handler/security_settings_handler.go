package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/enrollment-portal-api/internal/dto"
	"github.com/noah-isme/enrollment-portal-api/internal/service"
	"github.com/noah-isme/enrollment-portal-api/internal/utils"
)

// SecuritySettingsHandler exposes the in-memory security settings panel.
type SecuritySettingsHandler struct {
	service service.SecuritySettingsService
	logger  zerolog.Logger
}

// NewSecuritySettingsHandler constructs the handler.
func NewSecuritySettingsHandler(service service.SecuritySettingsService, logger zerolog.Logger) *SecuritySettingsHandler {
	return &SecuritySettingsHandler{
		service: service,
		logger:  logger.With().Str("component", "security_settings_handler").Logger(),
	}
}

// Register attaches security settings routes to the router group.
func (h *SecuritySettingsHandler) Register(router fiber.Router) {
	router.Get("", h.show)
	router.Put("", h.update)
}

func (h *SecuritySettingsHandler) show(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "security settings", h.service.Get())
}

func (h *SecuritySettingsHandler) update(c *fiber.Ctx) error {
	var payload dto.SecuritySettingsUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to update security settings")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update security settings")
	}

	return utils.SendSuccess(c, "security settings saved", response)
}
