package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/enrollment-portal-api/internal/dto"
	"github.com/noah-isme/enrollment-portal-api/internal/service"
	"github.com/noah-isme/enrollment-portal-api/internal/utils"
)

// ProfileHandler exposes the student profile screen endpoints.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register attaches profile routes to the router group.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Get("", h.show)
	router.Put("", h.update)
}

func (h *ProfileHandler) show(c *fiber.Ctx) error {
	identity, ok := identityFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	response, err := h.service.Load(c.Context(), identity)
	if err != nil {
		if errors.Is(err, service.ErrEnrollmentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Uint("user_id", identity.UserID).Msg("failed to load profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", response)
}

func (h *ProfileHandler) update(c *fiber.Ctx) error {
	identity, ok := identityFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Save(c.Context(), identity, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoLoadedRecord):
			return utils.SendError(c, fiber.StatusPreconditionFailed, err.Error())
		case errors.Is(err, service.ErrEnrollmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("user_id", identity.UserID).Msg("failed to save profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save profile")
	}

	return utils.SendSuccess(c, "profile saved", response)
}

func identityFromContext(c *fiber.Ctx) (service.ProfileIdentity, bool) {
	userID := userIDFromContext(c)
	if userID == 0 {
		return service.ProfileIdentity{}, false
	}

	return service.ProfileIdentity{
		UserID:     userID,
		LoginEmail: userEmailFromContext(c),
		ClientIP:   c.IP(),
	}, true
}
