package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/dto"
	"github.com/priyanshuguptaiit99/pronetwork/internal/service"
	"github.com/priyanshuguptaiit99/pronetwork/internal/utils"
)

// UserHandler wires directory, profile, connection and analytics routes.
type UserHandler struct {
	service   service.UserService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserHandler creates a user handler instance.
func NewUserHandler(service service.UserService, validate *validator.Validate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register binds user routes under the provided router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("/users", h.list)
	router.Get("/search", h.search)
	router.Get("/profile/:userId", h.profile)
	router.Put("/profile", h.updateProfile)
	router.Post("/connections/:userId", h.connect)
	router.Get("/analytics", h.analytics)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(requestContext(c), userIDFromContext(c))
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.SendSuccess(c, "users", users)
}

func (h *UserHandler) search(c *fiber.Ctx) error {
	users, err := h.service.Search(requestContext(c), c.Query("q"))
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.SendSuccess(c, "search results", users)
}

func (h *UserHandler) profile(c *fiber.Ctx) error {
	userID, err := parseParamUint(c, "userId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	profile, err := h.service.Profile(requestContext(c), userID)
	if err != nil {
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	}
	return utils.SendSuccess(c, "profile", profile)
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
	}

	user, err := h.service.UpdateProfile(requestContext(c), userIDFromContext(c), payload)
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.SendSuccess(c, "profile updated", user)
}

func (h *UserHandler) connect(c *fiber.Ctx) error {
	targetID, err := parseParamUint(c, "userId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.service.Connect(requestContext(c), userIDFromContext(c), targetID); err != nil {
		if errors.Is(err, service.ErrSelfConnection) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.SendSuccess(c, "connected", nil)
}

func (h *UserHandler) analytics(c *fiber.Ctx) error {
	analytics, err := h.service.Analytics(requestContext(c), userIDFromContext(c))
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.SendSuccess(c, "analytics", analytics)
}
