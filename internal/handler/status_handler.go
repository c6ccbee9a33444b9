package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/service"
	"github.com/priyanshuguptaiit99/pronetwork/internal/utils"
)

// StatusHandler wires the ephemeral status endpoints.
type StatusHandler struct {
	service service.StatusService
	logger  zerolog.Logger
}

// NewStatusHandler creates a status handler instance.
func NewStatusHandler(service service.StatusService, logger zerolog.Logger) *StatusHandler {
	return &StatusHandler{
		service: service,
		logger:  logger.With().Str("component", "status_handler").Logger(),
	}
}

// Register binds status routes under the provided router group.
func (h *StatusHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/:id/view", h.view)
}

func (h *StatusHandler) list(c *fiber.Ctx) error {
	statuses, err := h.service.List(requestContext(c))
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.SendSuccess(c, "statuses", statuses)
}

func (h *StatusHandler) view(c *fiber.Ctx) error {
	statusID, err := parseParamUint(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid status id")
	}

	status, err := h.service.View(requestContext(c), statusID, userIDFromContext(c))
	if err != nil {
		return utils.SendError(c, fiber.StatusNotFound, "status not found")
	}
	return utils.SendSuccess(c, "status viewed", status)
}
