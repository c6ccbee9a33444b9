package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/service"
	"github.com/priyanshuguptaiit99/pronetwork/internal/utils"
)

// MessageHandler wires the message history and conversations endpoints.
type MessageHandler struct {
	service service.MessageService
	logger  zerolog.Logger
}

// NewMessageHandler creates a message handler instance.
func NewMessageHandler(service service.MessageService, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		logger:  logger.With().Str("component", "message_handler").Logger(),
	}
}

// Register binds message routes under the provided router group.
func (h *MessageHandler) Register(router fiber.Router) {
	router.Get("/messages/:userId", h.history)
	router.Get("/conversations", h.conversations)
}

func (h *MessageHandler) history(c *fiber.Ctx) error {
	otherID, err := parseParamUint(c, "userId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	messages, err := h.service.History(requestContext(c), userIDFromContext(c), otherID)
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.SendSuccess(c, "messages", messages)
}

func (h *MessageHandler) conversations(c *fiber.Ctx) error {
	conversations, err := h.service.Conversations(requestContext(c), userIDFromContext(c))
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.SendSuccess(c, "conversations", conversations)
}
