package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/dto"
	"github.com/priyanshuguptaiit99/pronetwork/internal/service"
	"github.com/priyanshuguptaiit99/pronetwork/internal/utils"
)

// PostHandler wires the feed endpoints.
type PostHandler struct {
	service   service.PostService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPostHandler creates a post handler instance.
func NewPostHandler(service service.PostService, validate *validator.Validate, logger zerolog.Logger) *PostHandler {
	return &PostHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "post_handler").Logger(),
	}
}

// Register binds post routes under the provided router group.
func (h *PostHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/", h.list)
	router.Post("/:id/like", h.like)
	router.Post("/:id/comment", h.comment)
}

func (h *PostHandler) create(c *fiber.Ctx) error {
	var payload dto.PostCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
	}

	post, err := h.service.Create(requestContext(c), userIDFromContext(c), payload.Content)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "post created", post)
}

func (h *PostHandler) list(c *fiber.Ctx) error {
	posts, err := h.service.List(requestContext(c))
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.SendSuccess(c, "posts", posts)
}

func (h *PostHandler) like(c *fiber.Ctx) error {
	postID, err := parseParamUint(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid post id")
	}

	post, err := h.service.ToggleLike(requestContext(c), postID, userIDFromContext(c))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	return utils.SendSuccess(c, "like toggled", post)
}

func (h *PostHandler) comment(c *fiber.Ctx) error {
	postID, err := parseParamUint(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid post id")
	}

	var payload dto.CommentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
	}

	post, err := h.service.Comment(requestContext(c), postID, userIDFromContext(c), payload.Text)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	return utils.SendSuccess(c, "comment added", post)
}
