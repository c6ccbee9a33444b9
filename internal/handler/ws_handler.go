package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/middleware"
	"github.com/priyanshuguptaiit99/pronetwork/internal/service"
)

// WSHandler wires the realtime websocket upgrade endpoint. Identity is
// established in-band by the register event, so the upgrade itself does
// not require a bearer token.
type WSHandler struct {
	gateway service.GatewayService
	logger  zerolog.Logger
}

// NewWSHandler creates a websocket handler instance.
func NewWSHandler(gateway service.GatewayService, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		gateway: gateway,
		logger:  logger.With().Str("component", "ws_handler").Logger(),
	}
}

// Register binds the websocket route under the provided router group.
func (h *WSHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			ctx := c.UserContext()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
			c.Locals("request_ctx", ctx)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *WSHandler) handleConnection(conn *websocket.Conn) {
	baseCtx, _ := conn.Locals("request_ctx").(context.Context)

	h.logger.Info().Msg("websocket connected")
	h.gateway.ServeConnection(conn, baseCtx)
	h.logger.Info().Msg("websocket disconnected")
}
