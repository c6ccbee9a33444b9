package service

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/observability"
	"github.com/priyanshuguptaiit99/pronetwork/internal/realtime"
)

const gatewaySendBufferSize = 32

// GatewayService owns the websocket side of the realtime protocol: it
// runs one reader per connection through the presence state machine and
// executes the side effects each transition requests.
type GatewayService interface {
	ServeConnection(conn *websocket.Conn, baseCtx context.Context)
	Shutdown()
}

type gatewayService struct {
	registry *realtime.Registry
	router   *realtime.Router
	typing   *realtime.TypingTracker
	messages MessageService
	statuses StatusService
	logger   zerolog.Logger
}

// NewGatewayService constructs the websocket gateway.
func NewGatewayService(registry *realtime.Registry, router *realtime.Router, messages MessageService, statuses StatusService, typingIdleTTL time.Duration, logger zerolog.Logger) GatewayService {
	s := &gatewayService{
		registry: registry,
		router:   router,
		messages: messages,
		statuses: statuses,
		logger:   logger.With().Str("component", "gateway_service").Logger(),
	}
	s.typing = realtime.NewTypingTracker(typingIdleTTL, s.forwardTyping)
	return s
}

func (s *gatewayService) Shutdown() {
	s.typing.Stop()
}

func (s *gatewayService) ServeConnection(conn *websocket.Conn, baseCtx context.Context) {
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	client := &gatewayClient{
		conn:   conn,
		send:   make(chan realtime.Event, gatewaySendBufferSize),
		closed: make(chan struct{}),
		logger: s.logger,
	}

	observability.ConnectionsActive().Inc()
	defer observability.ConnectionsActive().Dec()

	go client.writer()
	s.reader(baseCtx, client)
}

func (s *gatewayService) reader(ctx context.Context, client *gatewayClient) {
	defer client.close()

	sess := realtime.Session{State: realtime.StateUnregistered}

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			s.logger.Debug().Err(err).Msg("gateway read loop ended")
			break
		}

		var actions []realtime.Action
		sess, actions = realtime.Step(sess, raw)
		s.apply(ctx, client, actions)
	}

	_, actions := realtime.Close(sess)
	s.apply(ctx, client, actions)
}

func (s *gatewayService) apply(ctx context.Context, client *gatewayClient, actions []realtime.Action) {
	for _, action := range actions {
		switch action.Kind {
		case realtime.ActionRegister:
			s.registry.Register(action.UserID, client)

		case realtime.ActionAckConnected:
			client.Send(realtime.Event{
				Type: realtime.EventConnected,
				Data: realtime.ConnectedPayload{UserID: action.UserID},
			})

		case realtime.ActionStoreMessage:
			if _, err := s.messages.Send(ctx, action.Message.From, action.Message.To, action.Message.Text); err != nil {
				s.logger.Warn().Err(err).Msg("failed to persist inbound message, delivery aborted")
			}

		case realtime.ActionStoreStatus:
			if _, err := s.statuses.Publish(ctx, action.Status.UserID, action.Status.Text); err != nil {
				s.logger.Warn().Err(err).Msg("failed to persist inbound status, broadcast aborted")
			}

		case realtime.ActionForwardTyping:
			s.typing.Signal(action.Typing)

		case realtime.ActionUnregister:
			s.registry.Unregister(action.UserID, client)
		}
	}
}

func (s *gatewayService) forwardTyping(typing realtime.TypingPayload) {
	s.router.Send(context.Background(), realtime.Event{
		Type: realtime.EventUserTyping,
		Data: realtime.UserTypingPayload{From: typing.From, IsTyping: typing.IsTyping},
	}, typing.To)
}

// gatewayClient adapts one websocket connection into a realtime.Channel.
// Writes are funneled through a single buffered channel consumed by the
// writer goroutine, so frames for one target stay FIFO and a slow client
// never blocks a sender.
type gatewayClient struct {
	conn   *websocket.Conn
	send   chan realtime.Event
	closed chan struct{}
	once   sync.Once
	logger zerolog.Logger
}

// Send enqueues the event without blocking. Returns false when the frame
// was dropped because the client is closed or its buffer is full.
func (c *gatewayClient) Send(event realtime.Event) bool {
	select {
	case <-c.closed:
		return false
	default:
	}

	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

func (c *gatewayClient) writer() {
	defer c.close()

	for {
		select {
		case event := <-c.send:
			if err := c.conn.WriteJSON(event); err != nil {
				c.logger.Debug().Err(err).Msg("gateway write loop terminated")
				return
			}
		case <-time.After(30 * time.Second):
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				c.logger.Debug().Err(err).Msg("gateway ping failed")
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *gatewayClient) close() {
	c.once.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}
