package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/priyanshuguptaiit99/pronetwork/internal/observability"
)

// Router pushes serialized events to live channels looked up in the
// registry. Delivery is best-effort and at-most-once: offline targets
// and slow consumers are silently skipped, there is no retry and no
// queue for disconnected users.
//
// When Redis or NATS connections are supplied the router also relays
// every routed event to peer nodes so users connected elsewhere still
// receive it. Both brokers are optional; with neither the router is a
// plain single-node fan-out.
type Router struct {
	registry     *Registry
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	nodeID       string
}

type routedEvent struct {
	Source  string    `json:"source"`
	Event   Event     `json:"event"`
	Targets []uint    `json:"targets,omitempty"`
	All     bool      `json:"all,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

// NewRouter constructs a delivery router over the given registry.
func NewRouter(registry *Registry, redisClient *redis.Client, channelBase string, natsConn *nats.Conn, logger zerolog.Logger) *Router {
	redisChannel := ""
	natsSubject := ""
	if channelBase != "" {
		redisChannel = channelBase + ":events"
		natsSubject = strings.ReplaceAll(channelBase, ":", ".") + ".events"
	}

	return &Router{
		registry:     registry,
		redis:        redisClient,
		redisChannel: redisChannel,
		nats:         natsConn,
		natsSubject:  natsSubject,
		logger:       logger.With().Str("component", "delivery_router").Logger(),
		nodeID:       uuid.NewString(),
	}
}

// Start begins consuming relayed events from the configured brokers.
func (rt *Router) Start(ctx context.Context) {
	if rt.redis != nil && rt.redisChannel != "" {
		go rt.consumeRedis(ctx)
	}
	if rt.nats != nil && rt.natsSubject != "" {
		go rt.consumeNATS(ctx)
	}
}

// Send delivers event to each target that has a live channel and relays
// it to peer nodes.
func (rt *Router) Send(ctx context.Context, event Event, targets ...uint) {
	rt.deliver(event, targets, false)
	rt.relay(ctx, routedEvent{Source: rt.nodeID, Event: event, Targets: targets, SentAt: time.Now().UTC()})
}

// Broadcast delivers event to every registered channel and relays it to
// peer nodes.
func (rt *Router) Broadcast(ctx context.Context, event Event) {
	rt.deliver(event, nil, true)
	rt.relay(ctx, routedEvent{Source: rt.nodeID, Event: event, All: true, SentAt: time.Now().UTC()})
}

func (rt *Router) deliver(event Event, targets []uint, all bool) {
	if all {
		for _, ch := range rt.registry.All() {
			rt.push(ch, event)
		}
		return
	}

	for _, target := range targets {
		ch, ok := rt.registry.Lookup(target)
		if !ok {
			continue
		}
		rt.push(ch, event)
	}
}

func (rt *Router) push(ch Channel, event Event) {
	if ch.Send(event) {
		observability.EventsDelivered().WithLabelValues(event.Type).Inc()
		return
	}
	observability.EventsDropped().WithLabelValues(event.Type).Inc()
	rt.logger.Debug().Str("event_type", event.Type).Msg("dropping event for slow or closed channel")
}

func (rt *Router) relay(ctx context.Context, event routedEvent) {
	if (rt.redis == nil || rt.redisChannel == "") && (rt.nats == nil || rt.natsSubject == "") {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		rt.logger.Warn().Err(err).Msg("failed to marshal routed event")
		return
	}

	if rt.redis != nil && rt.redisChannel != "" {
		if err := rt.redis.Publish(ctx, rt.redisChannel, payload).Err(); err != nil {
			rt.logger.Warn().Err(err).Msg("failed to relay event via redis")
		}
	}

	if rt.nats != nil && rt.natsSubject != "" {
		if err := rt.nats.Publish(rt.natsSubject, payload); err != nil {
			rt.logger.Warn().Err(err).Msg("failed to relay event via nats")
		}
	}
}

func (rt *Router) consumeRedis(ctx context.Context) {
	pubsub := rt.redis.Subscribe(ctx, rt.redisChannel)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			rt.logger.Error().Err(err).Msg("event redis subscription closed")
			return
		}
		rt.handleRelayed([]byte(msg.Payload))
	}
}

func (rt *Router) consumeNATS(ctx context.Context) {
	sub, err := rt.nats.QueueSubscribe(rt.natsSubject, "pronetwork-events", func(msg *nats.Msg) {
		rt.handleRelayed(msg.Data)
	})
	if err != nil {
		rt.logger.Error().Err(err).Msg("failed to subscribe to nats events subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			rt.logger.Warn().Err(err).Msg("failed to drain events nats subscription")
		}
	}()
}

func (rt *Router) handleRelayed(payload []byte) {
	var event routedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		rt.logger.Warn().Err(err).Msg("invalid relayed event payload")
		return
	}

	if event.Source == rt.nodeID {
		return
	}

	rt.deliver(event.Event, event.Targets, event.All)
}
