package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/priyanshuguptaiit99/pronetwork/internal/dto"
	"github.com/priyanshuguptaiit99/pronetwork/internal/handler"
)

type mockMessageService struct {
	historyUserID  uint
	historyOtherID uint
	history        []dto.MessageResponse
	historyErr     error

	conversationsUserID uint
	conversations       []dto.ConversationResponse
	conversationsErr    error
}

func (m *mockMessageService) Send(_ context.Context, _, _ uint, _ string) (dto.MessageResponse, error) {
	return dto.MessageResponse{}, nil
}

func (m *mockMessageService) History(_ context.Context, userID, otherID uint) ([]dto.MessageResponse, error) {
	m.historyUserID = userID
	m.historyOtherID = otherID
	return m.history, m.historyErr
}

func (m *mockMessageService) Conversations(_ context.Context, userID uint) ([]dto.ConversationResponse, error) {
	m.conversationsUserID = userID
	return m.conversations, m.conversationsErr
}

func newMessageTestApp(svc *mockMessageService, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})

	h := handler.NewMessageHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/v1"))
	return app
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, resp io.Reader) apiEnvelope {
	t.Helper()

	var envelope apiEnvelope
	require.NoError(t, json.NewDecoder(resp).Decode(&envelope))
	return envelope
}

func TestMessageHistoryEndpoint(t *testing.T) {
	svc := &mockMessageService{
		history: []dto.MessageResponse{
			{ID: 1, Text: "hello", CreatedAt: time.Now()},
		},
	}
	app := newMessageTestApp(svc, 7)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/messages/9", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.EqualValues(t, 7, svc.historyUserID, "caller identity comes from the token context")
	require.EqualValues(t, 9, svc.historyOtherID)

	envelope := decodeEnvelope(t, resp.Body)
	require.True(t, envelope.Success)

	var messages []dto.MessageResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &messages))
	require.Len(t, messages, 1)
	require.Equal(t, "hello", messages[0].Text)
}

func TestMessageHistoryInvalidUserID(t *testing.T) {
	app := newMessageTestApp(&mockMessageService{}, 7)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/messages/not-a-number", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp.Body)
	require.False(t, envelope.Success)
}

func TestConversationsEndpoint(t *testing.T) {
	svc := &mockMessageService{
		conversations: []dto.ConversationResponse{
			{LastMessage: "see you tomorrow", Unread: true},
		},
	}
	app := newMessageTestApp(svc, 7)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/conversations", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.EqualValues(t, 7, svc.conversationsUserID)

	envelope := decodeEnvelope(t, resp.Body)
	require.True(t, envelope.Success)

	var conversations []dto.ConversationResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &conversations))
	require.Len(t, conversations, 1)
	require.True(t, conversations[0].Unread)
}
