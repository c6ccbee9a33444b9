package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/priyanshuguptaiit99/pronetwork/internal/dto"
	"github.com/priyanshuguptaiit99/pronetwork/internal/handler"
)

type mockNotificationService struct {
	listLimit  int
	listOffset int
	list       []dto.NotificationResponse
}

func (m *mockNotificationService) Notify(_ context.Context, _ uint, _ string, _ uint, _ *uint, _ string) error {
	return nil
}

func (m *mockNotificationService) List(_ context.Context, _ uint, limit, offset int) ([]dto.NotificationResponse, error) {
	m.listLimit = limit
	m.listOffset = offset
	return m.list, nil
}

func (m *mockNotificationService) MarkRead(_ context.Context, _, _ uint) (dto.NotificationResponse, error) {
	return dto.NotificationResponse{}, nil
}

func (m *mockNotificationService) MarkAllRead(_ context.Context, _ uint) error {
	return nil
}

func (m *mockNotificationService) UnreadCount(_ context.Context, _ uint) (int64, error) {
	return 0, nil
}

func newNotificationTestApp(svc *mockNotificationService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		return c.Next()
	})

	h := handler.NewNotificationHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/v1/notifications"))
	return app
}

func TestNotificationListCarriesPagingMeta(t *testing.T) {
	svc := &mockNotificationService{
		list: []dto.NotificationResponse{{ID: 1, Text: "liked your post"}},
	}
	app := newNotificationTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/notifications/?limit=5&offset=10", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 5, svc.listLimit)
	require.Equal(t, 10, svc.listOffset)

	var envelope struct {
		Success bool `json:"success"`
		Meta    struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
			Count  int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.Equal(t, 5, envelope.Meta.Limit)
	require.Equal(t, 10, envelope.Meta.Offset)
	require.Equal(t, 1, envelope.Meta.Count)
}

func TestNotificationListRejectsBadLimit(t *testing.T) {
	app := newNotificationTestApp(&mockNotificationService{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/notifications/?limit=abc", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
