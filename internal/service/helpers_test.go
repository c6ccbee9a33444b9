package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/priyanshuguptaiit99/pronetwork/internal/models"
	"github.com/priyanshuguptaiit99/pronetwork/internal/realtime"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func newTestDeliveryRouter(registry *realtime.Registry) *realtime.Router {
	return realtime.NewRouter(registry, nil, "", nil, testLogger())
}

// recorderChannel captures delivered events for assertions.
type recorderChannel struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (c *recorderChannel) Send(event realtime.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return true
}

func (c *recorderChannel) received() []realtime.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]realtime.Event, len(c.events))
	copy(out, c.events)
	return out
}

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[uint]models.User
	nextID uint
}

func newStubUserRepo(users ...models.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[uint]models.User)}
	for _, user := range users {
		if user.ID > repo.nextID {
			repo.nextID = user.ID
		}
		repo.users[user.ID] = user
	}
	return repo
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []uint) (map[uint]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[uint]models.User, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListOthers(_ context.Context, userID uint, limit int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.User
	for _, user := range r.users {
		if user.ID != userID {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubUserRepo) Search(_ context.Context, _ string, _ int) ([]models.User, error) {
	return nil, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = *user
	return nil
}

type stubMessageRepo struct {
	mu        sync.Mutex
	messages  []models.Message
	nextID    uint
	createErr error
}

func (r *stubMessageRepo) Create(_ context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	r.nextID++
	message.ID = r.nextID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *stubMessageRepo) ListForUser(_ context.Context, userID uint) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Message
	for _, message := range r.messages {
		if message.FromID == userID || message.ToID == userID {
			out = append(out, message)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *stubMessageRepo) ListBetween(_ context.Context, userID, otherID uint) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Message
	for _, message := range r.messages {
		if (message.FromID == userID && message.ToID == otherID) ||
			(message.FromID == otherID && message.ToID == userID) {
			out = append(out, message)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, fromID, toID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		if r.messages[i].FromID == fromID && r.messages[i].ToID == toID {
			r.messages[i].Read = true
		}
	}
	return nil
}

func (r *stubMessageRepo) all() []models.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

type stubNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	nextID        uint
}

func (r *stubNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	notification.ID = r.nextID
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID uint, _, _ int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id, userID uint) (models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
			return r.notifications[i], nil
		}
	}
	return models.Notification{}, gorm.ErrRecordNotFound
}

func (r *stubNotificationRepo) MarkAllRead(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
		}
	}
	return nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (r *stubNotificationRepo) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

type stubPostRepo struct {
	mu       sync.Mutex
	posts    map[uint]models.Post
	nextID   uint
	commentN uint
}

func newStubPostRepo(posts ...models.Post) *stubPostRepo {
	repo := &stubPostRepo{posts: make(map[uint]models.Post)}
	for _, post := range posts {
		if post.ID > repo.nextID {
			repo.nextID = post.ID
		}
		repo.posts[post.ID] = post
	}
	return repo
}

func (r *stubPostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = time.Now()
	r.posts[post.ID] = *post
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id uint) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return models.Post{}, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (r *stubPostRepo) List(_ context.Context, _ int) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Post, 0, len(r.posts))
	for _, post := range r.posts {
		out = append(out, post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubPostRepo) ListByUser(_ context.Context, userID uint, limit int) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Post
	for _, post := range r.posts {
		if post.UserID == userID {
			out = append(out, post)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubPostRepo) ListAllByUser(_ context.Context, userID uint) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Post
	for _, post := range r.posts {
		if post.UserID == userID {
			out = append(out, post)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubPostRepo) Save(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts[post.ID] = *post
	return nil
}

func (r *stubPostRepo) AddComment(_ context.Context, comment *models.PostComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[comment.PostID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	r.commentN++
	comment.ID = r.commentN
	comment.CreatedAt = time.Now()
	post.Comments = append(post.Comments, *comment)
	r.posts[post.ID] = post
	return nil
}

func (r *stubPostRepo) CountByUser(_ context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, post := range r.posts {
		if post.UserID == userID {
			count++
		}
	}
	return count, nil
}
