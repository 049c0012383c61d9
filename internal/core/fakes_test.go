package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"subtrackr-backend-go/internal/db"
	"subtrackr-backend-go/internal/models"
)

// In-memory repository fakes shared by the service tests. They mirror the
// Firestore repositories' observable behavior: db.ErrNotFound for missing
// documents, generated IDs on create, and ordered list results.

type fakeSubscriptionRepo struct {
	subs   map[string]*models.Subscription
	nextID int
	err    error // when set, every call fails with it
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*models.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *models.Subscription) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.nextID++
	id := fmt.Sprintf("sub-%d", r.nextID)
	cp := *sub
	cp.ID = id
	r.subs[id] = &cp
	return id, nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id string) (*models.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	sub, ok := r.subs[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubscriptionRepo) ListByUserID(_ context.Context, userID string, filters db.SubscriptionFilters) ([]*models.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.Subscription
	for _, sub := range r.subs {
		if sub.UserID != userID {
			continue
		}
		if filters.Category != "" && sub.Category != filters.Category {
			continue
		}
		if filters.Status != "" && sub.Status != filters.Status {
			continue
		}
		cp := *sub
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *models.Subscription) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.subs[sub.ID]; !ok {
		return db.ErrNotFound
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.subs[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.subs, id)
	return nil
}

type fakeReminderRepo struct {
	reminders map[string]*models.Reminder
	nextID    int
	updateErr error
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: make(map[string]*models.Reminder)}
}

func (r *fakeReminderRepo) Create(_ context.Context, reminder *models.Reminder) (string, error) {
	r.nextID++
	id := fmt.Sprintf("rem-%d", r.nextID)
	cp := *reminder
	cp.ID = id
	r.reminders[id] = &cp
	return id, nil
}

func (r *fakeReminderRepo) GetByID(_ context.Context, id string) (*models.Reminder, error) {
	reminder, ok := r.reminders[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *reminder
	return &cp, nil
}

func (r *fakeReminderRepo) ListByUserID(_ context.Context, userID string, status models.ReminderStatus) ([]*models.Reminder, error) {
	var out []*models.Reminder
	for _, reminder := range r.reminders {
		if reminder.UserID != userID {
			continue
		}
		if status != "" && reminder.Status != status {
			continue
		}
		cp := *reminder
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out, nil
}

func (r *fakeReminderRepo) Update(_ context.Context, reminder *models.Reminder) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.reminders[reminder.ID]; !ok {
		return db.ErrNotFound
	}
	cp := *reminder
	r.reminders[reminder.ID] = &cp
	return nil
}

func (r *fakeReminderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reminders[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.reminders, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) GetByUID(_ context.Context, uid string) (*models.User, error) {
	user, ok := r.users[uid]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	cp := *user
	r.users[user.UID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.UID]; !ok {
		return db.ErrNotFound
	}
	cp := *user
	r.users[user.UID] = &cp
	return nil
}

// fakeCache records entries and deletions so invalidation can be asserted.
type fakeCache struct {
	entries map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	c.deleted = append(c.deleted, key)
	return nil
}

type sentMail struct {
	Recipient string
	Subject   string
	Body      string
}

// fakeMailer records sends; failTo addresses fail with sendErr.
type fakeMailer struct {
	sent    []sentMail
	sendErr error
	failAll bool
}

func (m *fakeMailer) Send(recipient, subject, body string) error {
	if m.failAll {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

type publishedMessage struct {
	Queue string
	Body  []byte
}

type fakeQueue struct {
	published  []publishedMessage
	publishErr error
}

func (q *fakeQueue) Publish(queueName string, body []byte) error {
	if q.publishErr != nil {
		return q.publishErr
	}
	q.published = append(q.published, publishedMessage{Queue: queueName, Body: body})
	return nil
}

func (q *fakeQueue) Close() error { return nil }
