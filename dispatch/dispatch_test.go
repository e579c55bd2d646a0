package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
	"github.com/leadwithvicky/visiontech-blogs/mock"
)

type fakeMailer struct {
	mu       sync.Mutex
	failFor  map[string]bool
	sent     []string
	notifyCh chan string
}

func (f *fakeMailer) SendNewsletter(n *visiontech.Newsletter, sub *visiontech.Subscriber) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.notifyCh != nil {
		defer func() { f.notifyCh <- sub.Email }()
	}

	if f.failFor[sub.Email] {
		return "", errors.New("connection refused")
	}

	f.sent = append(f.sent, sub.Email)
	return "<message-id@test>", nil
}

func (f *fakeMailer) SendWelcomeEmail(sub *visiontech.Subscriber) error {
	return nil
}

func activeSubscribers(emails ...string) []visiontech.Subscriber {
	subs := make([]visiontech.Subscriber, 0, len(emails))
	for _, email := range emails {
		subs = append(subs, visiontech.Subscriber{
			Email:            email,
			Status:           visiontech.StatusActive,
			UnsubscribeToken: "token-" + email,
		})
	}
	return subs
}

func TestSendOneResultPerRecipient(t *testing.T) {
	subscriptions := new(mock.SubscriptionService)
	subscriptions.On("FindActive").Return(activeSubscribers("a@x.com", "b@x.com", "c@x.com"), nil)

	mailer := &fakeMailer{failFor: map[string]bool{"b@x.com": true}}

	s := NewService(subscriptions, new(mock.NewsletterService), mailer, NewMemQueue(), zerolog.Nop())

	results, err := s.Send(&visiontech.Newsletter{ID: 1, Title: "Issue 1"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	byEmail := make(map[string]visiontech.DeliveryResult)
	for _, r := range results {
		byEmail[r.Email] = r
	}
	require.Len(t, byEmail, 3)

	assert.True(t, byEmail["a@x.com"].Success)
	assert.NotEmpty(t, byEmail["a@x.com"].MessageID)
	assert.True(t, byEmail["c@x.com"].Success)

	// One failed recipient never short-circuits the rest.
	assert.False(t, byEmail["b@x.com"].Success)
	assert.Contains(t, byEmail["b@x.com"].Error, "connection refused")
}

func TestSendAllFailWhenTransportUnconfigured(t *testing.T) {
	subscriptions := new(mock.SubscriptionService)
	subscriptions.On("FindActive").Return(activeSubscribers("a@x.com", "b@x.com"), nil)

	mailer := &fakeMailer{failFor: map[string]bool{"a@x.com": true, "b@x.com": true}}

	s := NewService(subscriptions, new(mock.NewsletterService), mailer, NewMemQueue(), zerolog.Nop())

	results, err := s.Send(&visiontech.Newsletter{ID: 1, Title: "Issue 1"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.NotEmpty(t, r.Error)
	}
}

func TestSendNoActiveSubscribers(t *testing.T) {
	subscriptions := new(mock.SubscriptionService)
	subscriptions.On("FindActive").Return([]visiontech.Subscriber{}, nil)

	s := NewService(subscriptions, new(mock.NewsletterService), &fakeMailer{}, NewMemQueue(), zerolog.Nop())

	results, err := s.Send(&visiontech.Newsletter{ID: 1, Title: "Issue 1"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEnqueueRunRoundTrip(t *testing.T) {
	n := &visiontech.Newsletter{ID: 7, Title: "Issue 7"}

	subscriptions := new(mock.SubscriptionService)
	subscriptions.On("FindActive").Return(activeSubscribers("a@x.com"), nil)

	newsletters := new(mock.NewsletterService)
	newsletters.On("FindByID", 7).Return(n, nil)

	mailer := &fakeMailer{notifyCh: make(chan string, 1)}

	s := NewService(subscriptions, newsletters, mailer, NewMemQueue(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = s.Run(ctx)
	}()

	require.NoError(t, s.Enqueue(ctx, 7))

	select {
	case email := <-mailer.notifyCh:
		assert.Equal(t, "a@x.com", email)
	case <-time.After(3 * time.Second):
		t.Fatal("dispatch worker did not deliver the job")
	}
}

func TestMemQueue(t *testing.T) {
	q := NewMemQueue()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, q.Publish(ctx, "t", []byte("one")))

	messages, err := q.Consume(ctx, "t")
	require.NoError(t, err)

	select {
	case body := <-messages:
		assert.Equal(t, []byte("one"), body)
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
}
