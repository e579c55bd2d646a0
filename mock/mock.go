package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

type SubscriptionService struct {
	mock.Mock
}

func (m *SubscriptionService) Subscribe(email, name string) (*visiontech.Subscriber, bool, error) {
	args := m.Called(email, name)
	sub, _ := args.Get(0).(*visiontech.Subscriber)
	return sub, args.Bool(1), args.Error(2)
}

func (m *SubscriptionService) FindAll() ([]visiontech.Subscriber, error) {
	args := m.Called()
	subs, _ := args.Get(0).([]visiontech.Subscriber)
	return subs, args.Error(1)
}

func (m *SubscriptionService) FindActive() ([]visiontech.Subscriber, error) {
	args := m.Called()
	subs, _ := args.Get(0).([]visiontech.Subscriber)
	return subs, args.Error(1)
}

func (m *SubscriptionService) FindByToken(token string) (*visiontech.Subscriber, error) {
	args := m.Called(token)
	sub, _ := args.Get(0).(*visiontech.Subscriber)
	return sub, args.Error(1)
}

func (m *SubscriptionService) UnsubscribeByToken(token string) error {
	return m.Called(token).Error(0)
}

func (m *SubscriptionService) DeleteByToken(token string) error {
	return m.Called(token).Error(0)
}

func (m *SubscriptionService) Stats() (*visiontech.SubscriberStats, error) {
	args := m.Called()
	stats, _ := args.Get(0).(*visiontech.SubscriberStats)
	return stats, args.Error(1)
}

type NewsletterService struct {
	mock.Mock
}

func (m *NewsletterService) Create(n *visiontech.Newsletter) error {
	return m.Called(n).Error(0)
}

func (m *NewsletterService) Find() ([]visiontech.Newsletter, error) {
	args := m.Called()
	ns, _ := args.Get(0).([]visiontech.Newsletter)
	return ns, args.Error(1)
}

func (m *NewsletterService) FindByID(id int) (*visiontech.Newsletter, error) {
	args := m.Called(id)
	n, _ := args.Get(0).(*visiontech.Newsletter)
	return n, args.Error(1)
}

func (m *NewsletterService) Update(id int, upd *visiontech.NewsletterUpdate) (*visiontech.Newsletter, error) {
	args := m.Called(id, upd)
	n, _ := args.Get(0).(*visiontech.Newsletter)
	return n, args.Error(1)
}

func (m *NewsletterService) Delete(id int) error {
	return m.Called(id).Error(0)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendNewsletter(n *visiontech.Newsletter, sub *visiontech.Subscriber) (string, error) {
	args := m.Called(n, sub)
	return args.String(0), args.Error(1)
}

func (m *Mailer) SendWelcomeEmail(sub *visiontech.Subscriber) error {
	return m.Called(sub).Error(0)
}

type ImageStore struct {
	mock.Mock
}

func (m *ImageStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(filename, data)
	return args.String(0), args.Error(1)
}

type Dispatcher struct {
	mock.Mock
}

func (m *Dispatcher) Enqueue(ctx context.Context, newsletterID int) error {
	return m.Called(newsletterID).Error(0)
}
