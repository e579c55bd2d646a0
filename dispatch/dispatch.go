package dispatch

import (
	"context"
	"encoding/json"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

// Topic is the queue topic dispatch jobs travel on.
const Topic = "newsletter.dispatch"

type job struct {
	NewsletterID int `json:"newsletterId"`
}

// Service delivers one newsletter to every active subscriber. The request
// path only publishes a job; a background worker does the sending, so
// newsletter creation never blocks on, or fails because of, delivery.
type Service struct {
	subscriptions visiontech.SubscriptionService
	newsletters   visiontech.NewsletterService
	mailer        visiontech.Mailer
	queue         visiontech.QueueService
	logger        zerolog.Logger
}

func NewService(
	subscriptions visiontech.SubscriptionService,
	newsletters visiontech.NewsletterService,
	mailer visiontech.Mailer,
	queue visiontech.QueueService,
	logger zerolog.Logger,
) *Service {
	return &Service{
		subscriptions: subscriptions,
		newsletters:   newsletters,
		mailer:        mailer,
		queue:         queue,
		logger:        logger.With().Str("component", "dispatch").Logger(),
	}
}

// Enqueue submits a dispatch job for the given newsletter and returns
// immediately.
func (s *Service) Enqueue(ctx context.Context, newsletterID int) error {
	body, err := json.Marshal(job{NewsletterID: newsletterID})
	if err != nil {
		return errors.Wrap(err, "failed to marshal dispatch job")
	}

	return s.queue.Publish(ctx, Topic, body)
}

// Run consumes dispatch jobs until ctx is cancelled or the queue closes.
func (s *Service) Run(ctx context.Context) error {
	messages, err := s.queue.Consume(ctx, Topic)
	if err != nil {
		return errors.Wrap(err, "failed to consume dispatch queue")
	}

	for body := range messages {
		var j job
		if err := json.Unmarshal(body, &j); err != nil {
			s.logger.Error().Err(err).Msg("dropping malformed dispatch job")
			sentry.CaptureException(err)
			continue
		}

		s.dispatch(j.NewsletterID)
	}

	return nil
}

func (s *Service) dispatch(newsletterID int) {
	n, err := s.newsletters.FindByID(newsletterID)
	if err != nil {
		s.logger.Error().Err(err).Int("newsletter_id", newsletterID).Msg("dispatch: newsletter lookup failed")
		sentry.CaptureException(err)
		return
	}

	results, err := s.Send(n)
	if err != nil {
		s.logger.Error().Err(err).Int("newsletter_id", newsletterID).Msg("dispatch failed")
		sentry.CaptureException(err)
		return
	}

	sent := 0
	for _, r := range results {
		if r.Success {
			sent++
		}
	}

	s.logger.Info().
		Int("newsletter_id", newsletterID).
		Int("recipients", len(results)).
		Int("sent", sent).
		Int("failed", len(results)-sent).
		Msg("dispatch finished")
}

// Send delivers the newsletter to the active-subscriber set as it exists
// right now, one isolated attempt per recipient. It returns exactly one
// result per recipient; a failure for one never short-circuits the rest.
func (s *Service) Send(n *visiontech.Newsletter) ([]visiontech.DeliveryResult, error) {
	subscribers, err := s.subscriptions.FindActive()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active subscribers")
	}

	results := make([]visiontech.DeliveryResult, 0, len(subscribers))
	for i := range subscribers {
		sub := &subscribers[i]

		messageID, err := s.mailer.SendNewsletter(n, sub)
		if err != nil {
			s.logger.Warn().Err(err).Str("email", sub.Email).Msg("delivery failed")
			sentry.CaptureException(err)
			results = append(results, visiontech.DeliveryResult{
				Email: sub.Email,
				Error: err.Error(),
			})
			continue
		}

		results = append(results, visiontech.DeliveryResult{
			Email:     sub.Email,
			Success:   true,
			MessageID: messageID,
		})
	}

	return results, nil
}
