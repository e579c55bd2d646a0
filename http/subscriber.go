package http

import (
	"encoding/json"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/hlog"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

const (
	subscribedMessage  = "Successfully subscribed"
	reactivatedMessage = "Subscription reactivated"
)

func (s *Server) subscribeHandler(w http.ResponseWriter, r *http.Request) error {
	var req visiontech.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &visiontech.Error{
			Code:    visiontech.ErrInvalid,
			Message: "Invalid request body",
			Op:      "subscribe",
			Err:     err,
		}
	}

	if req.Email == "" {
		return &visiontech.Error{
			Code:    visiontech.ErrInvalid,
			Message: "Email is required",
			Op:      "subscribe",
		}
	}

	logger := hlog.FromRequest(r)

	sub, reactivated, err := s.SubscriptionService.Subscribe(req.Email, req.Name)
	if err != nil {
		return err
	}

	if reactivated {
		logger.Info().Str("email", sub.Email).Msg("subscription reactivated")
		writeJSONResponse(w, http.StatusOK, &visiontech.SubscriptionResponse{
			Message: reactivatedMessage,
		})
		return nil
	}

	logger.Info().Str("email", sub.Email).Msg("new subscriber")

	// The welcome email is a courtesy; its outcome never surfaces to the
	// subscribe caller.
	go func(sub visiontech.Subscriber) {
		if err := s.Mailer.SendWelcomeEmail(&sub); err != nil {
			sentry.CaptureException(err)
		}
	}(*sub)

	writeJSONResponse(w, http.StatusCreated, &visiontech.SubscriptionResponse{
		Message:    subscribedMessage,
		Subscriber: sub,
	})

	return nil
}

func (s *Server) listSubscribersHandler(w http.ResponseWriter, r *http.Request) error {
	subscribers, err := s.SubscriptionService.FindAll()
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, subscribers)

	return nil
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) error {
	stats, err := s.SubscriptionService.Stats()
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, stats)

	return nil
}
