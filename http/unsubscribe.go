package http

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

const (
	unsubscribedMessage = "Successfully unsubscribed"
	deletedMessage      = "You have been unsubscribed and removed from our mailing list."
)

// unsubscribePageHandler serves the email-link flow: the confirmation is a
// small HTML page, not JSON.
func (s *Server) unsubscribePageHandler(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.SubscriptionService.UnsubscribeByToken(token); err != nil {
		switch visiontech.ErrorCode(err) {
		case visiontech.ErrNotFound:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("<h1>Invalid unsubscribe link</h1>"))
		default:
			hlog.FromRequest(r).Error().Msg(err.Error())
			sentry.CaptureException(err)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<h1>Server error</h1>"))
		}
		return
	}

	_, _ = w.Write([]byte("<h1>Successfully unsubscribed</h1>"))
}

func (s *Server) unsubscribeHandler(w http.ResponseWriter, r *http.Request) error {
	token := mux.Vars(r)["token"]

	if err := s.SubscriptionService.UnsubscribeByToken(token); err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, &visiontech.SubscriptionResponse{
		Message: unsubscribedMessage,
	})

	return nil
}

func (s *Server) deleteSubscriberHandler(w http.ResponseWriter, r *http.Request) error {
	token := mux.Vars(r)["token"]

	if err := s.SubscriptionService.DeleteByToken(token); err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, &visiontech.SubscriptionResponse{
		Message: deletedMessage,
	})

	return nil
}
