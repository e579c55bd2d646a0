package http

import (
	"encoding/json"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/hlog"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

type appHandler func(w http.ResponseWriter, r *http.Request) error

var codeStatus = map[string]int{
	visiontech.ErrInvalid:      http.StatusBadRequest,
	visiontech.ErrUnauthorized: http.StatusUnauthorized,
	visiontech.ErrNotFound:     http.StatusNotFound,
	visiontech.ErrConflict:     http.StatusConflict,
	visiontech.ErrInternal:     http.StatusInternalServerError,
}

// Error adapts an appHandler, mapping a returned error to a status and JSON
// body by its error code.
func (s *Server) Error(fn appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		code := visiontech.ErrorCode(err)
		if code == visiontech.ErrInternal {
			hlog.FromRequest(r).Error().Msg(err.Error())
			sentry.CaptureException(err)
		} else {
			hlog.FromRequest(r).Warn().Msg(err.Error())
		}

		status, ok := codeStatus[code]
		if !ok {
			status = http.StatusInternalServerError
		}

		writeJSONResponse(w, status, map[string]string{
			"message": visiontech.ErrorMessage(err),
		})
	}
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	//nolint:errcheck
	json.NewEncoder(w).Encode(response)
}
