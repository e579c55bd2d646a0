package http

import (
	"encoding/json"
	"net/http"
	"strings"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// loginHandler exchanges the fixed admin credential pair for a bearer token.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &visiontech.Error{
			Code:    visiontech.ErrInvalid,
			Message: "Invalid request body",
			Op:      "login",
			Err:     err,
		}
	}

	if req.Email != s.AdminEmail || req.Password != s.AdminPassword {
		return &visiontech.Error{
			Code:    visiontech.ErrUnauthorized,
			Message: "Invalid credentials",
			Op:      "login",
		}
	}

	token, err := s.TokenService.Issue(req.Email)
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, &loginResponse{Token: token})

	return nil
}

// requireAuth gates a handler behind bearer-token verification.
func (s *Server) requireAuth(fn appHandler) appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return &visiontech.Error{
				Code:    visiontech.ErrUnauthorized,
				Message: "No token provided",
				Op:      "requireAuth",
			}
		}

		if _, err := s.TokenService.Verify(strings.TrimPrefix(header, "Bearer ")); err != nil {
			return err
		}

		return fn(w, r)
	}
}
