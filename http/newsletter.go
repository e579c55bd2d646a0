package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

var dataURLPrefix = regexp.MustCompile(`^data:image/[a-z]+;base64,`)

func (s *Server) listNewslettersHandler(w http.ResponseWriter, r *http.Request) error {
	newsletters, err := s.NewsletterService.Find()
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, newsletters)

	return nil
}

func (s *Server) createNewsletterHandler(w http.ResponseWriter, r *http.Request) error {
	var req visiontech.NewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &visiontech.Error{
			Code:    visiontech.ErrInvalid,
			Message: "Invalid request body",
			Op:      "createNewsletter",
			Err:     err,
		}
	}

	if req.Title == "" {
		return &visiontech.Error{
			Code:    visiontech.ErrInvalid,
			Message: "Title is required",
			Op:      "createNewsletter",
		}
	}

	n := &visiontech.Newsletter{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Author:      req.Author,
		ImageURL:    req.ImageURL,
	}

	if err := s.NewsletterService.Create(n); err != nil {
		return err
	}

	// Dispatch is fire-and-forget: a queue failure is reported, never
	// propagated to the creating caller.
	if err := s.Dispatcher.Enqueue(r.Context(), n.ID); err != nil {
		hlog.FromRequest(r).Error().Err(err).Int("newsletter_id", n.ID).Msg("failed to enqueue dispatch")
	}

	writeJSONResponse(w, http.StatusCreated, n)

	return nil
}

func (s *Server) getNewsletterHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := newsletterID(r)
	if err != nil {
		return err
	}

	n, err := s.NewsletterService.FindByID(id)
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, n)

	return nil
}

func (s *Server) updateNewsletterHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := newsletterID(r)
	if err != nil {
		return err
	}

	var req visiontech.UpdateNewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &visiontech.Error{
			Code:    visiontech.ErrInvalid,
			Message: "Invalid request body",
			Op:      "updateNewsletter",
			Err:     err,
		}
	}

	// A non-URL image payload is a base64 upload to be hosted externally;
	// the resulting URL replaces imageUrl.
	if req.Image != "" && !strings.HasPrefix(req.Image, "http") {
		data, err := base64.StdEncoding.DecodeString(dataURLPrefix.ReplaceAllString(req.Image, ""))
		if err != nil {
			return &visiontech.Error{
				Code:    visiontech.ErrInvalid,
				Message: "Invalid image payload",
				Op:      "updateNewsletter",
				Err:     err,
			}
		}

		url, err := s.ImageStore.Upload(r.Context(), fmt.Sprintf("newsletter-%d", id), data)
		if err != nil {
			return &visiontech.Error{
				Code:    visiontech.ErrInternal,
				Message: "Image upload failed",
				Op:      "updateNewsletter",
				Err:     err,
			}
		}
		req.ImageURL = &url
	}

	updated, err := s.NewsletterService.Update(id, &req.NewsletterUpdate)
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, updated)

	return nil
}

func (s *Server) deleteNewsletterHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := newsletterID(r)
	if err != nil {
		return err
	}

	if err := s.NewsletterService.Delete(id); err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Deleted"})

	return nil
}

func newsletterID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, &visiontech.Error{
			Code:    visiontech.ErrNotFound,
			Message: "Not found",
			Op:      "newsletterID",
			Err:     err,
		}
	}

	return id, nil
}
