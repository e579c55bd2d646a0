package http

import (
	"io"
	"net/http"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

const maxUploadSize = 10 << 20 // 10 MiB

// uploadHandler accepts a multipart image and returns its hosted URL.
func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return &visiontech.Error{
			Code:    visiontech.ErrInvalid,
			Message: "No file uploaded",
			Op:      "upload",
			Err:     err,
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return &visiontech.Error{
			Code:    visiontech.ErrInvalid,
			Message: "No file uploaded",
			Op:      "upload",
			Err:     err,
		}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return &visiontech.Error{
			Code:    visiontech.ErrInternal,
			Message: "Upload failed",
			Op:      "upload",
			Err:     err,
		}
	}

	url, err := s.ImageStore.Upload(r.Context(), header.Filename, data)
	if err != nil {
		return &visiontech.Error{
			Code:    visiontech.ErrInternal,
			Message: "Upload failed",
			Op:      "upload",
			Err:     err,
		}
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"url": url})

	return nil
}
