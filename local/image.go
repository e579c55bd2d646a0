package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ImageStore writes uploaded images to local disk, served under baseURL.
// It is the fallback when no bucket is configured.
type ImageStore struct {
	dir     string
	baseURL string
}

func NewImageStore(dir, baseURL string) *ImageStore {
	return &ImageStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload stores the image under a timestamped name and returns its URL.
func (st *ImageStore) Upload(_ context.Context, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create uploads dir")
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	name := fmt.Sprintf("%s-%d%s", base, time.Now().UnixMilli(), ext)

	if err := os.WriteFile(filepath.Join(st.dir, name), data, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write upload")
	}

	return fmt.Sprintf("%s/%s", st.baseURL, name), nil
}
