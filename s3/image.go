package s3

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

// ImageStore hosts uploaded images in an S3 bucket.
type ImageStore struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
}

func NewImageStore(ctx context.Context, cfg *visiontech.Config) (*ImageStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Uploads.S3.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	baseURL := cfg.Uploads.S3.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Uploads.S3.Bucket, cfg.Uploads.S3.Region)
	}

	return &ImageStore{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Uploads.S3.Bucket,
		prefix:  cfg.Uploads.S3.Prefix,
		baseURL: baseURL,
	}, nil
}

// Upload puts the image into the bucket and returns its public URL.
func (st *ImageStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	key := path.Join(st.prefix, filename)

	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to upload %s to s3", key)
	}

	return fmt.Sprintf("%s/%s", st.baseURL, key), nil
}
