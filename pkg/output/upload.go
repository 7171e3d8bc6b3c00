package output

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/df07/go-whitted-raytracer/pkg/config"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 10 * time.Second

// Uploader stores rendered images in an S3 compatible bucket
type Uploader struct {
	client *s3.S3
	bucket string
}

// NewUploader creates an uploader from the S3 settings in cfg
func NewUploader(cfg *config.Config) (*Uploader, error) {
	if !cfg.UploadEnabled() {
		return nil, fmt.Errorf("S3 upload requires S3_BUCKET and S3_REGION")
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Region:           aws.String(cfg.S3Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.S3Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.S3Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &Uploader{client: s3.New(sess), bucket: cfg.S3Bucket}, nil
}

// RenderKey returns the object key for a render
func RenderKey(sceneName, renderID string) string {
	return path.Join("renders", sceneName, renderID+".png")
}

// Upload stores a PNG under key
func (u *Uploader) Upload(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to s3://%s (%d bytes)", key, u.bucket, size)
	return nil
}
