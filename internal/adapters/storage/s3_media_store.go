package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/vidtube/vidtube_backend/internal/platform/config"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
)

// S3MediaStore implements the MediaStore port backed by an S3-compatible
// service. Objects are keyed by bare public id (no extension), so a stored
// asset's public id is recoverable from its URL as basename-without-extension.
type S3MediaStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
	region   string
}

// NewS3MediaStore configures an uploader targeting the provided object store.
func NewS3MediaStore(ctx context.Context, cfg config.MediaStoreConfig) (*S3MediaStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 media store: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if strings.TrimSpace(cfg.Endpoint) != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					URL:           cfg.Endpoint,
					SigningRegion: cfg.Region,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &S3MediaStore{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		region:   cfg.Region,
	}, nil
}

var _ portssvc.MediaStore = (*S3MediaStore)(nil)

// Upload stores the file at localPath in the configured bucket under a fresh
// public id and returns the asset's public URL. The local temp file is removed
// after the attempt, whether or not the upload succeeded.
func (s *S3MediaStore) Upload(ctx context.Context, localPath string) (*portssvc.MediaUploadResult, error) {
	if localPath == "" {
		return nil, fmt.Errorf("s3 media store: empty local path")
	}
	defer os.Remove(localPath)

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("s3 media store open %s: %w", localPath, err)
	}
	defer f.Close()

	publicID := uuid.NewString()
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(publicID),
		Body:        f,
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 media store upload %s: %w", publicID, err)
	}

	return &portssvc.MediaUploadResult{
		URL:      s.publicURL(publicID),
		PublicID: publicID,
	}, nil
}

// Delete removes a previously stored asset by its public id.
func (s *S3MediaStore) Delete(ctx context.Context, publicID string) error {
	key := strings.TrimLeft(publicID, "/")
	if key == "" {
		return fmt.Errorf("s3 media store: empty public id")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 media store delete %s: %w", key, err)
	}
	return nil
}

func (s *S3MediaStore) publicURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
