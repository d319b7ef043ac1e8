// Package s3avatars stores profile images in an S3-compatible bucket.
package s3avatars

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"go.uber.org/zap"
)

const (
	defaultRegion = "us-east-1"
	defaultPrefix = "avatars/"
	// MaxObjectBytes bounds reads of a stored avatar.
	MaxObjectBytes = 4 << 20
)

// Config describes the bucket connection.
type Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	Prefix       string
}

// Store implements storage.AvatarStore on S3.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

var _ webstorage.AvatarStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a store from cfg.
func New(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	switch {
	case strings.TrimSpace(cfg.Bucket) == "":
		return nil, errors.New("s3 avatars: bucket is required")
	case cfg.AccessKey == "":
		return nil, errors.New("s3 avatars: access key is required")
	case cfg.SecretKey == "":
		return nil, errors.New("s3 avatars: secret key is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 avatars: load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" {
		if _, err := url.ParseRequestURI(endpoint); err != nil {
			return nil, fmt.Errorf("s3 avatars: invalid endpoint: %w", err)
		}
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	store := &Store{
		client: client,
		bucket: strings.TrimSpace(cfg.Bucket),
		prefix: prefix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// EnsureBucket creates the bucket when it does not exist.
func (s *Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("s3 avatars: head bucket: %w", err)
	}
	s.logger.Info("creating avatar bucket", zap.String("bucket", s.bucket))
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("s3 avatars: create bucket: %w", err)
	}
	return nil
}

// PutAvatar uploads avatar, replacing any previous image.
func (s *Store) PutAvatar(ctx context.Context, avatar webstorage.Avatar) error {
	key, err := s.key(avatar.UserID)
	if err != nil {
		return err
	}
	if len(avatar.Data) == 0 {
		return errors.New("s3 avatars: avatar data is required")
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(avatar.Data),
		ContentLength: aws.Int64(int64(len(avatar.Data))),
		ContentType:   aws.String(avatar.ContentType),
	})
	if err != nil {
		return fmt.Errorf("s3 avatars: put object: %w", err)
	}
	return nil
}

// GetAvatar downloads the avatar for userID.
func (s *Store) GetAvatar(ctx context.Context, userID string) (webstorage.Avatar, bool, error) {
	key, err := s.key(userID)
	if err != nil {
		return webstorage.Avatar{}, false, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			return webstorage.Avatar{}, false, nil
		}
		return webstorage.Avatar{}, false, fmt.Errorf("s3 avatars: get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, MaxObjectBytes))
	if err != nil {
		return webstorage.Avatar{}, false, fmt.Errorf("s3 avatars: read object: %w", err)
	}
	avatar := webstorage.Avatar{
		UserID:      strings.TrimSpace(userID),
		ContentType: aws.ToString(out.ContentType),
		Data:        data,
	}
	if out.LastModified != nil {
		avatar.UpdatedAt = out.LastModified.UTC()
	}
	return avatar, true, nil
}

func (s *Store) key(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.ContainsAny(userID, "/\\") {
		return "", fmt.Errorf("s3 avatars: invalid user id %q", userID)
	}
	return s.prefix + userID, nil
}
