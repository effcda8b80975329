package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"github.com/sikhmentors/directory-api/pkg/metrics"
	"go.uber.org/zap"
)

// S3Config configures an S3-compatible bucket
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // empty means AWS
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string // CDN or bucket website in front of the objects
	UsePathStyle    bool
}

// S3Host uploads to any S3-compatible object storage
type S3Host struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Host creates an S3 asset host with static credentials
func NewS3Host(cfg S3Config) (*S3Host, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for the s3 asset host")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token not needed
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	logger.Info("S3 asset host initialized",
		zap.String("bucket", cfg.Bucket),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", cfg.Region),
	)

	return &S3Host{
		client:  s3.New(opts),
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
	}, nil
}

func publicBaseURL(cfg S3Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Name implements AssetHost
func (h *S3Host) Name() string { return ProviderS3 }

// Upload puts the object publicly readable and returns its URL
func (h *S3Host) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	start := time.Now()
	operation := "putObject"

	_, err := h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000"),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(ProviderS3, operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(ProviderS3, operation, "error").Inc()
		logger.LogAPICall("s3", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload object to S3: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(ProviderS3, operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(ProviderS3, operation, "success").Inc()
	logger.LogAPICall("s3", operation, "success", duration,
		zap.String("key", key),
		zap.Int64("size_bytes", size),
	)

	return h.baseURL + "/" + key, nil
}
