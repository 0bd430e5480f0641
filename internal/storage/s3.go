package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"newsact/internal/model"
	"newsact/internal/util"
)

// S3Config describes an S3-compatible object store (AWS, MinIO, Supabase).
type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	Timeout       time.Duration
}

// S3Provider is the remote storage backend. Every call is bounded by the
// configured timeout and failures surface to the caller unretried, so an
// upload is never silently duplicated.
type S3Provider struct {
	client  *s3.Client
	bucket  string
	baseURL string
	timeout time.Duration
	limits  Limits
}

// NewS3Provider builds the client and verifies the bucket is reachable.
// An unreachable bucket fails construction so the caller can decide on the
// local fallback once, at startup.
func NewS3Provider(ctx context.Context, cfg S3Config, limits Limits) (*S3Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	headCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		return nil, fmt.Errorf("%w: bucket %q unreachable: %v", model.ErrBackendUnavailable, cfg.Bucket, err)
	}

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3Provider{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		timeout: timeout,
		limits:  limits,
	}, nil
}

func (p *S3Provider) Name() string { return "s3" }

func (p *S3Provider) Upload(ctx context.Context, content []byte, originalName string, category Category) (UploadResult, error) {
	ext, err := validateUpload(content, originalName, category, p.limits)
	if err != nil {
		return UploadResult{}, err
	}

	key := storageKey(category, ext)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	_, err = p.client.PutObject(callCtx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String(util.DetectImageMIME(content)),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: put object: %v", model.ErrBackendUnavailable, err)
	}

	return UploadResult{
		URL:      p.baseURL + "/" + key,
		Path:     key,
		Provider: p.Name(),
	}, nil
}

// Delete head-checks the object first: S3 DeleteObject succeeds on missing
// keys, which would hide the NotFound the contract requires.
func (p *S3Provider) Delete(ctx context.Context, url string) error {
	key, err := p.keyFromURL(url)
	if err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	_, err = p.client.HeadObject(callCtx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return model.ErrFileNotFound
		}
		return fmt.Errorf("%w: head object: %v", model.ErrBackendUnavailable, err)
	}

	if _, err := p.client.DeleteObject(callCtx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("%w: delete object: %v", model.ErrBackendUnavailable, err)
	}

	return nil
}

func (p *S3Provider) keyFromURL(url string) (string, error) {
	prefix := p.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("%w: url %q is not under %q", model.ErrInvalidInput, url, p.baseURL)
	}

	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", fmt.Errorf("%w: url has no object key", model.ErrInvalidInput)
	}

	return key, nil
}
