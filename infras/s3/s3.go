package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"salon/config"
	"salon/infras/otel"
	"salon/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"

	defaultPresignExpiry = 60 * time.Minute
)

// S3 stores generated documents and hands out download links for them.
type S3 interface {
	// Upload writes data under key and returns a link the caller can download it from.
	Upload(ctx context.Context, key, contentType string, data []byte) (url string, err error)
	PresignGet(ctx context.Context, key string) (url string, err error)
}

type s3Impl struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	domain  string
	expiry  time.Duration
	otel    otel.Otel
}

func (svc *s3Impl) Upload(ctx context.Context, key, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	reader := bytes.NewReader(data)

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload object to S3")

		return constant.Empty, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	if svc.domain != constant.Empty {
		return PublicURL(svc.domain, key), nil
	}

	return svc.PresignGet(ctx, key)
}

func (svc *s3Impl) PresignGet(ctx context.Context, key string) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PresignGet")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req, err := svc.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(svc.expiry))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to presign object: %w", err)
	}

	return req.URL, nil
}

// PublicURL joins the public bucket domain and an object key.
func PublicURL(domain, key string) string {
	return strings.TrimRight(domain, "/") + "/" + strings.TrimLeft(key, "/")
}

func New(config *config.Config, otel otel.Otel) S3 {
	s3Config := config.External.S3

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Config.AccessKeyID,
		s3Config.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s3Config.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	expiry := time.Duration(s3Config.PresignExpireMin) * time.Minute
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}

	return &s3Impl{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  s3Config.BucketName,
		domain:  s3Config.PublicDomain,
		expiry:  expiry,
		otel:    otel,
	}
}
