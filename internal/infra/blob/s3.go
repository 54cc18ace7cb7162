package blob

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sangamhq/sangam/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

// S3Deps bundles the S3 clients used for asset storage. The application
// stores only object keys; bytes live in the bucket and reads go through
// presigned URLs.
type S3Deps struct {
	Client   *s3.Client
	Presign  *s3.PresignClient
	Uploader *manager.Uploader
	Bucket   string
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3Deps, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	return &S3Deps{
		Client:   client,
		Presign:  s3.NewPresignClient(client),
		Uploader: manager.NewUploader(client),
		Bucket:   cfg.S3.Bucket,
	}, nil
}

// Upload stores an object and returns nothing but the error; callers keep
// the key they generated.
func (d *S3Deps) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := d.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

// PresignGet returns a time-limited GET URL for an object key.
func (d *S3Deps) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	out, err := d.Presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expire))
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// Delete removes an object; missing keys are not an error.
func (d *S3Deps) Delete(ctx context.Context, key string) error {
	_, err := d.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(key),
	})
	return err
}
