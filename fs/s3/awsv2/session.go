package awsv2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jmgilman/objfs/errors"
)

// Options describe how to reach an S3 endpoint.
type Options struct {
	// Region defaults to the SDK's environment/profile resolution
	Region string

	// Endpoint overrides the AWS endpoint (e.g., "http://localhost:4566")
	Endpoint string

	// AccessKey and SecretKey select static credentials. When empty the
	// default credential chain is used.
	AccessKey string
	SecretKey string

	// UsePathStyle addresses buckets as path segments instead of
	// subdomains. Required by most S3-compatible services.
	UsePathStyle bool
}

// NewAPI builds an *s3.Client from the default AWS configuration and opts.
func NewAPI(ctx context.Context, opts Options) (*awss3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" || opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to load aws config")
	}

	return awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}
