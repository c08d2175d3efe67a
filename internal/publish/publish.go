// Package publish writes resolved pages to their destination: a local
// file, standard output, or an S3 object.
//
//	sink, err := publish.Open(ctx, "s3://site-bucket/index.html", publish.Options{})
//	if err != nil {
//	    return err
//	}
//	err = sink.Publish(ctx, page)
package publish

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/inject/internal/errors"
)

// S3Scheme prefixes S3 locations.
const S3Scheme = "s3://"

// DefaultContentType is stored with published pages.
const DefaultContentType = "text/html; charset=utf-8"

// Sink receives a resolved page.
type Sink interface {
	Publish(ctx context.Context, page []byte) error
	// Location describes the destination for messages.
	Location() string
}

// PutObjectAPI is the subset of the S3 client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures Open.
type Options struct {
	// Stdout receives the page when the location is "" or "-".
	// Default: os.Stdout
	Stdout io.Writer

	// Client overrides the S3 client built from the default AWS
	// configuration.
	Client PutObjectAPI

	// ContentType is stored with S3 objects.
	// Default: DefaultContentType
	ContentType string
}

// Open returns the sink for location: "" or "-" for standard output,
// "s3://bucket/key" for S3, anything else is a file path.
func Open(ctx context.Context, location string, opts Options) (Sink, error) {
	switch {
	case location == "" || location == "-":
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		return &WriterSink{w: w}, nil

	case strings.HasPrefix(location, S3Scheme):
		bucket, key, err := ParseS3(location)
		if err != nil {
			return nil, err
		}
		client := opts.Client
		if client == nil {
			cfg, err := awsconfig.LoadDefaultConfig(ctx)
			if err != nil {
				return nil, errors.New("E161").
					WithDetail("Cannot load AWS configuration").
					Wrap(err)
			}
			client = s3.NewFromConfig(cfg)
		}
		return NewS3Sink(client, bucket, key, opts.ContentType), nil
	}

	return &FileSink{path: location}, nil
}

// ParseS3 splits "s3://bucket/key" into its bucket and key.
func ParseS3(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, S3Scheme)
	if !ok {
		return "", "", errors.New("E162").WithDetailf("%q is not an S3 location", location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", errors.New("E162").
			WithDetailf("%q must name a bucket and an object key", location)
	}
	return bucket, key, nil
}

// WriterSink writes pages to an io.Writer.
type WriterSink struct {
	w io.Writer
}

func (s *WriterSink) Publish(_ context.Context, page []byte) error {
	if _, err := s.w.Write(page); err != nil {
		return errors.New("E161").Wrap(err)
	}
	return nil
}

func (s *WriterSink) Location() string { return "stdout" }

// FileSink writes pages to a local file, creating parent directories.
type FileSink struct {
	path string
}

func (s *FileSink) Publish(_ context.Context, page []byte) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.New("E161").WithDetail(s.path).Wrap(err)
		}
	}
	if err := os.WriteFile(s.path, page, 0644); err != nil {
		return errors.New("E161").WithDetail(s.path).Wrap(err)
	}
	return nil
}

func (s *FileSink) Location() string { return s.path }

// S3Sink uploads pages as S3 objects.
type S3Sink struct {
	client      PutObjectAPI
	bucket      string
	key         string
	contentType string
}

// NewS3Sink creates a sink for bucket/key.
func NewS3Sink(client PutObjectAPI, bucket, key, contentType string) *S3Sink {
	if contentType == "" {
		contentType = DefaultContentType
	}
	return &S3Sink{
		client:      client,
		bucket:      bucket,
		key:         key,
		contentType: contentType,
	}
}

func (s *S3Sink) Publish(ctx context.Context, page []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key),
		Body:          bytes.NewReader(page),
		ContentLength: aws.Int64(int64(len(page))),
		ContentType:   aws.String(s.contentType),
	})
	if err != nil {
		return errors.New("E161").WithDetail(s.Location()).Wrap(err)
	}
	return nil
}

func (s *S3Sink) Location() string { return S3Scheme + s.bucket + "/" + s.key }
