package datastore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/danthegoodman1/icegraph/table"
	"github.com/danthegoodman1/icegraph/utils"
	"github.com/rs/zerolog"
	s3_pq "github.com/xitongsys/parquet-go-source/s3"
)

type (
	S3Config struct {
		Bucket   string
		Region   string
		Endpoint string
	}

	// S3DataStore keeps data files in a bucket. Every request is retried with
	// exponential backoff until it succeeds or fails permanently.
	S3DataStore struct {
		bucket   string
		client   *s3.S3
		uploader *s3manager.Uploader
	}
)

func NewS3DataStore(cfg S3Config) (*S3DataStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: missing S3 bucket name", ErrUnknownStore)
	}
	s3Config := &aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewEnvCredentials(),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
		s3Config.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("error making new session: %w", err)
	}

	return &S3DataStore{
		bucket:   cfg.Bucket,
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
	}, nil
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}

func (sds *S3DataStore) ReadTable(ctx context.Context, key string) (*table.Table, error) {
	ctx = logger.WithContext(ctx)
	logger := zerolog.Ctx(ctx)
	cleaned, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	var t *table.Table
	s := time.Now()
	err = utils.Retry(ctx, "s3.ReadTable", func(ctx context.Context) error {
		r, err := s3_pq.NewS3FileReaderWithClient(ctx, sds.client, sds.bucket, cleaned)
		if isNotFound(err) {
			return utils.Permanent(fmt.Errorf("%w: %s", ErrNotFound, key))
		}
		if err != nil {
			return fmt.Errorf("error creating new s3 file reader: %w", err)
		}
		defer r.Close()

		t, err = DecodeTable(r)
		if errors.Is(err, table.ErrUnknownType) || errors.Is(err, table.ErrSchemaMismatch) {
			return utils.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error reading %s from s3: %w", key, err)
	}

	d := time.Since(s)
	logger.Debug().Str("key", key).Int("rows", t.NumRows()).Int64("durationNS", d.Nanoseconds()).Str("durationHuman", d.String()).Msg("read table from s3")
	return t, nil
}

func (sds *S3DataStore) WriteTable(ctx context.Context, key string, t *table.Table) error {
	ctx = logger.WithContext(ctx)
	logger := zerolog.Ctx(ctx)
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := EncodeTable(&buf, t); err != nil {
		return err
	}
	body := buf.Bytes()

	s := time.Now()
	err = utils.Retry(ctx, "s3.WriteTable", func(ctx context.Context) error {
		_, err := sds.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
			Bucket: aws.String(sds.bucket),
			Key:    aws.String(cleaned),
			Body:   bytes.NewReader(body),
		})
		if err != nil {
			return fmt.Errorf("error uploading to s3: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	d := time.Since(s)
	logger.Debug().Str("key", key).Int("bytes", len(body)).Int64("durationNS", d.Nanoseconds()).Str("durationHuman", d.String()).Msg("uploaded table to s3")
	return nil
}

func (sds *S3DataStore) Shutdown(_ context.Context) error {
	return nil
}
