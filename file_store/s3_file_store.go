package file_store

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const (
	DefaultS3Region = "us-west-1"
)

type S3FileStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

// NewS3FileStore builds a store backed by the given bucket. urlPrefix is the
// public base (CDN or bucket endpoint) prepended to keys when serializing.
func NewS3FileStore(bucket, region, urlPrefix string) (*S3FileStore, error) {
	if region == "" {
		region = DefaultS3Region
	}
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:    bucket,
		urlPrefix: urlPrefix,
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

// Store uploads data unless an object with the same content key already
// exists.
func (s *S3FileStore) Store(data []byte, fileName string) (string, error) {
	key, err := KeyFromContent(data, fileName)
	if err != nil {
		return "", fmt.Errorf("failed to generate s3 key %w", err)
	}

	if !s.IsKeyExisted(key) {
		_, err = s.uploader.Upload(&s3manager.UploadInput{
			ACL:    aws.String("public-read"),
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload to s3 %w", err)
		}
	}
	return key, nil
}

func (s *S3FileStore) IsKeyExisted(key string) bool {
	_, err := s.svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func (s *S3FileStore) GetUrlFromKey(key string) string {
	return s.urlPrefix + key
}

func (s *S3FileStore) CleanUp() {
	// do nothing for s3
}
