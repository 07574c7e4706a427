package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/contactbook/engine/pkg/utils"
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // S3-compatible endpoint such as MinIO; empty for AWS
	AccessKey string
	SecretKey string
	PublicURL string // prefix for returned URLs; derived from the endpoint when empty
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes pictures to a bucket under a content-addressed key, so
// uploading the same image twice yields the same object.
type S3Store struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewS3Store(ctx context.Context, c S3Config) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}
	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Store{client: client, bucket: c.Bucket, baseURL: publicBaseURL(c)}, nil
}

func (s *S3Store) Save(ctx context.Context, owner uuid.UUID, p Picture) (string, error) {
	key := PictureKey(owner, p)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(p.Data),
		ContentType: aws.String(p.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// PictureKey is profile-pictures/<owner>/<sha256 of data><ext>.
func PictureKey(owner uuid.UUID, p Picture) string {
	return "profile-pictures/" + owner.String() + "/" + utils.SumSHA256Hex(p.Data) + extension(p)
}

func extension(p Picture) string {
	if ext := strings.ToLower(path.Ext(p.Filename)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(p.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

func publicBaseURL(c S3Config) string {
	switch {
	case c.PublicURL != "":
		return strings.TrimRight(c.PublicURL, "/")
	case c.Endpoint != "":
		return strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
}
