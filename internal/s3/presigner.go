package s3

import (
	"context"
	"path"
	"strings"
	"time"

	"itgirls-web/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLValidity = 15 * time.Minute

// UploadURL is a presigned PUT the browser uses to upload a CV directly.
type UploadURL struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CVPresigner interface {
	PresignCVUpload(ctx context.Context, fileName, contentType string) (*UploadURL, error)
}

type FilePresigner struct {
	S3PresignClient *s3.PresignClient
	BucketName      string
	now             func() time.Time
}

func NewFilePresigner(ctx context.Context, cfg config.S3Config) (*FilePresigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)

	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &FilePresigner{
		S3PresignClient: s3.NewPresignClient(s3Client),
		BucketName:      cfg.Bucket,
		now:             time.Now,
	}, nil
}

// PresignCVUpload returns a PUT URL for a new object under cvs/. The object
// key keeps only the extension of the user's file name.
func (p *FilePresigner) PresignCVUpload(ctx context.Context, fileName, contentType string) (*UploadURL, error) {
	objectKey := "cvs/" + uuid.NewString() + strings.ToLower(path.Ext(fileName))
	if contentType == "" {
		contentType = "application/pdf"
	}

	request, err := p.S3PresignClient.PresignPutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:      aws.String(p.BucketName),
			Key:         aws.String(objectKey),
			ContentType: aws.String(contentType),
		},
		func(opts *s3.PresignOptions) {
			opts.Expires = uploadURLValidity
		},
	)

	if err != nil {
		return nil, err
	}

	return &UploadURL{
		URL:       request.URL,
		Method:    request.Method,
		ObjectKey: objectKey,
		ExpiresAt: p.now().Add(uploadURLValidity),
	}, nil
}
