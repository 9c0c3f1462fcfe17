package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Provider uploads to an S3 bucket and serves the object's public URL.
type S3Provider struct {
	api       *s3.S3
	bucket    string
	publicURL string
}

// NewS3Provider builds a provider for bucket. publicURL overrides the URL
// base the bucket is served from; when empty the standard virtual-hosted
// endpoint is used.
func NewS3Provider(sess *session.Session, bucket, publicURL string) *S3Provider {
	return &S3Provider{
		api:       s3.New(sess),
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (p *S3Provider) Put(key string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := p.api.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	if p.publicURL != "" {
		return p.publicURL + "/" + key, nil
	}

	region := aws.StringValue(p.api.Config.Region)
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, region, key), nil
}
