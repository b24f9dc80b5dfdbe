package infra

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tnqbao/gau-movie-service/config"
)

type MinioClient struct {
	Client   *minio.Client
	Endpoint string
	UseSSL   bool
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	rootUser := cfg.Minio.RootUser
	if rootUser == "" {
		panic("MinIO root user is not configured")
	}

	rootPassword := cfg.Minio.RootPassword
	if rootPassword == "" {
		panic("MinIO root password is not configured")
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	return &MinioClient{
		Client:   minioClient,
		Endpoint: endpoint,
		UseSSL:   cfg.Minio.UseSSL,
	}
}

// BucketExists checks if a bucket exists in MinIO
func (m *MinioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if bucketName == "" {
		return false, fmt.Errorf("bucketName cannot be empty")
	}

	exists, err := m.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	return exists, nil
}

// EnsureBucket creates a bucket if it doesn't exist
func (m *MinioClient) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		err := m.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{
			Region: "us-east-1",
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// SetBucketPublicRead allows anonymous read access on a bucket, used for
// the poster bucket so the catalog can link images directly.
func (m *MinioClient) SetBucketPublicRead(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	policyJSON := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, bucketName)

	if err := m.Client.SetBucketPolicy(ctx, bucketName, policyJSON); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// UploadObject stores a single object from a reader
func (m *MinioClient) UploadObject(ctx context.Context, bucketName, objectKey string, reader io.Reader, size int64, contentType string) error {
	if bucketName == "" || objectKey == "" {
		return fmt.Errorf("bucketName and objectKey cannot be empty")
	}

	_, err := m.Client.PutObject(ctx, bucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

// FetchToFile downloads an object to a local path
func (m *MinioClient) FetchToFile(ctx context.Context, bucketName, objectKey, filePath string) error {
	if bucketName == "" || objectKey == "" {
		return fmt.Errorf("bucketName and objectKey cannot be empty")
	}

	if err := m.Client.FGetObject(ctx, bucketName, objectKey, filePath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("failed to fetch object: %w", err)
	}

	return nil
}

// DeleteObject removes a single object
func (m *MinioClient) DeleteObject(ctx context.Context, bucketName, objectKey string) error {
	if bucketName == "" || objectKey == "" {
		return fmt.Errorf("bucketName and objectKey cannot be empty")
	}

	if err := m.Client.RemoveObject(ctx, bucketName, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// ObjectURL builds the public URL of an object
func (m *MinioClient) ObjectURL(bucketName, objectKey string) string {
	scheme := "http"
	if m.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.Endpoint, bucketName, objectKey)
}
