package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tarelfish/tarel-api/apperrors"
)

const maxImageSizeBytes = 5 * 1024 * 1024

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadResult struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ImageUploader stores product images in S3 when a bucket is configured and
// on the local media directory otherwise.
type ImageUploader struct {
	bucket    string
	mediaRoot string
	mediaURL  string
	log       *zap.Logger
}

func NewImageUploader(bucket, mediaRoot, mediaURL string, log *zap.Logger) *ImageUploader {
	return &ImageUploader{bucket: bucket, mediaRoot: mediaRoot, mediaURL: mediaURL, log: log}
}

func imageExtension(contentType string) (string, error) {
	if contentType == "" {
		return "", apperrors.Validation("Missing content type for image upload")
	}
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", apperrors.Validation("Unsupported image type. Use PNG, JPG, WEBP, or GIF.")
	}
	return ext, nil
}

func (u *ImageUploader) Upload(ctx context.Context, header *multipart.FileHeader) (UploadResult, error) {
	contentType := header.Header.Get("Content-Type")
	ext, err := imageExtension(contentType)
	if err != nil {
		return UploadResult{}, err
	}
	if header.Size > maxImageSizeBytes {
		return UploadResult{}, apperrors.Validation("Image exceeds 5 MB limit")
	}

	file, err := header.Open()
	if err != nil {
		return UploadResult{}, apperrors.Internal("Failed to open uploaded file", err)
	}
	defer file.Close()

	filename := uuid.New().String() + ext

	if u.bucket != "" {
		return u.uploadToS3(ctx, file, filename, contentType, header.Size)
	}
	return u.uploadToDisk(file, filename, contentType)
}

func (u *ImageUploader) uploadToS3(ctx context.Context, file io.Reader, filename, contentType string, size int64) (UploadResult, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return UploadResult{}, apperrors.Internal("Failed to configure object storage", err)
	}

	uploader := manager.NewUploader(s3.NewFromConfig(cfg))
	key := "products/" + filename
	result, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.log.Error("s3 upload failed", zap.String("key", key), zap.Error(err))
		return UploadResult{}, apperrors.Internal("Failed to upload image", err)
	}

	return UploadResult{
		URL:         result.Location,
		Path:        key,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}, nil
}

func (u *ImageUploader) uploadToDisk(file io.Reader, filename, contentType string) (UploadResult, error) {
	dir := filepath.Join(u.mediaRoot, "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return UploadResult{}, apperrors.Internal("Failed to prepare media directory", err)
	}

	destination := filepath.Join(dir, filename)
	out, err := os.Create(destination)
	if err != nil {
		return UploadResult{}, apperrors.Internal("Failed to store image", err)
	}
	defer out.Close()

	// Size is re-checked while copying; the multipart header size is
	// client-reported.
	written, err := io.Copy(out, io.LimitReader(file, maxImageSizeBytes+1))
	if err != nil {
		os.Remove(destination)
		return UploadResult{}, apperrors.Internal("Failed to store image", err)
	}
	if written > maxImageSizeBytes {
		os.Remove(destination)
		return UploadResult{}, apperrors.Validation("Image exceeds 5 MB limit")
	}

	return UploadResult{
		URL:         fmt.Sprintf("%s/products/%s", strings.TrimRight(u.mediaURL, "/"), filename),
		Path:        "products/" + filename,
		Filename:    filename,
		ContentType: contentType,
		Size:        written,
	}, nil
}
