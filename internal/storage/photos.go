package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Максимальный размер декодированного изображения
const maxPhotoBytes = 10 << 20 // 10MB

var (
	ErrPhotoTooLarge = errors.New("photo exceeds size limit")
	ErrNotAnImage    = errors.New("payload is not an image")
)

// PhotoStore кладёт фото анкет в S3-совместимое хранилище
// и возвращает публичные URL
type PhotoStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	CDNBase   string
}

func NewPhotoStore(ctx context.Context, cfg Config) (*PhotoStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.CDNBase
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &PhotoStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// UploadBase64 декодирует картинку (с data-URL префиксом или без),
// проверяет размер и тип и заливает под ключ photos/<userID>/<uuid>
func (p *PhotoStore) UploadBase64(ctx context.Context, userID uuid.UUID, data string) (string, error) {
	if i := strings.Index(data, ","); strings.HasPrefix(data, "data:") && i >= 0 {
		data = data[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode photo: %w", err)
	}
	if len(raw) > maxPhotoBytes {
		return "", ErrPhotoTooLarge
	}

	contentType := http.DetectContentType(raw)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	key := fmt.Sprintf("photos/%s/%s", userID, uuid.New())

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return p.baseURL + "/" + key, nil
}
