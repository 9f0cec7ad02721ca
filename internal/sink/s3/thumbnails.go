package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	thumbnailSize        = 256
	thumbnailJPEGQuality = 90
)

// ThumbnailSink stores video thumbnails as fixed-size JPEGs. Incoming images
// are decoded, scaled to 256x256 and re-encoded before upload, so the stored
// objects are uniform regardless of the source format.
type ThumbnailSink struct {
	client Client
	bucket string
	logger *slog.Logger
}

func NewThumbnailSink(client Client, bucket string, logger *slog.Logger) *ThumbnailSink {
	return &ThumbnailSink{
		client: client,
		bucket: bucket,
		logger: logger.With("component", "s3_thumbnails"),
	}
}

// Exists reports whether an object is already stored under key. Lets the
// collector skip the image download for videos seen in earlier runs.
func (s *ThumbnailSink) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("s3: checking thumbnail %s: %w", key, err)
	}
	return true, nil
}

// Put normalizes the image and uploads it under key.
func (s *ThumbnailSink) Put(ctx context.Context, key string, img []byte) error {
	normalized, err := normalize(img)
	if err != nil {
		return fmt.Errorf("s3: normalizing thumbnail %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(normalized),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return fmt.Errorf("s3: uploading thumbnail %s: %w", key, err)
	}

	s.logger.Debug("thumbnail stored", "key", key, "bytes", len(normalized))
	return nil
}

// normalize decodes any supported image format and re-encodes it as a
// 256x256 JPEG.
func normalize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, thumbnailSize, thumbnailSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}
