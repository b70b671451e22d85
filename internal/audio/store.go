package audio

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// Store keeps rendered audio files in an S3 compatible bucket. Keys are
// derived from the spoken text and voice, so rendering the same word
// twice lands on the same object and the second upload is free.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewStore(client *minio.Client, bucket, publicURL string) *Store {
	return &Store{client: client, bucket: bucket, publicURL: publicURL}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	return nil
}

// ObjectKey builds the content-addressed key for a rendered utterance.
func ObjectKey(text, voice string) string {
	sum := sha256.Sum256([]byte(text + "|" + voice))
	return "audio/" + hex.EncodeToString(sum[:]) + ".mp3"
}

// Put uploads a rendered file and returns its public URL. Existing
// objects are not re-uploaded.
func (s *Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return s.url(key), nil
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "audio/mpeg",
	})
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", key, err)
	}
	return s.url(key), nil
}

func (s *Store) url(key string) string {
	return s.publicURL + "/" + s.bucket + "/" + key
}
