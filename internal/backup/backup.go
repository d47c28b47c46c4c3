// Package backup uploads JSON snapshots of every collection to an S3
// compatible bucket and prunes old ones.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/config"
	"github.com/AlexTLDR/wedding/internal/export"
)

// ErrNotConfigured is returned when no bucket credentials are set.
var ErrNotConfigured = errors.New("backup bucket not configured (BACKUP_BUCKET_NAME, BACKUP_ACCESS_KEY_ID, BACKUP_SECRET_ACCESS_KEY)")

// ObjectStore is the part of the S3 API used for snapshots.
type ObjectStore interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// NewS3Client creates a client for the configured bucket. A custom endpoint
// allows Tigris, R2 or MinIO.
func NewS3Client(ctx context.Context, cfg config.BackupConfig) (*s3.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Backuper takes snapshots through the /api client.
type Backuper struct {
	lister    export.Lister
	store     ObjectStore
	bucket    string
	prefix    string
	retention time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func New(lister export.Lister, store ObjectStore, cfg config.BackupConfig, log zerolog.Logger) *Backuper {
	return &Backuper{
		lister:    lister,
		store:     store,
		bucket:    cfg.Bucket,
		prefix:    cfg.Prefix,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		log:       log,
		now:       time.Now,
	}
}

func (b *Backuper) folder() string {
	return path.Join(b.prefix, "sheets") + "/"
}

// Run uploads one snapshot and returns its object key. Pruning failures are
// logged, not returned.
func (b *Backuper) Run(ctx context.Context) (string, error) {
	snap, err := export.Collect(ctx, b.lister)
	if err != nil {
		return "", fmt.Errorf("collect snapshot: %w", err)
	}
	snap.TakenAt = b.now().UTC()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := b.folder() + fmt.Sprintf("sheets-%s.json", snap.TakenAt.Format("2006-01-02T150405Z"))
	_, err = b.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}
	b.log.Info().Str("bucket", b.bucket).Str("key", key).Int("guests", len(snap.Guests)).Msg("snapshot uploaded")

	if err := b.prune(ctx); err != nil {
		b.log.Warn().Err(err).Msg("failed to prune old snapshots")
	}
	return key, nil
}

// prune deletes snapshots older than the retention period.
func (b *Backuper) prune(ctx context.Context) error {
	if b.retention <= 0 {
		return nil
	}
	cutoff := b.now().Add(-b.retention)

	paginator := s3.NewListObjectsV2Paginator(b.store, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(b.folder()),
	})

	var toDelete []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.LastModified != nil && obj.LastModified.Before(cutoff) {
				toDelete = append(toDelete, aws.ToString(obj.Key))
			}
		}
	}

	for _, key := range toDelete {
		_, err := b.store.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(b.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			b.log.Warn().Err(err).Str("key", key).Msg("failed to delete old snapshot")
			continue
		}
		b.log.Info().Str("key", key).Msg("deleted old snapshot")
	}
	return nil
}

// Schedule runs a snapshot every day at hour in loc until ctx is done.
func (b *Backuper) Schedule(ctx context.Context, hour int, loc *time.Location) {
	for {
		now := b.now().In(loc)
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		b.log.Info().Time("next", next).Msg("next snapshot scheduled")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		if _, err := b.Run(runCtx); err != nil {
			b.log.Error().Err(err).Msg("scheduled snapshot failed")
		}
		cancel()
	}
}
