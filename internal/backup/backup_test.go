package backup

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/config"
	"github.com/AlexTLDR/wedding/internal/export"
	"github.com/AlexTLDR/wedding/internal/models"
)

// memStore keeps objects in memory with their modification time.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	mtime   map[string]time.Time
	deleted []string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, mtime: map[string]time.Time{}}
}

func (m *memStore) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := aws.ToString(in.Key)
	m.objects[key] = data
	m.mtime[key] = time.Now()
	return &s3.PutObjectOutput{}, nil
}

func (m *memStore) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := &s3.ListObjectsV2Output{}
	for key := range m.objects {
		if !strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			continue
		}
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key), LastModified: aws.Time(m.mtime[key])})
	}
	return out, nil
}

func (m *memStore) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := aws.ToString(in.Key)
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return &s3.DeleteObjectOutput{}, nil
}

type fakeLister struct{}

func (fakeLister) ListGuests(ctx context.Context) ([]models.Guest, error) {
	return []models.Guest{{Name: "Nikki", Email: models.EmailPending, RSVP: models.RSVPYes}}, nil
}

func (fakeLister) ListGuestRequests(ctx context.Context) ([]models.GuestRequest, error) {
	return nil, nil
}

func (fakeLister) ListEntourage(ctx context.Context) ([]models.EntourageMember, error) {
	return []models.EntourageMember{{Name: "Karl"}}, nil
}

func (fakeLister) ListPrincipalSponsors(ctx context.Context) ([]models.PrincipalSponsor, error) {
	return nil, nil
}

func TestRunUploadsSnapshot(t *testing.T) {
	store := newMemStore()
	cfg := config.BackupConfig{Bucket: "b", Prefix: "wedding", RetentionDays: 30}
	b := New(fakeLister{}, store, cfg, zerolog.Nop())
	b.now = func() time.Time { return time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC) }

	key, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if key != "wedding/sheets/sheets-2026-10-17T030000Z.json" {
		t.Errorf("key = %q", key)
	}

	var snap export.Snapshot
	if err := json.Unmarshal(store.objects[key], &snap); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
	if len(snap.Guests) != 1 || snap.Guests[0].Name != "Nikki" || len(snap.Entourage) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestRunPrunesOldSnapshots(t *testing.T) {
	store := newMemStore()
	old := "wedding/sheets/sheets-2026-01-01T030000Z.json"
	other := "elsewhere/keep.json"
	store.objects[old] = []byte("{}")
	store.mtime[old] = time.Now().AddDate(0, 0, -40)
	store.objects[other] = []byte("{}")
	store.mtime[other] = time.Now().AddDate(0, 0, -40)

	b := New(fakeLister{}, store, config.BackupConfig{Bucket: "b", Prefix: "wedding", RetentionDays: 30}, zerolog.Nop())
	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != old {
		t.Errorf("deleted = %v, want [%s]", store.deleted, old)
	}
	if _, ok := store.objects[other]; !ok {
		t.Error("object outside the prefix was deleted")
	}
	if len(store.objects) != 2 {
		t.Errorf("objects = %d, want new snapshot plus the foreign one", len(store.objects))
	}
}

func TestNewS3ClientRequiresCredentials(t *testing.T) {
	if _, err := NewS3Client(context.Background(), config.BackupConfig{Bucket: "b"}); err != ErrNotConfigured {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestScheduleStopsWithContext(t *testing.T) {
	b := New(fakeLister{}, newMemStore(), config.BackupConfig{Bucket: "b"}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Schedule(ctx, 3, time.UTC)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Schedule did not return after cancel")
	}
}
