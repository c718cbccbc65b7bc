package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/phambaophuc/image-autocrop/internal/models"
	"github.com/phambaophuc/image-autocrop/internal/services/processor"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	types    map[string]string
	jobs     []models.CropJob
	replaced int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memoryStore) Download(ctx context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (s *memoryStore) Replace(ctx context.Context, path string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	s.types[path] = contentType
	s.replaced++
	return nil
}

func (s *memoryStore) SaveJob(ctx context.Context, job *models.CropJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, *job)
	return nil
}

func (s *memoryStore) lastJob() models.CropJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[len(s.jobs)-1]
}

type recordingAcker struct {
	acks, nacks int
	requeued    bool
}

func (a *recordingAcker) Ack(tag uint64, multiple bool) error {
	a.acks++
	return nil
}

func (a *recordingAcker) Nack(tag uint64, multiple bool, requeue bool) error {
	a.nacks++
	a.requeued = requeue
	return nil
}

func (a *recordingAcker) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func newTestQueue(store Store) *QueueService {
	return &QueueService{
		logger:    zap.NewNop(),
		processor: processor.NewImageProcessor(),
		store:     store,
	}
}

func delivery(t *testing.T, acker amqp.Acknowledger, job *models.CropJob) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: acker, DeliveryTag: 1, Body: body}
}

func spritePNG(t *testing.T, pts ...image.Point) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for _, pt := range pts {
		img.SetNRGBA(pt.X, pt.Y, color.NRGBA{G: 0xff, A: 0xff})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessMessageCropsObject(t *testing.T) {
	store := newMemoryStore()
	store.objects["sprites/hero.png"] = spritePNG(t, image.Pt(2, 3), image.Pt(4, 5))
	q := newTestQueue(store)
	acker := &recordingAcker{}

	q.processMessage(context.Background(), delivery(t, acker, &models.CropJob{ID: "job-1", Path: "sprites/hero.png"}), 1)

	require.Equal(t, 1, acker.acks)
	require.Equal(t, 1, store.replaced)
	require.Equal(t, "image/png", store.types["sprites/hero.png"])

	got, err := png.Decode(bytes.NewReader(store.objects["sprites/hero.png"]))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 3, 3), got.Bounds())

	job := store.lastJob()
	require.Equal(t, models.StatusCompleted, job.Status)
	require.Equal(t, "sprites/hero.png", job.Result.Path)
	require.True(t, job.Result.Changed)
	require.Equal(t, models.StatusProcessing, store.jobs[0].Status)
}

func TestProcessMessageUnchangedSkipsReplace(t *testing.T) {
	store := newMemoryStore()
	store.objects["full.png"] = spritePNG(t, image.Pt(0, 0), image.Pt(7, 7))
	q := newTestQueue(store)
	acker := &recordingAcker{}

	q.processMessage(context.Background(), delivery(t, acker, &models.CropJob{ID: "job-2", Path: "full.png"}), 1)

	require.Equal(t, 1, acker.acks)
	require.Zero(t, store.replaced)
	require.Equal(t, models.StatusCompleted, store.lastJob().Status)
	require.False(t, store.lastJob().Result.Changed)
}

func TestProcessMessageFailure(t *testing.T) {
	store := newMemoryStore()
	store.objects["empty.png"] = spritePNG(t)
	q := newTestQueue(store)
	acker := &recordingAcker{}

	q.processMessage(context.Background(), delivery(t, acker, &models.CropJob{ID: "job-3", Path: "empty.png"}), 2)

	require.Equal(t, 1, acker.acks)
	require.Zero(t, store.replaced)
	job := store.lastJob()
	require.Equal(t, models.StatusFailed, job.Status)
	require.Equal(t, "empty_content", job.ErrorKind)
	require.NotEmpty(t, job.Error)

	q.processMessage(context.Background(), delivery(t, acker, &models.CropJob{ID: "job-4", Path: "missing.png"}), 2)
	require.Equal(t, models.StatusFailed, store.lastJob().Status)
	require.Equal(t, "error", store.lastJob().ErrorKind)
}

func TestProcessMessageMalformed(t *testing.T) {
	store := newMemoryStore()
	q := newTestQueue(store)

	for _, body := range [][]byte{[]byte("{not json"), []byte(`{"id":"x"}`)} {
		acker := &recordingAcker{}
		q.processMessage(context.Background(), amqp.Delivery{Acknowledger: acker, DeliveryTag: 7, Body: body}, 1)
		require.Equal(t, 1, acker.nacks)
		require.False(t, acker.requeued)
		require.Zero(t, acker.acks)
	}
	require.Empty(t, store.jobs)
}

func TestHealthCheckWithoutConnection(t *testing.T) {
	q := newTestQueue(nil)
	require.Equal(t, "unhealthy: connection closed", q.HealthCheck())
	require.NoError(t, q.Close())
}
