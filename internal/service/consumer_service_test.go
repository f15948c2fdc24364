package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"notesum-be/internal/dto"
	"notesum-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, message)
}

func (l *recordingLogger) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record(message)
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record(message)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record(message)
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record(message)
}

func (l *recordingLogger) Sync() error { return nil }

func TestConsumerRecordsSavedNotes(t *testing.T) {
	repo := newFakeNoteRepo()
	userId := uuid.New()
	now := time.Now()
	noteId := uuid.New()
	repo.notes[noteId] = &entity.Note{
		Id:        noteId,
		Title:     "Consumed",
		Content:   "content",
		UserId:    userId,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	log := &recordingLogger{}

	consumer := NewConsumerService(pubSub, "NOTE_SAVED", &fakeFactory{uow: &fakeUow{noteRepo: repo}}, log)
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("NOTE_SAVED", pubSub)
	payload := `{"note_id": "` + noteId.String() + `", "user_id": "` + userId.String() + `", "action": "created"}`
	require.NoError(t, publisher.Publish(context.Background(), []byte(payload)))

	assert.Eventually(t, func() bool {
		for _, msg := range log.snapshot() {
			if strings.Contains(msg, "note saved") {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConsumerTreatsDeletedNotesAsTerminal(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	log := &recordingLogger{}

	consumer := NewConsumerService(pubSub, "NOTE_SAVED", &fakeFactory{uow: &fakeUow{noteRepo: newFakeNoteRepo()}}, log)
	require.NoError(t, consumer.Consume(context.Background()))

	event := dto.PublishNoteEventMessage{NoteId: uuid.New(), UserId: uuid.New(), Action: "deleted"}
	publisher := NewPublisherService("NOTE_SAVED", pubSub)
	payload := `{"note_id": "` + event.NoteId.String() + `", "user_id": "` + event.UserId.String() + `", "action": "deleted"}`
	require.NoError(t, publisher.Publish(context.Background(), []byte(payload)))

	assert.Eventually(t, func() bool {
		for _, msg := range log.snapshot() {
			if strings.Contains(msg, "note deleted") {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConsumerAcksMalformedPayload(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	log := &recordingLogger{}

	consumer := NewConsumerService(pubSub, "NOTE_SAVED", &fakeFactory{uow: &fakeUow{noteRepo: newFakeNoteRepo()}}, log)
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("NOTE_SAVED", pubSub)
	require.NoError(t, publisher.Publish(context.Background(), []byte("not json")))

	assert.Eventually(t, func() bool {
		for _, msg := range log.snapshot() {
			if strings.Contains(msg, "unmarshal") {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}
