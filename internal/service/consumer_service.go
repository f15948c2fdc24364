package service

import (
	"context"
	"encoding/json"

	"notesum-be/internal/dto"
	"notesum-be/internal/pkg/logger"
	"notesum-be/internal/repository/specification"
	"notesum-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains note mutation events off the in-process bus and
// records an activity trail. It is auxiliary: a lost message never affects
// the note itself.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishNoteEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal note event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	details := map[string]interface{}{
		"note_id": payload.NoteId,
		"user_id": payload.UserId,
		"action":  payload.Action,
	}

	if payload.Action == "deleted" {
		cs.log.Info("consumer", "note deleted", details)
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: payload.NoteId})
	if err != nil {
		cs.log.Error("consumer", "failed to load note for activity trail", map[string]interface{}{
			"note_id": payload.NoteId,
			"error":   err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}
	if note == nil {
		// Deleted between publish and consume. Ack.
		msg.Ack()
		return
	}

	details["title"] = note.Title
	details["has_summary"] = note.Summary != nil
	cs.log.Info("consumer", "note saved", details)

	msg.Ack()
}
