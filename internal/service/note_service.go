package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"notesum-be/internal/dto"
	"notesum-be/internal/entity"
	"notesum-be/internal/pkg/apperrors"
	"notesum-be/internal/pkg/logger"
	"notesum-be/internal/repository/memory"
	"notesum-be/internal/repository/specification"
	"notesum-be/internal/repository/unitofwork"
	"notesum-be/pkg/events"
	pktNats "notesum-be/pkg/nats"

	"github.com/google/uuid"
)

// minSummarizableLength is the floor below which changed content is persisted
// without asking the model for a summary. Soft policy, not an error.
const minSummarizableLength = 50

const summaryWarningMessage = "Failed to generate summary. The note was saved with its previous summary."

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.SaveNoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.SaveNoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.ListNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	summarizeService ISummarizeService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	listCache        *memory.NoteListCache
	log              logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	summarizeService ISummarizeService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	listCache *memory.NoteListCache,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		summarizeService: summarizeService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		listCache:        listCache,
		log:              log,
	}
}

// validateDraft is the submit gate: both fields must survive trimming.
// No network call happens when it fails.
func validateDraft(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "title and content must not be empty")
	}
	return nil
}

// resolveSummary decides whether a fresh summary is needed and fetches it.
// A new summary is requested only when content actually changed against the
// last persisted value and is long enough. Generation is best-effort: one
// attempt, and on failure the prior summary is carried forward with a warning.
func (c *noteService) resolveSummary(ctx context.Context, content, baselineContent string, prior *string) (*string, string) {
	if content == baselineContent {
		return prior, ""
	}
	if utf8.RuneCountInString(strings.TrimSpace(content)) < minSummarizableLength {
		return prior, ""
	}

	summary, err := c.summarizeService.Summarize(ctx, content)
	if err != nil {
		c.log.Warn("note", "summary generation failed, saving without it", map[string]interface{}{
			"error": err.Error(),
		})
		return prior, summaryWarningMessage
	}
	return &summary, ""
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.SaveNoteResponse, error) {
	if err := validateDraft(req.Title, req.Content); err != nil {
		return nil, err
	}

	// A new note starts from empty content, so any non-trivial content
	// triggers a generation attempt.
	summary, warning := c.resolveSummary(ctx, req.Content, "", nil)

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Summary:   summary,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	c.afterMutation(ctx, &note, userId, "created")

	return &dto.SaveNoteResponse{
		Id:             note.Id,
		Summary:        note.Summary,
		SummaryWarning: warning,
	}, nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.SaveNoteResponse, error) {
	if err := validateDraft(req.Title, req.Content); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if note == nil {
		return nil, apperrors.ErrNoteNotFound
	}

	// Summarize strictly before persisting, against the stored content.
	summary, warning := c.resolveSummary(ctx, req.Content, note.Content, note.Summary)

	now := time.Now()
	note.Title = req.Title
	note.Content = req.Content
	note.Summary = summary
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	c.afterMutation(ctx, note, userId, "updated")

	return &dto.SaveNoteResponse{
		Id:             note.Id,
		Summary:        note.Summary,
		SummaryWarning: warning,
	}, nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if note == nil {
		return nil, apperrors.ErrNoteNotFound
	}

	return toShowNoteResponse(note), nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) (*dto.ListNoteResponse, error) {
	notes, cached := c.listCache.Get(userId)
	if !cached {
		uow := c.uowFactory.NewUnitOfWork(ctx)
		var err error
		notes, err = uow.NoteRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.MostRecentFirst{},
		)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
		c.listCache.Set(userId, notes)
	}

	res := dto.ListNoteResponse{
		Notes: make([]*dto.ShowNoteResponse, len(notes)),
	}
	for i, note := range notes {
		res.Notes[i] = toShowNoteResponse(note)
	}
	return &res, nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if note == nil {
		return apperrors.ErrNoteNotFound
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}

	c.afterMutation(ctx, note, userId, "deleted")

	return nil
}

// afterMutation invalidates the cached feed and fans out events. Both sinks
// are auxiliary and never fail the request.
func (c *noteService) afterMutation(ctx context.Context, note *entity.Note, userId uuid.UUID, action string) {
	c.listCache.Invalidate(userId)

	payload := dto.PublishNoteEventMessage{
		NoteId: note.Id,
		UserId: userId,
		Action: action,
	}
	payloadJson, _ := json.Marshal(payload)
	if err := c.publisherService.Publish(ctx, payloadJson); err != nil {
		c.log.Warn("note", "failed to publish note event", map[string]interface{}{
			"note_id": note.Id,
			"action":  action,
			"error":   err.Error(),
		})
	}

	if c.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "NOTE_" + strings.ToUpper(action),
			Data: map[string]interface{}{
				"title":   note.Title,
				"note_id": note.Id,
				"user_id": userId,
			},
			OccurredAt: time.Now(),
		}
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			c.log.Warn("note", "failed to publish NATS event", map[string]interface{}{
				"note_id": note.Id,
				"action":  action,
				"error":   err.Error(),
			})
		}
	}
}

func toShowNoteResponse(note *entity.Note) *dto.ShowNoteResponse {
	return &dto.ShowNoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Summary:   note.Summary,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
