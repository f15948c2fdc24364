package bootstrap

import (
	"log"

	"notesum-be/internal/config"
	"notesum-be/internal/controller"
	"notesum-be/internal/pkg/logger"
	"notesum-be/internal/repository/memory"
	"notesum-be/internal/repository/unitofwork"
	"notesum-be/internal/service"
	pktNats "notesum-be/pkg/nats"
	"notesum-be/pkg/summarizer/huggingface"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController      controller.INoteController
	AuthController      controller.IAuthController
	SummarizeController controller.ISummarizeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional external sink, the app works without it)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Services
	summaryProvider := huggingface.NewHuggingFaceProvider(cfg.Keys.HuggingFace, cfg.Ai.SummaryModelURL)
	summarizeService := service.NewSummarizeService(summaryProvider, sysLogger)

	listCache := memory.NewNoteListCache()

	publisherService := service.NewPublisherService(cfg.Ai.NoteEventTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.NoteEventTopic,
		uowFactory,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory)
	noteService := service.NewNoteService(
		uowFactory,
		summarizeService,
		publisherService,
		natsPub,
		listCache,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		NoteController:      controller.NewNoteController(noteService),
		AuthController:      controller.NewAuthController(authService),
		SummarizeController: controller.NewSummarizeController(summarizeService),
		ConsumerService:     consumerService,
		Logger:              sysLogger,
	}
}
