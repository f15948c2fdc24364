package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"notesum-be/internal/entity"
	"notesum-be/internal/repository/specification"
	"notesum-be/internal/repository/unitofwork"
	"notesum-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.NoteRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Note CRUD and list ordering", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:       uuid.New(),
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     entity.UserRoleUser,
			Status:   entity.UserStatusActive,
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		older := &entity.Note{
			Id:        uuid.New(),
			Title:     "Older",
			Content:   "first note",
			UserId:    user.Id,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.NoteRepository().Create(ctx, older))

		newer := &entity.Note{
			Id:        uuid.New(),
			Title:     "Newer",
			Content:   "second note",
			UserId:    user.Id,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.NoteRepository().Create(ctx, newer))

		notes, err := uow.NoteRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: user.Id},
			specification.MostRecentFirst{},
		)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "Newer", notes[0].Title)

		// Cleanup
		assert.NoError(t, uow.NoteRepository().Delete(ctx, older.Id))
		assert.NoError(t, uow.NoteRepository().Delete(ctx, newer.Id))
	})
}
