package memory

import (
	"time"

	"notesum-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// NoteListCache holds the per-user note feed between mutations. Any successful
// create/update/delete invalidates the owner's entry; readers refetch on miss.
type NoteListCache struct {
	cache *cache.Cache
}

func NewNoteListCache() *NoteListCache {
	// Default expiration of 5 minutes, purge sweep every 10 minutes.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &NoteListCache{
		cache: c,
	}
}

func (r *NoteListCache) Get(userId uuid.UUID) ([]*entity.Note, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.([]*entity.Note), true
	}
	return nil, false
}

func (r *NoteListCache) Set(userId uuid.UUID, notes []*entity.Note) {
	r.cache.Set(userId.String(), notes, cache.DefaultExpiration)
}

func (r *NoteListCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
