package specification

import "gorm.io/gorm"

type ByTitle struct {
	Title string
}

func (s ByTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title = ?", s.Title)
}

// MostRecentFirst is the canonical list ordering for the note feed.
type MostRecentFirst struct{}

func (s MostRecentFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC")
}
