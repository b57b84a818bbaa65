package catalog

import (
	"locallibrary/internal/platform/logger"

	"gorm.io/gorm"
)

// Repos groups the catalog repositories over one database handle.
type Repos struct {
	Genres        GenreRepo
	Languages     LanguageRepo
	Authors       AuthorRepo
	Books         BookRepo
	BookInstances BookInstanceRepo
}

func NewRepos(db *gorm.DB, baseLog *logger.Logger) *Repos {
	return &Repos{
		Genres:        NewGenreRepo(db, baseLog),
		Languages:     NewLanguageRepo(db, baseLog),
		Authors:       NewAuthorRepo(db, baseLog),
		Books:         NewBookRepo(db, baseLog),
		BookInstances: NewBookInstanceRepo(db, baseLog),
	}
}
