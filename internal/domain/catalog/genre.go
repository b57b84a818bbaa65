package catalog

import (
	"strings"

	"locallibrary/internal/urls"

	"gorm.io/gorm"
)

const ModelGenre = "genre"

// Genre is a book genre (e.g. Science Fiction). Names are unique ignoring
// case through NameKey, the lower-cased name kept by BeforeSave.
type Genre struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(200);not null;uniqueIndex:idx_genres_name" json:"name" validate:"required,max=200"`
	NameKey string `gorm:"type:varchar(200);not null;uniqueIndex:genre_name_case_insensitive_unique" json:"-" validate:"-"`
}

// GenreNameKey folds name for case-insensitive comparison. strings.ToLower
// handles non-ASCII letters the same on every driver.
func GenreNameKey(name string) string {
	return strings.ToLower(name)
}

func (g Genre) String() string { return g.Name }

func (g Genre) AbsoluteURL() string {
	return urls.MustReverse(urls.GenreDetail, idString(g.ID))
}

func (g *Genre) Validate() error {
	return validateModel(ModelGenre, g)
}

func (g *Genre) BeforeSave(tx *gorm.DB) error {
	g.NameKey = GenreNameKey(g.Name)
	return nil
}

func (g Genre) Display(field string) string {
	switch field {
	case FieldLabel, "name":
		return g.Name
	case "id":
		return idString(g.ID)
	}
	return EmptyValue
}
