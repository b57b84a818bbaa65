package catalog

import "locallibrary/internal/urls"

const ModelLanguage = "language"

// Language a book is written in (e.g. English, Hindi).
type Language struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(200);not null;uniqueIndex:idx_languages_name" json:"name" validate:"required,max=200"`
}

func (l Language) String() string { return l.Name }

func (l Language) AbsoluteURL() string {
	return urls.MustReverse(urls.LanguageDetail, idString(l.ID))
}

func (l *Language) Validate() error {
	return validateModel(ModelLanguage, l)
}

func (l Language) Display(field string) string {
	switch field {
	case FieldLabel, "name":
		return l.Name
	case "id":
		return idString(l.ID)
	}
	return EmptyValue
}
