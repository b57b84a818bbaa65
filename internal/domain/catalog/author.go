package catalog

import (
	"fmt"
	"time"

	"locallibrary/internal/urls"

	"gorm.io/gorm"
)

const ModelAuthor = "author"

// AuthorOrder is the default ordering for author listings.
const AuthorOrder = "last_name ASC, first_name ASC"

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"type:varchar(100);not null;index:idx_authors_name,priority:2" json:"first_name" validate:"required,max=100"`
	LastName    string     `gorm:"type:varchar(100);not null;index:idx_authors_name,priority:1" json:"last_name" validate:"required,max=100"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	DateOfDeath *time.Time `gorm:"type:date" json:"date_of_death"`
}

// String renders "last, first".
func (a Author) String() string {
	return fmt.Sprintf("%s, %s", a.LastName, a.FirstName)
}

func (a Author) AbsoluteURL() string {
	return urls.MustReverse(urls.AuthorDetail, idString(a.ID))
}

func (a *Author) Validate() error {
	return validateModel(ModelAuthor, a)
}

func (a *Author) BeforeSave(tx *gorm.DB) error {
	a.DateOfBirth = normalizeDate(a.DateOfBirth)
	a.DateOfDeath = normalizeDate(a.DateOfDeath)
	return nil
}

func (a Author) Display(field string) string {
	switch field {
	case FieldLabel:
		return a.String()
	case "id":
		return idString(a.ID)
	case "first_name":
		return a.FirstName
	case "last_name":
		return a.LastName
	case "date_of_birth":
		return formatDate(a.DateOfBirth)
	case "date_of_death":
		return formatDate(a.DateOfDeath)
	}
	return EmptyValue
}
