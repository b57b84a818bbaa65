package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ModelBookInstance = "bookinstance"

// BookInstanceOrder lists copies by due date, undated copies last. The
// explicit IS NULL key keeps PostgreSQL and SQLite in agreement.
const BookInstanceOrder = "due_back IS NULL, due_back ASC"

// BookInstance is a physical copy of a book that can be borrowed.
type BookInstance struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BookID *uint `gorm:"index" json:"book_id"`
	Book   *Book `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"book,omitempty" validate:"-"`

	Imprint string     `gorm:"type:varchar(200);not null" json:"imprint" validate:"required,max=200"`
	DueBack *time.Time `gorm:"type:date;index" json:"due_back"`
	Status  LoanStatus `gorm:"type:varchar(1);not null;default:'M';index" json:"status" validate:"omitempty,loan_status"`
}

// String renders "{id} ({book title})".
func (bi BookInstance) String() string {
	title := ""
	if bi.Book != nil {
		title = bi.Book.Title
	}
	return fmt.Sprintf("%s (%s)", bi.ID, title)
}

func (bi *BookInstance) Validate() error {
	return validateModel(ModelBookInstance, bi)
}

func (bi *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// BeforeSave stores a blank status as the default.
func (bi *BookInstance) BeforeSave(tx *gorm.DB) error {
	if bi.Status == "" {
		bi.Status = DefaultLoanStatus
	}
	bi.DueBack = normalizeDate(bi.DueBack)
	return nil
}

func (bi BookInstance) Display(field string) string {
	switch field {
	case FieldLabel:
		return bi.String()
	case "id":
		return bi.ID.String()
	case "book":
		if bi.Book == nil {
			return EmptyValue
		}
		return bi.Book.String()
	case "imprint":
		return bi.Imprint
	case "status":
		if bi.Status == "" {
			return DefaultLoanStatus.Label()
		}
		return bi.Status.Label()
	case "due_back":
		return formatDate(bi.DueBack)
	}
	return EmptyValue
}
