package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionType is the type of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// TransactionTypes returns all valid transaction types.
func TransactionTypes() []TransactionType {
	return []TransactionType{TypeIncome, TypeExpense}
}

// Category is the spending category of a transaction.
type Category string

const (
	CategoryShopping       Category = "Shopping"
	CategoryBills          Category = "Bills"
	CategoryEMI            Category = "EMI"
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryOther          Category = "Other"
)

// Categories returns all valid transaction categories.
func Categories() []Category {
	return []Category{
		CategoryShopping,
		CategoryBills,
		CategoryEMI,
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryEducation,
		CategoryOther,
	}
}

// Transaction represents a single recorded income or expense event.
//
// Transactions are immutable once created, there are no update or
// delete operations for them.
type Transaction struct {
	DefaultModel
	UserID   uuid.UUID       `json:"userId"`
	Name     string          `json:"name"`
	Type     TransactionType `json:"type"`
	Category Category        `json:"category" gorm:"default:Other"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Date     time.Time       `json:"date"`
}

// BeforeSave validates the enumerated fields and normalizes the date.
//
// The "date must not be in the future" rule is enforced by the creation
// flow, not here: the model accepts historic imports with any date.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)

	if !slices.Contains(TransactionTypes(), t.Type) {
		return ErrTransactionTypeInvalid
	}

	if t.Category == "" {
		t.Category = CategoryOther
	}
	if !slices.Contains(Categories(), t.Category) {
		return ErrTransactionCategoryInvalid
	}

	if t.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}
