package domain

import "time"

type ExpenseCategory string

const (
	ExpenseCleaning    ExpenseCategory = "cleaning"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseUtilities   ExpenseCategory = "utilities"
	ExpenseCondo       ExpenseCategory = "condo"
	ExpenseTaxes       ExpenseCategory = "taxes"
	ExpenseSupplies    ExpenseCategory = "supplies"
	ExpenseOther       ExpenseCategory = "other"
)

type Expense struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Unit        string          `json:"unit" gorm:"index"`
	Category    ExpenseCategory `json:"category" gorm:"index"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date" gorm:"type:date;index"`
	Paid        bool            `json:"paid"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ExpenseFilter struct {
	Unit     string
	Category ExpenseCategory
	From     time.Time
	To       time.Time
}
