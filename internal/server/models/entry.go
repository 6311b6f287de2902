package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a dated monetary record tagged with free-form categories.
// Categories is an unordered set; the store returns it sorted by name and
// never nil.
type LedgerEntry struct {
	ID          string
	Description string
	Value       decimal.Decimal
	Date        time.Time
	Categories  []string
}
