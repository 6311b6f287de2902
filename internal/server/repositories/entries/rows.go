package entries

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mywallet/internal/server/models"
	"github.com/shopspring/decimal"
)

// entryRow is one line of the entry/category join: an entry repeated once
// per category, or once with a NULL category when it has none.
type entryRow struct {
	ID          string          `db:"id"`
	Description string          `db:"description"`
	Value       decimal.Decimal `db:"value"`
	Date        timestamp       `db:"date"`
	Category    sql.NullString  `db:"category"`
}

// collect groups joined rows by entry id, keeping the order in which
// entries first appear.
func collect(rows []entryRow) []models.LedgerEntry {
	result := []models.LedgerEntry{}
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		i, ok := index[row.ID]
		if !ok {
			i = len(result)
			index[row.ID] = i
			result = append(result, models.LedgerEntry{
				ID:          row.ID,
				Description: row.Description,
				Value:       row.Value,
				Date:        row.Date.Time,
				Categories:  []string{},
			})
		}
		if row.Category.Valid {
			result[i].Categories = append(result[i].Categories, row.Category.String)
		}
	}

	return result
}

// layouts the SQLite driver may hand back when it does not convert a
// TIMESTAMP column itself
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timestamp scans a date column from either driver into UTC.
type timestamp struct {
	time.Time
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported date value of type %T", src)
	}
}

func (t *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized date value %q", s)
}
