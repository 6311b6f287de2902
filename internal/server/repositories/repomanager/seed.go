package repomanager

import (
	"time"

	"github.com/dmitrijs2005/mywallet/internal/server/models"
	"github.com/shopspring/decimal"
)

// DemoPassword is the password of the seeded demo user.
const DemoPassword = "demo-password"

var demoUser = models.User{
	ID:    "8f6c2f3e-3b1e-4c8e-9a53-0d6f2b1c7a01",
	Name:  "Demo User",
	Email: "demo@mywallet.local",
}

func demoEntries() []models.LedgerEntry {
	return []models.LedgerEntry{
		{
			ID:          "5d1e0a52-8c3f-4f7b-b1e2-6a9d4c2f1e01",
			Description: "Salary",
			Value:       decimal.RequireFromString("2500.00"),
			Date:        time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			Categories:  []string{"income", "salary"},
		},
		{
			ID:          "5d1e0a52-8c3f-4f7b-b1e2-6a9d4c2f1e02",
			Description: "Weekly groceries",
			Value:       decimal.RequireFromString("-84.35"),
			Date:        time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
			Categories:  []string{"food", "groceries"},
		},
		{
			ID:          "5d1e0a52-8c3f-4f7b-b1e2-6a9d4c2f1e03",
			Description: "Rent",
			Value:       decimal.RequireFromString("-950.00"),
			Date:        time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			Categories:  []string{"housing"},
		},
	}
}
