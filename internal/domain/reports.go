package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CRStatusCount is one row of the CR pipeline breakdown.
type CRStatusCount struct {
	Status CRStatus `db:"status" json:"status"`
	Count  int      `db:"count" json:"count"`
}

// OutstandingRow is one developer's billed/paid/outstanding position.
type OutstandingRow struct {
	DeveloperID        uuid.UUID       `db:"developer_id" json:"developer_id"`
	DeveloperName      string          `db:"developer_name" json:"developer_name"`
	TotalBilled        decimal.Decimal `db:"total_billed" json:"total_billed"`
	TotalPaid          decimal.Decimal `db:"total_paid" json:"total_paid"`
	OutstandingBalance decimal.Decimal `db:"outstanding_balance" json:"outstanding_balance"`
}
