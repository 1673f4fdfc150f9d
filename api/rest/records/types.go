package records

import (
	"context"
	"time"

	"codeberg.org/finpilot/server/api/rest/pagination"
	"codeberg.org/finpilot/server/finpilot/records"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	exportFilename  = "finpilot_export.json"
)

// record operations the dashboard needs; satisfied by *records.Store
type Store interface {
	LoadFiltered(ctx context.Context, c records.Category, ownerID string) []records.Record
	AddTransaction(ctx context.Context, ownerID string, in records.NewTransaction) (records.Record, error)
	DeleteTransaction(ctx context.Context, ownerID, id string) error
	DeleteAsset(ctx context.Context, ownerID, id string) error
	Export(ctx context.Context, ownerID string) (*records.Document, error)
}

type CreateTransactionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency" binding:"required,len=3"`
	Category      string          `json:"category" binding:"required"`
	MerchantName  string          `json:"merchant_name" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
	City          string          `json:"city"`
	Country       string          `json:"country"`
	Tags          []string        `json:"tags"`
	Timestamp     *time.Time      `json:"timestamp,omitempty"`
}

type ListResponse struct {
	Records    []records.Record `json:"records"`
	Pagination pagination.Meta  `json:"pagination"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
