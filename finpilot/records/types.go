package records

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidOwner    = errors.New("owner id is required")
	ErrUnknownCategory = errors.New("unknown category")
)

// a named collection of same-kind records
type Category string

const (
	CategoryTransactions Category = "transactions"
	CategoryAssets       Category = "financial_assets"
	CategoryStrategies   Category = "investment_strategies"
)

// fixed category order used by search results and prompts
var Categories = []Category{CategoryTransactions, CategoryAssets, CategoryStrategies}

const (
	FieldOwnerID       = "owner_id"
	FieldLegacyOwnerID = "user_id"
	FieldKeywords      = "keywords"
)

// one entity of the store: field name to decoded JSON value
// numbers decode as json.Number so rewrites keep their original text
type Record map[string]any

// the whole JSON document; keys other than the three categories are kept verbatim
type Document struct {
	Transactions []Record
	Assets       []Record
	Strategies   []Record

	extra map[string]json.RawMessage
}

// input for a transaction added through the API
type NewTransaction struct {
	Amount        decimal.Decimal
	Currency      string
	Category      string
	MerchantName  string
	PaymentMethod string
	City          string
	Country       string
	Tags          []string
	Timestamp     time.Time
}

// file-backed record store guarded by an advisory lock file
type Store struct {
	path       string
	lockPath   string
	retryDelay time.Duration
}

// transaction view used by prompts, listings and analytics
type Transaction struct {
	ID            string
	OwnerID       string
	Timestamp     string
	Amount        decimal.Decimal
	AmountText    string
	Currency      string
	MerchantName  string
	Category      string
	PaymentMethod string
	City          string
	Country       string
}

// financial asset view
type Asset struct {
	ID                    string
	OwnerID               string
	Name                  string
	Type                  string
	Issuer                string
	RiskRating            decimal.Decimal
	RiskRatingText        string
	ExpectedReturn        decimal.Decimal
	ExpectedReturnText    string
	Tenure                string
	MinimumInvestment     decimal.Decimal
	HistoricalPerformance map[string]any
}

// investment strategy view
type Strategy struct {
	ID               string
	Name             string
	RiskProfile      string
	TimeHorizon      string
	TargetReturn     decimal.Decimal
	TargetReturnText string
	Allocation       map[string]decimal.Decimal
	AllocationJSON   string
}
