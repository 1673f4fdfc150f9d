package records

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// builds the transaction view; every projected field must be present
func AsTransaction(r Record) (Transaction, error) {
	var t Transaction
	var err error

	if t.Timestamp, err = requireString(r, "timestamp"); err != nil {
		return Transaction{}, err
	}
	if t.AmountText, err = requireNumberText(r, "amount"); err != nil {
		return Transaction{}, err
	}
	if t.Currency, err = requireString(r, "currency"); err != nil {
		return Transaction{}, err
	}
	if t.MerchantName, err = requireString(r, "merchant_name"); err != nil {
		return Transaction{}, err
	}
	if t.Category, err = requireString(r, "category"); err != nil {
		return Transaction{}, err
	}

	t.Amount, _ = r.Number("amount")
	t.ID = r.ID(CategoryTransactions)
	t.OwnerID = r.OwnerID()
	t.PaymentMethod, _ = r.String("payment_method")

	if loc, ok := r.Map("location"); ok {
		t.City, _ = loc["city"].(string)
		t.Country, _ = loc["country"].(string)
	}

	return t, nil
}

// returns the date part of the ISO timestamp
func (t Transaction) Date() string {
	date, _, _ := strings.Cut(t.Timestamp, "T")
	return date
}

// builds the asset view
func AsAsset(r Record) (Asset, error) {
	var a Asset
	var err error

	if a.Name, err = requireString(r, "name"); err != nil {
		return Asset{}, err
	}
	if a.Type, err = requireString(r, "type"); err != nil {
		return Asset{}, err
	}
	if a.RiskRatingText, err = requireNumberText(r, "risk_rating"); err != nil {
		return Asset{}, err
	}
	if a.ExpectedReturnText, err = requireNumberText(r, "expected_return"); err != nil {
		return Asset{}, err
	}
	if a.Tenure, err = requireString(r, "tenure"); err != nil {
		return Asset{}, err
	}

	a.RiskRating, _ = r.Number("risk_rating")
	a.ExpectedReturn, _ = r.Number("expected_return")
	a.MinimumInvestment, _ = r.Number("minimum_investment_amount")
	a.ID = r.ID(CategoryAssets)
	a.OwnerID = r.OwnerID()
	a.Issuer, _ = r.String("issuer")

	if details, ok := r.Map("financial_details"); ok {
		a.HistoricalPerformance, _ = details["historical_performance"].(map[string]any)
	}

	return a, nil
}

// builds the strategy view; allocation values must all be numeric
func AsStrategy(r Record) (Strategy, error) {
	var s Strategy
	var err error

	if s.Name, err = requireString(r, "name"); err != nil {
		return Strategy{}, err
	}
	if s.RiskProfile, err = requireString(r, "risk_profile"); err != nil {
		return Strategy{}, err
	}
	if s.TimeHorizon, err = requireString(r, "time_horizon"); err != nil {
		return Strategy{}, err
	}
	if s.TargetReturnText, err = requireNumberText(r, "target_annual_return"); err != nil {
		return Strategy{}, err
	}

	blueprint, ok := r.Map("allocation_blueprint")
	if !ok {
		return Strategy{}, fmt.Errorf("%w: allocation_blueprint", ErrMissingField)
	}

	s.Allocation = make(map[string]decimal.Decimal, len(blueprint))
	for asset, pct := range blueprint {
		d, ok := toDecimal(pct)
		if !ok {
			return Strategy{}, fmt.Errorf("%w: allocation_blueprint.%s is not numeric", ErrMissingField, asset)
		}
		s.Allocation[asset] = d
	}

	// map keys marshal sorted
	encoded, err := json.Marshal(blueprint)
	if err != nil {
		return Strategy{}, fmt.Errorf("failed to encode allocation: %w", err)
	}

	s.AllocationJSON = string(encoded)
	s.TargetReturn, _ = r.Number("target_annual_return")
	s.ID = r.ID(CategoryStrategies)

	return s, nil
}

func requireString(r Record, key string) (string, error) {
	s, ok := r.String(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}

	return s, nil
}

func requireNumberText(r Record, key string) (string, error) {
	text, ok := r.NumberText(key)
	if ok {
		return text, nil
	}

	// some generated documents carry numbers as strings
	if s, ok := r.String(key); ok && s != "" {
		return s, nil
	}

	return "", fmt.Errorf("%w: %s", ErrMissingField, key)
}
