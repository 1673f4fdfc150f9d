package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	timestampLayout = "2006-01-02T15:04:05"
	firstPerfYear   = 2020
)

var (
	currencies     = []string{"INR", "USD", "EUR", "GBP"}
	paymentMethods = []string{"credit card", "debit card", "UPI", "net banking", "cash", "wallet"}
	cities         = []string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Kolkata", "Pune", "Ahmedabad"}
	assetTypes     = []string{"mutual_fund", "FD", "bond", "equity", "ETF"}
	blueprintKeys  = []string{"FD", "mutual_funds", "bonds", "equity", "gold"}
	assetCountries = []string{"India", "India", "India", "USA", "UK", "Singapore"}

	// spending categories in generation order; merchants are drawn per category
	spendCategories = []string{"dining", "groceries", "electronics", "travel", "entertainment", "utilities", "healthcare", "education", "investment", "shopping"}
	merchants       = map[string][]string{
		"dining":        {"Zomato", "Swiggy", "FoodPanda", "Uber Eats", "Domino's", "Pizza Hut", "McDonald's", "KFC"},
		"groceries":     {"BigBasket", "Grofers", "Amazon Fresh", "Reliance Fresh", "D-Mart", "More", "Spencer's"},
		"electronics":   {"Amazon", "Flipkart", "Croma", "Reliance Digital", "Vijay Sales", "Poorvika"},
		"travel":        {"IRCTC", "MakeMyTrip", "Goibibo", "Yatra", "Cleartrip", "Airbnb", "Booking.com"},
		"entertainment": {"Netflix", "Amazon Prime", "Hotstar", "BookMyShow", "PVR", "INOX"},
		"utilities":     {"BSES", "Tata Power", "Airtel", "Jio", "Vodafone", "Idea", "MTNL"},
		"healthcare":    {"Apollo", "Fortis", "Max", "MedPlus", "1mg", "Netmeds", "Pharmeasy"},
		"education":     {"Coursera", "Udemy", "edX", "Unacademy", "Byju's", "WhiteHat Jr"},
		"investment":    {"Zerodha", "Upstox", "Groww", "Paytm Money", "ICICI Direct", "HDFC Securities"},
		"shopping":      {"Amazon", "Flipkart", "Myntra", "Ajio", "Nykaa", "Purplle", "FirstCry"},
	}

	firstNames = []string{"Aarav", "Priya", "Rohan", "Ananya", "Vikram", "Meera", "Arjun", "Kavya", "Nikhil", "Sara", "James", "Emma"}
	lastNames  = []string{"Sharma", "Iyer", "Patel", "Reddy", "Gupta", "Nair", "Khan", "Das", "Mehta", "Singh", "Walker", "Brown"}
	companies  = []string{"Apex", "Horizon", "Lotus", "Sterling", "Meridian", "Banyan", "Crescent", "Summit", "Indus", "Northstar"}
	suffixes   = []string{"Capital", "Financial", "Holdings", "Investments", "Securities", "Partners"}
)

// deterministic source of values and ids for one seed
type generator struct {
	rng *rand.Rand
	src *rand.ChaCha8
	now time.Time
}

func newGenerator(seed int64, now time.Time) *generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))

	src := rand.NewChaCha8(key)
	return &generator{rng: rand.New(src), src: src, now: now}
}

// dataset written by the seed command
type Dataset struct {
	Emails   []string
	Document *records.Document
}

// builds users, their transactions and assets, and the shared strategies
func Generate(flags config.SeedFlags, now time.Time) (*Dataset, error) {
	if flags.Users < 0 || flags.TransactionsPerUser < 0 || flags.AssetsPerUser < 0 || flags.Strategies < 0 {
		return nil, fmt.Errorf("counts must not be negative")
	}

	g := newGenerator(flags.Seed, now)
	emails := g.emails(flags.Users)

	var txs, assets, strategies []records.Record
	for _, email := range emails {
		for range flags.TransactionsPerUser {
			txs = append(txs, g.transaction(email))
		}
		for range flags.AssetsPerUser {
			assets = append(assets, g.asset(email))
		}
	}

	for range flags.Strategies {
		strategies = append(strategies, g.strategy())
	}

	doc := &records.Document{}
	doc.SetRecords(records.CategoryTransactions, txs)
	doc.SetRecords(records.CategoryAssets, assets)
	doc.SetRecords(records.CategoryStrategies, strategies)

	return &Dataset{Emails: emails, Document: doc}, nil
}

func (g *generator) emails(n int) []string {
	seen := make(map[string]int, n)
	out := make([]string, 0, n)

	for range n {
		base := strings.ToLower(pick(g.rng, firstNames) + "." + pick(g.rng, lastNames))

		email := base + "@example.com"
		if count := seen[base]; count > 0 {
			email = fmt.Sprintf("%s%d@example.com", base, count+1)
		}
		seen[base]++

		out = append(out, email)
	}

	return out
}

func (g *generator) transaction(owner string) records.Record {
	category := pick(g.rng, spendCategories)
	amount := g.uniform(100, 10000, 2)
	ts := g.timestampWithin(365 * 24 * time.Hour)

	items := make([]any, 0, 3)
	for i := range g.rng.IntN(3) + 1 {
		items = append(items, map[string]any{
			"product":  fmt.Sprintf("Item %c", 'A'+i),
			"quantity": g.rng.IntN(5) + 1,
			"price":    json.Number(amount.Div(decimal.NewFromInt(int64(i + 1))).StringFixed(2)),
		})
	}

	frequency := ""
	if g.rng.Float64() < 0.2 {
		frequency = pick(g.rng, []string{"daily", "weekly", "monthly", "yearly"})
	}

	return records.Record{
		"transaction_id":           g.uuid(),
		records.FieldOwnerID:       owner,
		"timestamp":                ts,
		"amount":                   json.Number(amount.StringFixed(2)),
		"currency":                 pick(g.rng, currencies),
		"category":                 category,
		"merchant_name":            pick(g.rng, merchants[category]),
		"payment_method":           pick(g.rng, paymentMethods),
		"tags":                     g.sample([]string{"personal", "business", "recurring", "urgent", "gift"}, 0, 3),
		records.FieldKeywords:      []any{"transaction", "finance", "payment"},
		"created_at":               ts,
		"updated_at":               ts,
		"expiry_date":              "",
		"compatible_user_profiles": g.sample([]string{"frequent_shopper", "tech_savvy", "budget_conscious", "luxury_shopper"}, 1, 3),
		"prerequisites":            []any{},
		"location": map[string]any{
			"geocoordinates": []any{
				json.Number(g.uniform(8, 37, 6).String()),
				json.Number(g.uniform(68, 97, 6).String()),
			},
			"city":    pick(g.rng, cities),
			"country": "India",
		},
		"recurrence": map[string]any{
			"is_recurring": g.rng.Float64() < 0.2,
			"frequency":    frequency,
		},
		"metadata": map[string]any{
			"invoice_details":       fmt.Sprintf("INV-%d", 1000+g.rng.IntN(9000)),
			"itemized_breakdown":    items,
			"loyalty_points_earned": 10 + g.rng.IntN(91),
		},
	}
}

func (g *generator) asset(owner string) records.Record {
	assetType := pick(g.rng, assetTypes)

	history := map[string]any{}
	for year := firstPerfYear; year < g.now.Year(); year++ {
		history[strconv.Itoa(year)] = g.uniform(5, 20, 1).String() + "%"
	}

	return records.Record{
		"asset_id":                  g.uuid(),
		records.FieldOwnerID:        owner,
		"type":                      assetType,
		"name":                      g.company() + " " + titleCase(strings.ReplaceAll(assetType, "_", " ")),
		"issuer":                    g.company(),
		"country":                   pick(g.rng, assetCountries),
		"risk_rating":               g.rng.IntN(5) + 1,
		"expected_return":           json.Number(g.uniform(5, 15, 2).String()),
		"liquidity":                 pick(g.rng, []string{"low", "medium", "high"}),
		"minimum_investment_amount": pick(g.rng, []int{1000, 5000, 10000, 50000, 100000}),
		"tenure":                    fmt.Sprintf("%d years", g.rng.IntN(10)+1),
		records.FieldKeywords:       []any{"investment", assetType, "finance"},
		"created_at":                g.timestampThisYear(),
		"updated_at":                g.timestampThisYear(),
		"expiry_date":               "",
		"compatible_user_profiles":  g.sample([]string{"investors", "retirees", "young_professionals", "risk_averse"}, 1, 3),
		"prerequisites":             g.sample([]string{"Demat account", "KYC", "Bank account"}, 1, 2),
		"financial_details": map[string]any{
			"historical_performance": history,
			"tax_implications": map[string]any{
				"short_term": fmt.Sprintf("%d%%", 10+g.rng.IntN(21)),
				"long_term":  fmt.Sprintf("%d%% after 1 year", 5+g.rng.IntN(16)),
			},
			"key_features": g.sample([]string{"dividend-paying", "tax-saving", "growth-oriented", "income-focused", "index-tracking", "sector-specific"}, 2, 4),
		},
		"metadata": map[string]any{
			"regulatory_documents": []any{fmt.Sprintf("https://example.com/prospectus_%d.pdf", 1000+g.rng.IntN(9000))},
			"tags":                 g.sample([]string{"ESG", "high-growth", "stable", "aggressive", "conservative"}, 1, 3),
		},
	}
}

func (g *generator) strategy() records.Record {
	blueprint := make(map[string]any, len(blueprintKeys))
	for _, key := range blueprintKeys {
		blueprint[key] = 10 + g.rng.IntN(31)
	}

	return records.Record{
		"strategy_id":              g.uuid(),
		"name":                     fmt.Sprintf("%s %s Plan", g.company(), pick(g.rng, []string{"Retirement", "Growth", "Income", "Balanced"})),
		"risk_profile":             pick(g.rng, []string{"conservative", "moderate", "aggressive"}),
		"time_horizon":             pick(g.rng, []string{"short-term", "medium-term", "long-term"}),
		"target_annual_return":     json.Number(g.uniform(5, 15, 1).String()),
		"allocation_blueprint":     blueprint,
		records.FieldKeywords:      []any{"investment", "strategy", "portfolio"},
		"created_at":               g.timestampThisYear(),
		"updated_at":               g.timestampThisYear(),
		"expiry_date":              "",
		"compatible_user_profiles": g.sample([]string{"retirees", "risk_averse", "young_professionals", "high_net_worth"}, 1, 3),
		"prerequisites":            g.sample([]string{"KYC", "Demat account", "Bank account"}, 1, 2),
		"performance_metrics": map[string]any{
			"backtested_results":    fmt.Sprintf("%s%% CAGR over %d years", g.uniform(5, 15, 1).String(), 5+g.rng.IntN(11)),
			"volatility_score":      json.Number(g.uniform(1, 5, 1).String()),
			"tax_efficiency_rating": pick(g.rng, []string{"low", "medium", "high"}),
		},
		"user_requirements": map[string]any{
			"minimum_capital":           pick(g.rng, []int{10000, 50000, 100000, 500000, 1000000}),
			"recommended_account_types": g.sample([]string{"Demat", "Savings", "NPS", "PPF"}, 1, 3),
		},
	}
}

func (g *generator) uuid() string {
	return uuid.Must(uuid.NewRandomFromReader(g.src)).String()
}

func (g *generator) company() string {
	return pick(g.rng, companies) + " " + pick(g.rng, suffixes)
}

// uniform value in [lo, hi) rounded to places
func (g *generator) uniform(lo, hi float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(lo + g.rng.Float64()*(hi-lo)).Round(places)
}

func (g *generator) timestampWithin(window time.Duration) string {
	offset := time.Duration(g.rng.Int64N(int64(window)))
	return g.now.Add(-offset).Format(timestampLayout)
}

func (g *generator) timestampThisYear() string {
	start := time.Date(g.now.Year(), time.January, 1, 0, 0, 0, 0, g.now.Location())
	return g.timestampWithin(max(g.now.Sub(start), time.Second))
}

// between lo and hi distinct entries, in draw order
func (g *generator) sample(from []string, lo, hi int) []any {
	n := lo + g.rng.IntN(hi-lo+1)

	out := make([]any, 0, n)
	for _, i := range g.rng.Perm(len(from))[:n] {
		out = append(out, from[i])
	}

	return out
}

func pick[T any](rng *rand.Rand, from []T) T {
	return from[rng.IntN(len(from))]
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}

	return strings.Join(words, " ")
}
