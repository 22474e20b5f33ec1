package state

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountType classifies a cash account. Debt accounts (credit cards,
// loans) carry negative balances.
type AccountType string

const (
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	AccountCash       AccountType = "cash"
	AccountLoan       AccountType = "loan"
)

// Account is a cash account. Balance always equals StartingBalance
// plus the signed sum of its transactions dated on or after CreatedAt.
type Account struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Type            AccountType `json:"type"`
	Balance         int64       `json:"balance"` // cents
	StartingBalance int64       `json:"starting_balance"`
	Number          string      `json:"number,omitempty"` // masked display, e.g. "•••• 4821"
	CreatedAt       time.Time   `json:"created_at"`
}

// IsDebt reports whether the account type represents borrowed money.
func (a *Account) IsDebt() bool {
	return a.Type == AccountCreditCard || a.Type == AccountLoan
}

// TransactionType determines the sign a transaction applies to its account.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// Transaction is a single ledger entry. Amount is always positive;
// Type decides the sign. Transfers carry a destination account.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	ToAccountID *uuid.UUID      `json:"to_account_id,omitempty"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      int64           `json:"amount"` // cents, > 0
	Type        TransactionType `json:"type"`
	CategoryID  uuid.UUID       `json:"category_id"`
	TagIDs      []uuid.UUID     `json:"tag_ids,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Category names a spending bucket. Names are unique case-insensitively.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Icon string    `json:"icon,omitempty"`
}

// Tag is a free-form label, created lazily on first use.
type Tag struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

// PortfolioType classifies an investment account.
type PortfolioType string

const (
	PortfolioBrokerage       PortfolioType = "brokerage"
	PortfolioFixedIncome     PortfolioType = "fixed_income"
	PortfolioEmployeeBenefit PortfolioType = "employee_benefit"
	PortfolioOtherAsset      PortfolioType = "other_asset"
)

// Portfolio is a named grouping of holdings (one brokerage account,
// one EPF account, ...). A portfolio with no holdings does not exist:
// deleting the last holding deletes the portfolio.
type Portfolio struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Type     PortfolioType `json:"type"`
	Holdings []*Holding    `json:"holdings"`
}

// HoldingKind is the instrument type of a holding.
type HoldingKind string

const (
	HoldingEquity         HoldingKind = "equity"
	HoldingMutualFund     HoldingKind = "mutual_fund"
	HoldingBond           HoldingKind = "bond"
	HoldingFD             HoldingKind = "fd"
	HoldingP2P            HoldingKind = "p2p"
	HoldingEPF            HoldingKind = "epf"
	HoldingNPS            HoldingKind = "nps"
	HoldingSuperannuation HoldingKind = "superannuation"
	HoldingRSU            HoldingKind = "rsu"
	HoldingESOP           HoldingKind = "esop"
	HoldingGold           HoldingKind = "gold"
	HoldingCrypto         HoldingKind = "crypto"
	HoldingOther          HoldingKind = "other"
)

// Holding is a single instrument position inside a portfolio.
// Kind-specific data lives in the optional meta structs; exactly the
// one matching the kind is expected to be set.
type Holding struct {
	ID           uuid.UUID   `json:"id"`
	Kind         HoldingKind `json:"kind"`
	Name         string      `json:"name"`
	Ticker       string      `json:"ticker,omitempty"`
	Quantity     float64     `json:"quantity"`
	BuyValue     int64       `json:"buy_value"`     // cents
	CurrentValue int64       `json:"current_value"` // cents

	FixedIncome  *FixedIncomeMeta  `json:"fixed_income,omitempty"`
	Contribution *ContributionMeta `json:"contribution,omitempty"`
	Vesting      *VestingMeta      `json:"vesting,omitempty"`
}

// FixedIncomeMeta describes deposits and lending positions (fd, p2p).
type FixedIncomeMeta struct {
	Rate           float64   `json:"rate"` // annual interest, percent
	InvestmentDate time.Time `json:"investment_date"`
	MaturityDate   time.Time `json:"maturity_date"`
}

// ContributionMeta describes recurring retirement contributions
// (epf, nps, superannuation).
type ContributionMeta struct {
	Monthly int64 `json:"monthly"` // cents
}

// VestingMeta describes equity compensation grants (rsu, esop).
type VestingMeta struct {
	VestedUnits     float64   `json:"vested_units"`
	UnvestedUnits   float64   `json:"unvested_units"`
	GrantPrice      int64     `json:"grant_price"`  // cents per unit
	MarketPrice     int64     `json:"market_price"` // cents per unit
	NextVestingDate time.Time `json:"next_vesting_date,omitempty"`
}

// PortfolioHistoryPoint is one day's snapshot of the combined
// portfolio value, recorded whenever holdings change. The growth
// chart is drawn from this series.
type PortfolioHistoryPoint struct {
	Date          time.Time `json:"date"`
	CurrentValue  int64     `json:"current_value"`  // cents
	TotalInvested int64     `json:"total_invested"` // cents
}

// App is the whole application state: the single object every
// operation reads and mutates, persisted as one JSON blob.
type App struct {
	Accounts         []*Account               `json:"accounts"`
	Transactions     []*Transaction           `json:"transactions"`
	Portfolios       []*Portfolio             `json:"portfolios"`
	PortfolioHistory []*PortfolioHistoryPoint `json:"portfolio_history"`
	Categories       []*Category              `json:"categories"`
	Tags             []*Tag                   `json:"tags"`
}

// Account returns the account with the given id, or nil.
func (a *App) Account(id uuid.UUID) *Account {
	for _, acc := range a.Accounts {
		if acc.ID == id {
			return acc
		}
	}

	return nil
}

// Transaction returns the transaction with the given id, or nil.
func (a *App) Transaction(id uuid.UUID) *Transaction {
	for _, tx := range a.Transactions {
		if tx.ID == id {
			return tx
		}
	}

	return nil
}

// Portfolio returns the portfolio with the given id, or nil.
func (a *App) Portfolio(id uuid.UUID) *Portfolio {
	for _, p := range a.Portfolios {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// Category returns the category with the given id, or nil.
func (a *App) Category(id uuid.UUID) *Category {
	for _, c := range a.Categories {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// CategoryByName looks a category up by name, case-insensitively.
func (a *App) CategoryByName(name string) *Category {
	for _, c := range a.Categories {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}

	return nil
}

// Tag returns the tag with the given id, or nil.
func (a *App) Tag(id uuid.UUID) *Tag {
	for _, t := range a.Tags {
		if t.ID == id {
			return t
		}
	}

	return nil
}

// TagByName looks a tag up by name, case-insensitively.
func (a *App) TagByName(name string) *Tag {
	for _, t := range a.Tags {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}

	return nil
}
