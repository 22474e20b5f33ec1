package portfolio

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyName  = errors.New("name is required")
	ErrNoHoldings = errors.New("a portfolio needs at least one holding")
)

// Books applies portfolio and holding mutations to a state object.
// Like the ledger, it mutates in place and leaves persistence to the
// caller.
type Books struct {
	app *state.App
	now func() time.Time
}

func New(app *state.App) *Books {
	return &Books{app: app, now: time.Now}
}

// snapshot records today's totals in the portfolio history after a
// mutation. Multiple changes on one day collapse into a single point.
func (b *Books) snapshot() {
	total := Summarize(b.app.Portfolios)

	now := b.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	point := &state.PortfolioHistoryPoint{
		Date:          day,
		CurrentValue:  total.Current,
		TotalInvested: total.Invested,
	}

	if n := len(b.app.PortfolioHistory); n > 0 && b.app.PortfolioHistory[n-1].Date.Equal(day) {
		b.app.PortfolioHistory[n-1] = point
		return
	}

	b.app.PortfolioHistory = append(b.app.PortfolioHistory, point)
}

type HoldingParams struct {
	Kind         state.HoldingKind
	Name         string
	Ticker       string
	Quantity     float64
	BuyValue     int64
	CurrentValue int64

	FixedIncome  *state.FixedIncomeMeta
	Contribution *state.ContributionMeta
	Vesting      *state.VestingMeta
}

type CreatePortfolioParams struct {
	Name     string
	Type     state.PortfolioType
	Holdings []HoldingParams
}

// CreatePortfolio adds a portfolio with its initial holdings. Empty
// portfolios are not allowed; they only disappear via the delete
// cascade, so they cannot be created either.
func (b *Books) CreatePortfolio(p CreatePortfolioParams) (*state.Portfolio, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if len(p.Holdings) == 0 {
		return nil, ErrNoHoldings
	}

	pf := &state.Portfolio{
		ID:   uuid.New(),
		Name: name,
		Type: p.Type,
	}

	for _, hp := range p.Holdings {
		h, err := newHolding(hp)
		if err != nil {
			return nil, err
		}

		pf.Holdings = append(pf.Holdings, h)
	}

	b.app.Portfolios = append(b.app.Portfolios, pf)
	b.snapshot()

	return pf, nil
}

// AddHolding appends a holding to an existing portfolio.
func (b *Books) AddHolding(portfolioID uuid.UUID, p HoldingParams) (*state.Holding, error) {
	pf := b.app.Portfolio(portfolioID)
	if pf == nil {
		return nil, ErrNotFound
	}

	h, err := newHolding(p)
	if err != nil {
		return nil, err
	}

	pf.Holdings = append(pf.Holdings, h)
	b.snapshot()

	return h, nil
}

// DeleteHolding removes a holding from its portfolio. Deleting the
// last holding deletes the portfolio itself.
func (b *Books) DeleteHolding(holdingID uuid.UUID) error {
	for _, pf := range b.app.Portfolios {
		for i, h := range pf.Holdings {
			if h.ID != holdingID {
				continue
			}

			pf.Holdings = append(pf.Holdings[:i], pf.Holdings[i+1:]...)

			if len(pf.Holdings) == 0 {
				return b.DeletePortfolio(pf.ID)
			}

			b.snapshot()

			return nil
		}
	}

	return ErrNotFound
}

// DeletePortfolio removes a portfolio and everything in it.
func (b *Books) DeletePortfolio(id uuid.UUID) error {
	for i, pf := range b.app.Portfolios {
		if pf.ID == id {
			b.app.Portfolios = append(b.app.Portfolios[:i], b.app.Portfolios[i+1:]...)
			b.snapshot()

			return nil
		}
	}

	return ErrNotFound
}

func newHolding(p HoldingParams) (*state.Holding, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	return &state.Holding{
		ID:           uuid.New(),
		Kind:         p.Kind,
		Name:         name,
		Ticker:       strings.TrimSpace(p.Ticker),
		Quantity:     p.Quantity,
		BuyValue:     p.BuyValue,
		CurrentValue: p.CurrentValue,
		FixedIncome:  p.FixedIncome,
		Contribution: p.Contribution,
		Vesting:      p.Vesting,
	}, nil
}
