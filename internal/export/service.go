package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/artha/internal/ledger"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

const header = "date,description,amount,type,category,tags"

// Filter narrows which transactions are exported. Zero values mean
// no restriction.
type Filter struct {
	AccountID uuid.UUID
	From      time.Time
	To        time.Time
}

// Service writes transactions as CSV in the same layout the importer
// reads, so an export can be re-imported elsewhere.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Write streams matching transactions to w, oldest first.
func (s *Service) Write(w io.Writer, app *state.App, filter Filter) (int, error) {
	txs := make([]*state.Transaction, 0, len(app.Transactions))

	for _, tx := range app.Transactions {
		if filter.AccountID != uuid.Nil && ledger.SignedAmount(tx, filter.AccountID) == 0 {
			continue
		}

		if !filter.From.IsZero() && tx.Date.Before(filter.From) {
			continue
		}

		if !filter.To.IsZero() && tx.Date.After(filter.To) {
			continue
		}

		txs = append(txs, tx)
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})

	if _, err := fmt.Fprintln(w, header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		if _, err := fmt.Fprintln(w, s.line(app, tx)); err != nil {
			return 0, fmt.Errorf("writing row: %w", err)
		}
	}

	return len(txs), nil
}

func (s *Service) line(app *state.App, tx *state.Transaction) string {
	amount := decimal.NewFromInt(tx.Amount).Div(decimal.NewFromInt(100))
	if tx.Type == state.TypeExpense {
		amount = amount.Neg()
	}

	category := ""
	if c := app.Category(tx.CategoryID); c != nil {
		category = c.Name
	}

	tags := make([]string, 0, len(tx.TagIDs))
	for _, id := range tx.TagIDs {
		if tag := app.Tag(id); tag != nil {
			tags = append(tags, tag.Name)
		}
	}

	// The layout splits on plain commas, so embedded ones are dropped
	// from free-text fields.
	return strings.Join([]string{
		tx.Date.Format(time.DateOnly),
		sanitize(tx.Description),
		amount.StringFixed(2),
		string(tx.Type),
		sanitize(category),
		strings.Join(tags, "|"),
	}, ",")
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

// Filename names a download for the given day.
func Filename(ref time.Time) string {
	return fmt.Sprintf("transactions_%s.csv", ref.Format("20060102"))
}
