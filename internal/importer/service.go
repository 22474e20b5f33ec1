package importer

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/config"
	"github.com/MrJamesThe3rd/artha/internal/ledger"
	"github.com/MrJamesThe3rd/artha/internal/matching"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

// tagPalette is the fixed color rotation for tags created during import.
var tagPalette = []string{
	"#F0857D", "#5BB974", "#1D4ED8", "#A78BFA", "#FBBF24", "#FB7185",
}

type Service struct {
	ledgerParser Parser
	matcher      *matching.Service
}

func NewService(dateFallback config.DateFallback) *Service {
	return &Service{
		ledgerParser: NewCSVParser(dateFallback),
		matcher:      matching.NewService(),
	}
}

// Parse dispatches to the parser for the given format.
func (s *Service) Parse(format Format, r io.Reader) (*ParseResult, error) {
	var parser Parser

	switch format {
	case FormatLedger:
		parser = s.ledgerParser
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return parser.Parse(r)
}

// Resolve turns raw rows into ledger params against the given state:
// categories are matched case-insensitively (unmatched rows land in
// Uncategorized; import never creates categories), rows without a
// category column are categorized from past transactions with similar
// descriptions, and unmatched tags are created on the fly with a
// palette color.
func (s *Service) Resolve(app *state.App, accountID uuid.UUID, rows []Row) []ledger.CreateTransactionParams {
	var fallbackCategory uuid.UUID
	if c := app.CategoryByName(state.CategoryUncategorized); c != nil {
		fallbackCategory = c.ID
	}

	params := make([]ledger.CreateTransactionParams, 0, len(rows))

	for _, row := range rows {
		categoryID := fallbackCategory

		switch {
		case row.RawCategory != "":
			if c := app.CategoryByName(row.RawCategory); c != nil {
				categoryID = c.ID
			}
		default:
			if suggested := s.matcher.Suggest(app, row.Description); suggested != uuid.Nil {
				categoryID = suggested
			}
		}

		var tagIDs []uuid.UUID
		for _, name := range row.RawTags {
			tagIDs = append(tagIDs, s.resolveTag(app, name))
		}

		params = append(params, ledger.CreateTransactionParams{
			AccountID:   accountID,
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			Type:        row.Type,
			CategoryID:  categoryID,
			TagIDs:      tagIDs,
		})
	}

	return params
}

func (s *Service) resolveTag(app *state.App, name string) uuid.UUID {
	if t := app.TagByName(name); t != nil {
		return t.ID
	}

	tag := &state.Tag{
		ID:    uuid.New(),
		Name:  name,
		Color: tagPalette[len(app.Tags)%len(tagPalette)],
	}
	app.Tags = append(app.Tags, tag)

	return tag.ID
}

// Apply feeds resolved rows through the standard transaction path on
// the chosen account and reports how many were created. There is no
// rollback: rows applied before a failure stay applied, and the
// caller persists once for the whole batch.
func (s *Service) Apply(app *state.App, accountID uuid.UUID, rows []Row) (int, error) {
	if app.Account(accountID) == nil {
		return 0, ledger.ErrNotFound
	}

	l := ledger.New(app)
	created := 0

	for _, p := range s.Resolve(app, accountID, rows) {
		if _, err := l.CreateTransaction(p); err != nil {
			return created, fmt.Errorf("importing row: %w", err)
		}

		created++
	}

	return created, nil
}
