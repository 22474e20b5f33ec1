package importer

import (
	"io"
	"time"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

// Format names a supported statement layout.
type Format string

const (
	// FormatLedger is the generic export layout:
	// date,description,amount,type?,category?,tags? (pipe-separated).
	FormatLedger Format = "ledger"
)

// Row is one parsed transaction candidate. It has no account yet and
// its category/tags are raw names awaiting resolution against state.
type Row struct {
	Date        time.Time
	Description string
	Amount      int64 // cents, always positive
	Type        state.TransactionType
	RawCategory string
	RawTags     []string
}

// ParseResult carries the accepted rows plus how many were dropped
// (bad amounts, and bad dates under the reject policy).
type ParseResult struct {
	Rows    []Row
	Skipped int
}

// Parser turns raw statement bytes into transaction candidates.
type Parser interface {
	Parse(r io.Reader) (*ParseResult, error)
}
