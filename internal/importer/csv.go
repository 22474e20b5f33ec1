package importer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/artha/internal/config"
	enc "github.com/MrJamesThe3rd/artha/internal/encoding"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

// Column positions of the ledger CSV layout. Only the first three are
// required per row.
const (
	colDate = iota
	colDescription
	colAmount
	colType
	colCategory
	colTags

	minColumns = 3
)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
}

// CSVParser reads the ledger CSV layout. Lines are split on plain
// commas (no quoted-comma support, matching the format's producers);
// a header line is recognized by containing "date" or "amount".
type CSVParser struct {
	dateFallback config.DateFallback
	now          func() time.Time
}

func NewCSVParser(dateFallback config.DateFallback) *CSVParser {
	return &CSVParser{
		dateFallback: dateFallback,
		now:          time.Now,
	}
}

func (p *CSVParser) Parse(r io.Reader) (*ParseResult, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	scanner := bufio.NewScanner(utf8r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	result := &ParseResult{}
	first := true

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if first {
			first = false

			if isHeader(line) {
				continue
			}
		}

		row, ok := p.parseLine(line)
		if !ok {
			result.Skipped++
			continue
		}

		result.Rows = append(result.Rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	return result, nil
}

func isHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "date") || strings.Contains(lower, "amount")
}

func (p *CSVParser) parseLine(line string) (Row, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < minColumns {
		return Row{}, false
	}

	raw, err := decimal.NewFromString(strings.TrimSpace(fields[colAmount]))
	if err != nil {
		return Row{}, false
	}

	amount := raw.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	txType := typeOf(cell(fields, colType), amount)
	if amount < 0 {
		amount = -amount
	}

	if amount == 0 {
		return Row{}, false
	}

	date, ok := p.parseDate(cell(fields, colDate))
	if !ok {
		return Row{}, false
	}

	row := Row{
		Date:        date,
		Description: unquote(cell(fields, colDescription)),
		Amount:      amount,
		Type:        txType,
		RawCategory: cell(fields, colCategory),
	}

	for _, tag := range strings.Split(cell(fields, colTags), "|") {
		if tag = strings.TrimSpace(tag); tag != "" {
			row.RawTags = append(row.RawTags, tag)
		}
	}

	return row, true
}

// typeOf picks the transaction type: an explicit marker wins,
// otherwise the amount's sign decides.
func typeOf(explicit string, amount int64) state.TransactionType {
	lower := strings.ToLower(explicit)
	if strings.Contains(lower, "income") || strings.Contains(lower, "credit") {
		return state.TypeIncome
	}

	if amount < 0 {
		return state.TypeExpense
	}

	return state.TypeIncome
}

// parseDate tries the known layouts; what happens to unparseable
// dates is a policy choice, not hardcoded leniency.
func (p *CSVParser) parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if p.dateFallback == config.DateFallbackReject {
		return time.Time{}, false
	}

	return p.now(), true
}

func cell(fields []string, idx int) string {
	if idx >= len(fields) {
		return ""
	}

	return strings.TrimSpace(fields[idx])
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}

	return strings.TrimSpace(s)
}
