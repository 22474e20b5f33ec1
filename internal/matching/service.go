package matching

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

// Service suggests categories for transaction descriptions based on
// how similar descriptions were categorized before. It has no storage
// of its own: history is the mapping.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Suggest returns the category most often used for transactions with a
// matching description, or uuid.Nil when there is no usable history.
// Matching is case-insensitive; an exact description match is tried
// first, then a substring match in either direction.
func (s *Service) Suggest(app *state.App, description string) uuid.UUID {
	description = strings.ToLower(strings.TrimSpace(description))
	if description == "" {
		return uuid.Nil
	}

	exact := make(map[uuid.UUID]int)
	partial := make(map[uuid.UUID]int)

	for _, tx := range app.Transactions {
		if tx.CategoryID == uuid.Nil || tx.Type == state.TypeTransfer {
			continue
		}

		past := strings.ToLower(strings.TrimSpace(tx.Description))
		if past == "" {
			continue
		}

		switch {
		case past == description:
			exact[tx.CategoryID]++
		case strings.Contains(past, description) || strings.Contains(description, past):
			partial[tx.CategoryID]++
		}
	}

	if id := mostFrequent(exact); id != uuid.Nil {
		return id
	}

	return mostFrequent(partial)
}

func mostFrequent(counts map[uuid.UUID]int) uuid.UUID {
	var (
		best     uuid.UUID
		bestHits int
	)

	for id, hits := range counts {
		if hits > bestHits {
			best, bestHits = id, hits
		}
	}

	return best
}
