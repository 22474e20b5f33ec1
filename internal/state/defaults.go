package state

import "github.com/google/uuid"

// Names of the categories every fresh state is guaranteed to have.
// The importer and the transfer flow depend on these existing.
const (
	CategoryUncategorized = "Uncategorized"
	CategoryTransfer      = "Transfer"
)

var defaultCategories = []struct {
	name string
	icon string
}{
	{"Salary", "banknote"},
	{"Food & Dining", "utensils"},
	{"Transport", "car"},
	{"Shopping", "shopping-bag"},
	{"Bills & Utilities", "receipt"},
	{"Entertainment", "film"},
	{"Health", "heart-pulse"},
	{"Travel", "plane"},
	{CategoryTransfer, "arrow-left-right"},
	{CategoryUncategorized, "circle-help"},
}

// Default returns a fresh state with the seed categories and empty
// collections. Used on first run, when no persisted blob exists yet.
func Default() *App {
	app := &App{
		Accounts:         []*Account{},
		Transactions:     []*Transaction{},
		Portfolios:       []*Portfolio{},
		PortfolioHistory: []*PortfolioHistoryPoint{},
		Categories:       make([]*Category, 0, len(defaultCategories)),
		Tags:             []*Tag{},
	}

	for _, c := range defaultCategories {
		app.Categories = append(app.Categories, &Category{
			ID:   uuid.New(),
			Name: c.name,
			Icon: c.icon,
		})
	}

	return app
}
