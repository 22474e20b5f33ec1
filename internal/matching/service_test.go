package matching_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/artha/internal/matching"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

func TestService_Suggest(t *testing.T) {
	food := uuid.New()
	transport := uuid.New()

	app := &state.App{
		Transactions: []*state.Transaction{
			{Description: "Starbucks Coffee", CategoryID: food, Type: state.TypeExpense},
			{Description: "starbucks coffee", CategoryID: food, Type: state.TypeExpense},
			{Description: "Starbucks Coffee", CategoryID: transport, Type: state.TypeExpense},
			{Description: "Uber", CategoryID: transport, Type: state.TypeExpense},
			// Transfers never vote.
			{Description: "Starbucks Coffee", CategoryID: transport, Type: state.TypeTransfer},
		},
	}

	svc := matching.NewService()

	t.Run("ExactMatchMajorityWins", func(t *testing.T) {
		assert.Equal(t, food, svc.Suggest(app, "STARBUCKS COFFEE"))
	})

	t.Run("SubstringFallback", func(t *testing.T) {
		assert.Equal(t, transport, svc.Suggest(app, "Uber Trip 4821"))
	})

	t.Run("NoHistory", func(t *testing.T) {
		assert.Equal(t, uuid.Nil, svc.Suggest(app, "Completely Unknown"))
	})

	t.Run("EmptyDescription", func(t *testing.T) {
		assert.Equal(t, uuid.Nil, svc.Suggest(app, "   "))
	})
}
