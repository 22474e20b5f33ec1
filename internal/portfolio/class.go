package portfolio

import "github.com/MrJamesThe3rd/artha/internal/state"

// AssetClass is the high-level bucket a holding is aggregated under.
type AssetClass string

const (
	ClassEquity      AssetClass = "Equity"
	ClassMutualFunds AssetClass = "Mutual Funds"
	ClassFixedIncome AssetClass = "Fixed Income"
	ClassGold        AssetClass = "Gold"
	ClassCrypto      AssetClass = "Crypto"
	ClassOther       AssetClass = "Other Assets"
)

// Classes lists all asset classes in display order.
func Classes() []AssetClass {
	return []AssetClass{
		ClassEquity,
		ClassMutualFunds,
		ClassFixedIncome,
		ClassGold,
		ClassCrypto,
		ClassOther,
	}
}

// ClassOf maps a holding kind to its asset class.
func ClassOf(k state.HoldingKind) AssetClass {
	switch k {
	case state.HoldingEquity, state.HoldingRSU, state.HoldingESOP:
		return ClassEquity
	case state.HoldingMutualFund:
		return ClassMutualFunds
	case state.HoldingFD, state.HoldingP2P, state.HoldingBond,
		state.HoldingEPF, state.HoldingNPS, state.HoldingSuperannuation:
		return ClassFixedIncome
	case state.HoldingGold:
		return ClassGold
	case state.HoldingCrypto:
		return ClassCrypto
	}

	return ClassOther
}

// TypeLabel is the display name of a portfolio type.
func TypeLabel(t state.PortfolioType) string {
	switch t {
	case state.PortfolioBrokerage:
		return "Brokerage"
	case state.PortfolioFixedIncome:
		return "Fixed Income"
	case state.PortfolioEmployeeBenefit:
		return "Employee Benefit"
	case state.PortfolioOtherAsset:
		return "Other Asset"
	}

	return string(t)
}
