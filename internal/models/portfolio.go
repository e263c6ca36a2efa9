package models

// Position is a holding in one symbol. AvgPrice is the weighted average
// cost across all buys still held.
type Position struct {
	Shares   int64   `json:"shares"`
	AvgPrice float64 `json:"avgPrice"`
}

// PortfolioSnapshot is a detached copy of the ledger state returned to
// callers. Mutating it never affects the ledger.
type PortfolioSnapshot struct {
	Balance   float64             `json:"balance"`
	Positions map[string]Position `json:"portfolio"`
}
