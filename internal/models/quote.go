package models

// Quote is the latest price snapshot for one ticker symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	PercentChange float64 `json:"percentChange"`
}
