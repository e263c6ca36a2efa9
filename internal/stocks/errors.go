package stocks

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuote reports that the provider returned no usable quote
	// record for the symbol.
	ErrInvalidQuote = errors.New("no quote data for symbol")

	// ErrInvalidTrade rejects a trade with a missing symbol or non-positive
	// shares or price.
	ErrInvalidTrade = errors.New("invalid trade")

	// ErrInsufficientFunds rejects a buy whose cost exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares rejects a sell of more shares than held.
	ErrInsufficientShares = errors.New("insufficient shares")
)

// FetchError wraps a transport-level failure talking to the quote provider.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("quote fetch for %s failed: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
