package stocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ninotmecheast-source/trivia/internal/metrics"
	"github.com/ninotmecheast-source/trivia/internal/models"
)

// DefaultStartingBalance seeds new ledgers.
const DefaultStartingBalance = 10000

// Ledger tracks a single cash balance and the positions bought with it. The
// lock is held across check and mutation, so concurrent trades cannot spend
// the same funds or shares twice.
type Ledger struct {
	mu        sync.Mutex
	balance   float64
	positions map[string]models.Position
}

// NewLedger creates a ledger with the given starting cash balance. A balance
// of zero or less falls back to DefaultStartingBalance.
func NewLedger(startingBalance float64) *Ledger {
	if startingBalance <= 0 {
		startingBalance = DefaultStartingBalance
	}
	return &Ledger{
		balance:   startingBalance,
		positions: make(map[string]models.Position),
	}
}

// Buy purchases shares at price, rejecting the trade with
// ErrInsufficientFunds when the cost exceeds the cash balance. The position
// keeps the weighted average cost across all buys.
func (l *Ledger) Buy(symbol string, shares int64, price float64) (models.PortfolioSnapshot, error) {
	key, err := tradeKey(symbol, shares, price)
	if err != nil {
		return models.PortfolioSnapshot{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cost := float64(shares) * price
	if cost > l.balance {
		metrics.RecordTrade("buy", "rejected")
		return models.PortfolioSnapshot{}, fmt.Errorf("%w: cost %.2f exceeds balance %.2f",
			ErrInsufficientFunds, cost, l.balance)
	}

	position := l.positions[key]
	totalShares := position.Shares + shares
	position.AvgPrice = (position.AvgPrice*float64(position.Shares) + cost) / float64(totalShares)
	position.Shares = totalShares
	l.positions[key] = position
	l.balance -= cost

	metrics.RecordTrade("buy", "ok")
	return l.snapshotLocked(), nil
}

// Sell liquidates shares at price, rejecting the trade with
// ErrInsufficientShares when the position is missing or smaller than the
// sale. A position sold down to exactly zero shares is removed.
func (l *Ledger) Sell(symbol string, shares int64, price float64) (models.PortfolioSnapshot, error) {
	key, err := tradeKey(symbol, shares, price)
	if err != nil {
		return models.PortfolioSnapshot{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	position, ok := l.positions[key]
	if !ok || position.Shares < shares {
		metrics.RecordTrade("sell", "rejected")
		return models.PortfolioSnapshot{}, fmt.Errorf("%w: holding %d %s, selling %d",
			ErrInsufficientShares, position.Shares, key, shares)
	}

	position.Shares -= shares
	if position.Shares == 0 {
		delete(l.positions, key)
	} else {
		l.positions[key] = position
	}
	l.balance += float64(shares) * price

	metrics.RecordTrade("sell", "ok")
	return l.snapshotLocked(), nil
}

// Snapshot returns a deep copy of the balance and all positions. Mutating
// the returned snapshot never touches ledger state.
func (l *Ledger) Snapshot() models.PortfolioSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() models.PortfolioSnapshot {
	positions := make(map[string]models.Position, len(l.positions))
	for symbol, position := range l.positions {
		positions[symbol] = position
	}
	return models.PortfolioSnapshot{
		Balance:   l.balance,
		Positions: positions,
	}
}

func tradeKey(symbol string, shares int64, price float64) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(symbol))
	if key == "" || shares <= 0 || price <= 0 {
		return "", fmt.Errorf("%w: symbol %q, shares %d, price %g",
			ErrInvalidTrade, symbol, shares, price)
	}
	return key, nil
}
