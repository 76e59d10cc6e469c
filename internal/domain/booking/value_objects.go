package booking

import (
	"strings"

	"fiksit-api/internal/pkg/errs"
)

var (
	ErrNegativeAmount   = errs.New("amount cannot be negative")
	ErrEmptyServiceName = errs.New("service name cannot be empty")
	ErrInvalidDuration  = errs.New("duration must be positive")
)

// Money is an amount in whole kroner. All derived amounts are computed from
// the unrounded base exactly once, never re-derived from rounded values.
type Money struct {
	kroner int64
}

func NewMoney(kroner int64) (Money, error) {
	if kroner < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{kroner: kroner}, nil
}

func MustMoney(kroner int64) Money {
	m, err := NewMoney(kroner)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Kroner() int64 {
	return m.kroner
}

func (m Money) Add(other Money) Money {
	return Money{kroner: m.kroner + other.kroner}
}

func (m Money) Sub(other Money) Money {
	return Money{kroner: m.kroner - other.kroner}
}

func (m Money) IsZero() bool {
	return m.kroner == 0
}

// LineItem is one service on a booking: what, for how much, for how long.
type LineItem struct {
	name            string
	price           Money
	durationMinutes int
}

func NewLineItem(name string, price Money, durationMinutes int) (LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LineItem{}, ErrEmptyServiceName
	}
	if durationMinutes <= 0 {
		return LineItem{}, ErrInvalidDuration
	}
	return LineItem{name: name, price: price, durationMinutes: durationMinutes}, nil
}

func ReconstructLineItem(name string, price Money, durationMinutes int) LineItem {
	return LineItem{name: name, price: price, durationMinutes: durationMinutes}
}

func (li LineItem) Name() string         { return li.name }
func (li LineItem) Price() Money         { return li.price }
func (li LineItem) DurationMinutes() int { return li.durationMinutes }

type LineItems []LineItem

func (lis LineItems) TotalPrice() Money {
	var total Money
	for _, li := range lis {
		total = total.Add(li.price)
	}
	return total
}

func (lis LineItems) TotalDurationMinutes() int {
	total := 0
	for _, li := range lis {
		total += li.durationMinutes
	}
	return total
}
