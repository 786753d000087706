package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrNegativeCost = errors.New("cost must not be negative")
	ErrInvalidCost  = errors.New("cost must be a finite number")
)

// PicosPerDollar is the fixed-point scale of Cost and Price. Pico-dollars
// hold sub-nano per-token rates such as 3.125e-08 exactly.
const PicosPerDollar = 1_000_000_000_000

// Cost is a non-negative amount of US dollars held as integer pico-dollars,
// so sums are exact and independent of order.
type Cost int64

// NewCost converts a dollar amount, rounding to the nearest pico-dollar.
func NewCost(usd float64) (Cost, error) {
	if math.IsNaN(usd) || math.IsInf(usd, 0) {
		return 0, ErrInvalidCost
	}
	if usd < 0 {
		return 0, fmt.Errorf("%w: %v", ErrNegativeCost, usd)
	}
	return Cost(math.Round(usd * PicosPerDollar)), nil
}

// MustCost is NewCost for constants known to be valid.
func MustCost(usd float64) Cost {
	c, err := NewCost(usd)
	if err != nil {
		panic(err)
	}
	return c
}

// USD returns the amount in dollars.
func (c Cost) USD() float64 {
	return float64(c) / PicosPerDollar
}

func (c Cost) Add(other Cost) Cost {
	return c + other
}

// String renders dollars with two decimals; amounts below half a cent render as $0.00.
func (c Cost) String() string {
	usd := c.USD()
	if math.Abs(usd) < 0.005 {
		usd = 0
	}
	return fmt.Sprintf("$%.2f", usd)
}

// MarshalJSON encodes the amount as a plain dollar number.
func (c Cost) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, c.USD(), 'f', -1, 64), nil
}

// Price is a non-negative per-token rate in pico-dollars. Price times a
// token count is a Cost with no rounding.
type Price int64

// NewPrice converts a dollars-per-token rate.
func NewPrice(usdPerToken float64) (Price, error) {
	c, err := NewCost(usdPerToken)
	if err != nil {
		return 0, err
	}
	return Price(c), nil
}

// MustPrice is NewPrice for table constants.
func MustPrice(usdPerToken float64) Price {
	p, err := NewPrice(usdPerToken)
	if err != nil {
		panic(err)
	}
	return p
}

// Times returns the cost of n tokens at this rate.
func (p Price) Times(n int64) Cost {
	return Cost(int64(p) * n)
}

// PerMillion returns the rate in dollars per million tokens.
func (p Price) PerMillion() float64 {
	return float64(p) * 1_000_000 / PicosPerDollar
}

func (p Price) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(p)/PicosPerDollar, 'g', -1, 64), nil
}
