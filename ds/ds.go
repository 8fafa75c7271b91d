package ds

import (
	"errors"
	"strings"
)

// AllCurrencies asks the ticker endpoint for every listed market at once.
const AllCurrencies = "ALL"

type Side string

const (
	Bid Side = "bid"
	Ask Side = "ask"
)

func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "bid", "buy":
		return Bid, nil
	case "ask", "sell":
		return Ask, nil
	}
	return "", errors.New("unknown order side: " + s)
}

// Record is a JSON object as decoded from the exchange.
type Record = map[string]interface{}

type OHLC struct {
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// MarketDetail covers the last 24 hours.
type MarketDetail struct {
	Low     float64
	High    float64
	Average float64
	Volume  float64
}

type Level struct {
	Price    float64
	Quantity float64
}

type Orderbook struct {
	Timestamp       int64
	OrderCurrency   string
	PaymentCurrency string
	Bids            []Level
	Asks            []Level
}

type Balance struct {
	Coin      float64
	CoinInUse float64
	Fiat      float64
	FiatInUse float64
}

// OrderDesc references a placed limit order in later lookups.
type OrderDesc struct {
	Side     Side
	Currency string
	OrderID  string
}
