package bithumb

import (
	"context"
	"net/url"
	"strconv"

	"golang.org/x/exp/slices"

	"bithumbbot/ds"
)

const (
	MaxOrderbookDepth     = 20
	DefaultOrderbookDepth = 5
)

// Market covers the public endpoints and needs no credentials.
type Market struct {
	transport PublicTransport
}

func NewMarket(transport PublicTransport) *Market {
	return &Market{transport: transport}
}

func (m *Market) ticker(ctx context.Context, op string, currency string) (ds.Record, error) {
	resp, err := m.transport.Public(ctx, "ticker", currency, nil)
	if err != nil {
		return nil, err
	}
	if err = checkStatus(op, resp); err != nil {
		return nil, err
	}
	return dataObject(op, resp)
}

func (m *Market) singleTicker(ctx context.Context, op string, currency string) (ds.Record, error) {
	if currency == "" || currency == ds.AllCurrencies {
		return nil, invalidErr(op, "need a single currency, got %q", currency)
	}
	return m.ticker(ctx, op, currency)
}

// allTickers drops the response timestamp and any non-object entries.
func (m *Market) allTickers(ctx context.Context, op string) (map[string]ds.Record, error) {
	data, err := m.ticker(ctx, op, ds.AllCurrencies)
	if err != nil {
		return nil, err
	}

	tickers := make(map[string]ds.Record, len(data))
	for currency, v := range data {
		if currency == "date" {
			continue
		}
		if rec, ok := v.(map[string]interface{}); ok {
			tickers[currency] = rec
		}
	}
	return tickers, nil
}

// Tickers lists the currencies traded on the exchange, sorted.
func (m *Market) Tickers(ctx context.Context) ([]string, error) {
	tickers, err := m.allTickers(ctx, "tickers")
	if err != nil {
		return nil, err
	}

	currencies := make([]string, 0, len(tickers))
	for currency := range tickers {
		currencies = append(currencies, currency)
	}
	slices.Sort(currencies)
	return currencies, nil
}

func ohlcOf(op string, rec ds.Record) (ds.OHLC, error) {
	var (
		o   ds.OHLC
		err error
	)
	if o.Open, err = floatField(op, rec, "opening_price"); err != nil {
		return ds.OHLC{}, err
	}
	if o.High, err = floatField(op, rec, "max_price"); err != nil {
		return ds.OHLC{}, err
	}
	if o.Low, err = floatField(op, rec, "min_price"); err != nil {
		return ds.OHLC{}, err
	}
	if o.Close, err = floatField(op, rec, "closing_price"); err != nil {
		return ds.OHLC{}, err
	}
	return o, nil
}

// OHLC returns the last 24h open, high, low and close of one currency.
func (m *Market) OHLC(ctx context.Context, currency string) (ds.OHLC, error) {
	data, err := m.singleTicker(ctx, "ohlc", currency)
	if err != nil {
		return ds.OHLC{}, err
	}
	return ohlcOf("ohlc", data)
}

// AllOHLC is OHLC for every market. Entries without prices are not markets and are skipped.
func (m *Market) AllOHLC(ctx context.Context) (map[string]ds.OHLC, error) {
	tickers, err := m.allTickers(ctx, "ohlc")
	if err != nil {
		return nil, err
	}

	result := make(map[string]ds.OHLC, len(tickers))
	for currency, rec := range tickers {
		if _, ok := rec["closing_price"]; !ok {
			continue
		}
		o, err := ohlcOf("ohlc "+currency, rec)
		if err != nil {
			return nil, err
		}
		result[currency] = o
	}
	return result, nil
}

func (m *Market) MarketDetail(ctx context.Context, currency string) (ds.MarketDetail, error) {
	const op = "market detail"

	data, err := m.singleTicker(ctx, op, currency)
	if err != nil {
		return ds.MarketDetail{}, err
	}

	var d ds.MarketDetail
	if d.Low, err = floatField(op, data, "min_price"); err != nil {
		return ds.MarketDetail{}, err
	}
	if d.High, err = floatField(op, data, "max_price"); err != nil {
		return ds.MarketDetail{}, err
	}
	if d.Average, err = floatField(op, data, "average_price"); err != nil {
		return ds.MarketDetail{}, err
	}
	if d.Volume, err = floatField(op, data, "units_traded"); err != nil {
		return ds.MarketDetail{}, err
	}
	return d, nil
}

// CurrentPrice is the last traded price.
func (m *Market) CurrentPrice(ctx context.Context, currency string) (float64, error) {
	data, err := m.singleTicker(ctx, "current price", currency)
	if err != nil {
		return 0, err
	}
	return floatField("current price", data, "closing_price")
}

// AllCurrentPrices returns the raw ticker record of every market.
func (m *Market) AllCurrentPrices(ctx context.Context) (map[string]ds.Record, error) {
	return m.allTickers(ctx, "current price")
}

func levelsOf(op string, v interface{}, depth int) ([]ds.Level, error) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, decodeErr(op, "ladder is not a list")
	}
	if len(raw) > depth {
		raw = raw[:depth]
	}

	levels := make([]ds.Level, 0, len(raw))
	for _, entry := range raw {
		rec, ok := entry.(map[string]interface{})
		if !ok {
			return nil, decodeErr(op, "ladder entry is not an object")
		}
		price, err := floatField(op, rec, "price")
		if err != nil {
			return nil, err
		}
		quantity, err := floatField(op, rec, "quantity")
		if err != nil {
			return nil, err
		}
		levels = append(levels, ds.Level{Price: price, Quantity: quantity})
	}
	return levels, nil
}

// Orderbook returns up to depth bid and ask levels; depth is capped at MaxOrderbookDepth.
func (m *Market) Orderbook(ctx context.Context, currency string, depth int) (ds.Orderbook, error) {
	const op = "orderbook"

	if currency == "" || currency == ds.AllCurrencies {
		return ds.Orderbook{}, invalidErr(op, "need a single currency, got %q", currency)
	}
	if depth <= 0 {
		depth = DefaultOrderbookDepth
	}
	if depth > MaxOrderbookDepth {
		depth = MaxOrderbookDepth
	}

	params := url.Values{}
	params.Set("count", strconv.Itoa(depth))
	resp, err := m.transport.Public(ctx, "orderbook", currency, params)
	if err != nil {
		return ds.Orderbook{}, err
	}
	if err = checkStatus(op, resp); err != nil {
		return ds.Orderbook{}, err
	}
	data, err := dataObject(op, resp)
	if err != nil {
		return ds.Orderbook{}, err
	}

	book := ds.Orderbook{}
	book.OrderCurrency, _ = data["order_currency"].(string)
	book.PaymentCurrency, _ = data["payment_currency"].(string)
	if ts, ok := toFloat(data["timestamp"]); ok {
		book.Timestamp = int64(ts)
	}
	if book.Bids, err = levelsOf(op, data["bids"], depth); err != nil {
		return ds.Orderbook{}, err
	}
	if book.Asks, err = levelsOf(op, data["asks"], depth); err != nil {
		return ds.Orderbook{}, err
	}
	return book, nil
}
