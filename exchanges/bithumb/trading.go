package bithumb

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"bithumbbot/ds"
)

const (
	DefaultPaymentCurrency = "KRW"
	depositPageURL         = "https://www.bithumb.com/coin_inout/deposit/"
)

// Trader covers the signed account and order endpoints.
type Trader struct {
	transport       PrivateTransport
	paymentCurrency string
}

func NewTrader(transport PrivateTransport) *Trader {
	return &Trader{transport: transport, paymentCurrency: DefaultPaymentCurrency}
}

func (t *Trader) PaymentCurrency() string { return t.paymentCurrency }

// call fails on every status except OK.
func (t *Trader) call(ctx context.Context, op string, endpoint string, params url.Values) (ds.Record, error) {
	resp, err := t.transport.Private(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	if err = checkStatus(op, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (t *Trader) TradingFee(ctx context.Context) (float64, error) {
	const op = "trading fee"

	resp, err := t.call(ctx, op, "/info/account", nil)
	if err != nil {
		return 0, err
	}
	data, err := firstRecord(op, resp)
	if err != nil {
		return 0, err
	}
	return floatField(op, data, "trade_fee")
}

// Balance returns coin and fiat balances, free and locked in open orders.
func (t *Trader) Balance(ctx context.Context, currency string) (ds.Balance, error) {
	const op = "balance"

	params := url.Values{}
	params.Set("currency", currency)
	resp, err := t.call(ctx, op, "/info/balance", params)
	if err != nil {
		return ds.Balance{}, err
	}
	data, err := dataObject(op, resp)
	if err != nil {
		return ds.Balance{}, err
	}

	coin := strings.ToLower(currency)
	fiat := strings.ToLower(t.paymentCurrency)

	var b ds.Balance
	if b.Coin, err = floatField(op, data, "available_"+coin); err != nil {
		return ds.Balance{}, err
	}
	if b.CoinInUse, err = floatField(op, data, "in_use_"+coin); err != nil {
		return ds.Balance{}, err
	}
	if b.Fiat, err = floatField(op, data, "available_"+fiat); err != nil {
		return ds.Balance{}, err
	}
	if b.FiatInUse, err = floatField(op, data, "in_use_"+fiat); err != nil {
		return ds.Balance{}, err
	}
	return b, nil
}

// WalletAddress returns the deposit address, "address / tag" for tagged
// ledgers, or the deposit page when no address has been issued yet.
func (t *Trader) WalletAddress(ctx context.Context, currency string) (string, error) {
	const op = "wallet address"

	params := url.Values{}
	params.Set("currency", currency)
	resp, err := t.call(ctx, op, "/info/wallet_address", params)
	if err != nil {
		return "", err
	}
	data, err := dataObject(op, resp)
	if err != nil {
		return "", err
	}
	addr, ok := data["wallet_address"].(string)
	if !ok {
		return "", decodeErr(op, "missing field %q", "wallet_address")
	}

	if addr == "" {
		return depositPageURL + currency, nil
	}
	amp := strings.Index(addr, "&")
	if amp < 0 {
		return addr, nil
	}
	return addr[:amp] + " / " + addr[strings.Index(addr, "=")+1:], nil
}

func orderUnits(op string, units float64) (string, error) {
	u := TruncateUnits(units)
	if !u.IsPositive() {
		return "", invalidErr(op, "units %v truncate to %s", units, u.String())
	}
	return u.String(), nil
}

func validSide(op string, side ds.Side) error {
	if side != ds.Bid && side != ds.Ask {
		return invalidErr(op, "unknown order side %q", side)
	}
	return nil
}

func orderID(op string, resp ds.Record) (string, error) {
	id, ok := resp["order_id"].(string)
	if !ok || id == "" {
		return "", decodeErr(op, "response has no order_id")
	}
	return id, nil
}

func (t *Trader) PlaceLimitOrder(ctx context.Context, currency string, price float64, units float64, side ds.Side) (ds.OrderDesc, error) {
	const op = "limit order"

	if err := validSide(op, side); err != nil {
		return ds.OrderDesc{}, err
	}
	unitStr, err := orderUnits(op, units)
	if err != nil {
		return ds.OrderDesc{}, err
	}
	priceStr, err := orderPrice(op, price)
	if err != nil {
		return ds.OrderDesc{}, err
	}

	params := url.Values{}
	params.Set("order_currency", currency)
	params.Set("payment_currency", t.paymentCurrency)
	params.Set("type", string(side))
	params.Set("price", priceStr)
	params.Set("units", unitStr)

	resp, err := t.call(ctx, op, "/trade/place", params)
	if err != nil {
		return ds.OrderDesc{}, err
	}
	id, err := orderID(op, resp)
	if err != nil {
		return ds.OrderDesc{}, err
	}

	log.Info("New order", "currency", currency, "side", side, "units", unitStr, "price", price, "order_id", id)

	return ds.OrderDesc{Side: side, Currency: currency, OrderID: id}, nil
}

func (t *Trader) BuyLimitOrder(ctx context.Context, currency string, price float64, units float64) (ds.OrderDesc, error) {
	return t.PlaceLimitOrder(ctx, currency, price, units, ds.Bid)
}

func (t *Trader) SellLimitOrder(ctx context.Context, currency string, price float64, units float64) (ds.OrderDesc, error) {
	return t.PlaceLimitOrder(ctx, currency, price, units, ds.Ask)
}

// PlaceMarketOrder returns the new order id.
func (t *Trader) PlaceMarketOrder(ctx context.Context, currency string, units float64, side ds.Side) (string, error) {
	const op = "market order"

	if err := validSide(op, side); err != nil {
		return "", err
	}
	unitStr, err := orderUnits(op, units)
	if err != nil {
		return "", err
	}

	endpoint := "/trade/market_buy"
	if side == ds.Ask {
		endpoint = "/trade/market_sell"
	}

	params := url.Values{}
	params.Set("order_currency", currency)
	params.Set("payment_currency", t.paymentCurrency)
	params.Set("units", unitStr)

	resp, err := t.call(ctx, op, endpoint, params)
	if err != nil {
		return "", err
	}
	id, err := orderID(op, resp)
	if err != nil {
		return "", err
	}

	log.Info("New market order", "currency", currency, "side", side, "units", unitStr, "order_id", id)

	return id, nil
}

func (t *Trader) BuyMarketOrder(ctx context.Context, currency string, units float64) (string, error) {
	return t.PlaceMarketOrder(ctx, currency, units, ds.Bid)
}

func (t *Trader) SellMarketOrder(ctx context.Context, currency string, units float64) (string, error) {
	return t.PlaceMarketOrder(ctx, currency, units, ds.Ask)
}

func orderParams(currency string, side ds.Side, id string) url.Values {
	params := url.Values{}
	params.Set("order_currency", currency)
	if side != "" {
		params.Set("type", string(side))
	}
	if id != "" {
		params.Set("order_id", id)
	}
	return params
}

// OutstandingUnits is the unfilled size of an open order. It fails with
// ErrNotFound once the exchange no longer knows the order.
func (t *Trader) OutstandingUnits(ctx context.Context, desc ds.OrderDesc) (float64, error) {
	const op = "outstanding units"

	resp, err := t.call(ctx, op, "/info/orders", orderParams(desc.Currency, desc.Side, desc.OrderID))
	if err != nil {
		return 0, err
	}
	rec, err := firstRecord(op, resp)
	if err != nil {
		return 0, err
	}
	return floatField(op, rec, "units_remaining")
}

// OpenOrders lists open orders; none at all is an empty list, not an error.
func (t *Trader) OpenOrders(ctx context.Context, currency string) ([]ds.Record, error) {
	const op = "open orders"

	resp, err := t.call(ctx, op, "/info/orders", orderParams(currency, "", ""))
	if errors.Is(err, ErrNotFound) {
		return []ds.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	raw, ok := resp["data"].([]interface{})
	if !ok {
		return nil, decodeErr(op, "data is not a list")
	}
	orders := make([]ds.Record, 0, len(raw))
	for _, entry := range raw {
		rec, ok := entry.(map[string]interface{})
		if !ok {
			return nil, decodeErr(op, "order entry is not an object")
		}
		orders = append(orders, rec)
	}
	return orders, nil
}

func (t *Trader) CompletedOrder(ctx context.Context, currency string, side ds.Side, orderID string) (ds.Record, error) {
	const op = "completed order"

	resp, err := t.call(ctx, op, "/info/order_detail", orderParams(currency, side, orderID))
	if err != nil {
		return nil, err
	}
	return firstRecord(op, resp)
}

// CancelOrder reports true only for status OK; other statuses come back as
// false together with the status error.
func (t *Trader) CancelOrder(ctx context.Context, currency string, side ds.Side, orderID string) (bool, error) {
	const op = "cancel order"

	resp, err := t.transport.Private(ctx, "/trade/cancel", orderParams(currency, side, orderID))
	if err != nil {
		log.Error("Canceling failed", "currency", currency, "order_id", orderID, "error", err)
		return false, err
	}
	if err = checkStatus(op, resp); err != nil {
		log.Error("Canceling failed", "currency", currency, "order_id", orderID, "error", err)
		return false, err
	}

	log.Info("Order canceled", "currency", currency, "side", side, "order_id", orderID)
	return true, nil
}

// Withdraw sends coins out; destination is the tag some ledgers need and is
// only sent when set.
func (t *Trader) Withdraw(ctx context.Context, currency string, address string, units float64, destination string) (ds.Record, error) {
	const op = "withdraw"

	unitStr, err := orderUnits(op, units)
	if err != nil {
		return nil, err
	}
	if address == "" {
		return nil, invalidErr(op, "empty address")
	}

	params := url.Values{}
	params.Set("currency", currency)
	params.Set("address", address)
	params.Set("units", unitStr)
	if destination != "" {
		params.Set("destination", destination)
	}

	resp, err := t.call(ctx, op, "/trade/btc_withdrawal", params)
	if err != nil {
		return nil, err
	}

	log.Info("Withdrawal requested", "currency", currency, "address", address, "units", unitStr)
	return resp, nil
}
