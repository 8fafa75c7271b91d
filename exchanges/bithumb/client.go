package bithumb

import (
	"net/http"
	"strings"
)

// Client is a Market and a Trader sharing one signed API.
type Client struct {
	*Market
	*Trader

	API *API
}

type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) { c.API.BaseURL = strings.TrimRight(base, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.API.Client = hc }
}

// WithPaymentCurrency sets the fiat side of orders and balances; KRW by default.
func WithPaymentCurrency(currency string) Option {
	return func(c *Client) { c.Trader.paymentCurrency = strings.ToUpper(currency) }
}

func New(accessKey string, secretKey string, opts ...Option) *Client {
	api := NewAPI(accessKey, secretKey)
	c := &Client{
		Market: NewMarket(api),
		Trader: NewTrader(api),
		API:    api,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
