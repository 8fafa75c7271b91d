package bithumb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func startTestServer(t *testing.T, handler http.HandlerFunc) *API {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api := NewAPI("access", "secret")
	api.BaseURL = srv.URL
	api.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return api
}

func TestAPI_Public(t *testing.T) {
	api := startTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/public/orderbook/BTC" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("count") != "5" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		io.WriteString(w, `{"status":"0000","data":{}}`)
	})

	resp, err := api.Public(context.Background(), "orderbook", "BTC", url.Values{"count": {"5"}})
	if err != nil {
		t.Fatalf("Public: %v", err)
	}
	if resp["status"] != "0000" {
		t.Errorf("unexpected response %v", resp)
	}
}

func TestAPI_PrivateSignsRequest(t *testing.T) {
	api := startTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/info/balance" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		if form.Get("endpoint") != "/info/balance" || form.Get("currency") != "BTC" {
			t.Errorf("unexpected form %v", form)
		}
		if r.Header.Get("Api-Key") != "access" || r.Header.Get("Api-Nonce") != "1700000000000" {
			t.Errorf("unexpected headers %v", r.Header)
		}
		want := Sign("secret", "/info/balance", string(body), "1700000000000")
		if r.Header.Get("Api-Sign") != want {
			t.Errorf("Api-Sign = %q, want %q", r.Header.Get("Api-Sign"), want)
		}
		io.WriteString(w, `{"status":"0000","data":{}}`)
	})

	if _, err := api.Private(context.Background(), "/info/balance", url.Values{"currency": {"BTC"}}); err != nil {
		t.Fatalf("Private: %v", err)
	}
}

func TestAPI_PrivateWithoutKeys(t *testing.T) {
	api := NewAPI("", "")
	api.BaseURL = "http://127.0.0.1:1"

	_, err := api.Private(context.Background(), "/info/account", nil)
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestAPI_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, ErrAuth},
		{"server error", http.StatusBadGateway, `bad gateway`, ErrTransport},
		{"garbage", http.StatusOK, `<html>`, ErrDecode},
		{"null", http.StatusOK, `null`, ErrDecode},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			api := startTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				io.WriteString(w, c.body)
			})
			_, err := api.Public(context.Background(), "ticker", "BTC", nil)
			if !errors.Is(err, c.want) {
				t.Errorf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestAPI_Unreachable(t *testing.T) {
	api := NewAPI("a", "b")
	api.BaseURL = "http://127.0.0.1:1"
	api.Client = &http.Client{Timeout: time.Second}

	_, err := api.Public(context.Background(), "ticker", "BTC", nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestClient_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/ticker/ALL":
			io.WriteString(w, allTickerBody)
		case "/trade/cancel":
			io.WriteString(w, `{"status":"0000"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New("access", "secret", WithBaseURL(srv.URL+"/"), WithPaymentCurrency("krw"))
	if c.PaymentCurrency() != "KRW" {
		t.Errorf("payment currency = %q", c.PaymentCurrency())
	}

	got, err := c.AllOHLC(context.Background())
	if err != nil || len(got) != 1 || got["BTC"].Close != 105 {
		t.Fatalf("AllOHLC = %v, %v", got, err)
	}

	ok, err := c.CancelOrder(context.Background(), "BTC", "bid", "1")
	if !ok || err != nil {
		t.Errorf("CancelOrder = %v, %v", ok, err)
	}
}
