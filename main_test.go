package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"bithumbbot/database"
	"bithumbbot/ds"
	"bithumbbot/exchanges/bithumb"
)

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&buf))
	t.Cleanup(func() { log.SetDefault(prev) })
	return &buf
}

func TestDayStats(t *testing.T) {
	ohlc := ds.OHLC{Open: 100, High: 110, Low: 90, Close: 105}

	got := dayStats(ohlc, ds.MarketDetail{Average: 101.5, Volume: 3}, nil)
	if !strings.Contains(got, "avg 101.5000 vol 3.0000") {
		t.Errorf("dayStats = %q", got)
	}

	got = dayStats(ohlc, ds.MarketDetail{}, errors.New("timeout"))
	if strings.Contains(got, "avg 0.0000") || strings.Count(got, "unavailable") != 2 {
		t.Errorf("dayStats without detail = %q", got)
	}
	if !strings.Contains(got, "open 100.0000 high 110.0000 low 90.0000") {
		t.Errorf("dayStats lost ohlc: %q", got)
	}
}

func TestJournalTicker_LogsStoreErrors(t *testing.T) {
	buf := captureLog(t)

	s, err := database.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	journalTicker(s, "BTC", ds.OHLC{Close: 1}, ds.MarketDetail{})
	if buf.Len() != 0 {
		t.Errorf("unexpected log output %q", buf.String())
	}
	if got, _ := s.RecentTickers("BTC", 5); len(got) != 1 {
		t.Errorf("ticker not saved: %+v", got)
	}

	s.Close()
	journalTicker(s, "BTC", ds.OHLC{Close: 2}, ds.MarketDetail{})
	if !strings.Contains(buf.String(), "Saving ticker failed") {
		t.Errorf("store failure not logged: %q", buf.String())
	}
}

func TestOrderCommand_CancelReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("order_id") == "77" {
			io.WriteString(w, `{"status":"5100","message":"Bad Request"}`)
			return
		}
		io.WriteString(w, `{"status":"0000"}`)
	}))
	defer srv.Close()

	client = bithumb.New("access", "secret", bithumb.WithBaseURL(srv.URL))
	desc := ds.OrderDesc{Side: ds.Bid, Currency: "BTC", OrderID: "77"}

	buf := captureLog(t)
	orderCommand(context.Background(), "cancel", desc)
	if !strings.Contains(buf.String(), "Canceling failed") || !strings.Contains(buf.String(), "77") {
		t.Errorf("failed cancel not logged: %q", buf.String())
	}

	buf.Reset()
	desc.OrderID = "78"
	orderCommand(context.Background(), "cancel", desc)
	if strings.Contains(buf.String(), "Canceling failed") || !strings.Contains(buf.String(), "Canceled") {
		t.Errorf("unexpected log after successful cancel: %q", buf.String())
	}
}
