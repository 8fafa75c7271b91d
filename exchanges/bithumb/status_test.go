package bithumb

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	if ParseStatus("0000") != StatusOK || !StatusOK.OK() {
		t.Error("0000 should be OK")
	}
	if ParseStatus("5600") != StatusNoOrder {
		t.Error("5600 should be StatusNoOrder")
	}
	s := ParseStatus("7777")
	if s.Known() || s.Code != "7777" {
		t.Errorf("unexpected status %+v", s)
	}
}

func TestStatusErr(t *testing.T) {
	cases := []struct {
		status Status
		want   error
	}{
		{StatusNoOrder, ErrNotFound},
		{StatusInvalidAPIKey, ErrAuth},
		{StatusNotMember, ErrAuth},
		{StatusBadRequest, ErrRejected},
		{ParseStatus("7777"), ErrRejected},
	}
	for _, c := range cases {
		if err := c.status.Err("op", ""); !errors.Is(err, c.want) {
			t.Errorf("%s: got %v, want %v", c.status, err, c.want)
		}
	}
	if err := StatusOK.Err("op", ""); err != nil {
		t.Errorf("OK should not be an error: %v", err)
	}
}

func TestErrorMessage(t *testing.T) {
	err := StatusBadRequest.Err("ticker", "Bad Request")
	if got := err.Error(); got != "bithumb ticker: rejected (status 5100): Bad Request" {
		t.Errorf("Error() = %q", got)
	}
}
