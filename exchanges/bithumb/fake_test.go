package bithumb

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"bithumbbot/ds"
)

type call struct {
	Endpoint string
	Currency string
	Params   url.Values
}

// fakeTransport answers every call with the next queued JSON body.
type fakeTransport struct {
	t         *testing.T
	responses []string
	err       error
	calls     []call
}

func newFake(t *testing.T, responses ...string) *fakeTransport {
	return &fakeTransport{t: t, responses: responses}
}

func (f *fakeTransport) next() (ds.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		f.t.Fatal("unexpected call to transport")
	}
	body := f.responses[0]
	f.responses = f.responses[1:]

	var rec ds.Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		f.t.Fatalf("bad fixture %q: %v", body, err)
	}
	return rec, nil
}

func (f *fakeTransport) Public(ctx context.Context, endpoint string, currency string, params url.Values) (ds.Record, error) {
	f.calls = append(f.calls, call{Endpoint: endpoint, Currency: currency, Params: params})
	return f.next()
}

func (f *fakeTransport) Private(ctx context.Context, endpoint string, params url.Values) (ds.Record, error) {
	f.calls = append(f.calls, call{Endpoint: endpoint, Params: params})
	return f.next()
}

func (f *fakeTransport) lastCall() call {
	if len(f.calls) == 0 {
		f.t.Fatal("transport was never called")
	}
	return f.calls[len(f.calls)-1]
}
