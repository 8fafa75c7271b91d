package bithumb

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"bithumbbot/ds"
)

const DefaultBaseURL = "https://api.bithumb.com"

type PublicTransport interface {
	Public(ctx context.Context, endpoint string, currency string, params url.Values) (ds.Record, error)
}

type PrivateTransport interface {
	Private(ctx context.Context, endpoint string, params url.Values) (ds.Record, error)
}

// API talks HTTP to the exchange and signs private calls with the account keys.
type API struct {
	AccessKey string
	SecretKey string
	BaseURL   string
	UserAgent string
	Client    *http.Client

	now func() time.Time
}

func NewAPI(accessKey string, secretKey string) *API {
	return &API{
		AccessKey: accessKey,
		SecretKey: secretKey,
		BaseURL:   DefaultBaseURL,
		UserAgent: "Mozilla/5.0 (X11; OpenBSD i386)",
		Client:    &http.Client{Timeout: time.Minute},
		now:       time.Now,
	}
}

func (api *API) Public(ctx context.Context, endpoint string, currency string, params url.Values) (ds.Record, error) {
	path := "/public/" + strings.Trim(endpoint, "/") + "/" + currency
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.BaseURL+path, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: path, Err: err}
	}

	return api.do(path, req)
}

func (api *API) Private(ctx context.Context, endpoint string, params url.Values) (ds.Record, error) {
	if api.AccessKey == "" || api.SecretKey == "" {
		return nil, &Error{Kind: KindAuth, Op: endpoint, Message: "no api keys configured"}
	}

	form := url.Values{}
	for k, v := range params {
		form[k] = v
	}
	form.Set("endpoint", endpoint)
	body := form.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, api.BaseURL+endpoint, strings.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: endpoint, Err: err}
	}

	nonce := strconv.FormatInt(api.clock().UnixMilli(), 10)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Api-Key", api.AccessKey)
	req.Header.Set("Api-Nonce", nonce)
	req.Header.Set("Api-Sign", Sign(api.SecretKey, endpoint, body, nonce))

	return api.do(endpoint, req)
}

// Sign returns base64(hex(HMAC-SHA512(secret, endpoint NUL body NUL nonce))).
func Sign(secret string, endpoint string, body string, nonce string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(endpoint + "\x00" + body + "\x00" + nonce))
	return base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(mac.Sum(nil))))
}

func (api *API) do(op string, req *http.Request) (ds.Record, error) {
	req.Header.Set("Accept", "application/json")
	if api.UserAgent != "" {
		req.Header.Set("User-Agent", api.UserAgent)
	}

	client := api.Client
	if client == nil {
		client = http.DefaultClient
	}

	log.Debug("Bithumb request", "method", req.Method, "op", op)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &Error{Kind: KindAuth, Op: op, Message: resp.Status}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &Error{Kind: KindTransport, Op: op, Message: resp.Status}
	}

	var respData ds.Record
	if err = json.Unmarshal(bodyBytes, &respData); err != nil {
		return nil, &Error{Kind: KindDecode, Op: op, Err: err}
	}
	if respData == nil {
		return nil, &Error{Kind: KindDecode, Op: op, Err: errors.New("empty response body")}
	}

	return respData, nil
}

func (api *API) clock() time.Time {
	if api.now == nil {
		return time.Now()
	}
	return api.now()
}
