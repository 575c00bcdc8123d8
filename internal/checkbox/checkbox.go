// Package checkbox talks to the checkbox-state endpoint used by report pages
// to remember which rows a reviewer ticked.
package checkbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ResultOK is the result string of a successful set call.
const ResultOK = "OK"

// Item is one entry of a get response.
type Item struct {
	UUID string `json:"uuid"`
}

// SetResponse is the body of a set response. Anything but ResultOK is an
// error message.
type SetResponse struct {
	Result string `json:"result"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Checked returns which of uuids are checked.
func (c *Client) Checked(ctx context.Context, uuids ...string) ([]string, error) {
	q := url.Values{}
	for _, u := range uuids {
		q.Add("uuid", u)
	}
	var items []Item
	if err := c.get(ctx, "/get", q, &items); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.UUID)
	}
	return out, nil
}

func (c *Client) Set(ctx context.Context, uuid string, value bool) error {
	q := url.Values{}
	q.Set("uuid", uuid)
	q.Set("value", strconv.FormatBool(value))
	var resp SetResponse
	if err := c.get(ctx, "/set", q, &resp); err != nil {
		return err
	}
	if resp.Result != ResultOK {
		return fmt.Errorf("set checkbox %q: %s", uuid, resp.Result)
	}
	return nil
}

// SetAsync sends a set request in the background and calls done, if not
// nil, with its outcome. Requests are not ordered; the last response to
// arrive wins.
func (c *Client) SetAsync(uuid string, value bool, done func(error)) {
	go func() {
		err := c.Set(context.Background(), uuid, value)
		if err != nil {
			slog.Warn("checkbox sync failed", "uuid", uuid, "error", err)
		}
		if done != nil {
			done(err)
		}
	}()
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := c.BaseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// ParseValue accepts the value spellings sent by report pages.
func ParseValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on", "checked", "yes":
		return true, nil
	case "false", "0", "off", "unchecked", "no", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid checkbox value %q", s)
	}
}
