// Package cloudflare manages the DNS records of provisioned load balancers
// through the Cloudflare v4 REST API.
package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/imamik/blitzem/internal/provider"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// Client is a minimal Cloudflare API client for DNS record management.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

var _ provider.DNSService = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Record represents a Cloudflare DNS record.
type Record struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl,omitempty"`
}

type apiResponse struct {
	Success bool            `json:"success"`
	Errors  []apiError      `json:"errors"`
	Result  json.RawMessage `json:"result"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type zoneResult struct {
	ID string `json:"id"`
}

type resultInfo struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

type listResponse struct {
	Success    bool       `json:"success"`
	Errors     []apiError `json:"errors"`
	Result     []Record   `json:"result"`
	ResultInfo resultInfo `json:"result_info"`
}

// NewClient creates a new Cloudflare API client.
func NewClient(apiToken string, opts ...Option) *Client {
	c := &Client{
		apiToken:   apiToken,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RecordFQDN expands a record name relative to zone. "@" and "" denote the
// zone apex; names already ending in the zone are kept.
func RecordFQDN(zone, name string) string {
	zone = strings.TrimSuffix(zone, ".")
	name = strings.TrimSuffix(name, ".")
	switch {
	case name == "" || name == "@":
		return zone
	case name == zone || strings.HasSuffix(name, "."+zone):
		return name
	default:
		return name + "." + zone
	}
}

// GetZoneID returns the zone ID for the given domain.
func (c *Client) GetZoneID(ctx context.Context, domain string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/zones?name="+url.QueryEscape(domain), nil)
	if err != nil {
		return "", err
	}

	var resp apiResponse
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("get zone ID: %w", err)
	}

	var zones []zoneResult
	if err := json.Unmarshal(resp.Result, &zones); err != nil {
		return "", fmt.Errorf("parse zones: %w", err)
	}

	if len(zones) == 0 {
		return "", fmt.Errorf("no zone found for domain %s", domain)
	}

	return zones[0].ID, nil
}

// ListDNSRecords returns the DNS records in the zone with the given fully
// qualified name, or all records when name is empty.
func (c *Client) ListDNSRecords(ctx context.Context, zoneID, name string) ([]Record, error) {
	var all []Record
	page := 1

	for {
		q := url.Values{}
		q.Set("per_page", "100")
		q.Set("page", fmt.Sprint(page))
		if name != "" {
			q.Set("name", name)
		}
		req, err := c.newRequest(ctx, http.MethodGet,
			fmt.Sprintf("/zones/%s/dns_records?%s", zoneID, q.Encode()), nil)
		if err != nil {
			return nil, err
		}

		var resp listResponse
		if err := c.do(req, &resp); err != nil {
			return nil, fmt.Errorf("list DNS records page %d: %w", page, err)
		}

		all = append(all, resp.Result...)

		if page >= resp.ResultInfo.TotalPages {
			break
		}
		page++
	}

	return all, nil
}

// UpsertRecord creates the record, or overwrites the existing record with the
// same name and type.
func (c *Client) UpsertRecord(ctx context.Context, zone string, record provider.DNSRecord) error {
	zoneID, err := c.GetZoneID(ctx, zone)
	if err != nil {
		return err
	}

	rec := Record{
		Type:    record.Type,
		Name:    RecordFQDN(zone, record.Name),
		Content: record.Content,
		TTL:     record.TTL,
	}

	existing, err := c.ListDNSRecords(ctx, zoneID, rec.Name)
	if err != nil {
		return err
	}

	method, path := http.MethodPost, fmt.Sprintf("/zones/%s/dns_records", zoneID)
	for _, r := range existing {
		if r.Type == rec.Type {
			method, path = http.MethodPut, fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, r.ID)
			break
		}
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	var resp apiResponse
	if err := c.do(req, &resp); err != nil {
		return fmt.Errorf("upsert DNS record %s: %w", rec.Name, err)
	}
	return nil
}

// DeleteRecords deletes every record with the given name and returns how many were deleted.
func (c *Client) DeleteRecords(ctx context.Context, zone, name string) (int, error) {
	zoneID, err := c.GetZoneID(ctx, zone)
	if err != nil {
		return 0, err
	}

	records, err := c.ListDNSRecords(ctx, zoneID, RecordFQDN(zone, name))
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}

	deleted := 0
	for _, r := range records {
		if err := c.DeleteDNSRecord(ctx, zoneID, r.ID); err != nil {
			return deleted, fmt.Errorf("delete record %s (%s %s): %w", r.ID, r.Type, r.Name, err)
		}
		deleted++
	}
	return deleted, nil
}

// DeleteDNSRecord deletes a DNS record by ID.
func (c *Client) DeleteDNSRecord(ctx context.Context, zoneID, recordID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete,
		fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, recordID), nil)
	if err != nil {
		return err
	}

	var resp apiResponse
	if err := c.do(req, &resp); err != nil {
		return fmt.Errorf("delete DNS record %s: %w", recordID, err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w (status %d)", err, resp.StatusCode)
	}

	return nil
}
