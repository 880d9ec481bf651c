package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"provider-enricher/internal/models"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// DefaultTimeout bounds every call to the Places endpoints.
	DefaultTimeout = 10 * time.Second

	// PhotoMaxWidth is the width requested from the photo endpoint.
	PhotoMaxWidth = 400

	findPlaceFields = "formatted_address,name,place_id,types"
	detailFields    = "url,photos,geometry"
)

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// Client calls the Google Places text query, detail and photo endpoints with a fixed API key.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Places client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type findPlaceResponse struct {
	Candidates []models.Candidate `json:"candidates"`
	Status     string             `json:"status"`
}

type detailResponse struct {
	Result *models.PlaceDetail `json:"result"`
	Status string              `json:"status"`
}

// FindPlace runs a text query and returns the candidates in response order.
func (c *Client) FindPlace(ctx context.Context, input string) ([]models.Candidate, error) {
	params := url.Values{
		"input":     {input},
		"inputtype": {"textquery"},
		"fields":    {findPlaceFields},
		"key":       {c.apiKey},
	}

	var result findPlaceResponse
	if err := c.getJSON(ctx, "/findplacefromtext/json", params, &result); err != nil {
		return nil, fmt.Errorf("places: find place: %w", err)
	}

	return result.Candidates, nil
}

// PlaceDetails fetches the canonical URL, geometry and photos of a place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetail, error) {
	params := url.Values{
		"place_id": {placeID},
		"key":      {c.apiKey},
		"fields":   {detailFields},
	}

	var result detailResponse
	if err := c.getJSON(ctx, "/details/json", params, &result); err != nil {
		return nil, fmt.Errorf("places: place details: %w", err)
	}

	if result.Status != "" && result.Status != "OK" {
		return nil, fmt.Errorf("places: place details: status %s", result.Status)
	}
	if result.Result == nil {
		return nil, fmt.Errorf("places: place details: response has no result")
	}

	return result.Result, nil
}

// PhotoURL resolves a photo reference into a directly fetchable image URL.
// The photo endpoint redirects to the image; the final request URL is returned and the body is not read.
func (c *Client) PhotoURL(ctx context.Context, photoReference string) (string, error) {
	params := url.Values{
		"maxwidth":        {strconv.Itoa(PhotoMaxWidth)},
		"photo_reference": {photoReference},
		"key":             {c.apiKey},
	}

	resp, err := c.get(ctx, "/photo", params)
	if err != nil {
		return "", fmt.Errorf("places: photo: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("places: photo: unexpected status %d", resp.StatusCode)
	}

	return resp.Request.URL.String(), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
