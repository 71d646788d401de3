package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mobil-koeln/placepicker/internal/models"
)

const (
	defaultTimeout  = 20 * time.Second
	defaultLanguage = "en"
)

// Client is the HTTP client for the places API. It speaks either the legacy
// query-string protocol or the new Places API, chosen at construction.
type Client struct {
	httpClient   *http.Client
	customClient bool
	baseURL      string
	apiKey       string
	language     string
	headers      map[string]string
	newAPI       bool
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
		c.customClient = true
	}
}

// WithBaseURL overrides the API root, e.g. to go through a proxy
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithAPIKey sets the key sent with every request
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithLanguage sets the result language for details requests
func WithLanguage(lang string) ClientOption {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithHeaders adds headers sent with every request
func WithHeaders(h map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range h {
			c.headers[k] = v
		}
	}
}

// WithNewPlacesAPI switches the client to the new Places API protocol
func WithNewPlacesAPI(enabled bool) ClientOption {
	return func(c *Client) {
		c.newAPI = enabled
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
		language:   defaultLanguage,
		headers:    make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	if !c.customClient && UsesCredentials(c.baseURL) {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}

	return c, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the HTTP client timeout
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// NewPlacesAPI reports whether the client uses the new Places API protocol
func (c *Client) NewPlacesAPI() bool {
	return c.newAPI
}

// AutocompleteRequest contains parameters for a prediction query
type AutocompleteRequest struct {
	Input        string            // Text typed by the user (required)
	SessionToken string            // Billing correlation token
	Query        map[string]string // Extra parameters (components, types, location, radius, ...)
	FilterTypes  []string          // Keep only predictions with one of these types (legacy only)
}

// Autocomplete fetches predictions for the input text and normalizes
// either protocol's response into entries
func (c *Client) Autocomplete(ctx context.Context, req AutocompleteRequest) ([]models.ResultEntry, error) {
	body, err := c.AutocompleteRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse autocomplete response: %w", err)
	}

	switch {
	case resp.Predictions != nil:
		return models.FilterByTypes(*resp.Predictions, req.FilterTypes), nil
	case resp.Suggestions != nil:
		return models.EntriesFromSuggestions(*resp.Suggestions), nil
	case resp.ErrorMessage != nil:
		return nil, NewAPIErrorWithMessage(http.StatusOK, c.endpointFor(EndpointAutocomplete, EndpointNewAutocomplete), *resp.ErrorMessage)
	}
	return nil, ErrUnexpectedResponse
}

// AutocompleteRaw issues the prediction request and returns raw JSON
func (c *Client) AutocompleteRaw(ctx context.Context, req AutocompleteRequest) (json.RawMessage, error) {
	if req.Input == "" {
		return nil, ErrMissingField("input")
	}

	if c.newAPI {
		payload := make(map[string]interface{}, len(req.Query)+2)
		for k, v := range req.Query {
			if k == "key" {
				continue
			}
			payload[k] = v
		}
		payload["input"] = req.Input
		if req.SessionToken != "" {
			payload["sessionToken"] = req.SessionToken
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode autocomplete body: %w", err)
		}

		reqURL := c.baseURL + EndpointNewAutocomplete + c.keyQuery()
		return c.doRequest(ctx, http.MethodPost, reqURL, data)
	}

	params := url.Values{}
	params.Set("input", req.Input)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	if req.SessionToken != "" {
		params.Set("sessiontoken", req.SessionToken)
	}
	setQuery(params, req.Query)

	reqURL := c.baseURL + EndpointAutocomplete + "?" + params.Encode()
	return c.doRequest(ctx, http.MethodGet, reqURL, nil)
}

// DetailsRequest contains parameters for a place detail lookup
type DetailsRequest struct {
	PlaceID      string            // Place to resolve (required)
	SessionToken string            // Token of the autocomplete sequence that found the place
	Fields       string            // Field mask (new API)
	Query        map[string]string // Extra parameters (legacy)
}

// Details resolves a place id to a detail record. A response without a
// usable record yields a *NotFoundError.
func (c *Client) Details(ctx context.Context, req DetailsRequest) (*models.PlaceDetail, error) {
	body, err := c.DetailsRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.newAPI {
		var resp models.NewPlaceDetail
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to parse details response: %w", err)
		}
		if resp.ID == "" {
			return nil, &NotFoundError{PlaceID: req.PlaceID, Body: body}
		}
		return resp.ToPlaceDetail(), nil
	}

	var resp models.LegacyDetailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse details response: %w", err)
	}
	if resp.Status != "OK" || resp.Result == nil {
		return nil, &NotFoundError{PlaceID: req.PlaceID, Status: resp.Status, Body: body}
	}
	return resp.Result, nil
}

// DetailsRaw fetches a place detail record and returns raw JSON
func (c *Client) DetailsRaw(ctx context.Context, req DetailsRequest) (json.RawMessage, error) {
	if req.PlaceID == "" {
		return nil, ErrMissingField("place_id")
	}

	params := url.Values{}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	if c.newAPI {
		if req.SessionToken != "" {
			params.Set("sessionToken", req.SessionToken)
		}
		params.Set("fields", req.Fields)
		reqURL := c.baseURL + EndpointNewPlace + url.PathEscape(req.PlaceID) + "?" + params.Encode()
		return c.doRequest(ctx, http.MethodGet, reqURL, nil)
	}

	params.Set("placeid", req.PlaceID)
	params.Set("language", c.language)
	if req.SessionToken != "" {
		params.Set("sessiontoken", req.SessionToken)
	}
	setQuery(params, req.Query)

	reqURL := c.baseURL + EndpointDetails + "?" + params.Encode()
	return c.doRequest(ctx, http.MethodGet, reqURL, nil)
}

// NearbyRequest contains parameters for a coordinate lookup
type NearbyRequest struct {
	Latitude    float64           // Latitude (required)
	Longitude   float64           // Longitude (required)
	API         NearbyAPI         // Nearby search or reverse geocoding
	Query       map[string]string // Extra parameters (rankby, radius, types, result_type, ...)
	FilterTypes []string          // Keep only results with one of these types (reverse geocoding)
}

// Nearby looks up places around a coordinate
func (c *Client) Nearby(ctx context.Context, req NearbyRequest) ([]models.ResultEntry, error) {
	body, err := c.NearbyRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse nearby response: %w", err)
	}

	switch {
	case resp.Results != nil:
		if req.API == NearbyReverseGeocoding {
			return models.FilterByTypes(*resp.Results, req.FilterTypes), nil
		}
		return *resp.Results, nil
	case resp.ErrorMessage != nil:
		return nil, NewAPIErrorWithMessage(http.StatusOK, nearbyEndpoint(req.API), *resp.ErrorMessage)
	}
	return nil, ErrUnexpectedResponse
}

// NearbyRaw issues the coordinate lookup and returns raw JSON
func (c *Client) NearbyRaw(ctx context.Context, req NearbyRequest) (json.RawMessage, error) {
	if req.API == NearbyNone {
		return nil, NewValidationError("nearby_api", "no nearby API selected")
	}

	latlng := formatCoord(req.Latitude) + "," + formatCoord(req.Longitude)

	params := url.Values{}
	if req.API == NearbyReverseGeocoding {
		params.Set("latlng", latlng)
	} else {
		params.Set("location", latlng)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	setQuery(params, req.Query)

	reqURL := c.baseURL + nearbyEndpoint(req.API) + "?" + params.Encode()
	return c.doRequest(ctx, http.MethodGet, reqURL, nil)
}

func nearbyEndpoint(api NearbyAPI) string {
	if api == NearbyReverseGeocoding {
		return EndpointGeocode
	}
	return EndpointNearbySearch
}

func (c *Client) endpointFor(legacy, newAPI string) string {
	if c.newAPI {
		return newAPI
	}
	return legacy
}

func (c *Client) keyQuery() string {
	if c.apiKey == "" {
		return ""
	}
	return "?" + url.Values{"key": {c.apiKey}}.Encode()
}

// setQuery adds extra parameters in a stable order. Explicit request
// parameters already present are not overridden.
func setQuery(params url.Values, extra map[string]string) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if params.Has(k) || extra[k] == "" {
			continue
		}
		params.Set(k, extra[k])
	}
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// doRequest performs an HTTP request and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, method, reqURL string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Cancellation and deadline both surface as aborts
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		endpoint := extractEndpoint(reqURL)
		if msg := errorMessage(data); msg != "" {
			apiErr := NewAPIErrorWithMessage(resp.StatusCode, endpoint, msg)
			apiErr.Status = resp.Status
			return nil, apiErr
		}
		return nil, NewAPIError(resp.StatusCode, resp.Status, endpoint)
	}

	return data, nil
}

// errorMessage extracts a message from either protocol's error body
func errorMessage(body []byte) string {
	var e struct {
		ErrorMessage string `json:"error_message"`
		Error        *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if e.ErrorMessage != "" {
		return e.ErrorMessage
	}
	if e.Error != nil {
		return e.Error.Message
	}
	return ""
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}

// IsAborted reports whether err comes from a cancelled or timed-out request
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsTimeout reports whether err comes from a request that ran out of time
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
