package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// DefaultAPIURL is the production endpoint for the v2 recent search API.
const DefaultAPIURL = "https://api.twitter.com/2/tweets/search/recent"

// SearchError is returned when the API answers with a non-success status.
type SearchError struct {
	Status int
	Body   string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search request failed with status %d: %s", e.Status, e.Body)
}

// SearchRequest describes a single page request. Exactly one of StartTime or
// NextToken is sent: the first page carries the start_time filter, every
// following page carries the cursor the API handed back.
type SearchRequest struct {
	Query      string
	MaxResults int
	StartTime  time.Time
	NextToken  string
}

// Client queries the Twitter recent search API with bearer authentication.
type Client struct {
	apiURL     string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a search client. A nil httpClient falls back to a client
// with a 30 second timeout; a stuck request is bounded either way.
func NewClient(apiURL, authToken string, httpClient *http.Client) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		apiURL:     apiURL,
		authToken:  authToken,
		httpClient: httpClient,
	}
}

// Search requests one page of results.
func (c *Client) Search(ctx context.Context, r SearchRequest) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("query", r.Query)
	q.Set("max_results", strconv.Itoa(r.MaxResults))
	q.Set("tweet.fields", "created_at")
	if r.NextToken != "" {
		q.Set("next_token", r.NextToken)
	} else {
		q.Set("start_time", r.StartTime.UTC().Format(time.RFC3339))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build search request")
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read search response")
	}

	if res.StatusCode != http.StatusOK {
		return nil, &SearchError{Status: res.StatusCode, Body: string(body)}
	}

	out := &SearchResponse{}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, errors.Wrap(err, "failed to decode search response")
	}

	return out, nil
}
