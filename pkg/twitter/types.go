package twitter

// Tweet is a single result from the recent search endpoint. CreatedAt is the
// raw RFC 3339 string as returned by the API; parsing is left to the caller
// so a single malformed timestamp doesn't fail the whole page.
type Tweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// Meta carries the pagination state of a search response. NextToken is empty
// on the last page.
type Meta struct {
	ResultCount int    `json:"result_count"`
	NewestID    string `json:"newest_id"`
	OldestID    string `json:"oldest_id"`
	NextToken   string `json:"next_token"`
}

// SearchResponse is the recent search response envelope.
type SearchResponse struct {
	Data []Tweet `json:"data"`
	Meta Meta    `json:"meta"`
}
