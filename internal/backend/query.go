package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"scrape-console/internal/model"
)

// defaultTopK matches the backend's own default result count.
const defaultTopK = 3

type queryPayload struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type queryResponse struct {
	Text string `json:"text"`
}

// queryPath maps a query target to its endpoint.
func queryPath(target model.QueryTarget) string {
	switch target {
	case model.QueryPeople:
		return "/api/query/people"
	case model.QueryProperties:
		return "/api/query/properties"
	default:
		return "/api/query-voice"
	}
}

// Query sends a natural-language question and returns the answer text.
// Only the response's text field is consumed.
func (c *Client) Query(ctx context.Context, target model.QueryTarget, query string) (string, error) {
	resp, err := c.postJSON(ctx, queryPath(target), queryPayload{Query: query, TopK: defaultTopK})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode query response: %w", err)
	}
	return out.Text, nil
}
