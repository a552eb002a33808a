package model

// Endpoint documents one backend route for the reference panel.
type Endpoint struct {
	Method      string
	Path        string
	Description string
}

// EndpointCatalog lists the scraper backend's documented routes.
// Pure display data; the console only exercises a subset of them.
func EndpointCatalog() []Endpoint {
	return []Endpoint{
		{"POST", "/api/start-scrape", "Start a scrape (auto mode)"},
		{"POST", "/api/scrape/person", "Start a people scrape"},
		{"POST", "/api/scrape/property", "Start a property scrape"},
		{"POST", "/api/stop-scrape", "Stop the running scrape"},
		{"WS", "/ws/logs", "Live scraper log stream"},
		{"POST", "/api/query-voice", "Query across all record types"},
		{"POST", "/api/query/people", "Query people records"},
		{"POST", "/api/query/properties", "Query property records"},
	}
}
