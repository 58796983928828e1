package api

// --- Knowledge Entry Methods ---

// ListEntries fetches the entry collection. An empty category fetches the
// full set; otherwise the backend returns the category-scoped subset.
func (c *Client) ListEntries(category string) ([]Entry, error) {
	data, err := c.get(buildQuery("/api/knowledge", QueryParams{"category": category}))
	if err != nil {
		return nil, err
	}
	return decodeList[Entry](data)
}

// CreateEntry posts a new entry. The backend assigns id and created_at.
func (c *Client) CreateEntry(input CreateEntryInput) (*Entry, error) {
	data, err := c.post("/api/knowledge", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Entry](data)
}

// SearchEntries runs a server-authoritative search over the entry
// collection. A nil category searches all categories.
func (c *Client) SearchEntries(query string, category *string) ([]Entry, error) {
	data, err := c.post("/api/search", SearchRequest{Query: query, Category: category})
	if err != nil {
		return nil, err
	}
	return decodeList[Entry](data)
}
