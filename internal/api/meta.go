package api

// --- Metadata Methods ---

// GetCategories fetches the category names in use.
func (c *Client) GetCategories() ([]string, error) {
	data, err := c.get("/api/categories")
	if err != nil {
		return nil, err
	}
	list, err := decodeOne[CategoryList](data)
	if err != nil {
		return nil, err
	}
	return list.Categories, nil
}

// GetStats fetches the wiki counters.
func (c *Client) GetStats() (*Stats, error) {
	data, err := c.get("/api/stats")
	if err != nil {
		return nil, err
	}
	return decodeOne[Stats](data)
}

// GetHealth checks backend connectivity.
func (c *Client) GetHealth() (*Health, error) {
	data, err := c.get("/api/health")
	if err != nil {
		return nil, err
	}
	return decodeOne[Health](data)
}
