package api

// --- Admin Session Methods ---

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(username, password string) (*LoginResponse, error) {
	data, err := c.post("/api/admin/login", LoginInput{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeOne[LoginResponse](data)
}

// Verify checks the currently attached bearer token against the backend.
func (c *Client) Verify() (*VerifyResponse, error) {
	data, err := c.get("/api/admin/verify")
	if err != nil {
		return nil, err
	}
	return decodeOne[VerifyResponse](data)
}
