package identity

// TokenRequest carries API client credentials.
type TokenRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	APIKey   string `json:"api_key" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}
