package i

// Authenticator exchanges API client credentials for access tokens.
type Authenticator interface {
	SignIn(clientID, apiKey string) (string, error)
}
