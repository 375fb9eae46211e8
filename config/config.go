package config

// AppConfig holds the application configuration
type AppConfig struct {
	// ListenAddr is the address the dashboard API listens on.
	ListenAddr string
	// UpstreamURL is the base URL of the clinic API that owns the entities.
	UpstreamURL string
	// UpstreamToken is the bearer token sent on every upstream request.
	UpstreamToken string
	// BearerToken is the token reception clients must present to this service.
	BearerToken string
	// RedisURL enables the upstream response cache when set.
	RedisURL string
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
