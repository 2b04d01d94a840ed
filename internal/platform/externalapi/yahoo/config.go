// Package yahoo provides a client for the Yahoo Finance query API.
package yahoo

import "time"

const (
	DefaultBaseURL   = "https://query2.finance.yahoo.com"
	DefaultCookieURL = "https://fc.yahoo.com"
	// Yahoo rejects requests without a browser-like agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL   string        // Query host, e.g. "https://query2.finance.yahoo.com"
	CookieURL string        // Page that hands out the session cookie; empty skips the cookie step
	UserAgent string        // Sent on every request
	Timeout   time.Duration // HTTP request timeout
}

// DefaultConfig returns the production endpoints.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		CookieURL: DefaultCookieURL,
		UserAgent: DefaultUserAgent,
		Timeout:   30 * time.Second,
	}
}
