package esm

import "time"

const (
	defaultMaxConns         = 6
	defaultRequestTimeout   = 15 * time.Second
	defaultDeviceMapTimeout = 45 * time.Second
	defaultBatchSize        = 50
)

// Config defines the ESM API client configuration parameters.
// nolint:govet // prefer readability over field alignment optimization for this case.
type Config struct {
	// Endpoint is the base URL of the ESM resource API.
	Endpoint string `mapstructure:"endpoint"`

	// LoginEndpoint is the full URL of the session login service.
	LoginEndpoint string `mapstructure:"login_endpoint"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`

	// StaticToken bypasses session login entirely when set.
	StaticToken string `mapstructure:"static_token"`

	// MaxConns caps concurrent connections to the upstream host.
	MaxConns int `mapstructure:"max_conns"`

	// RequestTimeout is the per-call budget for regular queries,
	// DeviceMapTimeout the budget for the bulk device map fetch.
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	DeviceMapTimeout time.Duration `mapstructure:"device_map_timeout"`

	// BatchSize caps how many resource IDs go into one bulk-fetch call.
	BatchSize int `mapstructure:"batch_size"`

	// When the ESM API sits behind an OIDC-authenticating gateway, the
	// client authenticates with client credentials instead of the ESM
	// session login. Ignored unless OidcIssuerEndpoint is set.
	OidcIssuerEndpoint   string   `mapstructure:"oidc_issuer_endpoint"`
	OidcAudienceEndpoint string   `mapstructure:"oidc_audience_endpoint"`
	OidcClientSecret     string   `mapstructure:"oidc_client_secret"`
	OidcClientID         string   `mapstructure:"oidc_client_id"`
	OidcClientScopes     []string `mapstructure:"oidc_client_scopes"`
	DisableOAuth         bool     `mapstructure:"disable_oauth"`
}

func (c *Config) setDefaults() {
	if c.MaxConns <= 0 {
		c.MaxConns = defaultMaxConns
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}

	if c.DeviceMapTimeout <= 0 {
		c.DeviceMapTimeout = defaultDeviceMapTimeout
	}

	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
}
