package esm

import (
	"context"
	"net/http"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/soc-toolbox/esmbridge/internal/metrics"
)

const pkgName = "internal/esm"

// Client talks to the ESM resource API and exposes a flattened,
// customer-centric view of its group hierarchy.
type Client struct {
	config     *Config
	httpClient HTTPClient
	tokens     *TokenCache
	logger     *logrus.Logger

	// gatewayAuth is set when an OIDC gateway fronts the upstream, the
	// oauth2 transport then owns the Authorization header.
	gatewayAuth bool
}

func New(ctx context.Context, config *Config, logger *logrus.Logger) (*Client, error) {
	if config == nil || config.Endpoint == "" {
		return nil, errors.Wrap(ErrConfiguration, "esm endpoint not set")
	}

	config.setDefaults()

	gatewayAuth := !config.DisableOAuth && config.OidcIssuerEndpoint != ""

	httpClient, err := newHTTPClient(ctx, config, logger, gatewayAuth)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:      config,
		httpClient:  httpClient,
		tokens:      NewTokenCache(config, httpClient, logger),
		logger:      logger,
		gatewayAuth: gatewayAuth,
	}, nil
}

// returns the upstream http client with the bounded connection pool and Otel
// wrapped in, and optionally an OAuth client-credentials transport.
func newHTTPClient(ctx context.Context, config *Config, logger *logrus.Logger, gatewayAuth bool) (*http.Client, error) {
	// a fixed cap of concurrent connections, single in-flight request per
	// connection. Callers queue transparently when the cap is reached.
	transport := &http.Transport{
		MaxConnsPerHost:     config.MaxConns,
		MaxIdleConnsPerHost: config.MaxConns,
		ForceAttemptHTTP2:   false,
	}

	retryableClient := retryablehttp.NewClient()
	// auth-expiry handling is the explicit bounded loop in Client.do and
	// status handling lives there too: no transport-level retries, and a
	// non-2xx response must come back with status and body intact instead
	// of the default "giving up" error.
	retryableClient.RetryMax = 0
	retryableClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryableClient.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(transport)}

	// disable default debug logging on the retryable client
	if logger.Level < logrus.DebugLevel {
		retryableClient.Logger = nil
	} else {
		retryableClient.Logger = logger
	}

	if gatewayAuth {
		provider, err := oidc.NewProvider(ctx, config.OidcIssuerEndpoint)
		if err != nil {
			return nil, errors.Wrap(ErrConfiguration, err.Error())
		}

		clientID := "esmbridge"

		if config.OidcClientID != "" {
			clientID = config.OidcClientID
		}

		oauthConfig := clientcredentials.Config{
			ClientID:       clientID,
			ClientSecret:   config.OidcClientSecret,
			TokenURL:       provider.Endpoint().TokenURL,
			Scopes:         config.OidcClientScopes,
			EndpointParams: url.Values{"audience": []string{config.OidcAudienceEndpoint}},
		}

		// wrap OAuth transport, cookie jar in the retryable client
		oAuthClient := oauthConfig.Client(ctx)

		retryableClient.HTTPClient.Transport = oAuthClient.Transport
		retryableClient.HTTPClient.Jar = oAuthClient.Jar
	}

	return retryableClient.StandardClient(), nil
}

func (c *Client) registerQueryErrorMetric(queryKind string) {
	metrics.ESMQueryErrorCount.WithLabelValues(queryKind).Inc()
}
