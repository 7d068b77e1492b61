package store

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/soc-toolbox/esmbridge/internal/configuration"
	"github.com/soc-toolbox/esmbridge/internal/esm"
	"github.com/soc-toolbox/esmbridge/internal/model"
)

// Repository is the outward surface of the integration layer: primitive
// arguments in, typed records and the esm error taxonomy out. No HTTP
// concerns leak past this boundary.
type Repository interface {
	// AllCustomers returns all customers, optionally filtered by a
	// case-insensitive search term.
	AllCustomers(ctx context.Context, search string) ([]model.Customer, error)

	// CustomerByID returns a single customer record.
	CustomerByID(ctx context.Context, id string) (*model.Customer, error)

	// AllConnectors returns all connectors known upstream.
	AllConnectors(ctx context.Context) ([]model.Connector, error)

	// ConnectorsForCustomer returns the connectors reporting to a
	// customer, joined with their device details.
	ConnectorsForCustomer(ctx context.Context, customerID string) ([]model.ConnectorWithDevices, error)

	// ConnectorDevices returns the global connector device map.
	ConnectorDevices(ctx context.Context) (model.ConnectorDeviceMap, error)

	// LinkConnectors adds connectors to the customer's parent group.
	LinkConnectors(ctx context.Context, customerID string, connectorIDs []string) error

	// UnlinkConnectors removes connectors from the customer's parent group.
	UnlinkConnectors(ctx context.Context, customerID string, connectorIDs []string) error

	// ConnectorHealth returns the merged live/dead connector summary.
	ConnectorHealth(ctx context.Context) (*model.ConnectorHealth, error)
}

func NewRepository(ctx context.Context, config *configuration.Configuration, logger *logrus.Logger) (Repository, error) {
	return esm.New(ctx, config.Esm, logger)
}
