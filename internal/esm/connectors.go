package esm

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/soc-toolbox/esmbridge/internal/model"
)

// ParentGroupID resolves the working group for a customer: the first entry
// of the customer's paths to root, which the upstream reports nearest
// ancestor first. ErrNoParentGroup when the customer is detached from the
// hierarchy.
func (c *Client) ParentGroupID(ctx context.Context, customerID string) (string, error) {
	paths, err := c.CustomerPathsToRoot(ctx, customerID)
	if err != nil {
		return "", err
	}

	if len(paths) == 0 {
		return "", errors.Wrap(ErrNoParentGroup, customerID)
	}

	return paths[0], nil
}

// ConnectorsForCustomer returns the connectors reporting to a customer,
// joined with their device details.
//
// The upstream has no direct devices-per-customer endpoint, the relation is
// always recomputed from the group hierarchy: children of the customer's
// nearest parent group, resolved and filtered to valid connectors.
func (c *Client) ConnectorsForCustomer(ctx context.Context, customerID string) ([]model.ConnectorWithDevices, error) {
	ctx, span := otel.Tracer(pkgName).Start(ctx, "ESM.ConnectorsForCustomer")
	defer span.End()

	groupID, err := c.ParentGroupID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNoParentGroup) {
			// a customer detached from any group simply has no
			// connectors, not an error state for reads
			return []model.ConnectorWithDevices{}, nil
		}

		return nil, err
	}

	childIDs, err := c.GroupChildren(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if len(childIDs) == 0 {
		return []model.ConnectorWithDevices{}, nil
	}

	connectors, deviceMap := c.settleConnectorFacets(ctx, customerID, childIDs)

	joined := make([]model.ConnectorWithDevices, 0, len(connectors))

	for _, connector := range connectors {
		devices := deviceMap[connector.ResourceID]
		if devices == nil {
			devices = []model.DeviceDetail{}
		}

		joined = append(joined, model.ConnectorWithDevices{
			Connector: connector,
			Devices:   devices,
		})
	}

	return joined, nil
}

// settleConnectorFacets fetches connector metadata and the global device map
// concurrently. The two are independently available facets, a failure of
// either substitutes an empty result instead of failing the composite. Each
// sub-fetch carries its own timeout-derived cancellation signal.
func (c *Client) settleConnectorFacets(ctx context.Context, customerID string, childIDs []string) ([]model.Connector, model.ConnectorDeviceMap) {
	var (
		wg         sync.WaitGroup
		connectors []model.Connector
		deviceMap  model.ConnectorDeviceMap
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		resolved, err := fetchAllByIDs(ctx, childIDs, c.config.BatchSize, c.ConnectorsByIDs)
		if err != nil {
			c.logger.WithError(err).
				WithField("customer_id", customerID).
				Warn("connector resolve failed, substituting empty list")

			resolved = []model.Connector{}
		}

		connectors = resolved
	}()

	go func() {
		defer wg.Done()

		devices, err := c.ConnectorDevices(ctx)
		if err != nil {
			c.logger.WithError(err).
				WithField("customer_id", customerID).
				Warn("device map fetch failed, substituting empty map")

			devices = model.ConnectorDeviceMap{}
		}

		deviceMap = devices
	}()

	wg.Wait()

	return connectors, deviceMap
}

// AllConnectors returns every connector known upstream, resolved through the
// ID-batch endpoints.
func (c *Client) AllConnectors(ctx context.Context) ([]model.Connector, error) {
	ctx, span := otel.Tracer(pkgName).Start(ctx, "ESM.AllConnectors")
	defer span.End()

	ids, err := c.ConnectorIDs(ctx)
	if err != nil {
		return nil, err
	}

	return fetchAllByIDs(ctx, ids, c.config.BatchSize, c.ConnectorsByIDs)
}

// LinkConnectors adds connectors to the customer's parent group in a single
// mutation call. The upstream applies the list atomically, this layer never
// chunks write calls.
func (c *Client) LinkConnectors(ctx context.Context, customerID string, connectorIDs []string) error {
	ctx, span := otel.Tracer(pkgName).Start(ctx, "ESM.LinkConnectors")
	defer span.End()

	groupID, err := c.resolveWriteGroup(ctx, customerID, connectorIDs)
	if err != nil {
		return err
	}

	return c.addGroupChildren(ctx, groupID, connectorIDs)
}

// UnlinkConnectors removes connectors from the customer's parent group.
// Removing an absent child is a no-op upstream, a repeat unlink is not
// rejected here.
func (c *Client) UnlinkConnectors(ctx context.Context, customerID string, connectorIDs []string) error {
	ctx, span := otel.Tracer(pkgName).Start(ctx, "ESM.UnlinkConnectors")
	defer span.End()

	groupID, err := c.resolveWriteGroup(ctx, customerID, connectorIDs)
	if err != nil {
		return err
	}

	return c.removeGroupChildren(ctx, groupID, connectorIDs)
}

// resolveWriteGroup validates the mutation input and resolves the target
// group. Unlike reads, a missing parent group IS an error for writes, a
// customer outside the hierarchy cannot have connectors linked.
func (c *Client) resolveWriteGroup(ctx context.Context, customerID string, connectorIDs []string) (string, error) {
	if len(connectorIDs) == 0 {
		return "", errors.Wrap(ErrValidation, "connector ID list is empty")
	}

	groupID, err := c.ParentGroupID(ctx, customerID)
	if err != nil {
		return "", err
	}

	return groupID, nil
}
