package esm

import (
	"context"
	"net/url"
	"time"

	"github.com/soc-toolbox/esmbridge/internal/model"
)

// Freshness hints handed to intermediary caches on GETs. ID listings change
// rarely, health endpoints are near real time.
const (
	freshnessDefault = 30 * time.Second
	freshnessIDList  = time.Minute
	freshnessHealth  = 10 * time.Second
)

// CustomerIDs returns the IDs of all customers known upstream.
func (c *Client) CustomerIDs(ctx context.Context) ([]string, error) {
	var ids []string

	if err := c.get(ctx, "/v1/customers/allIds", freshnessIDList, c.config.RequestTimeout, &ids); err != nil {
		c.registerQueryErrorMetric("CustomerIDs")

		return nil, err
	}

	return ids, nil
}

// CustomersByIDs bulk-fetches customer records. The upstream does not
// guarantee result order matches the input.
func (c *Client) CustomersByIDs(ctx context.Context, ids []string) ([]model.Customer, error) {
	var customers []model.Customer

	if err := c.get(ctx, "/v1/customers/ids?"+idsQuery(ids), freshnessIDList, c.config.RequestTimeout, &customers); err != nil {
		c.registerQueryErrorMetric("CustomersByIDs")

		return nil, err
	}

	return customers, nil
}

// CustomerByID returns a single customer record.
func (c *Client) CustomerByID(ctx context.Context, id string) (*model.Customer, error) {
	customer := &model.Customer{}

	if err := c.get(ctx, "/v1/customers/"+url.PathEscape(id), freshnessDefault, c.config.RequestTimeout, customer); err != nil {
		c.registerQueryErrorMetric("CustomerByID")

		return nil, err
	}

	return customer, nil
}

// CustomerPathsToRoot returns the customer's ancestor group IDs, nearest
// parent first.
func (c *Client) CustomerPathsToRoot(ctx context.Context, id string) ([]string, error) {
	var paths []string

	if err := c.get(ctx, "/v1/customers/"+url.PathEscape(id)+"/allPathsToRoot", freshnessDefault, c.config.RequestTimeout, &paths); err != nil {
		c.registerQueryErrorMetric("CustomerPathsToRoot")

		return nil, err
	}

	return paths, nil
}

// GroupChildren returns a group's child resource IDs. The list may contain
// IDs of any resource type, non-connectors drop out when resolved as
// connectors downstream.
func (c *Client) GroupChildren(ctx context.Context, groupID string) ([]string, error) {
	var children []string

	if err := c.get(ctx, "/v1/groups/"+url.PathEscape(groupID)+"/children", freshnessDefault, c.config.RequestTimeout, &children); err != nil {
		c.registerQueryErrorMetric("GroupChildren")

		return nil, err
	}

	return children, nil
}

func (c *Client) addGroupChildren(ctx context.Context, groupID string, ids []string) error {
	if err := c.post(ctx, "/v1/groups/"+url.PathEscape(groupID)+"/children", ids); err != nil {
		c.registerQueryErrorMetric("AddGroupChildren")

		return err
	}

	return nil
}

func (c *Client) removeGroupChildren(ctx context.Context, groupID string, ids []string) error {
	if err := c.post(ctx, "/v1/groups/"+url.PathEscape(groupID)+"/removeChildren", ids); err != nil {
		c.registerQueryErrorMetric("RemoveGroupChildren")

		return err
	}

	return nil
}

// ConnectorIDs returns the IDs of all connectors known upstream.
func (c *Client) ConnectorIDs(ctx context.Context) ([]string, error) {
	var ids []string

	if err := c.get(ctx, "/v1/connectors/allIds", freshnessIDList, c.config.RequestTimeout, &ids); err != nil {
		c.registerQueryErrorMetric("ConnectorIDs")

		return nil, err
	}

	return ids, nil
}

// ConnectorsByIDs bulk-fetches connector records. IDs that do not resolve to
// connectors are silently skipped by the upstream.
func (c *Client) ConnectorsByIDs(ctx context.Context, ids []string) ([]model.Connector, error) {
	var connectors []model.Connector

	if err := c.get(ctx, "/v1/connectors/ids?"+idsQuery(ids), freshnessDefault, c.config.RequestTimeout, &connectors); err != nil {
		c.registerQueryErrorMetric("ConnectorsByIDs")

		return nil, err
	}

	return connectors, nil
}

// ConnectorDevices returns the device map covering all connectors. This is
// the one bulk call with the extended budget, the payload covers the whole
// estate and is not customer scoped.
func (c *Client) ConnectorDevices(ctx context.Context) (model.ConnectorDeviceMap, error) {
	var devices model.ConnectorDeviceMap

	if err := c.get(ctx, "/v1/connectors/devices", freshnessDefault, c.config.DeviceMapTimeout, &devices); err != nil {
		c.registerQueryErrorMetric("ConnectorDevices")

		return nil, err
	}

	return devices, nil
}

// LiveConnectorIDs returns the IDs of operationally alive connectors.
func (c *Client) LiveConnectorIDs(ctx context.Context) ([]string, error) {
	var ids []string

	if err := c.get(ctx, "/v1/connectors/live", freshnessHealth, c.config.RequestTimeout, &ids); err != nil {
		c.registerQueryErrorMetric("LiveConnectorIDs")

		return nil, err
	}

	return ids, nil
}

// DeadConnectorIDs returns the IDs of connectors the upstream considers dead.
func (c *Client) DeadConnectorIDs(ctx context.Context) ([]string, error) {
	var ids []string

	if err := c.get(ctx, "/v1/connectors/dead", freshnessHealth, c.config.RequestTimeout, &ids); err != nil {
		c.registerQueryErrorMetric("DeadConnectorIDs")

		return nil, err
	}

	return ids, nil
}

func idsQuery(ids []string) string {
	values := url.Values{}

	for _, id := range ids {
		values.Add("ids", id)
	}

	return values.Encode()
}
