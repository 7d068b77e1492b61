package model

const (
	AppName = "esmbridge"
)

// ResourceBase holds the fields shared by every addressable ESM resource.
type ResourceBase struct {
	ResourceID        string `json:"resourceId"`
	Name              string `json:"name"`
	Alias             string `json:"alias,omitempty"`
	Description       string `json:"description,omitempty"`
	CreatedTimestamp  int64  `json:"createdTimestamp,omitempty"`
	ModifiedTimestamp int64  `json:"modifiedTimestamp,omitempty"`
}

// Customer is an ESM customer resource. Read-only from this layer.
type Customer struct {
	ResourceBase

	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	AddressState string `json:"addressState,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country,omitempty"`
	ExternalID   string `json:"externalID,omitempty"`
}

// Connector is an ESM connector resource.
//
// OperationalStatus is a free-form upstream string (RUNNING, STOPPED,
// PAUSED, UNKNOWN, ...) and is passed through as is.
type Connector struct {
	ResourceBase

	OperationalStatus string   `json:"operationalStatus,omitempty"`
	OwningServer      string   `json:"owningServer,omitempty"`
	Alive             bool     `json:"alive,omitempty"`
	Networks          []string `json:"networks,omitempty"`
	Disabled          bool     `json:"disabled,omitempty"`
	DisabledReason    string   `json:"disabledReason,omitempty"`
	Inactive          bool     `json:"inactive,omitempty"`
	InactiveReason    string   `json:"inactiveReason,omitempty"`
}

func (c *Connector) AsLogFields() []any {
	return []any{
		"resource_id", c.ResourceID,
		"name", c.Name,
		"status", c.OperationalStatus,
		"alive", c.Alive,
	}
}

// DeviceDetail is a device reported by a connector. Devices are not
// independently addressable, they only arrive attached to a connector ID
// through the device map.
type DeviceDetail struct {
	DeviceVendor  string `json:"deviceVendor"`
	DeviceProduct string `json:"deviceProduct"`
	DeviceVersion string `json:"deviceVersion,omitempty"`
}

// ConnectorDeviceMap maps a connector resource ID to the devices it reports.
// It covers all connectors known upstream, the join to a specific customer
// happens client side by ID lookup.
type ConnectorDeviceMap map[string][]DeviceDetail

// ConnectorWithDevices is a connector joined with its reported devices.
type ConnectorWithDevices struct {
	Connector

	Devices []DeviceDetail `json:"devices"`
}

// ConnectorHealth is the merged live/dead connector summary.
type ConnectorHealth struct {
	Live  []string `json:"live"`
	Dead  []string `json:"dead"`
	Total int      `json:"total"`
}

type Args struct {
	LogLevel        string
	ConfigFile      string
	EnableProfiling bool
}
