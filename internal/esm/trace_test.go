package esm

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soc-toolbox/esmbridge/internal/model"
)

func TestTraceCustomerFullChain(t *testing.T) {
	fake, srv := newFakeESM(t)
	fake.servePaths(t, "cust-1", []string{"group-9"})
	fake.serveChildren(t, "group-9", []string{"conn-1"})
	fake.serveConnectors(t, []model.Connector{
		{ResourceBase: model.ResourceBase{ResourceID: "conn-1"}},
	})
	fake.serveDevices(t, model.ConnectorDeviceMap{
		"conn-1": {{DeviceVendor: "cisco", DeviceProduct: "asa"}},
	})

	client := newTestClient(t, staticConfig(srv.URL))

	trace := client.TraceCustomer(context.Background(), "cust-1")
	require.NotNil(t, trace)

	assert.Equal(t, "cust-1", trace.CustomerID)
	assert.Equal(t, StepOK, trace.PathsToRoot.Status)
	assert.Equal(t, StepOK, trace.GroupChildren.Status)
	assert.Equal(t, StepOK, trace.Connectors.Status)
	assert.Equal(t, StepOK, trace.Devices.Status)

	assert.Equal(t, map[string]int{"totalDeviceMappings": 1}, trace.Devices.Data)
}

func TestTraceCustomerDetached(t *testing.T) {
	fake, srv := newFakeESM(t)
	fake.servePaths(t, "cust-1", []string{})

	client := newTestClient(t, staticConfig(srv.URL))

	trace := client.TraceCustomer(context.Background(), "cust-1")

	assert.Equal(t, StepOK, trace.PathsToRoot.Status)
	assert.Equal(t, StepSkipped, trace.GroupChildren.Status)
	assert.Contains(t, trace.GroupChildren.Reason, "no parent group")
	assert.Equal(t, StepSkipped, trace.Connectors.Status)
	assert.Equal(t, StepSkipped, trace.Devices.Status)

	// the hierarchy fan-out is never attempted
	assert.Zero(t, fake.childCalls.Load())
	assert.Zero(t, fake.deviceCalls.Load())
}

func TestTraceCustomerFirstStepFails(t *testing.T) {
	fake, srv := newFakeESM(t)
	fake.mux.HandleFunc("/v1/customers/cust-1/allPathsToRoot", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := newTestClient(t, staticConfig(srv.URL))

	trace := client.TraceCustomer(context.Background(), "cust-1")

	assert.Equal(t, StepError, trace.PathsToRoot.Status)
	assert.NotEmpty(t, trace.PathsToRoot.Error)
	assert.Equal(t, StepSkipped, trace.GroupChildren.Status)
	assert.Equal(t, StepSkipped, trace.Connectors.Status)
	assert.Equal(t, StepSkipped, trace.Devices.Status)
}

func TestTraceCustomerConnectorStepFailsButDevicesRun(t *testing.T) {
	fake, srv := newFakeESM(t)
	fake.servePaths(t, "cust-1", []string{"group-9"})
	fake.serveChildren(t, "group-9", []string{"conn-1"})
	fake.serveDevices(t, model.ConnectorDeviceMap{})
	fake.mux.HandleFunc("/v1/connectors/ids", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, staticConfig(srv.URL))

	trace := client.TraceCustomer(context.Background(), "cust-1")

	// the device facet does not depend on connector resolution succeeding
	assert.Equal(t, StepError, trace.Connectors.Status)
	assert.Equal(t, StepOK, trace.Devices.Status)
	assert.Equal(t, int32(1), fake.deviceCalls.Load())
}
