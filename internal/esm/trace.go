package esm

import (
	"context"
	"time"
)

const (
	StepOK      = "ok"
	StepError   = "error"
	StepSkipped = "skipped"
)

// TraceStep records the outcome of one stage of the customer-connector
// resolution chain.
type TraceStep struct {
	Status     string      `json:"status"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Reason     string      `json:"reason,omitempty"`
	DurationMS int64       `json:"duration_ms,omitempty"`
}

// CustomerTrace is a stepwise diagnostic of the hierarchy bridge for one
// customer, each upstream call reported with status and duration so a failing
// stage can be pinpointed without retrying manually.
type CustomerTrace struct {
	CustomerID    string    `json:"customerId"`
	PathsToRoot   TraceStep `json:"step1_pathsToRoot"`
	GroupChildren TraceStep `json:"step2_groupChildren"`
	Connectors    TraceStep `json:"step3_connectors"`
	Devices       TraceStep `json:"step4_devices"`
}

func runStep(fn func() (interface{}, error)) TraceStep {
	start := time.Now()

	data, err := fn()
	if err != nil {
		return TraceStep{
			Status:     StepError,
			Error:      err.Error(),
			DurationMS: time.Since(start).Milliseconds(),
		}
	}

	return TraceStep{
		Status:     StepOK,
		Data:       data,
		DurationMS: time.Since(start).Milliseconds(),
	}
}

func skippedStep(reason string) TraceStep {
	return TraceStep{Status: StepSkipped, Reason: reason}
}

// TraceCustomer walks the resolution chain for a customer step by step,
// never aborting on failure, and returns the full report.
func (c *Client) TraceCustomer(ctx context.Context, customerID string) *CustomerTrace {
	trace := &CustomerTrace{CustomerID: customerID}

	var paths []string

	trace.PathsToRoot = runStep(func() (interface{}, error) {
		var err error
		paths, err = c.CustomerPathsToRoot(ctx, customerID)

		return paths, err
	})

	if trace.PathsToRoot.Status != StepOK || len(paths) == 0 {
		reason := "step 1 failed"
		if trace.PathsToRoot.Status == StepOK {
			reason = "customer has no parent group, no connectors possible"
		}

		trace.GroupChildren = skippedStep(reason)
		trace.Connectors = skippedStep("step 2 skipped")
		trace.Devices = skippedStep("step 2 skipped")

		return trace
	}

	var childIDs []string

	trace.GroupChildren = runStep(func() (interface{}, error) {
		var err error
		childIDs, err = c.GroupChildren(ctx, paths[0])

		return childIDs, err
	})

	if trace.GroupChildren.Status != StepOK || len(childIDs) == 0 {
		reason := "step 2 failed"
		if trace.GroupChildren.Status == StepOK {
			reason = "group has no children, no connectors"
		}

		trace.Connectors = skippedStep(reason)
		trace.Devices = skippedStep("step 3 skipped")

		return trace
	}

	trace.Connectors = runStep(func() (interface{}, error) {
		return fetchAllByIDs(ctx, childIDs, c.config.BatchSize, c.ConnectorsByIDs)
	})

	// the device map facet is independent of step 3
	trace.Devices = runStep(func() (interface{}, error) {
		devices, err := c.ConnectorDevices(ctx)
		if err != nil {
			return nil, err
		}

		return map[string]int{"totalDeviceMappings": len(devices)}, nil
	})

	return trace
}
