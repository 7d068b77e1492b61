package esm

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/soc-toolbox/esmbridge/internal/model"
)

// ConnectorHealth merges the live and dead connector ID sets into one
// summary. The two fetches run concurrently and either failing fails the
// whole call, a partial count would be misleading.
//
// No deduplication happens between the sets, the upstream is trusted to keep
// them disjoint.
func (c *Client) ConnectorHealth(ctx context.Context) (*model.ConnectorHealth, error) {
	ctx, span := otel.Tracer(pkgName).Start(ctx, "ESM.ConnectorHealth")
	defer span.End()

	var (
		wg sync.WaitGroup

		live    []string
		dead    []string
		liveErr error
		deadErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		live, liveErr = c.LiveConnectorIDs(ctx)
	}()

	go func() {
		defer wg.Done()

		dead, deadErr = c.DeadConnectorIDs(ctx)
	}()

	wg.Wait()

	if liveErr != nil {
		return nil, liveErr
	}

	if deadErr != nil {
		return nil, deadErr
	}

	return &model.ConnectorHealth{
		Live:  live,
		Dead:  dead,
		Total: len(live) + len(dead),
	}, nil
}
