package esm

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/soc-toolbox/esmbridge/internal/model"
)

// AllCustomers returns every customer known upstream, resolved through the
// ID-batch endpoints, optionally filtered by a case-insensitive search term.
func (c *Client) AllCustomers(ctx context.Context, search string) ([]model.Customer, error) {
	ctx, span := otel.Tracer(pkgName).Start(ctx, "ESM.AllCustomers")
	defer span.End()

	ids, err := c.CustomerIDs(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := fetchAllByIDs(ctx, ids, c.config.BatchSize, c.CustomersByIDs)
	if err != nil {
		return nil, err
	}

	if search == "" {
		return customers, nil
	}

	term := strings.ToLower(search)
	filtered := make([]model.Customer, 0, len(customers))

	for _, customer := range customers {
		if customerMatches(&customer, term) {
			filtered = append(filtered, customer)
		}
	}

	return filtered, nil
}

func customerMatches(customer *model.Customer, term string) bool {
	for _, field := range []string{
		customer.Name,
		customer.Alias,
		customer.ExternalID,
		customer.City,
		customer.Country,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}
