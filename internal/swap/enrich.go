package swap

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// EnrichAll runs AssignReferencePrice for every quantity concurrently. Each
// goroutine writes only to its own quantity, so no locking is needed. Lookup
// failures are swallowed per quantity; EnrichAll itself never fails.
func EnrichAll(ctx context.Context, lookup PriceLookup, quantities []*TokenQuantity) {
	g, gctx := errgroup.WithContext(ctx)
	for _, q := range quantities {
		if q == nil {
			continue
		}
		q := q
		g.Go(func() error {
			q.AssignReferencePrice(gctx, lookup)
			return nil
		})
	}
	_ = g.Wait()
}

// EnrichSwaps prices both sides of every swap in place.
func EnrichSwaps(ctx context.Context, lookup PriceLookup, swaps []TokenSwap) {
	quantities := make([]*TokenQuantity, 0, 2*len(swaps))
	for i := range swaps {
		quantities = append(quantities, &swaps[i].From, &swaps[i].To)
	}
	EnrichAll(ctx, lookup, quantities)
}
