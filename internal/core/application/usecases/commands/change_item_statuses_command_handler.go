package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"golang.org/x/sync/errgroup"
)

// DefaultBulkConcurrency bounds the goroutines of a bulk request when the
// handler is created with a non-positive limit.
const DefaultBulkConcurrency = 8

// ItemStatusChangeResult is the per-item answer of a bulk request.
type ItemStatusChangeResult struct {
	ItemID kernel.UUID
	Result TransitionResult
	Err    error
}

// ChangeItemStatusesCommandHandler fans out one transition per item. Items
// share nothing but their order, so there is no cross-item locking: each
// item is serialized only by its own in-flight marker.
//
// Example:
//
//	results, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // the request itself was invalid
//	}
//	for _, r := range results {
//	    if r.Err != nil {
//	        log.Printf("item %s: %v", r.ItemID, r.Err)
//	    }
//	}
type ChangeItemStatusesCommandHandler struct {
	engine      transitionEngine
	concurrency int
}

func NewChangeItemStatusesCommandHandler(deps TransitionDeps, concurrency int) ChangeItemStatusesCommandHandler {
	if concurrency <= 0 {
		concurrency = DefaultBulkConcurrency
	}
	return ChangeItemStatusesCommandHandler{
		engine:      newTransitionEngine(deps),
		concurrency: concurrency,
	}
}

// Handle returns one result per change, in request order. A failing item
// does not stop the others.
func (h ChangeItemStatusesCommandHandler) Handle(ctx context.Context, cmd ChangeItemStatusesCommand) ([]ItemStatusChangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	changes := cmd.Changes()
	results := make([]ItemStatusChangeResult, len(changes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for i, change := range changes {
		g.Go(func() error {
			result, err := h.engine.submit(gctx, cmd.OrderID(), change.ItemID, change.Status, change.Reason)
			results[i] = ItemStatusChangeResult{
				ItemID: change.ItemID,
				Result: result,
				Err:    err,
			}
			// Per-item failures are reported in results, not through the group.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
