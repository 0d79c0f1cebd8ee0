package engine

import (
	"context"

	"github.com/roach88/dbgstate/internal/action"
)

// Work performs one async request. It returns the action carrying the
// result, or nil to settle with the request action itself.
type Work func(ctx context.Context) (action.AsyncAction, error)

// Track runs work as a tracked async request and returns its request id.
//
// The start phase of req is enqueued before work begins. When work returns,
// its result is enqueued as the done phase, or req as the error phase if
// work failed. Both phases carry the same request id, so the ledger gains
// the id on start and loses it on settle, whichever order requests finish in.
//
// If the controller is stopped before work returns, the settle phase is
// dropped and the ledger keeps the id.
func (c *Controller) Track(ctx context.Context, req action.AsyncAction, work Work) string {
	id := c.ids.Generate()
	started := action.Async{RequestID: id, Status: action.StatusStart}

	if !c.enqueue(Event{Action: req.WithAsync(started), Origin: "track"}) {
		return id
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		res, err := work(ctx)

		var settle action.Action
		if err != nil {
			c.logger.Debug("tracked request failed", "request_id", id, "type", req.Type(), "error", err)
			settle = req.WithAsync(action.Async{RequestID: id, Status: action.StatusError, Error: err.Error()})
		} else {
			if res == nil {
				res = req
			}
			settle = res.WithAsync(action.Async{RequestID: id, Status: action.StatusDone})
		}
		c.enqueue(Event{Action: settle, Origin: "track"})
	}()

	return id
}

// Wait blocks until every tracked request has enqueued its settle phase.
func (c *Controller) Wait() {
	c.pending.Wait()
}
