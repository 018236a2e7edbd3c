package quant

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Request is one labelled k-ratio set of a batch.
type Request struct {
	Label   string
	KRatios []KRatio
}

// Outcome pairs a request with its result or hard error.
type Outcome struct {
	Label  string
	Result *Result // nil when Err != nil
	Err    error
}

// QuantifyBatch evaluates independent requests in parallel, at most
// Concurrency at a time. A failing request does not stop the others: its
// error is stored in its Outcome. Outcomes are in request order.
//
// Errors:
//   - ctx.Err() when the context is cancelled; outcomes of requests that
//     did not start carry the same error.
func (q *Quantifier) QuantifyBatch(ctx context.Context, reqs []Request) ([]Outcome, error) {
	out := make([]Outcome, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	if q.opts.concurrency > 0 {
		g.SetLimit(q.opts.concurrency)
	}
	for i, req := range reqs {
		i, req := i, req
		out[i].Label = req.Label
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				out[i].Err = err
				return err
			}
			out[i].Result, out[i].Err = q.Quantify(req.Label, req.KRatios)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	return out, ctx.Err()
}

// Tally counts a batch by terminal state.
type Tally struct {
	Converged    int
	NotConverged int
	Failed       int
}

// Total returns the number of outcomes counted.
func (t Tally) Total() int { return t.Converged + t.NotConverged + t.Failed }

// TallyOutcomes counts outcomes by state.
func TallyOutcomes(outs []Outcome) Tally {
	var t Tally
	for _, o := range outs {
		switch {
		case o.Err != nil || o.Result == nil:
			t.Failed++
		case o.Result.Converged():
			t.Converged++
		default:
			t.NotConverged++
		}
	}

	return t
}
