package resolve

import (
	"context"
	"sync"

	"github.com/git-pkgs/sysdeps/internal/core"
)

const defaultConcurrency = 15

// Failure records one request that could not be resolved.
type Failure struct {
	Request core.Request
	Err     error
}

// Report collects the outcome of resolving many requests. Results[i] is nil
// when request i failed.
type Report struct {
	Results  []*core.Result
	Failures []Failure
}

// OK reports whether every request resolved.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// ResolveAll resolves reqs in parallel with the default concurrency.
func (r *Resolver) ResolveAll(ctx context.Context, reqs []core.Request) (*Report, error) {
	return r.ResolveAllWithConcurrency(ctx, reqs, defaultConcurrency)
}

// ResolveAllWithConcurrency resolves reqs with at most concurrency lookups
// in flight. Unresolved requests are collected in the report and do not stop
// the others. A rule cycle aborts the run and is returned as the error.
func (r *Resolver) ResolveAllWithConcurrency(ctx context.Context, reqs []core.Request, concurrency int) (*Report, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*core.Result, len(reqs))
	errs := make([]error, len(reqs))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req core.Request) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}

			results[i], errs[i] = r.Resolve(req)
		}(i, req)
	}

	wg.Wait()

	report := &Report{Results: results}
	for i, err := range errs {
		if err == nil {
			continue
		}
		if IsFatal(err) {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		report.Failures = append(report.Failures, Failure{Request: reqs[i], Err: err})
	}
	return report, nil
}
