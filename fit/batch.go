package fit

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/arrhenius/model"
	"github.com/katalvlaran/arrhenius/observation"
)

// Outcome is the result of one model in a FitAll batch. Exactly one of
// Result and Err is set.
type Outcome struct {
	Model  model.Model
	Result *Result
	Err    error
}

// FitAll fits every model in models against set, at most GOMAXPROCS at a
// time. Outcomes keep the order of models; a failing model does not stop
// the others. No ranking is applied.
func FitAll(set *observation.Set, models []model.Model, opts ...Option) []Outcome {
	out := make([]Outcome, len(models))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range models {
		g.Go(func() error {
			res, err := FitSet(m, set, opts...)
			out[i] = Outcome{Model: m, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return out
}
