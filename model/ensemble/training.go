/*
Package ensemble trains an ensemble of fits over random train/test bags.
*/
package ensemble

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/Ghostkeeper/R2D2/fu"
	"github.com/Ghostkeeper/R2D2/model"
	"github.com/Ghostkeeper/R2D2/model/bagging"
	"github.com/Ghostkeeper/R2D2/model/lsq"
	"github.com/cespare/xxhash/v2"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/stat"
)

/*
Training is the bagging ensemble trainer configuration.
Zero fields select defaults
*/
type Training struct {
	Bags            int             // count of bags, bagging.DefaultBags by default
	TrainingRatio   float64         // share of rows to train on, bagging.DefaultTrainingRatio by default
	HighestExponent int             // polynomial degree, lsq.DefaultHighestExponent by default
	Seed            int64           // base seed of bag permutations
	Aggregation     string          // name in Aggregations, MeanAggregation by default
	Estimator       model.Estimator // overrides polynomial least squares of HighestExponent
	Workers         int             // count of bags fitted concurrently, 1 by default
	Logger          model.Logger    // zlog by default
	Verbose         bool            // log every bag's efficacy
}

/*
With returns a copy of the training with numeric parameters applied:
bags, ratio, exponent, seed and workers
*/
func (t Training) With(p model.Params) Training {
	t.Bags = int(p.Get("bags", float64(t.Bags)))
	t.TrainingRatio = p.Get("ratio", t.TrainingRatio)
	if e, ok := p["exponent"]; ok {
		t.HighestExponent = int(e)
		// an explicit exponent, 0 included, replaces the default polynomial
		if _, ok := t.Estimator.(lsq.LeastSquares); ok || t.Estimator == nil {
			t.Estimator = lsq.New(t.HighestExponent)
		}
	}
	t.Seed = int64(p.Get("seed", float64(t.Seed)))
	t.Workers = int(p.Get("workers", float64(t.Workers)))
	return t
}

func (t Training) highestExponent() int {
	return fu.Fnzi(t.HighestExponent, lsq.DefaultHighestExponent)
}

func (t Training) estimator() model.Estimator {
	if t.Estimator != nil {
		return t.Estimator
	}
	return lsq.New(t.highestExponent())
}

func (t Training) aggregation() (string, Aggregate, error) {
	name := fu.Fnzs(t.Aggregation, MeanAggregation)
	agg, ok := Aggregations[name]
	if !ok {
		return "", nil, xerrors.Errorf("unknown aggregation `%v`: %w", name, model.ErrInvalidArgument)
	}
	return name, agg, nil
}

/*
Rand returns the random source Train uses for the label. Every label gets
its own stream so results do not depend on the order labels are trained in
*/
func (t Training) Rand(label string) *rand.Rand {
	return rand.New(rand.NewSource(t.Seed ^ int64(xxhash.Sum64String(label))))
}

/*
Train fits the dataset over random bags and aggregates the fits
*/
func (t Training) Train(ctx context.Context, ds model.Dataset) (*Model, error) {
	return t.TrainWithRand(ctx, ds, t.Rand(ds.Label))
}

/*
LuckyTrain trains the dataset and panics on any error
*/
func (t Training) LuckyTrain(ds model.Dataset) *Model {
	m, err := t.Train(context.Background(), ds)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return m
}

/*
TrainWithRand fits the dataset over bags drawn from rng. Bags are drawn
before fitting, so concurrent fitting yields the same members as serial one
*/
func (t Training) TrainWithRand(ctx context.Context, ds model.Dataset, rng *rand.Rand) (*Model, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	name, agg, err := t.aggregation()
	if err != nil {
		return nil, err
	}
	log := model.LoggerOr(t.Logger)
	est := t.estimator()

	bags := bagging.Subdivide(ds.Len(),
		fu.Fnzi(t.Bags, bagging.DefaultBags),
		fu.Fnzd(t.TrainingRatio, bagging.DefaultTrainingRatio),
		rng, log).Collect()
	if len(bags) == 0 {
		return nil, xerrors.Errorf("no bags for %v from %d samples: %w", ds.Label, ds.Len(), model.ErrInsufficientData)
	}

	members := make([]Member, len(bags))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fu.Maxi(t.Workers, 1))
	for i := range bags {
		i := i
		g.Go(func() (err error) {
			if err = gctx.Err(); err != nil {
				return
			}
			members[i], err = fit(est, ds, bags[i])
			return
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	m := &Model{
		Label:       ds.Label,
		Features:    ds.Features,
		Aggregation: name,
		Members:     members,
		Estimator:   t.Estimator,
	}
	if ls, ok := est.(lsq.LeastSquares); ok {
		m.HighestExponent = ls.HighestExponent
	}
	efficacies := m.Efficacies()
	m.Best = fu.Indmind(efficacies)
	m.Score = stat.Mean(m.Errors(), nil)
	m.Coefficients = agg(members)
	if t.Verbose {
		for _, x := range members {
			log.Log(model.Info, fmt.Sprintf(
				"%v [%3d] train: %d, test: %d, residual: %.5f",
				ds.Label, x.Bag.Index, len(x.Bag.Train), len(x.Bag.Test), x.Efficacy))
		}
	}
	return m, nil
}

func fit(est model.Estimator, ds model.Dataset, bag bagging.Bag) (Member, error) {
	coefficients, err := est.Fit(ds.Subset(bag.Train))
	if err != nil {
		return Member{}, err
	}
	test := ds.Subset(bag.Test)
	predicted, err := model.Predictions(est, coefficients, test)
	if err != nil {
		return Member{}, err
	}
	return Member{
		Bag:          bag,
		Coefficients: coefficients,
		Efficacy:     fu.Sse(predicted, test.Responses),
		Error:        fu.Mse(predicted, test.Responses),
	}, nil
}
