/*
Package hyperopt implements random search over training parameters.

Every iteration samples one value per parameter from its distribution, scores
the sampled parameters with the objective and keeps the lowest score.
*/
package hyperopt

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/Ghostkeeper/R2D2/model"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
)

/*
Range is a open float range specified by min and max values (min,max)
*/
type Range [2]float64

/*
LogRange is a open float logarithmic range specified by min and max values (min,max)
*/
type LogRange [2]float64

/*
IntRange is a close integer range specified by min and max values [min,max]
*/
type IntRange [2]int

/*
List is a list of possible parameter values
*/
type List []float64

/*
Value is a single value parameter
*/
type Value float64

// type limitation interface
type distribution interface {
	sample(*rand.Rand) float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}

func (r LogRange) sample(rng *rand.Rand) float64 {
	lo, hi := math.Log(r[0]), math.Log(r[1])
	return math.Exp(lo + rng.Float64()*(hi-lo))
}

func (r IntRange) sample(rng *rand.Rand) float64 {
	return float64(r[0] + rng.Intn(r[1]-r[0]+1))
}

func (l List) sample(rng *rand.Rand) float64 {
	return l[rng.Intn(len(l))]
}

func (v Value) sample(*rand.Rand) float64 {
	return float64(v)
}

/*
Variance is a space of parameters used by Search
*/
type Variance map[string]distribution

/*
Objective scores parameters, lower is better
*/
type Objective func(context.Context, model.Params) (float64, error)

/*
Report is a result of parameters optimization
*/
type Report struct {
	model.Params
	Score float64
}

/*
Space is a definition of parameters optimization space
*/
type Space struct {
	Seed       int64 // random seed
	Iterations int   // count of sampled parameter sets

	// parameters variance
	Variance Variance
}

func (s Space) validate() error {
	if s.Iterations < 1 {
		return xerrors.Errorf("%d search iterations: %w", s.Iterations, model.ErrInvalidArgument)
	}
	for k, d := range s.Variance {
		bad := false
		switch x := d.(type) {
		case Range:
			bad = !(x[0] < x[1])
		case LogRange:
			bad = !(0 < x[0] && x[0] < x[1])
		case IntRange:
			bad = x[0] > x[1]
		case List:
			bad = len(x) == 0
		}
		if bad {
			return xerrors.Errorf("empty variance of parameter `%v`: %w", k, model.ErrInvalidArgument)
		}
	}
	return nil
}

/*
Sample draws one parameter set
*/
func (s Space) Sample(rng *rand.Rand) model.Params {
	keys := make([]string, 0, len(s.Variance))
	for k := range s.Variance {
		keys = append(keys, k)
	}
	// map order is random, sampling order must not be
	sort.Strings(keys)
	p := model.Params{}
	for _, k := range keys {
		p[k] = s.Variance[k].sample(rng)
	}
	return p
}

/*
Search samples Iterations parameter sets and returns the one with the lowest
objective score. Sets the objective rejects with ErrInsufficientData are
skipped, any other error stops the search
*/
func (s Space) Search(ctx context.Context, objective Objective) (Report, error) {
	if err := s.validate(); err != nil {
		return Report{}, err
	}
	rng := rand.New(rand.NewSource(s.Seed))
	best := Report{Score: math.Inf(1)}
	for i := 0; i < s.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		p := s.Sample(rng)
		score, err := objective(ctx, p)
		if err != nil {
			if xerrors.Is(err, model.ErrInsufficientData) {
				continue
			}
			return Report{}, err
		}
		if best.Params == nil || score < best.Score {
			best = Report{p, score}
		}
	}
	if best.Params == nil {
		return Report{}, xerrors.Errorf("no parameter set could be scored: %w", model.ErrInsufficientData)
	}
	return best, nil
}

/*
LuckySearch is the same as Search but panics on error
*/
func (s Space) LuckySearch(ctx context.Context, objective Objective) Report {
	r, err := s.Search(ctx, objective)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}
