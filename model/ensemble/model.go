package ensemble

import (
	"github.com/Ghostkeeper/R2D2/model"
	"github.com/Ghostkeeper/R2D2/model/bagging"
	"github.com/Ghostkeeper/R2D2/model/lsq"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/stat"
)

// epsilon keeps efficacy weights finite for bags with exact fits
const epsilon = 1e-12

/*
Member is the fit of one bag
*/
type Member struct {
	Bag          bagging.Bag
	Coefficients []float64
	Efficacy     float64 // sum of squared residuals on the bag's test rows
	Error        float64 // squared residual per test row
}

/*
Model is an ensemble of per-bag fits for one target variable
*/
type Model struct {
	Label           string
	Features        []string
	HighestExponent int
	Aggregation     string
	Members         []Member  // in bag order
	Coefficients    []float64 // aggregate of members' coefficients
	Best            int       // member with the lowest test error
	Score           float64   // mean of members' per row test errors

	// Estimator evaluates Coefficients, polynomial least squares of
	// HighestExponent if nil
	Estimator model.Estimator
}

/*
Predict evaluates the aggregate coefficients on a raw predictor vector
*/
func (m *Model) Predict(predictor []float64) (float64, error) {
	if len(predictor) != len(m.Features) {
		return 0, xerrors.Errorf("model %v expects %d predictors, got %d: %w",
			m.Label, len(m.Features), len(predictor), model.ErrDimensionMismatch)
	}
	return m.estimator().Predict(m.Coefficients, predictor)
}

func (m *Model) estimator() model.Estimator {
	if m.Estimator != nil {
		return m.Estimator
	}
	return lsq.New(m.HighestExponent)
}

/*
Efficacies returns members' test errors in bag order
*/
func (m *Model) Efficacies() []float64 {
	r := make([]float64, len(m.Members))
	for i, x := range m.Members {
		r[i] = x.Efficacy
	}
	return r
}

/*
Errors returns members' per row test errors in bag order
*/
func (m *Model) Errors() []float64 {
	r := make([]float64, len(m.Members))
	for i, x := range m.Members {
		r[i] = x.Error
	}
	return r
}

/*
Aggregate combines members' coefficient vectors into one vector
*/
type Aggregate func([]Member) []float64

const (
	MeanAggregation     = "mean"
	EfficacyAggregation = "efficacy"
)

/*
Aggregations maps aggregation names to implementations
*/
var Aggregations = map[string]Aggregate{
	MeanAggregation:     Mean,
	EfficacyAggregation: EfficacyWeighted,
}

/*
Mean is the arithmetic mean of every coefficient across members
*/
func Mean(members []Member) []float64 {
	return weightedMean(members, nil)
}

/*
EfficacyWeighted weights every member inversely to its test error, so bags
which generalized better contribute more
*/
func EfficacyWeighted(members []Member) []float64 {
	w := make([]float64, len(members))
	for i, m := range members {
		w[i] = 1 / (m.Efficacy + epsilon)
	}
	return weightedMean(members, w)
}

func weightedMean(members []Member, weights []float64) []float64 {
	if len(members) == 0 {
		return nil
	}
	r := make([]float64, len(members[0].Coefficients))
	col := make([]float64, len(members))
	for j := range r {
		for i, m := range members {
			col[i] = m.Coefficients[j]
		}
		r[j] = stat.Mean(col, weights)
	}
	return r
}
