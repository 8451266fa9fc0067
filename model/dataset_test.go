package model

import (
	"testing"

	"github.com/Ghostkeeper/R2D2/fu"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
)

func Test_DatasetValidate(t *testing.T) {
	ds := Dataset{
		Label:      "speed",
		Features:   []string{"a", "b"},
		Predictors: [][]float64{{1, 2}, {3, 4}},
		Responses:  []float64{10, 20},
	}
	assert.NilError(t, ds.Validate())
	assert.Equal(t, ds.Len(), 2)

	ds.Responses = ds.Responses[:1]
	assert.Assert(t, xerrors.Is(ds.Validate(), ErrDimensionMismatch))

	ds.Responses = []float64{10, 20}
	ds.Predictors[1] = []float64{3}
	assert.Assert(t, xerrors.Is(ds.Validate(), ErrDimensionMismatch))
}

func Test_DatasetSubset(t *testing.T) {
	ds := Dataset{
		Label:      "speed",
		Features:   []string{"a"},
		Predictors: [][]float64{{1}, {2}, {3}},
		Responses:  []float64{10, 20, 30},
	}
	s := ds.Subset([]int{2, 0})
	assert.Equal(t, s.Label, "speed")
	assert.DeepEqual(t, s.Predictors, [][]float64{{3}, {1}})
	assert.DeepEqual(t, s.Responses, []float64{30, 10})
}

type constant float64

func (c constant) Fit(Dataset) ([]float64, error) { return []float64{float64(c)}, nil }
func (c constant) Predict(coefficients, _ []float64) (float64, error) {
	return coefficients[0], nil
}

func Test_Predictions(t *testing.T) {
	ds := Dataset{Predictors: [][]float64{{0}, {0}}, Responses: []float64{1, 4}}
	p, err := Predictions(constant(2), []float64{2}, ds)
	assert.NilError(t, err)
	assert.DeepEqual(t, p, []float64{2, 2})
	assert.Equal(t, fu.Sse(p, ds.Responses), 5.0)
	assert.Equal(t, fu.Mse(p, ds.Responses), 2.5)
}

func Test_Logger(t *testing.T) {
	var got []string
	l := LoggerFunc(func(s Severity, msg string) { got = append(got, s.String()+": "+msg) })
	LoggerOr(l).Log(Warning, "few samples")
	assert.DeepEqual(t, got, []string{"warning: few samples"})
	assert.Equal(t, LoggerOr(nil), ZLog)
}

func Test_Params(t *testing.T) {
	p := Params{"bags": 7}
	assert.Equal(t, p.Get("bags", 5), 7.0)
	assert.Equal(t, p.Get("ratio", 0.8), 0.8)
}
