package model

import (
	"math"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

/*
Expand turns a predictor vector into a polynomial feature row. For every
dimension d and exponent e in [0, highestExponent] the row holds
predictor[d]^e at d*(highestExponent+1)+e.

Every dimension gets its own constant column, so a design matrix built from
expanded rows is rank-deficient by construction.
*/
func Expand(predictor []float64, highestExponent int) ([]float64, error) {
	if len(predictor) == 0 {
		return nil, xerrors.Errorf("empty predictor vector: %w", ErrInvalidArgument)
	}
	if highestExponent < 0 {
		return nil, xerrors.Errorf("negative highest exponent %d: %w", highestExponent, ErrInvalidArgument)
	}
	w := highestExponent + 1
	row := make([]float64, len(predictor)*w)
	for d, x := range predictor {
		for e := 0; e < w; e++ {
			row[d*w+e] = math.Pow(x, float64(e))
		}
	}
	return row, nil
}

/*
DesignMatrix expands every predictor row into one matrix row
*/
func DesignMatrix(predictors [][]float64, highestExponent int) (*mat.Dense, error) {
	if len(predictors) == 0 {
		return nil, xerrors.Errorf("no predictor rows: %w", ErrInvalidArgument)
	}
	if highestExponent < 0 {
		return nil, xerrors.Errorf("negative highest exponent %d: %w", highestExponent, ErrInvalidArgument)
	}
	cols := len(predictors[0]) * (highestExponent + 1)
	data := make([]float64, 0, len(predictors)*cols)
	for i, p := range predictors {
		if len(p) != len(predictors[0]) {
			return nil, xerrors.Errorf("predictor row %d has %d values, expected %d: %w",
				i, len(p), len(predictors[0]), ErrDimensionMismatch)
		}
		row, err := Expand(p, highestExponent)
		if err != nil {
			return nil, err
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(predictors), cols, data), nil
}
