/*
Package lsq implements polynomial curve fitting by linear least squares.

The fit is linear in the coefficients but polynomial in the predictors: every
predictor dimension is expanded into its powers up to the highest exponent
before solving. Solutions are computed from a singular value decomposition so
rank-deficient designs yield the minimum-norm solution.
*/
package lsq

import (
	"github.com/Ghostkeeper/R2D2/model"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultHighestExponent is used when no highest exponent is specified
const DefaultHighestExponent = 4

const epsilon = 2.220446049250313e-16

/*
LeastSquares is a polynomial least squares estimator
*/
type LeastSquares struct {
	HighestExponent int
}

/*
New returns an estimator expanding predictors up to the given exponent
*/
func New(highestExponent int) model.Estimator {
	return LeastSquares{HighestExponent: highestExponent}
}

/*
Fit expands the dataset predictors and solves for the coefficients
*/
func (ls LeastSquares) Fit(ds model.Dataset) ([]float64, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	x, err := model.DesignMatrix(ds.Predictors, ls.HighestExponent)
	if err != nil {
		return nil, err
	}
	return Solve(x, ds.Responses)
}

/*
Predict evaluates coefficients on the expanded predictor
*/
func (ls LeastSquares) Predict(coefficients, predictor []float64) (float64, error) {
	row, err := model.Expand(predictor, ls.HighestExponent)
	if err != nil {
		return 0, err
	}
	if len(row) != len(coefficients) {
		return 0, xerrors.Errorf("%d coefficients for %d features: %w",
			len(coefficients), len(row), model.ErrDimensionMismatch)
	}
	return floats.Dot(row, coefficients), nil
}

/*
Solve returns B minimizing ||X·B - Y||² with the smallest norm
*/
func Solve(x *mat.Dense, y []float64) ([]float64, error) {
	if x == nil || x.IsEmpty() {
		return nil, xerrors.Errorf("empty design matrix: %w", model.ErrInvalidArgument)
	}
	m, n := x.Dims()
	if m != len(y) {
		return nil, xerrors.Errorf("design matrix has %d rows but %d responses: %w",
			m, len(y), model.ErrDimensionMismatch)
	}
	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, xerrors.Errorf("singular value decomposition of %dx%d design failed", m, n)
	}
	rank := svd.Rank(epsilon * float64(max(m, n)))
	if rank == 0 {
		return make([]float64, n), nil
	}
	var b mat.VecDense
	svd.SolveVecTo(&b, mat.NewVecDense(m, append([]float64(nil), y...)), rank)
	return mat.Col(nil, 0, &b), nil
}
