package model

import (
	"golang.org/x/xerrors"
)

/*
Dataset is a sequence of (predictor, response) pairs for one target variable
*/
type Dataset struct {
	Label      string      // name of the target variable
	Features   []string    // names of predictor dimensions
	Predictors [][]float64 // one row per observation, len(Features) values each
	Responses  []float64   // one response per row
}

/*
Len returns count of rows
*/
func (ds Dataset) Len() int {
	return len(ds.Responses)
}

/*
Validate checks that every row has a response and all rows are of the same width
*/
func (ds Dataset) Validate() error {
	if len(ds.Predictors) != len(ds.Responses) {
		return xerrors.Errorf("dataset %v has %d predictor rows and %d responses: %w",
			ds.Label, len(ds.Predictors), len(ds.Responses), ErrDimensionMismatch)
	}
	for i, row := range ds.Predictors {
		if len(row) != len(ds.Predictors[0]) {
			return xerrors.Errorf("dataset %v row %d has %d values, expected %d: %w",
				ds.Label, i, len(row), len(ds.Predictors[0]), ErrDimensionMismatch)
		}
	}
	return nil
}

/*
Subset returns the dataset restricted to given rows in the given order.
Rows are shared with the original dataset
*/
func (ds Dataset) Subset(rows []int) Dataset {
	r := Dataset{
		Label:      ds.Label,
		Features:   ds.Features,
		Predictors: make([][]float64, len(rows)),
		Responses:  make([]float64, len(rows)),
	}
	for i, j := range rows {
		r.Predictors[i] = ds.Predictors[j]
		r.Responses[i] = ds.Responses[j]
	}
	return r
}
