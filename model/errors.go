package model

import "golang.org/x/xerrors"

var (
	// ErrInvalidArgument reports a malformed predictor or exponent
	ErrInvalidArgument = xerrors.New("invalid argument")
	// ErrDimensionMismatch reports predictor and response counts that differ
	ErrDimensionMismatch = xerrors.New("dimension mismatch")
	// ErrInsufficientData reports too few observations to train and test
	ErrInsufficientData = xerrors.New("insufficient data")
)
