package model

import "go-ml.dev/pkg/zorros/zlog"

/*
Estimator is a curve fitting algorithm learning coefficients from a dataset
and evaluating them on new predictors. Ensembles are built over any Estimator.
*/
type Estimator interface {
	// Fit learns one coefficient vector from all rows of the dataset
	Fit(Dataset) ([]float64, error)
	// Predict evaluates learned coefficients on a raw predictor vector
	Predict(coefficients, predictor []float64) (float64, error)
}

/*
Severity of a log message
*/
type Severity int

const (
	Info Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "info"
}

/*
Logger is a sink for training progress and insufficient-data reports
*/
type Logger interface {
	Log(Severity, string)
}

/*
LoggerFunc adapts a function to the Logger interface
*/
type LoggerFunc func(Severity, string)

func (f LoggerFunc) Log(s Severity, msg string) {
	f(s, msg)
}

type zlogger struct{}

func (zlogger) Log(s Severity, msg string) {
	switch s {
	case Warning:
		zlog.Warning(msg)
	default:
		zlog.Info(msg)
	}
}

/*
ZLog is the default Logger writing to zlog
*/
var ZLog Logger = zlogger{}

/*
LoggerOr returns l or ZLog if l is nil
*/
func LoggerOr(l Logger) Logger {
	if l == nil {
		return ZLog
	}
	return l
}

/*
Params is a set of numeric training parameters, usually coming from configuration
*/
type Params map[string]float64

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

/*
Predictions evaluates coefficients on every dataset row
*/
func Predictions(est Estimator, coefficients []float64, ds Dataset) ([]float64, error) {
	predicted := make([]float64, len(ds.Predictors))
	for i, p := range ds.Predictors {
		v, err := est.Predict(coefficients, p)
		if err != nil {
			return nil, err
		}
		predicted[i] = v
	}
	return predicted, nil
}
