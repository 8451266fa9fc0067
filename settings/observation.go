package settings

import (
	"context"
	"sort"

	"github.com/samber/lo"
)

/*
Observation is one evaluated print: the ratings given to the result and the
setting values it was printed with
*/
type Observation struct {
	Evaluation map[string]float64
	Settings   map[string]Value
}

/*
Source provides observations to train from. The source owns the observations
and they must not be modified while training
*/
type Source interface {
	Observations(context.Context) ([]Observation, error)
}

/*
Observations is an in-memory observation source
*/
type Observations []Observation

func (o Observations) Observations(context.Context) ([]Observation, error) {
	return o, nil
}

/*
FeatureKeys returns the sorted union of evaluation keys
*/
func FeatureKeys(observations []Observation) []string {
	keys := lo.Uniq(lo.FlatMap(observations, func(o Observation, _ int) []string {
		return lo.Keys(o.Evaluation)
	}))
	sort.Strings(keys)
	return keys
}

/*
SettingKeys returns the sorted union of recorded setting identifiers
*/
func SettingKeys(observations []Observation) []string {
	keys := lo.Uniq(lo.FlatMap(observations, func(o Observation, _ int) []string {
		return lo.Keys(o.Settings)
	}))
	sort.Strings(keys)
	return keys
}

/*
Predictor returns evaluation values of the observation in order of keys,
absent keys are 0
*/
func (o Observation) Predictor(keys []string) []float64 {
	r := make([]float64, len(keys))
	for i, k := range keys {
		r[i] = o.Evaluation[k]
	}
	return r
}
