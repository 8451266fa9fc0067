package settings

import (
	"fmt"
	"sort"

	"github.com/Ghostkeeper/R2D2/model"
	"github.com/samber/lo"
)

/*
Builder turns observations into datasets predicting one setting from evaluations.

The kind of the setting is the kind of its first recorded value. Booleans and
numbers give one dataset. Texts give one dataset per option, responding 1 to
that option and 0 to any other. Lists are not trainable and give nothing.
*/
type Builder struct {
	Logger model.Logger
}

/*
Build returns datasets for the setting ordered by label
*/
func (b Builder) Build(observations []Observation, setting string) []Labeled {
	keys := FeatureKeys(observations)
	kind := InvalidKind
	for _, o := range observations {
		if v := o.Settings[setting]; v.Valid() {
			kind = v.Kind()
			break
		}
	}
	var rows []Observation
	for _, o := range observations {
		if v := o.Settings[setting]; v.Valid() && v.Kind() == kind {
			rows = append(rows, o)
		}
	}
	if skipped := len(observations) - len(rows); skipped > 0 && kind != InvalidKind && kind != ListKind {
		model.LoggerOr(b.Logger).Log(model.Warning,
			fmt.Sprintf("%d observations do not record %v as %v", skipped, setting, kind))
	}

	switch kind {
	case BoolKind, NumberKind:
		return []Labeled{dataset(Label{Setting: setting}, keys, rows, func(v Value) float64 {
			return v.AsNumber()
		})}
	case TextKind:
		options := lo.Uniq(lo.Map(rows, func(o Observation, _ int) string {
			return o.Settings[setting].AsText()
		}))
		sort.Strings(options)
		r := make([]Labeled, len(options))
		for i, opt := range options {
			opt := opt
			r[i] = dataset(Label{setting, opt}, keys, rows, func(v Value) float64 {
				if v.AsText() == opt {
					return 1
				}
				return 0
			})
		}
		return r
	}
	return nil
}

func dataset(label Label, keys []string, rows []Observation, response func(Value) float64) Labeled {
	ds := model.Dataset{
		Label:      label.String(),
		Features:   keys,
		Predictors: make([][]float64, len(rows)),
		Responses:  make([]float64, len(rows)),
	}
	for i, o := range rows {
		ds.Predictors[i] = o.Predictor(keys)
		ds.Responses[i] = response(o.Settings[label.Setting])
	}
	return Labeled{Label: label, Dataset: ds}
}
