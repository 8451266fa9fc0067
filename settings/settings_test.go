package settings

import (
	"context"
	"testing"

	"github.com/Ghostkeeper/R2D2/model"
	"gotest.tools/assert"
)

var quiet = model.LoggerFunc(func(model.Severity, string) {})

func observations() []Observation {
	materials := []string{"pla", "abs", "petg", "pla", "abs", "pla"}
	r := make([]Observation, len(materials))
	for i, m := range materials {
		r[i] = Observation{
			Evaluation: map[string]float64{"strength": float64(i), "surface": float64(10 - i)},
			Settings: map[string]Value{
				"material":       Text(m),
				"support_enable": Bool(i%2 == 0),
				"speed_print":    Number(float64(40 + 5*i)),
				"extruders":      List(Number(0), Number(1)),
			},
		}
	}
	r[2].Evaluation["warping"] = 3
	return r
}

func Test_Keys(t *testing.T) {
	obs := observations()
	assert.DeepEqual(t, FeatureKeys(obs), []string{"strength", "surface", "warping"})
	assert.DeepEqual(t, SettingKeys(obs), []string{"extruders", "material", "speed_print", "support_enable"})
	assert.DeepEqual(t, obs[0].Predictor(FeatureKeys(obs)), []float64{0, 10, 0})
	assert.DeepEqual(t, obs[2].Predictor(FeatureKeys(obs)), []float64{2, 8, 3})
}

func Test_BuildBool(t *testing.T) {
	ds := Builder{Logger: quiet}.Build(observations(), "support_enable")
	assert.Equal(t, len(ds), 1)
	assert.Equal(t, ds[0].Label, Label{Setting: "support_enable"})
	assert.Equal(t, ds[0].Dataset.Len(), 6)
	for i, r := range ds[0].Dataset.Responses {
		assert.Assert(t, r == 0 || r == 1)
		assert.Equal(t, r == 1, i%2 == 0)
	}
}

func Test_BuildNumber(t *testing.T) {
	ds := Builder{Logger: quiet}.Build(observations(), "speed_print")
	assert.Equal(t, len(ds), 1)
	d := ds[0].Dataset
	assert.Equal(t, d.Label, "speed_print")
	assert.DeepEqual(t, d.Features, []string{"strength", "surface", "warping"})
	assert.DeepEqual(t, d.Responses, []float64{40, 45, 50, 55, 60, 65})
	assert.NilError(t, d.Validate())
}

func Test_BuildText(t *testing.T) {
	obs := observations()
	ds := Builder{Logger: quiet}.Build(obs, "material")
	assert.Equal(t, len(ds), 3)
	assert.Equal(t, ds[0].Label, Label{"material", "abs"})
	assert.Equal(t, ds[1].Label, Label{"material", "petg"})
	assert.Equal(t, ds[2].Label, Label{"material", "pla"})
	assert.Equal(t, ds[2].Dataset.Label, "material=pla")
	total := 0.0
	for i := range obs {
		row := 0.0
		for _, d := range ds {
			r := d.Dataset.Responses[i]
			assert.Assert(t, r == 0 || r == 1)
			row += r
		}
		assert.Equal(t, row, 1.0)
		total += row
	}
	assert.Equal(t, total, float64(len(obs)))
}

func Test_BuildList(t *testing.T) {
	assert.Equal(t, len(Builder{Logger: quiet}.Build(observations(), "extruders")), 0)
}

func Test_BuildUnknown(t *testing.T) {
	assert.Equal(t, len(Builder{Logger: quiet}.Build(observations(), "infill")), 0)
}

func Test_BuildSkipsOtherKinds(t *testing.T) {
	obs := observations()
	obs[1].Settings["speed_print"] = Text("fast")
	delete(obs[3].Settings, "speed_print")
	var warnings []string
	log := model.LoggerFunc(func(s model.Severity, msg string) {
		if s == model.Warning {
			warnings = append(warnings, msg)
		}
	})
	ds := Builder{Logger: log}.Build(obs, "speed_print")
	assert.Equal(t, len(ds), 1)
	assert.DeepEqual(t, ds[0].Dataset.Responses, []float64{40, 50, 60, 65})
	assert.Equal(t, len(warnings), 1)
}

func Test_Label(t *testing.T) {
	assert.Equal(t, Label{"material", "pla"}.String(), "material=pla")
	assert.Equal(t, Label{Setting: "speed"}.String(), "speed")
	assert.Equal(t, ParseLabel("material=pla"), Label{"material", "pla"})
	assert.Equal(t, ParseLabel("speed"), Label{Setting: "speed"})
	assert.Assert(t, Label{"a", "z"}.Less(Label{"b", ""}))
	assert.Assert(t, Label{"a", "x"}.Less(Label{"a", "y"}))
}

func Test_Value(t *testing.T) {
	v, err := Of([]interface{}{1.5, "x", true, nil})
	assert.NilError(t, err)
	assert.Equal(t, v.Kind(), ListKind)
	assert.Equal(t, v.String(), "[1.5, x, true, <invalid>]")
	assert.Equal(t, Bool(true).AsNumber(), 1.0)
	assert.Equal(t, Number(2.5).AsNumber(), 2.5)
	v, err = Of(nil)
	assert.NilError(t, err)
	assert.Assert(t, !v.Valid())
	_, err = Of(map[string]interface{}{})
	assert.ErrorContains(t, err, "unsupported")
	assert.Equal(t, TextKind.String(), "text")
}

func Test_Observations(t *testing.T) {
	src := Observations(observations())
	obs, err := src.Observations(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, len(obs), 6)
}
