package main

import (
	"context"
	"testing"

	"github.com/Ghostkeeper/R2D2/model"
	"github.com/Ghostkeeper/R2D2/model/ensemble"
	"github.com/Ghostkeeper/R2D2/settings"
	"github.com/Ghostkeeper/R2D2/training"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
)

func Test_Commands(t *testing.T) {
	cmd := cliParser()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, n := range []string{"version", "train", "tune", "show"} {
		assert.Assert(t, names[n], n)
	}
	assert.Assert(t, cmd.PersistentFlags().Lookup("config") != nil)
	assert.Assert(t, cmd.PersistentFlags().Lookup("verbose") != nil)
}

func Test_MeanScore(t *testing.T) {
	obs := make(settings.Observations, 12)
	for i := range obs {
		v := float64(i+1) / 12
		obs[i] = settings.Observation{
			Evaluation: map[string]float64{"strength": v},
			Settings:   map[string]settings.Value{"speed": settings.Number(v * v)},
		}
	}
	o := training.Orchestrator{
		Training: ensemble.Training{Seed: 1},
		Logger:   model.LoggerFunc(func(model.Severity, string) {}),
	}
	objective := meanScore(o, obs)
	exact, err := objective(context.Background(), model.Params{"exponent": 2, "bags": 3})
	assert.NilError(t, err)
	assert.Assert(t, exact < 1e-9)
	linear, err := objective(context.Background(), model.Params{"exponent": 1, "bags": 3})
	assert.NilError(t, err)
	assert.Assert(t, linear > exact)

	_, err = meanScore(o, settings.Observations{})(context.Background(), model.Params{})
	assert.Assert(t, xerrors.Is(err, model.ErrInsufficientData))

	r, err := tuningSpace(10, 1).Search(context.Background(), objective)
	assert.NilError(t, err)
	assert.Assert(t, r.Params["exponent"] >= 1 && r.Params["exponent"] <= 5)
}
