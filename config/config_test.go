package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Ghostkeeper/R2D2/model/ensemble"
	"github.com/Ghostkeeper/R2D2/model/lsq"
	"github.com/Ghostkeeper/R2D2/store"
	"gotest.tools/assert"
)

func Test_Defaults(t *testing.T) {
	t.Setenv("R2D2_CFG_PATH", t.TempDir())
	c, err := Load("")
	assert.NilError(t, err)
	assert.Equal(t, c.HistoryPath, "print_evaluations")
	assert.Equal(t, c.StorePath, store.DefaultPath())
	assert.Equal(t, c.Aggregation, ensemble.MeanAggregation)
	assert.Equal(t, c.SettingsWorkers, 1)
	assert.Equal(t, len(c.Params), 0)

	tr := c.Training()
	assert.Equal(t, tr.Bags, 0)
	assert.Equal(t, tr.Aggregation, ensemble.MeanAggregation)
}

const sampleConfig = `
history:
  path: /var/prints
training:
  bags: 7
  ratio: 0.75
  exponent: 2
  seed: 42
  aggregation: efficacy
  settings_workers: 3
`

func Test_File(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "r2d2.yaml"), []byte(sampleConfig), 0644))
	t.Setenv("R2D2_CFG_PATH", dir)

	c, err := Load("")
	assert.NilError(t, err)
	assert.Equal(t, c.HistoryPath, "/var/prints")
	assert.Equal(t, c.Aggregation, ensemble.EfficacyAggregation)
	assert.Equal(t, c.SettingsWorkers, 3)

	tr := c.Training()
	assert.Equal(t, tr.Bags, 7)
	assert.Equal(t, tr.TrainingRatio, 0.75)
	assert.Equal(t, tr.HighestExponent, 2)
	assert.Equal(t, tr.Seed, int64(42))
	assert.Equal(t, tr.Workers, 0)
}

func Test_ConstantExponent(t *testing.T) {
	t.Setenv("R2D2_CFG_PATH", t.TempDir())
	file := filepath.Join(t.TempDir(), "constant.yaml")
	assert.NilError(t, os.WriteFile(file, []byte("training:\n  exponent: 0\n"), 0644))
	c, err := Load(file)
	assert.NilError(t, err)
	tr := c.Training()
	assert.Equal(t, tr.HighestExponent, 0)
	assert.Equal(t, tr.Estimator, lsq.New(0))
}

func Test_ExplicitFile(t *testing.T) {
	t.Setenv("R2D2_CFG_PATH", t.TempDir())
	file := filepath.Join(t.TempDir(), "custom.yaml")
	assert.NilError(t, os.WriteFile(file, []byte("training:\n  bags: 9\n"), 0644))
	c, err := Load(file)
	assert.NilError(t, err)
	assert.Equal(t, c.Training().Bags, 9)
}

func Test_Env(t *testing.T) {
	t.Setenv("R2D2_CFG_PATH", t.TempDir())
	t.Setenv("R2D2_TRAINING_BAGS", "11")
	t.Setenv("R2D2_STORE_PATH", "/tmp/models.sqlite")
	c, err := Load("")
	assert.NilError(t, err)
	assert.Equal(t, c.StorePath, "/tmp/models.sqlite")
	assert.Equal(t, c.Training().Bags, 11)
}

func Test_Malformed(t *testing.T) {
	t.Setenv("R2D2_CFG_PATH", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Assert(t, err != nil)

	file := filepath.Join(t.TempDir(), "bad.yaml")
	assert.NilError(t, os.WriteFile(file, []byte("training:\n  bags: many\n"), 0644))
	_, err = Load(file)
	assert.Assert(t, err != nil)
}
