/*
Package config loads training configuration from a YAML file and R2D2_*
environment variables.
*/
package config

import (
	"os"
	"strings"

	"github.com/Ghostkeeper/R2D2/model"
	"github.com/Ghostkeeper/R2D2/model/ensemble"
	"github.com/Ghostkeeper/R2D2/store"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
)

// numeric training parameters passed to ensemble.Training.With
var trainingParams = []string{"bags", "ratio", "exponent", "seed", "workers"}

/*
Config is the configuration of a training run
*/
type Config struct {
	HistoryPath     string       // print records file or directory
	StorePath       string       // model database
	Params          model.Params // numeric training parameters
	Aggregation     string       // ensemble aggregation name
	SettingsWorkers int          // count of settings trained concurrently
}

/*
Training returns the ensemble training described by the configuration
*/
func (c *Config) Training() ensemble.Training {
	return ensemble.Training{Aggregation: c.Aggregation}.With(c.Params)
}

/*
Load reads configuration from file. With an empty file name it looks for
r2d2.yaml in $R2D2_CFG_PATH or the working directory and uses defaults when
there is none
*/
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("r2d2")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("history.path", "print_evaluations")
	v.SetDefault("store.path", store.DefaultPath())
	v.SetDefault("training.aggregation", ensemble.MeanAggregation)
	v.SetDefault("training.settings_workers", 1)

	altPath := os.Getenv("R2D2_CFG_PATH")
	if altPath == "" {
		altPath = "."
	}
	v.AddConfigPath(altPath)
	v.SetConfigName("r2d2")
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !xerrors.As(err, &notFound) {
			return nil, zorros.Wrapf(err, "failed to read config: %v", err.Error())
		}
	}

	c := &Config{
		HistoryPath:     v.GetString("history.path"),
		StorePath:       v.GetString("store.path"),
		Aggregation:     v.GetString("training.aggregation"),
		SettingsWorkers: v.GetInt("training.settings_workers"),
		Params:          model.Params{},
	}
	for _, p := range trainingParams {
		x := v.Get("training." + p)
		if x == nil {
			continue
		}
		f, err := cast.ToFloat64E(x)
		if err != nil {
			return nil, zorros.Wrapf(err, "training.%v: %v", p, err.Error())
		}
		c.Params[p] = f
	}
	return c, nil
}
