/*
Package training learns ensemble models for every setting recorded by a set
of evaluated prints.
*/
package training

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ghostkeeper/R2D2/fu"
	"github.com/Ghostkeeper/R2D2/model"
	"github.com/Ghostkeeper/R2D2/model/ensemble"
	"github.com/Ghostkeeper/R2D2/settings"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

/*
Orchestrator trains every setting of the observations
*/
type Orchestrator struct {
	Training ensemble.Training // per-label ensemble training
	Workers  int               // count of settings trained concurrently, 1 by default
	Logger   model.Logger      // zlog by default
}

/*
TrainAll builds datasets for every setting and trains an ensemble for each of them.

Labels without enough data are recorded in Failures and skipped. Any other
training error aborts the run. The context is checked before and after every
setting; if it's done, TrainAll returns the settings completed so far with the
context error. A setting interrupted while training contributes nothing
*/
func (o Orchestrator) TrainAll(ctx context.Context, src settings.Source) (*Collection, error) {
	observations, err := src.Observations(ctx)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	if len(observations) == 0 {
		return nil, xerrors.Errorf("no observations to train from: %w", model.ErrInsufficientData)
	}
	if len(settings.FeatureKeys(observations)) == 0 {
		return nil, xerrors.Errorf("observations carry no evaluations: %w", model.ErrInsufficientData)
	}
	log := model.LoggerOr(o.Logger)
	tr := o.Training
	if tr.Logger == nil {
		tr.Logger = log
	}
	builder := settings.Builder{Logger: log}
	keys := settings.SettingKeys(observations)
	log.Log(model.Info, fmt.Sprintf("training %d settings from %d observations", len(keys), len(observations)))

	c := NewCollection()
	var mu sync.Mutex
	g := errgroup.Group{}
	g.SetLimit(fu.Maxi(o.Workers, 1))
	for _, key := range keys {
		if ctx.Err() != nil {
			break
		}
		key := key
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			models := map[settings.Label]*ensemble.Model{}
			failures := map[settings.Label]error{}
			for _, l := range builder.Build(observations, key) {
				m, err := tr.Train(ctx, l.Dataset)
				if ctx.Err() != nil {
					return nil
				}
				if err != nil {
					if !xerrors.Is(err, model.ErrInsufficientData) {
						return xerrors.Errorf("training %v: %w", l.Label, err)
					}
					failures[l.Label] = err
					continue
				}
				models[l.Label] = m
			}
			mu.Lock()
			defer mu.Unlock()
			// a setting is merged whole or not at all
			if ctx.Err() != nil {
				return nil
			}
			for l, m := range models {
				c.Models[l] = m
			}
			for _, l := range sortedLabels(failures) {
				c.Failures[l] = failures[l]
				log.Log(model.Warning, fmt.Sprintf("skipping %v: %v", l, failures[l]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return c, err
	}
	log.Log(model.Info, fmt.Sprintf("trained %d models, %d labels skipped", len(c.Models), len(c.Failures)))
	return c, nil
}

/*
LuckyTrainAll trains all settings and panics on any error
*/
func (o Orchestrator) LuckyTrainAll(src settings.Source) *Collection {
	c, err := o.TrainAll(context.Background(), src)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return c
}
