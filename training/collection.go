package training

import (
	"fmt"
	"sort"

	"github.com/Ghostkeeper/R2D2/model/ensemble"
	"github.com/Ghostkeeper/R2D2/settings"
	"go.uber.org/multierr"
)

/*
Collection is the result of one training run: a model for every label that
could be trained and the reason for every label that could not
*/
type Collection struct {
	Models   map[settings.Label]*ensemble.Model
	Failures map[settings.Label]error
}

/*
NewCollection returns an empty collection
*/
func NewCollection() *Collection {
	return &Collection{
		Models:   map[settings.Label]*ensemble.Model{},
		Failures: map[settings.Label]error{},
	}
}

/*
Model returns the model trained for the label, if any
*/
func (c *Collection) Model(l settings.Label) (*ensemble.Model, bool) {
	m, ok := c.Models[l]
	return m, ok
}

/*
Labels returns labels of trained models in order
*/
func (c *Collection) Labels() []settings.Label {
	return sortedLabels(c.Models)
}

/*
Failed returns labels which could not be trained in order
*/
func (c *Collection) Failed() []settings.Label {
	return sortedLabels(c.Failures)
}

/*
Err combines all training failures in label order, nil if there are none
*/
func (c *Collection) Err() error {
	var err error
	for _, l := range c.Failed() {
		err = multierr.Append(err, fmt.Errorf("%v: %w", l, c.Failures[l]))
	}
	return err
}

func sortedLabels[T any](m map[settings.Label]T) []settings.Label {
	r := make([]settings.Label, 0, len(m))
	for l := range m {
		r = append(r, l)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Less(r[j]) })
	return r
}
