/*
Package bagging subdivides a dataset into random train/test bags.

Every bag is an independent uniform permutation of the row indices cut at
floor(rows*ratio): rows before the cut train, rows after it test. Bags of the
same sequence may share rows, but within a bag the two sets never overlap.
*/
package bagging

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Ghostkeeper/R2D2/model"
)

const (
	DefaultBags          = 5
	DefaultTrainingRatio = 0.8
)

/*
Bag is one train/test partition of dataset rows
*/
type Bag struct {
	Index int   // position of the bag in its sequence
	Train []int // rows to fit on
	Test  []int // rows to evaluate on
}

/*
Sequence is a lazy sequence of bags drawn from one random source
*/
type Sequence struct {
	rows, cut int
	left      int
	next      int
	rng       *rand.Rand
}

/*
Subdivide returns a sequence of bags partitioning rows dataset indices.
If either the training or the test subset would be empty the sequence is
empty and the condition is reported once to log
*/
func Subdivide(rows, bags int, ratio float64, rng *rand.Rand, log model.Logger) *Sequence {
	cut := int(math.Floor(float64(rows) * ratio))
	if rows < 2 || !(ratio > 0 && ratio < 1) || cut < 1 || cut >= rows {
		model.LoggerOr(log).Log(model.Warning,
			fmt.Sprintf("cannot subdivide %d samples with training ratio %v: %v", rows, ratio, model.ErrInsufficientData))
		return &Sequence{}
	}
	if bags < 0 {
		bags = 0
	}
	return &Sequence{rows: rows, cut: cut, left: bags, rng: rng}
}

/*
Next draws the next bag or returns nil when the sequence is exhausted
*/
func (s *Sequence) Next() *Bag {
	if s.left <= 0 {
		return nil
	}
	perm := s.rng.Perm(s.rows)
	b := &Bag{Index: s.next, Train: perm[:s.cut:s.cut], Test: perm[s.cut:]}
	s.left--
	s.next++
	return b
}

/*
Collect draws all remaining bags
*/
func (s *Sequence) Collect() []Bag {
	var r []Bag
	for b := s.Next(); b != nil; b = s.Next() {
		r = append(r, *b)
	}
	return r
}

/*
Len returns count of bags left in the sequence
*/
func (s *Sequence) Len() int {
	return s.left
}
