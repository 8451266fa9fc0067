package history

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Ghostkeeper/R2D2/settings"
	"go-ml.dev/pkg/zorros"
)

/*
Filter selects prints made with a printer, nozzle and material.
Empty fields match anything
*/
type Filter struct {
	PrinterType string
	Nozzle      string
	Material    string
}

/*
Match reports whether the print was made with the filtered set-up
*/
func (f Filter) Match(p *Print) bool {
	return (f.PrinterType == "" || f.PrinterType == p.PrinterType) &&
		(f.Nozzle == "" || f.Nozzle == p.Nozzle()) &&
		(f.Material == "" || f.Material == p.Material())
}

/*
Store is an ordered collection of prints, safe for concurrent use.
It's a settings.Source of the prints matching its filter
*/
type Store struct {
	mu     sync.RWMutex
	prints []*Print
	filter Filter
}

/*
New returns a store with the given prints
*/
func New(prints ...*Print) *Store {
	s := &Store{}
	for _, p := range prints {
		s.Add(p)
	}
	return s
}

/*
Open reads prints from a record file or from every record file of a directory
*/
func Open(path string) (*Store, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open history %v: %v", path, err.Error())
	}
	files := []string{path}
	if st.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, zorros.Wrapf(err, "failed to list history %v: %v", path, err.Error())
		}
		files = files[:0]
		for _, e := range entries {
			if !e.IsDir() && Recognised(e.Name()) {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
	}
	s := New()
	for _, f := range files {
		prints, err := ReadFile(f)
		if err != nil {
			return nil, err
		}
		for _, p := range prints {
			s.Add(p)
		}
	}
	return s, nil
}

func less(a, b *Print) bool {
	if a.TimeDate != b.TimeDate {
		return a.TimeDate < b.TimeDate
	}
	return a.Name < b.Name
}

/*
Add inserts the print keeping prints ordered by time and name
*/
func (s *Store) Add(p *Print) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := sort.Search(len(s.prints), func(i int) bool { return less(p, s.prints[i]) })
	s.prints = append(s.prints, nil)
	copy(s.prints[i+1:], s.prints[i:])
	s.prints[i] = p
}

/*
Select returns a snapshot of prints matching both the filter of s and f
*/
func (s *Store) Select(f Filter) *Store {
	return &Store{prints: s.Prints(), filter: f}
}

/*
Prints returns prints matching the filter in order
*/
func (s *Store) Prints() []*Print {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var r []*Print
	for _, p := range s.prints {
		if s.filter.Match(p) {
			r = append(r, p)
		}
	}
	return r
}

/*
Len returns count of prints matching the filter
*/
func (s *Store) Len() int {
	return len(s.Prints())
}

/*
Observations converts matching prints to observations in print order
*/
func (s *Store) Observations(ctx context.Context) ([]settings.Observation, error) {
	prints := s.Prints()
	r := make([]settings.Observation, 0, len(prints))
	for _, p := range prints {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o, err := p.Observation()
		if err != nil {
			return nil, err
		}
		r = append(r, o)
	}
	return r, nil
}
