package model

import (
	"fmt"
	"time"

	"github.com/kbukum/pronounce/errors"
)

// FormatVersion is the artifact version written by Encode.
const FormatVersion = 1

// Node is one node of a flattened decision tree. Leaves carry the class-1
// probability; inner nodes route rows with row[Feature] <= Threshold to Left.
type Node struct {
	Leaf      bool    `msgpack:"leaf"`
	Feature   int     `msgpack:"feature"`
	Threshold float64 `msgpack:"threshold"`
	Left      int     `msgpack:"left"`
	Right     int     `msgpack:"right"`
	Prob      float64 `msgpack:"prob"`
}

// Tree is a decision tree stored as a node slice with the root at index 0.
type Tree struct {
	Nodes []Node `msgpack:"nodes"`
}

// Forest is a trained binary classifier. It is read-only after load and safe
// to share between goroutines.
type Forest struct {
	Version   int       `msgpack:"version"`
	Features  int       `msgpack:"features"`
	Trees     []Tree    `msgpack:"trees"`
	Schema    string    `msgpack:"schema"`
	TrainedAt time.Time `msgpack:"trained_at"`
	Accuracy  float64   `msgpack:"accuracy"`
}

// PredictProba returns the mean class-1 ("correct pronunciation")
// probability over all trees.
func (f *Forest) PredictProba(row []float64) (float64, error) {
	if len(row) != f.Features {
		return 0, errors.InternalScoring(fmt.Sprintf("expected %d features, got %d", f.Features, len(row)))
	}
	if len(f.Trees) == 0 {
		return 0, errors.InternalScoring("forest has no trees")
	}
	sum := 0.0
	for i := range f.Trees {
		p, err := f.Trees[i].predict(row)
		if err != nil {
			return 0, err
		}
		sum += p
	}
	return sum / float64(len(f.Trees)), nil
}

func (t *Tree) predict(row []float64) (float64, error) {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		n := t.Nodes[idx]
		if n.Leaf {
			return n.Prob, nil
		}
		if row[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return 0, errors.InternalScoring("decision tree contains a cycle")
}

// Validate checks structural integrity so PredictProba cannot index out of
// range on a corrupt artifact.
func (f *Forest) Validate() error {
	if f.Version != FormatVersion {
		return fmt.Errorf("model: unsupported artifact version %d", f.Version)
	}
	if f.Features <= 0 {
		return fmt.Errorf("model: invalid feature count %d", f.Features)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("model: forest has no trees")
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("model: tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				if n.Prob < 0 || n.Prob > 1 {
					return fmt.Errorf("model: tree %d node %d has probability %v", ti, ni, n.Prob)
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= f.Features {
				return fmt.Errorf("model: tree %d node %d splits on feature %d", ti, ni, n.Feature)
			}
			if n.Left <= ni || n.Right <= ni || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return fmt.Errorf("model: tree %d node %d has invalid children", ti, ni)
			}
		}
	}
	return nil
}
