package model

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/kbukum/pronounce/version"
)

// TrainConfig controls the demo trainer.
type TrainConfig struct {
	Samples         int
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	Seed            uint64
}

// DefaultTrainConfig mirrors the demo setup: 200 synthetic samples, 100 trees.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Samples:         200,
		Trees:           100,
		MaxDepth:        8,
		MinSamplesSplit: 2,
		Seed:            42,
	}
}

func (c *TrainConfig) applyDefaults() {
	d := DefaultTrainConfig()
	if c.Samples <= 0 {
		c.Samples = d.Samples
	}
	if c.Trees <= 0 {
		c.Trees = d.Trees
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = d.MaxDepth
	}
	if c.MinSamplesSplit < 2 {
		c.MinSamplesSplit = d.MinSamplesSplit
	}
}

// Report summarizes a training run.
type Report struct {
	TrainSize int
	TestSize  int
	Accuracy  float64
	Duration  time.Duration
}

// Dataset is a labeled feature matrix.
type Dataset struct {
	X [][]float64
	Y []int
}

// MockDataset draws 70 percent "good" rows from N(1.5, 0.5) and 30 percent
// "bad" rows from N(-1.5, 1.0), shuffled.
func MockDataset(samples int, r *rand.Rand) Dataset {
	good := int(float64(samples) * 0.7)
	bad := int(float64(samples) * 0.3)
	ds := Dataset{}
	draw := func(n int, mean, sd float64, label int) {
		for range n {
			row := make([]float64, FeatureCount)
			for j := range row {
				row[j] = mean + sd*r.NormFloat64()
			}
			ds.X = append(ds.X, row)
			ds.Y = append(ds.Y, label)
		}
	}
	draw(good, 1.5, 0.5, 1)
	draw(bad, -1.5, 1.0, 0)
	r.Shuffle(len(ds.Y), func(i, j int) {
		ds.X[i], ds.X[j] = ds.X[j], ds.X[i]
		ds.Y[i], ds.Y[j] = ds.Y[j], ds.Y[i]
	})
	return ds
}

// FeatureCount is the classifier input width.
const FeatureCount = 13

// Train fits a forest on a synthetic dataset with a stratified 80/20 split
// and reports held-out accuracy.
func Train(cfg TrainConfig) (*Forest, *Report, error) {
	cfg.applyDefaults()
	start := time.Now()
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	ds := MockDataset(cfg.Samples, r)
	train, test := stratifiedSplit(ds, 0.2, r)
	if len(train.Y) == 0 || len(test.Y) == 0 {
		return nil, nil, fmt.Errorf("model: %d samples are too few to split", cfg.Samples)
	}

	f := Fit(train, cfg, r)
	correct := 0
	for i, row := range test.X {
		p, err := f.PredictProba(row)
		if err != nil {
			return nil, nil, err
		}
		pred := 0
		if p >= 0.5 {
			pred = 1
		}
		if pred == test.Y[i] {
			correct++
		}
	}
	f.Accuracy = float64(correct) / float64(len(test.Y))
	return f, &Report{
		TrainSize: len(train.Y),
		TestSize:  len(test.Y),
		Accuracy:  f.Accuracy,
		Duration:  time.Since(start),
	}, nil
}

// Fit grows cfg.Trees CART trees on bootstrap samples with sqrt(features)
// candidate features per split and balanced class weights.
func Fit(ds Dataset, cfg TrainConfig, r *rand.Rand) *Forest {
	cfg.applyDefaults()
	weights := balancedWeights(ds.Y)
	features := len(ds.X[0])
	g := &grower{
		ds:       ds,
		weights:  weights,
		maxDepth: cfg.MaxDepth,
		minSplit: cfg.MinSamplesSplit,
		perSplit: max(1, int(math.Sqrt(float64(features)))),
		features: features,
		rng:      r,
	}

	f := &Forest{
		Version:   FormatVersion,
		Features:  features,
		Schema:    version.FeatureSchema,
		TrainedAt: time.Now().UTC(),
	}
	for range cfg.Trees {
		idx := make([]int, len(ds.Y))
		for i := range idx {
			idx[i] = r.IntN(len(ds.Y))
		}
		t := Tree{}
		g.grow(&t, idx, 0)
		f.Trees = append(f.Trees, t)
	}
	return f
}

func balancedWeights(y []int) [2]float64 {
	var counts [2]int
	for _, v := range y {
		counts[v]++
	}
	var w [2]float64
	for c := range w {
		if counts[c] > 0 {
			w[c] = float64(len(y)) / (2 * float64(counts[c]))
		}
	}
	return w
}

func stratifiedSplit(ds Dataset, testFraction float64, r *rand.Rand) (Dataset, Dataset) {
	var train, test Dataset
	for class := range 2 {
		var idx []int
		for i, y := range ds.Y {
			if y == class {
				idx = append(idx, i)
			}
		}
		r.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nTest := int(math.Round(float64(len(idx)) * testFraction))
		for k, i := range idx {
			dst := &train
			if k < nTest {
				dst = &test
			}
			dst.X = append(dst.X, ds.X[i])
			dst.Y = append(dst.Y, ds.Y[i])
		}
	}
	return train, test
}

type grower struct {
	ds       Dataset
	weights  [2]float64
	maxDepth int
	minSplit int
	perSplit int
	features int
	rng      *rand.Rand
}

// grow appends the subtree for idx in pre-order and returns its root index.
func (g *grower) grow(t *Tree, idx []int, depth int) int {
	var w [2]float64
	for _, i := range idx {
		w[g.ds.Y[i]] += g.weights[g.ds.Y[i]]
	}
	total := w[0] + w[1]
	prob := 0.0
	if total > 0 {
		prob = w[1] / total
	}

	self := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{Leaf: true, Prob: prob})
	if depth >= g.maxDepth || len(idx) < g.minSplit || w[0] == 0 || w[1] == 0 {
		return self
	}

	feature, threshold, ok := g.bestSplit(idx, w)
	if !ok {
		return self
	}
	var left, right []int
	for _, i := range idx {
		if g.ds.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := g.grow(t, left, depth+1)
	rr := g.grow(t, right, depth+1)
	t.Nodes[self] = Node{Feature: feature, Threshold: threshold, Left: l, Right: rr}
	return self
}

// bestSplit searches a random feature subset for the threshold with the
// lowest weighted Gini impurity.
func (g *grower) bestSplit(idx []int, parent [2]float64) (int, float64, bool) {
	candidates := g.rng.Perm(g.features)[:g.perSplit]
	best := gini(parent)
	bestFeature, bestThreshold, found := -1, 0.0, false

	order := slices.Clone(idx)
	for _, f := range candidates {
		slices.SortFunc(order, func(a, b int) int {
			switch va, vb := g.ds.X[a][f], g.ds.X[b][f]; {
			case va < vb:
				return -1
			case va > vb:
				return 1
			}
			return 0
		})

		var left [2]float64
		right := parent
		for k := 0; k < len(order)-1; k++ {
			y := g.ds.Y[order[k]]
			left[y] += g.weights[y]
			right[y] -= g.weights[y]

			v, next := g.ds.X[order[k]][f], g.ds.X[order[k+1]][f]
			if v == next {
				continue
			}
			lw, rw := left[0]+left[1], right[0]+right[1]
			impurity := (lw*gini(left) + rw*gini(right)) / (lw + rw)
			if impurity < best-1e-12 {
				best = impurity
				bestFeature, bestThreshold, found = f, (v+next)/2, true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func gini(w [2]float64) float64 {
	total := w[0] + w[1]
	if total <= 0 {
		return 0
	}
	p0, p1 := w[0]/total, w[1]/total
	return 1 - p0*p0 - p1*p1
}
