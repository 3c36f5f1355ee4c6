package model_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/kbukum/pronounce/component"
	apperrors "github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/model"
	"github.com/kbukum/pronounce/storage"
	"github.com/kbukum/pronounce/storage/local"
)

func stumpForest() *model.Forest {
	return &model.Forest{
		Version:  model.FormatVersion,
		Features: 2,
		Trees: []model.Tree{
			{Nodes: []model.Node{
				{Feature: 0, Threshold: 0, Left: 1, Right: 2},
				{Leaf: true, Prob: 0.2},
				{Leaf: true, Prob: 0.9},
			}},
			{Nodes: []model.Node{{Leaf: true, Prob: 0.5}}},
		},
	}
}

func TestPredictProba(t *testing.T) {
	f := stumpForest()
	tests := []struct {
		row  []float64
		want float64
	}{
		{[]float64{-1, 0}, 0.35},
		{[]float64{0, 5}, 0.35},
		{[]float64{0.1, 0}, 0.7},
	}
	for _, tc := range tests {
		got, err := f.PredictProba(tc.row)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("PredictProba(%v) = %v, want %v", tc.row, got, tc.want)
		}
	}

	_, err := f.PredictProba([]float64{1, 2, 3})
	if apperrors.CodeOf(err) != apperrors.ErrCodeInternalScoring {
		t.Errorf("expected INTERNAL_SCORING_ERROR for a shape mismatch, got %v", err)
	}
}

func TestValidateRejectsCorruptTrees(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Forest)
	}{
		{"version", func(f *model.Forest) { f.Version = 99 }},
		{"no trees", func(f *model.Forest) { f.Trees = nil }},
		{"feature out of range", func(f *model.Forest) { f.Trees[0].Nodes[0].Feature = 7 }},
		{"child points backwards", func(f *model.Forest) { f.Trees[0].Nodes[0].Left = 0 }},
		{"child out of range", func(f *model.Forest) { f.Trees[0].Nodes[0].Right = 10 }},
		{"probability", func(f *model.Forest) { f.Trees[1].Nodes[0].Prob = 1.5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := stumpForest()
			tc.mutate(f)
			if err := f.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCodec(t *testing.T) {
	data, err := model.Encode(stumpForest())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	f, err := model.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p, _ := f.PredictProba([]float64{1, 1}); math.Abs(p-0.7) > 1e-9 {
		t.Errorf("decoded forest predicts %v, want 0.7", p)
	}
	if _, err := model.Decode([]byte("not msgpack at all")); err == nil {
		t.Error("expected error for garbage input")
	}
}

func newLocal(t *testing.T) storage.Storage {
	t.Helper()
	s, err := local.NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStoreMissingArtifactIsPlaceholder(t *testing.T) {
	ctx := context.Background()
	store := model.NewStore(newLocal(t), "", nil)

	f, ok, err := store.Load(ctx)
	if f != nil || ok || err != nil {
		t.Fatalf("Load() = %v, %v, %v; want nil, false, nil", f, ok, err)
	}
	if err := store.Start(ctx); err != nil {
		t.Fatalf("a missing model must not fail startup: %v", err)
	}
	if store.Loaded(ctx) {
		t.Error("expected placeholder mode")
	}
	if h := store.Health(ctx); h.Status != component.StatusDegraded {
		t.Errorf("expected degraded health, got %+v", h)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	backend := newLocal(t)

	if err := model.NewStore(backend, "models/m.msgpack", nil).Save(ctx, stumpForest()); err != nil {
		t.Fatalf("save: %v", err)
	}
	store := model.NewStore(backend, "models/m.msgpack", nil)
	if !store.Loaded(ctx) {
		t.Fatal("expected model to load")
	}
	if h := store.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %+v", h)
	}
}

func TestStoreCorruptArtifact(t *testing.T) {
	ctx := context.Background()
	backend := newLocal(t)
	if err := storage.WriteBytes(ctx, backend, model.DefaultPath, []byte{0xc1, 0xff}); err != nil {
		t.Fatal(err)
	}
	store := model.NewStore(backend, "", nil)
	if store.Forest(ctx) != nil {
		t.Fatal("corrupt artifact must yield placeholder mode")
	}
	if h := store.Health(ctx); !strings.HasPrefix(h.Message, "placeholder mode") {
		t.Errorf("unexpected health message %q", h.Message)
	}
}

func TestStaticStore(t *testing.T) {
	ctx := context.Background()
	if !model.NewStaticStore(stumpForest()).Loaded(ctx) {
		t.Error("static store with a forest should be loaded")
	}
	if model.NewStaticStore(nil).Loaded(ctx) {
		t.Error("static store without a forest should be in placeholder mode")
	}
}

func TestTrain(t *testing.T) {
	cfg := model.TrainConfig{Samples: 200, Trees: 15, Seed: 7}
	f, report, err := model.Train(cfg)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if report.TrainSize != 160 || report.TestSize != 40 {
		t.Errorf("unexpected split %d/%d", report.TrainSize, report.TestSize)
	}
	if report.Accuracy < 0.9 {
		t.Errorf("accuracy %.2f on well separated clusters", report.Accuracy)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("trained forest invalid: %v", err)
	}

	good := make([]float64, model.FeatureCount)
	bad := make([]float64, model.FeatureCount)
	for i := range good {
		good[i], bad[i] = 1.5, -1.5
	}
	pGood, _ := f.PredictProba(good)
	pBad, _ := f.PredictProba(bad)
	if pGood <= 0.5 || pBad >= 0.5 {
		t.Errorf("good=%v bad=%v", pGood, pBad)
	}

	again, _, _ := model.Train(cfg)
	pAgain, _ := again.PredictProba(good)
	if pAgain != pGood {
		t.Error("training with the same seed should be deterministic")
	}
}
