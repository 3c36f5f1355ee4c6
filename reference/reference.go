// Package reference stores native-speaker recordings per word and serves
// their feature vectors for reference scoring. Recordings live in storage
// as 16 kHz mono WAV under references/<word>.wav.
package reference

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/kbukum/pronounce/audio"
	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/logger"
	"github.com/kbukum/pronounce/storage"
	"github.com/kbukum/pronounce/vocabulary"
)

// Prefix is the storage directory holding recordings.
const Prefix = "references"

const maxRecordingBytes = 16 << 20

// Path returns the storage path of the recording for word.
func Path(word string) string {
	return path.Join(Prefix, vocabulary.Key(word)+".wav")
}

// Library loads and caches reference vectors.
type Library struct {
	store     storage.Storage
	wav       audio.Decoder
	extractor *features.Extractor
	log       *logger.Logger

	mu    sync.RWMutex
	cache map[string]*features.Vector
}

// New creates a library over store. A nil store gives a library with no
// recordings.
func New(store storage.Storage, extractor *features.Extractor, log *logger.Logger) *Library {
	if log == nil {
		log = logger.Nop()
	}
	return &Library{
		store:     store,
		wav:       audio.NewWAVDecoder(),
		extractor: extractor,
		log:       log.WithComponent("reference"),
		cache:     make(map[string]*features.Vector),
	}
}

// Get returns the reference vector for word. A missing recording returns
// (nil, false, nil).
func (l *Library) Get(ctx context.Context, word string) (*features.Vector, bool, error) {
	key := vocabulary.Key(word)
	if key == "" || l.store == nil {
		return nil, false, nil
	}
	l.mu.RLock()
	v, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return v, true, nil
	}

	data, err := storage.ReadAll(ctx, l.store, Path(key), maxRecordingBytes)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	buf, err := l.wav.Decode(ctx, data)
	if err != nil {
		return nil, false, fmt.Errorf("reference %s: %w", key, err)
	}
	buf, err = audio.Resample(buf, l.extractor.Config().SampleRate)
	if err != nil {
		return nil, false, fmt.Errorf("reference %s: %w", key, err)
	}
	v, err = l.extractor.Extract(buf)
	if err != nil {
		return nil, false, fmt.Errorf("reference %s: %w", key, err)
	}

	l.mu.Lock()
	l.cache[key] = v
	l.mu.Unlock()
	l.log.Debug("reference loaded", logger.Fields(logger.FieldTarget, key, "duration", buf.Duration()))
	return v, true, nil
}

// Put stores buf as the recording for word, resampled to the analysis rate.
func (l *Library) Put(ctx context.Context, word string, buf *audio.Buffer) error {
	key := vocabulary.Key(word)
	if key == "" {
		return fmt.Errorf("reference: word is required")
	}
	if l.store == nil {
		return fmt.Errorf("reference: no storage backend")
	}
	buf, err := audio.Resample(buf, l.extractor.Config().SampleRate)
	if err != nil {
		return err
	}
	data, err := audio.EncodeWAV(buf)
	if err != nil {
		return err
	}
	if err := storage.WriteBytes(ctx, l.store, Path(key), data); err != nil {
		return err
	}
	l.mu.Lock()
	delete(l.cache, key)
	l.mu.Unlock()
	return nil
}

// Words lists the words that have a recording.
func (l *Library) Words(ctx context.Context) ([]string, error) {
	if l.store == nil {
		return nil, nil
	}
	infos, err := l.store.List(ctx, Prefix+"/")
	if err != nil {
		return nil, err
	}
	words := make([]string, 0, len(infos))
	for _, fi := range infos {
		name := path.Base(fi.Path)
		if !strings.HasSuffix(name, ".wav") {
			continue
		}
		words = append(words, strings.TrimSuffix(name, ".wav"))
	}
	sort.Strings(words)
	return words, nil
}
