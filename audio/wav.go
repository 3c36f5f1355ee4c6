package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/kbukum/pronounce/errors"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// DefaultChunkFrames is how many frames the WAV decoder reads per step.
const DefaultChunkFrames = 1024

// WAVDecoder decodes RIFF/WAVE integer PCM of any channel count and bit depth.
// PCM is read in chunks so a cancelled context stops long decodes.
type WAVDecoder struct {
	chunkFrames int
}

// NewWAVDecoder creates a WAV decoder reading chunkFrames frames per step.
// Zero or negative uses DefaultChunkFrames.
func NewWAVDecoder(chunkFrames ...int) *WAVDecoder {
	d := &WAVDecoder{chunkFrames: DefaultChunkFrames}
	if len(chunkFrames) > 0 && chunkFrames[0] > 0 {
		d.chunkFrames = chunkFrames[0]
	}
	return d
}

func (d *WAVDecoder) Name() string { return "wav" }

func (d *WAVDecoder) ContentTypes() []string {
	return []string{"audio/wav", "audio/x-wav", "audio/wave"}
}

func (d *WAVDecoder) Extensions() []string { return []string{".wav", ".wave"} }

// Decode parses the container, normalizes by bit depth and downmixes to mono.
func (d *WAVDecoder) Decode(ctx context.Context, data []byte) (*Buffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, errors.Decode(d.Name(), fmt.Errorf("not a valid RIFF/WAVE file"))
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, errors.Decode(d.Name(), fmt.Errorf("unsupported WAV encoding %d", dec.WavAudioFormat))
	}

	pcm, err := d.readPCM(ctx, dec)
	if err != nil {
		return nil, err
	}
	if pcm == nil || pcm.Format == nil || len(pcm.Data) == 0 {
		return nil, errors.Decode(d.Name(), fmt.Errorf("no audio frames"))
	}

	channels := pcm.Format.NumChannels
	if channels <= 0 {
		return nil, errors.Decode(d.Name(), fmt.Errorf("invalid channel count %d", channels))
	}
	bitDepth := int(dec.BitDepth)
	ints := pcm.Data
	if bitDepth == 8 {
		// 8-bit WAV is unsigned with a 128 midpoint.
		ints = make([]int, len(pcm.Data))
		for i, v := range pcm.Data {
			ints[i] = v - 128
		}
	}

	return &Buffer{
		Samples:    Downmix(NormalizeInt(ints, bitDepth), channels),
		SampleRate: pcm.Format.SampleRate,
	}, nil
}

func (d *WAVDecoder) readPCM(ctx context.Context, dec *wav.Decoder) (*goaudio.IntBuffer, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, errors.Decode(d.Name(), fmt.Errorf("invalid channel count"))
	}
	chunk := &goaudio.IntBuffer{Format: format, Data: make([]int, d.chunkFrames*format.NumChannels)}
	out := &goaudio.IntBuffer{Format: format}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := dec.PCMBuffer(chunk)
		out.Data = append(out.Data, chunk.Data[:n]...)
		if err != nil && err != io.EOF {
			return nil, errors.Decode(d.Name(), err)
		}
		if n == 0 || err == io.EOF {
			return out, nil
		}
	}
}

// EncodeWAV writes buf as 16-bit mono PCM WAV.
func EncodeWAV(buf *Buffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	ints := make([]int, len(buf.Samples))
	for i, s := range buf.Samples {
		s = min(max(s, -1), 1)
		ints[i] = int(s * 32767)
	}

	out := &memFile{}
	enc := wav.NewEncoder(out, buf.SampleRate, 16, 1, wavFormatPCM)
	if err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: buf.SampleRate},
		Data:           ints,
		SourceBitDepth: 16,
	}); err != nil {
		return nil, fmt.Errorf("audio: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("audio: finalize wav: %w", err)
	}
	return out.buf, nil
}

// memFile is an in-memory io.WriteSeeker; the WAV encoder seeks back to
// patch chunk sizes on Close.
type memFile struct {
	buf []byte
	pos int
}

func (m *memFile) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	n := copy(m.buf[m.pos:], p)
	m.pos += n
	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.pos) + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("audio: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("audio: negative seek position")
	}
	m.pos = int(abs)
	return abs, nil
}
