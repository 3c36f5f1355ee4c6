// Package audio turns uploaded audio payloads into mono PCM buffers at the
// canonical analysis rate.
//
// WAV files are decoded in-process; compressed formats (mp3, m4a) are piped
// through an ffmpeg subprocess. Decoders are looked up by content type or
// file extension through a Registry:
//
//	reg := audio.NewRegistry(audio.NewWAVDecoder(), audio.NewFFmpegDecoder(cfg, nil))
//	buf, err := reg.Decode(ctx, data, "audio/wav", "clip.wav")
//	buf, err = audio.Resample(buf, audio.CanonicalSampleRate)
package audio
