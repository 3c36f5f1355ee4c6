package api

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/pronounce/audio"
	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/scoring"
	"github.com/kbukum/pronounce/server"
	"github.com/kbukum/pronounce/transcription"
)

// SpeechRequest is the JSON body of POST /analyze-speech.
type SpeechRequest struct {
	Audio  string `json:"audio" validate:"required"`
	Target string `json:"target" validate:"max=1000"`
}

// SpeechResponse compares a transcript against the target sentence.
type SpeechResponse struct {
	Target        string  `json:"target"`
	Transcription string  `json:"transcription"`
	Accuracy      float64 `json:"accuracy"`
}

// analyzeSpeech handles POST /analyze-speech: it transcribes a base64 WAV
// and scores the transcript by word error rate. An empty target scores 0.
func (h *Handler) analyzeSpeech(c *gin.Context) {
	var req SpeechRequest
	if err := bindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	data, _, err := audio.DecodeBase64(req.Audio)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	// The payload is forwarded as is; decoding only proves it is a WAV.
	if _, err := audio.NewWAVDecoder().Decode(c.Request.Context(), data); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if h.transcriber == nil {
		server.RespondWithError(c, errors.TranscriptionUnavailable("speech-to-text", nil))
		return
	}

	outcome := h.transcriber.Transcribe(c.Request.Context(), transcription.Request{
		Audio:       data,
		Filename:    "speech.wav",
		ContentType: "audio/wav",
	})
	if outcome.Kind == transcription.KindUnavailable {
		h.log.WithContext(c.Request.Context()).Warn("speech analysis without transcript", map[string]interface{}{
			"reason": outcome.Reason,
		})
		server.RespondWithError(c, errors.TranscriptionUnavailable("speech-to-text", stderrors.New(outcome.Reason)))
		return
	}

	server.RespondOK(c, SpeechResponse{
		Target:        req.Target,
		Transcription: outcome.Text,
		Accuracy:      scoring.Accuracy(req.Target, outcome.Text),
	})
}
