package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/pronounce/assessment"
	"github.com/kbukum/pronounce/audio"
	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/server"
	"github.com/kbukum/pronounce/validation"
)

// defaultJSONContentType applies when neither content_type nor a data URL
// names the payload format.
const defaultJSONContentType = "audio/wav"

// AssessRequest is the JSON body of POST /assess.
type AssessRequest struct {
	// Audio is base64, optionally a data URL.
	Audio       string `json:"audio" validate:"required"`
	TargetWord  string `json:"target_word" validate:"required,target_word"`
	ContentType string `json:"content_type,omitempty" validate:"omitempty,audio_mime"`
	Strategy    string `json:"strategy,omitempty" validate:"omitempty,oneof=auto rule model reference"`
}

// assess handles POST /assess.
func (h *Handler) assess(c *gin.Context) {
	var req AssessRequest
	if err := bindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	data, dataURLType, err := audio.DecodeBase64(req.Audio)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = dataURLType
	}
	if contentType == "" {
		contentType = defaultJSONContentType
	}

	res := h.assessor.Assess(c.Request.Context(), assessment.Request{
		Audio:       data,
		ContentType: contentType,
		TargetWord:  req.TargetWord,
		Strategy:    req.Strategy,
	})
	respondResult(c, res)
}

// bindJSON decodes the body into v and validates its struct tags.
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return err
		}
		return errors.InvalidFormat("body", "JSON object")
	}
	return validation.Validate(v)
}
