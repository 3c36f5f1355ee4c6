package api

import (
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/pronounce/assessment"
	"github.com/kbukum/pronounce/audio"
	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/scoring"
	"github.com/kbukum/pronounce/server"
)

// colorUploadName stands in for a nameless color upload so the decoder
// registry can fall back to the WAV extension.
const colorUploadName = "recording.wav"

// MessageMissingColorUpload is the color route's 400 body.
const MessageMissingColorUpload = "Missing audio file or colorName"

// analyze handles POST /analyze/.
func (h *Handler) analyze(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		server.RespondWithError(c, formError(err, "file"))
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !audio.IsAllowedContentType(contentType) {
		server.RespondWithError(c, errors.UnsupportedMedia(contentType, audio.AllowedContentTypes))
		return
	}
	data, err := readUpload(fh)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	res := h.assessor.Assess(c.Request.Context(), assessment.Request{
		Audio:       data,
		ContentType: contentType,
		Filename:    fh.Filename,
		TargetWord:  c.PostForm("target_word"),
	})
	respondResult(c, res)
}

// analyzeColor handles POST /analyze-color-pronunciation with rule scoring.
func (h *Handler) analyzeColor(c *gin.Context) {
	fh, err := c.FormFile("audio")
	color, hasColor := c.GetPostForm("colorName")
	if err != nil || !hasColor {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			server.RespondWithError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": MessageMissingColorUpload})
		return
	}
	data, err := readUpload(fh)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	filename := fh.Filename
	if filename == "" {
		filename = colorUploadName
	}

	res := h.assessor.Assess(c.Request.Context(), assessment.Request{
		Audio:       data,
		ContentType: fh.Header.Get("Content-Type"),
		Filename:    filename,
		TargetWord:  color,
		Strategy:    scoring.StrategyRule,
	})
	c.JSON(http.StatusOK, res)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.InvalidInput("file", "upload could not be read")
	}
	defer f.Close()
	return io.ReadAll(f)
}

// formError classifies a multipart lookup failure for field.
func formError(err error, field string) error {
	var maxErr *http.MaxBytesError
	switch {
	case stderrors.As(err, &maxErr):
		return err
	case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
		return errors.MissingField(field)
	default:
		return errors.InvalidFormat("body", "multipart/form-data")
	}
}
