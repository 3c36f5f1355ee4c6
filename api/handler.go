package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/pronounce/assessment"
	"github.com/kbukum/pronounce/logger"
	"github.com/kbukum/pronounce/server/middleware"
	"github.com/kbukum/pronounce/transcription"
	"github.com/kbukum/pronounce/vocabulary"
)

// HomeMessage is the banner served on GET /.
const HomeMessage = "AI Pronunciation Service is running!"

// Assessor runs one assessment. *assessment.Orchestrator satisfies it.
type Assessor interface {
	Assess(ctx context.Context, req assessment.Request) *assessment.Result
}

// SpeechToText transcribes audio. *transcription.Transcriber satisfies it.
type SpeechToText interface {
	Transcribe(ctx context.Context, req transcription.Request) transcription.Outcome
}

// Options wires a Handler. Assessor is required.
type Options struct {
	Assessor    Assessor
	Transcriber SpeechToText
	Vocabulary  *vocabulary.Catalog
	RateLimit   middleware.RateLimitConfig
	Logger      *logger.Logger
}

// Handler serves the pronunciation routes.
type Handler struct {
	assessor    Assessor
	transcriber SpeechToText
	vocabulary  *vocabulary.Catalog
	rateLimit   middleware.RateLimitConfig
	log         *logger.Logger
}

// New creates a Handler. A nil Transcriber makes /analyze-speech answer
// 503; a nil Vocabulary serves the built-in words.
func New(opts Options) *Handler {
	if opts.Vocabulary == nil {
		opts.Vocabulary = vocabulary.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Handler{
		assessor:    opts.Assessor,
		transcriber: opts.Transcriber,
		vocabulary:  opts.Vocabulary,
		rateLimit:   opts.RateLimit,
		log:         opts.Logger.WithComponent("api"),
	}
}

// Register mounts the routes on r. Analysis routes share one rate limiter.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.home)

	analysis := r.Group("", middleware.RateLimit(h.rateLimit))
	analysis.POST("/analyze/", h.analyze)
	analysis.POST("/analyze-color-pronunciation", h.analyzeColor)
	analysis.POST("/assess", h.assess)
	analysis.POST("/analyze-speech", h.analyzeSpeech)

	r.GET("/words", h.listWords)
	r.GET("/words/:word", h.getWord)
}

func (h *Handler) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": HomeMessage})
}

// respondResult writes res with the status of its error when it failed.
func respondResult(c *gin.Context, res *assessment.Result) {
	status := http.StatusOK
	if res.Failed() {
		status = http.StatusInternalServerError
		if err := res.Err(); err != nil {
			status = err.HTTPStatus
		}
	}
	c.JSON(status, res)
}
