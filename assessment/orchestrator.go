package assessment

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/pronounce/audio"
	"github.com/kbukum/pronounce/errors"
	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/feedback"
	"github.com/kbukum/pronounce/logger"
	"github.com/kbukum/pronounce/observability"
	"github.com/kbukum/pronounce/scoring"
	"github.com/kbukum/pronounce/transcription"
	"github.com/kbukum/pronounce/util"
	"github.com/kbukum/pronounce/validation"
	"github.com/kbukum/pronounce/vocabulary"
)

// DefaultDecodeTimeout bounds the decode stage.
const DefaultDecodeTimeout = 15 * time.Second

// ReferenceSource yields recorded reference vectors. *reference.Library
// satisfies it.
type ReferenceSource interface {
	Get(ctx context.Context, word string) (*features.Vector, bool, error)
}

// Options wires an Orchestrator. Decoders and Extractor are required.
type Options struct {
	Decoders      *audio.Registry
	Extractor     *features.Extractor
	Transcriber   *transcription.Transcriber
	Models        scoring.ForestSource
	References    ReferenceSource
	Vocabulary    *vocabulary.Catalog
	Scoring       scoring.Config
	DecodeTimeout time.Duration
	Metrics       *observability.Metrics
	Logger        *logger.Logger
}

// Orchestrator sequences the assessment stages. It holds no per-request
// state and is safe for concurrent use.
type Orchestrator struct {
	decoders      *audio.Registry
	extractor     *features.Extractor
	transcriber   *transcription.Transcriber
	references    ReferenceSource
	vocabulary    *vocabulary.Catalog
	decodeTimeout time.Duration
	strategy      string
	policy        scoring.Policy
	thresholds    scoring.Thresholds

	rules     *scoring.RuleScorer
	model     *scoring.ModelScorer
	reference *scoring.ReferenceScorer
	feedback  *feedback.Generator

	metrics *observability.Metrics
	log     *logger.Logger
}

// New validates opts and builds an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Decoders == nil || opts.Extractor == nil {
		return nil, fmt.Errorf("assessment: decoders and extractor are required")
	}
	opts.Scoring.ApplyDefaults()
	if err := opts.Scoring.Validate(); err != nil {
		return nil, err
	}
	policy, err := opts.Scoring.ResolvePolicy()
	if err != nil {
		return nil, err
	}
	if opts.Vocabulary == nil {
		opts.Vocabulary = vocabulary.Default()
	}
	if opts.Transcriber == nil {
		opts.Transcriber = transcription.NewTranscriber(transcription.Disabled{}, transcription.Config{}, opts.Logger, opts.Metrics)
	}
	if opts.DecodeTimeout <= 0 {
		opts.DecodeTimeout = DefaultDecodeTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &Orchestrator{
		decoders:      opts.Decoders,
		extractor:     opts.Extractor,
		transcriber:   opts.Transcriber,
		references:    opts.References,
		vocabulary:    opts.Vocabulary,
		decodeTimeout: opts.DecodeTimeout,
		strategy:      opts.Scoring.Strategy,
		policy:        policy,
		thresholds:    opts.Scoring.Thresholds,
		rules:         scoring.NewRuleScorer(policy, opts.Vocabulary),
		model:         scoring.NewModelScorer(opts.Models),
		reference:     scoring.NewReferenceScorer(opts.Scoring.SimilarityThreshold),
		feedback:      feedback.New(policy, opts.Scoring.ModelTiers),
		metrics:       opts.Metrics,
		log:           opts.Logger.WithComponent("assessment"),
	}, nil
}

// Strategy returns the configured default strategy.
func (o *Orchestrator) Strategy() string { return o.strategy }

// Policy returns the active rule policy.
func (o *Orchestrator) Policy() scoring.Policy { return o.policy }

// run carries per-request state through the stages.
type run struct {
	id       string
	req      Request
	target   string
	strategy string
	stage    string
	buf      *audio.Buffer
	vector   *features.Vector
	outcome  transcription.Outcome
	score    scoring.Score
	fellBack bool
}

// Assess runs the pipeline for req and always returns a Result.
func (o *Orchestrator) Assess(ctx context.Context, req Request) (res *Result) {
	start := time.Now()
	r := &run{
		id:       uuid.NewString(),
		req:      req,
		target:   vocabulary.Key(req.TargetWord),
		strategy: req.Strategy,
		stage:    StageInput,
	}
	if r.strategy == "" {
		r.strategy = o.strategy
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanAssessment)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrAssessmentID, r.id)
	observability.SetSpanAttribute(ctx, observability.AttrTarget, r.target)
	observability.SetSpanAttribute(ctx, observability.AttrStrategy, r.strategy)

	log := o.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldAssessmentID, r.id,
		logger.FieldTarget, r.target,
	))

	defer func() {
		if p := recover(); p != nil {
			log.Error("assessment panicked", logger.Fields(
				logger.FieldStage, r.stage,
				"panic", fmt.Sprint(p),
				"stack", string(debug.Stack()),
			))
			res = o.fail(r, errors.InternalScoring(fmt.Sprintf("unexpected failure in %s stage", r.stage)))
		}
		o.finish(ctx, log, r, res, start)
	}()

	if err := o.validate(r); err != nil {
		return o.fail(r, err)
	}
	if err := o.decode(ctx, r); err != nil {
		return o.fail(r, err)
	}
	if err := o.resample(ctx, r); err != nil {
		return o.fail(r, err)
	}
	if err := o.extract(ctx, r); err != nil {
		return o.fail(r, err)
	}
	o.transcribe(ctx, r)
	o.scoreStage(ctx, r)
	if r.score.Status == scoring.StatusInternalError {
		return o.fail(r, errors.New(errors.ErrCodeInternalScoring, r.score.Diagnostic, http.StatusInternalServerError))
	}
	return o.feedbackStage(ctx, r)
}

func (o *Orchestrator) validate(r *run) *errors.AppError {
	v := validation.New().
		RequiredBytes("audio", r.req.Audio).
		TargetWord("target_word", r.req.TargetWord).
		OneOf("strategy", r.strategy, scoring.Strategies)
	return v.Validate()
}

func (o *Orchestrator) decode(ctx context.Context, r *run) error {
	r.stage = observability.StageDecode
	ctx, stage := observability.StartStage(ctx, o.metrics, r.stage)
	dctx, cancel := context.WithTimeout(ctx, o.decodeTimeout)
	defer cancel()

	buf, err := o.decoders.Decode(dctx, r.req.Audio, r.req.ContentType, r.req.Filename)
	if err != nil {
		if _, ok := errors.AsAppError(err); !ok {
			err = errors.Decode(audio.NormalizeContentType(r.req.ContentType), err)
		}
	}
	stage.End(err)
	r.buf = buf
	return err
}

func (o *Orchestrator) resample(ctx context.Context, r *run) error {
	r.stage = observability.StageResample
	_, stage := observability.StartStage(ctx, o.metrics, r.stage)
	if err := r.buf.Validate(); err != nil {
		stage.End(err)
		return err
	}
	buf, err := audio.Resample(r.buf, o.extractor.Config().SampleRate)
	stage.End(err)
	if err != nil {
		return err
	}
	r.buf = buf
	return nil
}

func (o *Orchestrator) extract(ctx context.Context, r *run) error {
	r.stage = observability.StageExtract
	_, stage := observability.StartStage(ctx, o.metrics, r.stage)
	v, err := o.extractor.Extract(r.buf)
	stage.End(err)
	r.vector = v
	return err
}

// transcribe sends at most the phrase limit of audio, as 16-bit WAV.
func (o *Orchestrator) transcribe(ctx context.Context, r *run) {
	r.stage = observability.StageTranscribe
	if !o.transcriber.Enabled() {
		r.outcome = transcription.Unavailable("transcription disabled")
		return
	}
	ctx, stage := observability.StartStage(ctx, o.metrics, r.stage)
	defer stage.End(nil)

	clip := r.buf
	if limit := o.transcriber.PhraseLimit(); limit > 0 && clip.DurationTime() > limit {
		n := int(limit.Seconds() * float64(clip.SampleRate))
		clip = &audio.Buffer{Samples: clip.Samples[:n], SampleRate: clip.SampleRate}
	}
	wav, err := audio.EncodeWAV(clip)
	if err != nil {
		r.outcome = transcription.Unavailable("encode audio: " + err.Error())
		return
	}
	r.outcome = o.transcriber.Transcribe(ctx, transcription.Request{
		Audio:       wav,
		Filename:    "audio.wav",
		ContentType: "audio/wav",
	})
	observability.SetSpanAttribute(ctx, observability.AttrStatus, string(r.outcome.Kind))
}

func (o *Orchestrator) scoreStage(ctx context.Context, r *run) {
	r.stage = observability.StageScore
	ctx, stage := observability.StartStage(ctx, o.metrics, r.stage)
	defer stage.End(nil)

	target := scoring.Target{Word: r.target}
	switch r.strategy {
	case scoring.StrategyModel:
		r.score = o.gated(o.model.Score(ctx, r.vector, target, r.outcome), r)
		return
	case scoring.StrategyReference:
		if o.references != nil {
			ref, ok, err := o.references.Get(ctx, r.target)
			if err != nil {
				o.log.WithContext(ctx).Warn("reference unreadable", logger.MergeWithError(logger.Fields(logger.FieldTarget, r.target), err))
			} else if ok {
				target.Reference = ref
			}
		}
		s := o.reference.Score(ctx, r.vector, target, r.outcome)
		if s.Status != scoring.StatusModelUnavailable {
			r.score = o.gated(s, r)
			return
		}
		r.fellBack = true
	case scoring.StrategyAuto:
		if o.model.Available(ctx) {
			r.strategy = scoring.StrategyModel
			r.score = o.gated(o.model.Score(ctx, r.vector, target, r.outcome), r)
			return
		}
		r.fellBack = true
	}
	r.strategy = scoring.StrategyRule
	r.score = o.rules.Score(ctx, r.vector, target, r.outcome)
}

func (o *Orchestrator) gated(s scoring.Score, r *run) scoring.Score {
	return o.policy.Gate(s, r.target, r.outcome, o.vocabulary.Variations(r.target))
}

func (o *Orchestrator) feedbackStage(ctx context.Context, r *run) *Result {
	r.stage = observability.StageFeedback
	_, stage := observability.StartStage(ctx, o.metrics, r.stage)
	defer stage.End(nil)

	word, _ := o.vocabulary.Lookup(r.target)
	lines := o.feedback.Generate(feedback.Input{
		Score:       r.score,
		Outcome:     r.outcome,
		Descriptors: r.vector.Descriptors(),
		Target:      r.target,
		Tip:         word.Tip,
		Category:    word.Category,
	})

	status := StatusOK
	if r.score.Degraded() || r.fellBack || (o.transcriber.Enabled() && r.outcome.Kind == transcription.KindUnavailable) {
		status = StatusDegraded
	}
	res := &Result{
		ID:             r.id,
		Score:          r.score.Value,
		Scale:          r.score.Scale,
		Rating:         o.thresholds.Rating(r.score),
		Feedback:       lines,
		RecognizedWord: r.outcome.Heard(),
		IsCorrectWord:  r.score.WordCorrect,
		TargetWord:     r.target,
		Duration:       util.RoundTo(r.vector.Duration, 2),
		Energy:         util.RoundTo(r.vector.Energy, 4),
		Strategy:       r.strategy,
		Status:         status,
		Penalties:      slices.Clone(r.score.Penalties),
		Diagnostic:     r.score.Diagnostic,
	}
	return res
}

// fail builds the terminal result for a stage failure.
func (o *Orchestrator) fail(r *run, err error) *Result {
	app, ok := errors.AsAppError(err)
	if !ok {
		app = errors.Internal(err)
	}
	res := &Result{
		ID:             r.id,
		Score:          0,
		Scale:          scoring.ScalePercent,
		Rating:         scoring.RatingError,
		Feedback:       []string{diagnostic(r.stage, app)},
		RecognizedWord: "Unknown",
		TargetWord:     r.target,
		Strategy:       r.strategy,
		Status:         StatusFailed,
		FailedStage:    r.stage,
		ErrorCode:      app.Code,
		Diagnostic:     app.Message,
		err:            app,
	}
	if r.vector != nil {
		res.Duration = util.RoundTo(r.vector.Duration, 2)
		res.Energy = util.RoundTo(r.vector.Energy, 4)
	}
	return res
}

func diagnostic(stage string, err *errors.AppError) string {
	switch stage {
	case observability.StageDecode:
		return "Could not decode audio: " + err.Message
	case observability.StageResample, observability.StageExtract:
		return "Could not analyze audio features"
	case StageInput:
		return err.Message
	default:
		return "Internal error during " + stage + ": " + err.Message
	}
}

func (o *Orchestrator) finish(ctx context.Context, log *logger.Logger, r *run, res *Result, start time.Time) {
	elapsed := time.Since(start)
	observability.SetSpanAttribute(ctx, observability.AttrStatus, res.Status)
	observability.SetSpanAttribute(ctx, observability.AttrScore, res.Score)
	if res.Failed() {
		observability.SetSpanError(ctx, res.err)
		o.metrics.RecordError(ctx, string(res.ErrorCode), "assessment")
	}
	o.metrics.RecordAssessment(ctx, res.Strategy, res.Status, elapsed, res.Score)

	fields := logger.Fields(
		logger.FieldStrategy, res.Strategy,
		logger.FieldScore, res.Score,
		logger.FieldStatus, res.Status,
		logger.FieldRecognized, res.RecognizedWord,
		logger.FieldContentType, r.req.ContentType,
		logger.FieldDuration, elapsed.Milliseconds(),
	)
	switch res.Status {
	case StatusFailed:
		fields[logger.FieldStage] = res.FailedStage
		fields[logger.FieldErrorCode] = string(res.ErrorCode)
		log.Warn("assessment failed", fields)
	case StatusDegraded:
		fields["outcome"] = r.outcome.String()
		log.Warn("assessment degraded", fields)
	default:
		log.Info("assessment complete", fields)
	}
}
