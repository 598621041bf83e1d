// Package engine runs the style pipeline against the chat backend and owns
// the fallback chain: every entry point returns a well-formed record, with
// degradation visible only through its provenance.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"product-image-workers/internal/backend/chat"
	"product-image-workers/internal/common/logger"
	"product-image-workers/internal/common/metrics"
	"product-image-workers/internal/models"
	"product-image-workers/internal/style/interpret"
	"product-image-workers/internal/style/promptsynth"
)

// Operation names used in logs and the style_resolutions_total metric.
const (
	OpResolveStyle     = "resolve_style"
	OpMergeVision      = "merge_vision_prompt"
	OpAnalyzeLayout    = "analyze_layout"
	OpInterpretLayout  = "interpret_layout"
	OpOptimizePrompt   = "optimize_prompt"
	OpIdentifyProduct  = "identify_product"
	OpDesignBackground = "design_background"
)

// ChatBackend is the one call the engine needs from the chat client.
type ChatBackend interface {
	Complete(ctx context.Context, req chat.Request) (string, error)
}

// Instructions are the system prompts that can be overridden per scenario.
// Empty fields select the built-in prompt.
type Instructions struct {
	Layout   string
	Optimize string
}

type Options struct {
	// MaxWait bounds every backend call. Zero leaves the caller's deadline alone.
	MaxWait time.Duration

	// Default applies when a request names no scenario or an unknown one.
	Default   Instructions
	Scenarios map[string]Instructions
}

func (o Options) instructions(scenario string) Instructions {
	in := o.Default
	if s, ok := o.Scenarios[scenario]; ok {
		if s.Layout != "" {
			in.Layout = s.Layout
		}
		if s.Optimize != "" {
			in.Optimize = s.Optimize
		}
	}
	if in.Optimize == "" {
		in.Optimize = promptsynth.DefaultOptimizeInstruction
	}
	return in
}

// OptimizeResult is the outcome of OptimizePrompt.
type OptimizeResult struct {
	Prompt     string
	Shape      interpret.Shape
	Provenance models.Provenance
}

type Engine struct {
	backend ChatBackend
	layout  *interpret.LayoutInterpreter
	opts    Options
	logger  logger.Logger
}

// New builds an engine. A nil translator leaves layout text untranslated.
func New(backend ChatBackend, translator interpret.Translator, opts Options, log logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Engine{
		backend: backend,
		layout:  interpret.NewLayoutInterpreter(translator),
		opts:    opts,
		logger:  log,
	}
}

// ResolveStyle classifies the product through the backend and interprets the
// answer. Backend failures degrade to the keyword classifier with the raw
// product text as prompt.
func (e *Engine) ResolveStyle(ctx context.Context, productText, marketingCopy string) models.OptimizationRecord {
	rec := e.resolve(ctx, OpResolveStyle, productText, marketingCopy)
	e.count(OpResolveStyle, string(rec.Provenance))
	return rec
}

func (e *Engine) resolve(ctx context.Context, op, productText, marketingCopy string) models.OptimizationRecord {
	prompt := promptsynth.BuildClassificationInstruction(productText, marketingCopy)

	raw, err := e.complete(ctx, chat.Request{
		Call:   op,
		System: prompt.InstructionText,
		User:   prompt.UserText,
	})
	if err != nil {
		tier := fallbackTier(err)
		e.logger.Warn("Style resolution degraded", map[string]interface{}{
			"operation":  op,
			"provenance": string(tier),
			"error":      err.Error(),
		})
		return models.FallbackRecord(productText, marketingCopy, tier)
	}

	rec := interpret.Interpret(raw, productText, marketingCopy)
	if rec.Provenance != models.ProvenanceModel {
		e.logger.Warn("Backend output was not a JSON object", map[string]interface{}{
			"operation":  op,
			"provenance": string(rec.Provenance),
			"styleId":    string(rec.StyleID),
		})
	}
	return rec
}

// MergeVisionFirstPrompt merges the vision signals into a working prompt,
// resolves it like ResolveStyle and pins the result to the reference image.
// Overlay text is cleared in this mode.
func (e *Engine) MergeVisionFirstPrompt(ctx context.Context, productDescription, userHint, enrichment, marketingCopy string) models.OptimizationRecord {
	merged := promptsynth.MergeVisionSignals(productDescription, userHint, enrichment)

	rec := e.resolve(ctx, OpMergeVision, merged, marketingCopy)
	rec.Prompt = promptsynth.ApplyVisionSuffix(rec.Prompt)
	rec.Title = ""
	rec.Subtitle = ""
	rec.Badges = []string{}

	e.count(OpMergeVision, string(rec.Provenance))
	return rec
}

// InterpretLayout turns already obtained layout output into a LayoutRecord.
func (e *Engine) InterpretLayout(ctx context.Context, rawText, marketingCopy string) models.LayoutRecord {
	ctx, cancel := e.bound(ctx)
	defer cancel()

	rec := e.layout.Interpret(ctx, rawText, marketingCopy)
	e.count(OpInterpretLayout, string(rec.Provenance))
	return rec
}

// AnalyzeLayout asks the vision backend to plan text placement over imageURL.
// Any backend failure yields the placeholder layout.
func (e *Engine) AnalyzeLayout(ctx context.Context, imageURL, marketingCopy, scenario string) models.LayoutRecord {
	raw, err := e.complete(ctx, chat.Request{
		Call:      OpAnalyzeLayout,
		System:    promptsynth.LayoutInstruction(e.opts.instructions(scenario).Layout, marketingCopy),
		User:      promptsynth.LayoutUserText,
		ImageURLs: []string{imageURL},
		JSONMode:  true,
	})
	if err != nil {
		e.logger.Warn("Layout analysis degraded to placeholder", map[string]interface{}{
			"error": err.Error(),
		})
		rec := models.EmptyLayout()
		e.count(OpAnalyzeLayout, string(rec.Provenance))
		return rec
	}

	ctx, cancel := e.bound(ctx)
	defer cancel()
	rec := e.layout.Interpret(ctx, raw, marketingCopy)
	e.count(OpAnalyzeLayout, string(rec.Provenance))
	return rec
}

// OptimizePrompt rewrites prompt with the optimisation instruction of the
// scenario. On backend failure the prompt comes back unchanged.
func (e *Engine) OptimizePrompt(ctx context.Context, prompt string, imageURLs []string, scenario string) OptimizeResult {
	raw, err := e.complete(ctx, chat.Request{
		Call:      OpOptimizePrompt,
		System:    e.opts.instructions(scenario).Optimize,
		User:      prompt,
		ImageURLs: imageURLs,
	})
	if err != nil {
		tier := fallbackTier(err)
		e.logger.Warn("Prompt optimisation degraded", map[string]interface{}{
			"provenance": string(tier),
			"error":      err.Error(),
		})
		e.count(OpOptimizePrompt, string(tier))
		return OptimizeResult{Prompt: prompt, Shape: interpret.ShapeUnresolved, Provenance: tier}
	}

	out := interpret.ExtractOptimizedPrompt(raw)
	provenance := models.ProvenanceModel
	if out.Shape == interpret.ShapeUnresolved {
		provenance = models.ProvenanceKeywordFallback
	}
	if strings.TrimSpace(out.Prompt) == "" {
		out.Prompt = prompt
	}
	e.count(OpOptimizePrompt, string(provenance))
	return OptimizeResult{Prompt: out.Prompt, Shape: out.Shape, Provenance: provenance}
}

// IdentifyProduct describes the product shown in the reference images.
// Returns "" when there are no images or the call fails.
func (e *Engine) IdentifyProduct(ctx context.Context, imageURLs []string) string {
	if len(imageURLs) == 0 {
		return ""
	}
	out, err := e.complete(ctx, chat.Request{
		Call:      OpIdentifyProduct,
		User:      promptsynth.ProductIdentificationInstruction,
		ImageURLs: imageURLs,
	})
	if err != nil {
		e.logger.Warn("Product identification failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	return strings.TrimSpace(out)
}

// DesignBackground asks for an English background scene around the product.
// Returns "" on failure.
func (e *Engine) DesignBackground(ctx context.Context, productDescription string) string {
	out, err := e.complete(ctx, chat.Request{
		Call:   OpDesignBackground,
		System: promptsynth.BackgroundDesignInstruction,
		User:   promptsynth.BackgroundDesignRequest(productDescription),
	})
	if err != nil {
		e.logger.Warn("Background design failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	return strings.TrimSpace(interpret.StripFence(out))
}

func (e *Engine) complete(ctx context.Context, req chat.Request) (string, error) {
	ctx, cancel := e.bound(ctx)
	defer cancel()
	return e.backend.Complete(ctx, req)
}

func (e *Engine) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opts.MaxWait <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.opts.MaxWait)
}

func (e *Engine) count(op, provenance string) {
	metrics.StyleResolutions.WithLabelValues(op, provenance).Inc()
}

// fallbackTier maps a backend failure onto its provenance: a status answer
// is an API error, anything else (deadline, transport, empty choices) an
// exception.
func fallbackTier(err error) models.Provenance {
	var statusErr *chat.StatusError
	if errors.As(err, &statusErr) {
		return models.ProvenanceAPIErrorFallback
	}
	return models.ProvenanceExceptionFallback
}
