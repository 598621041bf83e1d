package resolvestyle

import (
	"context"
	"fmt"
	"time"

	"product-image-workers/internal/common/camunda"
	"product-image-workers/internal/common/config"
	"product-image-workers/internal/common/errors"
	"product-image-workers/internal/common/logger"
	"product-image-workers/internal/common/metrics"
	"product-image-workers/internal/common/observability"
	"product-image-workers/internal/common/validation"
	"product-image-workers/internal/history"
	"product-image-workers/internal/models"
	"product-image-workers/internal/style/archetype"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "resolve-style"

type Handler struct {
	config        *Config
	logger        logger.Logger
	camunda       *camunda.Client
	engine        StyleResolver
	history       history.Recorder
	observability *observability.Observability
	errorHandler  *errors.ErrorHandler
	jobWorker     worker.JobWorker
}

type HandlerOptions struct {
	AppConfig     *config.Config
	Camunda       *camunda.Client
	CustomConfig  *Config
	Logger        logger.Logger
	Engine        StyleResolver
	History       history.Recorder
	Observability *observability.Observability
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("invalid configuration for %s: style engine is required", TaskType)
	}

	loggerInstance := opts.Logger
	if loggerInstance == nil {
		loggerInstance = logger.NewStructured("info", "json")
	}

	handler := &Handler{
		config:        workerConfig,
		logger:        loggerInstance.WithFields(map[string]interface{}{"worker": TaskType}),
		camunda:       opts.Camunda,
		engine:        opts.Engine,
		observability: opts.Observability,
		errorHandler:  errors.NewErrorHandler(loggerInstance),
	}
	if workerConfig.RecordHistory {
		handler.history = opts.History
	}
	return handler, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing style resolution", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err, startTime)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err, startTime)
		return
	}
	h.recordHistory(ctx, job, input, output)

	if err := camunda.CompleteJob(ctx, client, job, output.Variables()); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	status := observability.StatusCompleted
	if models.Provenance(output.Provenance).IsFallback() {
		status = observability.StatusDegraded
	}
	h.observability.RecordJob(ctx, TaskType, status, time.Since(startTime))
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())

	h.logger.Info("Style resolved", map[string]interface{}{
		"jobKey":     job.GetKey(),
		"styleId":    output.StyleID,
		"provenance": output.Provenance,
		"requestId":  output.RequestID,
	})
}

// Execute resolves the style for input. The engine never fails; the only
// error is a style id the catalog does not know.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	rec := h.engine.ResolveStyle(ctx, input.ProductText, input.MarketingCopy)

	style, err := archetype.Lookup(rec.StyleID)
	if err != nil {
		return nil, errors.NewStyleCatalogMismatchError(string(rec.StyleID))
	}

	badges := rec.Badges
	if badges == nil {
		badges = []string{}
	}

	return &Output{
		StyleID:          string(rec.StyleID),
		Prompt:           rec.Prompt,
		Title:            rec.Title,
		Subtitle:         rec.Subtitle,
		Badges:           badges,
		Provenance:       string(rec.Provenance),
		ThemeTag:         style.ThemeTag,
		StyleEnhancement: style.Enhancement(),
		Size:             models.SizeForRatio(input.Ratio),
		RequestID:        uuid.NewString(),
	}, nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}

	validationResult := validation.ValidateInput(variables, GetInputSchema())
	if !validationResult.Valid {
		return nil, errors.NewValidationFailedError(
			fmt.Sprintf("Validation errors: %v", validationResult.GetErrorMessages()))
	}

	input := &Input{
		ProductText: variables["productText"].(string),
	}
	if copyText, ok := variables["marketingCopy"].(string); ok {
		input.MarketingCopy = copyText
	}
	if ratio, ok := variables["ratio"].(string); ok {
		input.Ratio = ratio
	}
	return input, nil
}

func (h *Handler) recordHistory(ctx context.Context, job entities.Job, input *Input, output *Output) {
	if h.history == nil {
		return
	}
	_, err := h.history.Record(ctx, history.Entry{
		TaskType:      TaskType,
		JobKey:        job.GetKey(),
		StyleID:       output.StyleID,
		Prompt:        output.Prompt,
		Provenance:    output.Provenance,
		ProductText:   input.ProductText,
		MarketingCopy: input.MarketingCopy,
		Badges:        output.Badges,
	})
	if err != nil {
		stdErr := errors.NewHistoryWriteFailedError(err)
		h.logger.Warn("History write failed", map[string]interface{}{
			"jobKey":    job.GetKey(),
			"errorCode": string(stdErr.Code),
			"error":     stdErr.Details,
		})
	}
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.CodeOf(err))).Inc()
	h.observability.RecordJob(ctx, TaskType, observability.StatusFailed, time.Since(startTime))
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Register() error {
	if !h.config.Enabled {
		h.logger.Info("Worker is disabled, skipping registration", nil)
		return nil
	}

	h.jobWorker = camunda.OpenWorker(h.camunda.GetClient(), camunda.WorkerSpec{
		TaskType:      TaskType,
		MaxJobsActive: h.config.MaxJobsActive,
		Timeout:       h.config.Timeout,
		Handler:       h.Handle,
	}, h.logger)

	h.logger.Info("Style resolution worker registered with Camunda", map[string]interface{}{
		"taskType":      TaskType,
		"maxJobsActive": h.config.MaxJobsActive,
		"timeout":       h.config.Timeout.String(),
		"history":       h.history != nil,
	})
	return nil
}

func (h *Handler) Close() {
	if h.jobWorker != nil {
		h.logger.Info("Shutting down worker gracefully", nil)
		h.jobWorker.Close()
		h.jobWorker = nil
	}
}

func (h *Handler) HealthCheck(ctx context.Context) error {
	if err := h.camunda.HealthCheck(ctx); err != nil {
		return fmt.Errorf("camunda health check failed: %w", err)
	}
	return nil
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	if workerCfg, exists := appConfig.Workers[TaskType]; exists {
		cfg.Enabled = workerCfg.Enabled
		if workerCfg.MaxJobsActive > 0 {
			cfg.MaxJobsActive = workerCfg.MaxJobsActive
		}
		if workerCfg.Timeout > 0 {
			cfg.Timeout = time.Duration(workerCfg.Timeout) * time.Millisecond
		}
	}
	cfg.RecordHistory = appConfig.Engine.HistoryEnabled
	return cfg
}
