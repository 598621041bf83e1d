package optimizeprompt

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"product-image-workers/internal/common/config"
	"product-image-workers/internal/common/errors"
	"product-image-workers/internal/common/logger"
	"product-image-workers/internal/history"
	"product-image-workers/internal/models"
	"product-image-workers/internal/style/engine"
	"product-image-workers/internal/style/interpret"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOptimizer struct {
	mock.Mock
}

func (m *MockOptimizer) OptimizePrompt(ctx context.Context, prompt string, imageURLs []string, scenario string) engine.OptimizeResult {
	return m.Called(ctx, prompt, imageURLs, scenario).Get(0).(engine.OptimizeResult)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, e history.Entry) (uuid.UUID, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:           key,
		Type:          TaskType,
		ElementId:     "Activity_OptimizePrompt",
		CustomHeaders: "{}",
		Retries:       3,
		Variables:     string(variablesJSON),
	}}
}

func newTestHandler(t *testing.T, optimizer PromptOptimizer, recorder history.Recorder) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 4, Timeout: time.Minute, RecordHistory: true},
		Logger:       logger.NewTestLogger(t),
		Engine:       optimizer,
		History:      recorder,
	})
	require.NoError(t, err)
	return h
}

func TestHandler_ParseInput(t *testing.T) {
	handler := newTestHandler(t, &MockOptimizer{}, nil)

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		want      *Input
	}{
		{
			name:      "prompt only",
			variables: map[string]interface{}{"prompt": "a kettle on a marble counter"},
			want:      &Input{Prompt: "a kettle on a marble counter"},
		},
		{
			name: "with images and scenario",
			variables: map[string]interface{}{
				"prompt":          "同款换背景",
				"referenceImages": []interface{}{"https://cdn.example.com/ref.png"},
				"scenario":        "poster",
			},
			want: &Input{Prompt: "同款换背景", ReferenceImages: []string{"https://cdn.example.com/ref.png"}, Scenario: "poster"},
		},
		{
			name:      "missing prompt",
			variables: map[string]interface{}{"scenario": "poster"},
			wantErr:   true,
		},
		{
			name:      "bad reference",
			variables: map[string]interface{}{"prompt": "x", "referenceImages": []interface{}{"file:///etc/passwd"}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := handler.parseInput(createMockJob(2, tt.variables))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeValidationFailed, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, input)
		})
	}
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name   string
		result engine.OptimizeResult
		want   Output
	}{
		{
			name:   "nested prompt",
			result: engine.OptimizeResult{Prompt: "studio kettle", Shape: interpret.ShapeNestedUnderSchema, Provenance: models.ProvenanceModel},
			want:   Output{OptimizedPrompt: "studio kettle", Shape: "nested_under_schema", Provenance: "model"},
		},
		{
			name:   "backend down",
			result: engine.OptimizeResult{Prompt: "a kettle", Shape: interpret.ShapeUnresolved, Provenance: models.ProvenanceAPIErrorFallback},
			want:   Output{OptimizedPrompt: "a kettle", Shape: "unresolved", Provenance: "api_error_fallback"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			optimizer := &MockOptimizer{}
			optimizer.On("OptimizePrompt", mock.Anything, "a kettle", []string(nil), "").Return(tt.result)
			handler := newTestHandler(t, optimizer, nil)

			out := handler.Execute(context.Background(), &Input{Prompt: "a kettle"})
			assert.Equal(t, tt.want, *out)
			optimizer.AssertExpectations(t)
		})
	}
}

func TestHandler_RecordHistory(t *testing.T) {
	recorder := &MockRecorder{}
	recorder.On("Record", mock.Anything, history.Entry{
		TaskType:    TaskType,
		JobKey:      11,
		Prompt:      "studio kettle",
		Provenance:  "model",
		ProductText: "a kettle",
	}).Return(uuid.New(), nil)

	handler := newTestHandler(t, &MockOptimizer{}, recorder)
	handler.recordHistory(context.Background(), createMockJob(11, nil),
		&Input{Prompt: "a kettle"},
		&Output{OptimizedPrompt: "studio kettle", Provenance: "model"})

	recorder.AssertExpectations(t)
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	cfg := createConfigFromAppConfig(&config.Config{
		Workers: map[string]config.WorkerConfig{TaskType: {Enabled: true, Timeout: 5000}},
	}, nil)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.MaxJobsActive)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.RecordHistory)
}
