package interpretlayout

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"product-image-workers/internal/common/errors"
	"product-image-workers/internal/common/logger"
	"product-image-workers/internal/common/validation"
	"product-image-workers/internal/models"
	"product-image-workers/internal/style/engine"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) AnalyzeLayout(ctx context.Context, imageURL, marketingCopy, scenario string) models.LayoutRecord {
	return m.Called(ctx, imageURL, marketingCopy, scenario).Get(0).(models.LayoutRecord)
}

func (m *MockEngine) InterpretLayout(ctx context.Context, rawText, marketingCopy string) models.LayoutRecord {
	return m.Called(ctx, rawText, marketingCopy).Get(0).(models.LayoutRecord)
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:           key,
		Type:          TaskType,
		ElementId:     "Activity_InterpretLayout",
		CustomHeaders: "{}",
		Retries:       3,
		Variables:     string(variablesJSON),
	}}
}

func newTestHandler(t *testing.T, e LayoutEngine) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 3, Timeout: time.Minute},
		Logger:       logger.NewTestLogger(t),
		Engine:       e,
	})
	require.NoError(t, err)
	return h
}

func TestHandler_ParseInput(t *testing.T) {
	handler := newTestHandler(t, &MockEngine{})

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		want      *Input
	}{
		{
			name:      "image url",
			variables: map[string]interface{}{"imageUrl": " https://cdn.example.com/r.png ", "marketingCopy": "爆款直降", "scenario": "festival"},
			want:      &Input{ImageURL: "https://cdn.example.com/r.png", MarketingCopy: "爆款直降", Scenario: "festival"},
		},
		{
			name:      "raw layout",
			variables: map[string]interface{}{"rawLayout": `{"title":"x"}`},
			want:      &Input{RawLayout: `{"title":"x"}`},
		},
		{
			name:      "both sources",
			variables: map[string]interface{}{"imageUrl": "https://cdn.example.com/r.png", "rawLayout": "{}"},
			wantErr:   true,
		},
		{
			name:      "no source",
			variables: map[string]interface{}{"marketingCopy": "x"},
			wantErr:   true,
		},
		{
			name:      "not an image url",
			variables: map[string]interface{}{"imageUrl": "/tmp/r.png"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := handler.parseInput(createMockJob(5, tt.variables))
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

func TestHandler_ExecuteRoutesBySource(t *testing.T) {
	fromModel := models.EmptyLayout()
	fromModel.Provenance = models.LayoutFromModel
	fromModel.Title = "爆款直降"

	e := &MockEngine{}
	e.On("AnalyzeLayout", mock.Anything, "https://cdn.example.com/r.png", "爆款直降", "").Return(fromModel).Once()
	e.On("InterpretLayout", mock.Anything, "garbage", "").Return(models.EmptyLayout()).Once()

	handler := newTestHandler(t, e)

	out := handler.Execute(context.Background(), &Input{ImageURL: "https://cdn.example.com/r.png", MarketingCopy: "爆款直降"})
	assert.Equal(t, "爆款直降", out.Title)
	assert.Equal(t, models.LayoutFromModel, out.Provenance)

	out = handler.Execute(context.Background(), &Input{RawLayout: "garbage"})
	assert.Equal(t, models.LayoutPlaceholder, out.Provenance)

	e.AssertExpectations(t)
}

func TestOutputVariablesMatchSchema(t *testing.T) {
	// a real engine with an unused backend: interpretation never calls out
	eng := engine.New(nil, nil, engine.Options{}, logger.NewNoOpLogger())
	handler := newTestHandler(t, eng)

	tests := []struct {
		name string
		raw  string
	}{
		{"nested", `{"Taobao_Master_Layout_System":{"layout_template":"layout-clean-right","background_fx":{"style":"text-style-c","visual_path":"Z-path","color_strategy":{"primary":"#fff000","accent":"#112233","emotion":"清爽"}},"title":"清爽一夏","subtitle":"冰爽体验","badges":["包邮"]}}`},
		{"invalid values reset", `{"layout_template":"layout-diagonal","style":"bold","color_strategy":{"primary":"red"}}`},
		{"unparsable", "sorry, I cannot help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := handler.Execute(context.Background(), &Input{RawLayout: tt.raw})
			result := validation.ValidateInput(out.Variables(), GetOutputSchema())
			assert.True(t, result.Valid, "output schema: %v", result.GetErrorMessages())
		})
	}
}
