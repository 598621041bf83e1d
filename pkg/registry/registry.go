// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"product-image-workers/internal/common/errors"
	il "product-image-workers/internal/workers/product-image/interpret-layout"
	mvp "product-image-workers/internal/workers/product-image/merge-vision-prompt"
	op "product-image-workers/internal/workers/product-image/optimize-prompt"
	rs "product-image-workers/internal/workers/product-image/resolve-style"
)

const (
	Version  = "1.0.0"
	category = "product-image"
)

// inputErrors are the job errors every worker can raise on bad input.
var inputErrors = []string{
	string(errors.ErrCodeInputParsingFailed),
	string(errors.ErrCodeValidationFailed),
}

// Build describes the workers this module ships.
func Build(now time.Time) *ActivityRegistry {
	return &ActivityRegistry{
		Version:     Version,
		LastUpdated: now.UTC().Format(time.RFC3339),
		Activities: []Activity{
			{
				ID:              rs.TaskType,
				DisplayName:     "Resolve Style",
				Description:     "Classifies product text into a visual archetype and returns the generation prompt and overlay copy",
				TaskType:        rs.TaskType,
				Category:        category,
				Version:         Version,
				InputSchema:     rs.GetInputSchema(),
				OutputVariables: variableNames((&rs.Output{}).Variables()),
				ErrorCodes:      append([]string{string(errors.ErrCodeStyleCatalogMismatch)}, inputErrors...),
				Timeout:         rs.DefaultConfig().Timeout.String(),
				Tags:            []string{"style", "prompt"},
			},
			{
				ID:              mvp.TaskType,
				DisplayName:     "Merge Vision Prompt",
				Description:     "Builds a product-faithful prompt from reference images or a description, optionally enriched with a designed background",
				TaskType:        mvp.TaskType,
				Category:        category,
				Version:         Version,
				InputSchema:     mvp.GetInputSchema(),
				OutputVariables: variableNames((&mvp.Output{}).Variables()),
				ErrorCodes:      append([]string{string(errors.ErrCodeStyleCatalogMismatch)}, inputErrors...),
				Timeout:         mvp.DefaultConfig().Timeout.String(),
				Tags:            []string{"style", "prompt", "vision"},
			},
			{
				ID:              il.TaskType,
				DisplayName:     "Interpret Layout",
				Description:     "Turns a reference image or raw model output into a sanitised poster layout with Chinese overlay text",
				TaskType:        il.TaskType,
				Category:        category,
				Version:         Version,
				InputSchema:     il.GetInputSchema(),
				OutputVariables: variableNames((&il.Output{}).Variables()),
				ErrorCodes:      inputErrors,
				Timeout:         il.DefaultConfig().Timeout.String(),
				Tags:            []string{"layout", "vision"},
			},
			{
				ID:              op.TaskType,
				DisplayName:     "Optimize Prompt",
				Description:     "Rewrites a user request into a generation prompt through the chat backend",
				TaskType:        op.TaskType,
				Category:        category,
				Version:         Version,
				InputSchema:     op.GetInputSchema(),
				OutputVariables: variableNames((&op.Output{}).Variables()),
				ErrorCodes:      inputErrors,
				Timeout:         op.DefaultConfig().Timeout.String(),
				Tags:            []string{"prompt"},
			},
		},
	}
}

func variableNames(vars map[string]interface{}) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Save writes reg as indented JSON, creating the parent directory.
func Save(reg *ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Validate checks reg for structural problems and for drift against the
// workers compiled into this module.
func Validate(reg *ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	known := make(map[string]Activity)
	for _, a := range Build(time.Now()).Activities {
		known[a.TaskType] = a
	}

	ids := make(map[string]bool)
	for _, activity := range reg.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if activity.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", activity.ID)
		}
		want, ok := known[activity.TaskType]
		if !ok {
			return fmt.Errorf("activity %s: unknown task type %q", activity.ID, activity.TaskType)
		}
		if !sameStrings(activity.OutputVariables, want.OutputVariables) {
			return fmt.Errorf("activity %s: output variables %v, worker produces %v",
				activity.ID, activity.OutputVariables, want.OutputVariables)
		}
	}
	return nil
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
