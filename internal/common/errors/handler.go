// internal/common/errors/handler.go
package errors

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler fails or throws jobs for errors a worker could not absorb.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Decision is what HandleJobError will do with a job.
type Decision struct {
	Throw   bool
	Retries int32
	Error   *BPMNError
}

// Decide maps err onto a job outcome. Retryable codes fail the job with the
// smaller of the recommended and the remaining retries; everything else is
// thrown as a BPMN error for the process to route.
func (h *ErrorHandler) Decide(job entities.Job, err error) Decision {
	stdErr := AsStandardError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	if bpmnErr.Retries == 0 || job.GetRetries() <= 1 {
		return Decision{Throw: true, Error: bpmnErr}
	}

	retries := int32(bpmnErr.Retries)
	if remaining := job.GetRetries() - 1; remaining < retries {
		retries = remaining
	}
	return Decision{Retries: retries, Error: bpmnErr}
}

// HandleJobError logs err and reports it to the broker.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	d := h.Decide(job, err)
	h.logError(job, d)

	vars := d.Error.ToErrorVariables()
	if d.Throw {
		cmd := client.NewThrowErrorCommand().
			JobKey(job.GetKey()).
			ErrorCode(d.Error.Code).
			ErrorMessage(d.Error.Message)
		if withVars, varErr := cmd.VariablesFromMap(vars); varErr == nil {
			_, err = withVars.Send(ctx)
		} else {
			_, err = cmd.Send(ctx)
		}
	} else {
		cmd := client.NewFailJobCommand().
			JobKey(job.GetKey()).
			Retries(d.Retries).
			ErrorMessage("[" + d.Error.Code + "] " + d.Error.Message)
		if withVars, varErr := cmd.VariablesFromMap(vars); varErr == nil {
			_, err = withVars.Send(ctx)
		} else {
			_, err = cmd.Send(ctx)
		}
	}

	if err != nil {
		h.logger.Error("Failed to report job error to broker", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
	}
}

func (h *ErrorHandler) logError(job entities.Job, d Decision) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.GetKey(),
		"jobType":          job.GetType(),
		"bpmnErrorCode":    d.Error.Code,
		"message":          d.Error.Message,
		"details":          d.Error.Details,
		"retryable":        d.Error.Retryable,
		"retries":          d.Retries,
		"thrown":           d.Throw,
		"errorCategory":    GetErrorCategory(ErrorCode(d.Error.Code)),
		"workflowInstance": job.GetProcessInstanceKey(),
	})
}
