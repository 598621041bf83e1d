// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"product-image-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// WorkerSpec describes one job worker subscription.
type WorkerSpec struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
	Handler       worker.JobHandler
}

// OpenWorker subscribes spec.Handler to its task type. A panicking handler
// fails the job instead of killing the poller.
func OpenWorker(client zbc.Client, spec WorkerSpec, log logger.Logger) worker.JobWorker {
	return client.NewJobWorker().
		JobType(spec.TaskType).
		Handler(Guard(spec.TaskType, spec.Handler, log)).
		MaxJobsActive(spec.MaxJobsActive).
		Timeout(spec.Timeout).
		Name(fmt.Sprintf("%s-worker", spec.TaskType)).
		Open()
}

// CompleteJob completes job with variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, variables map[string]interface{}) error {
	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(variables)
	if err != nil {
		return fmt.Errorf("build complete command: %w", err)
	}
	if _, err := request.Send(ctx); err != nil {
		return fmt.Errorf("complete job %d: %w", job.GetKey(), err)
	}
	return nil
}

// Guard wraps handler with panic recovery.
func Guard(taskType string, handler worker.JobHandler, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error("Job handler panicked", map[string]interface{}{
				"taskType": taskType,
				"jobKey":   job.GetKey(),
				"panic":    fmt.Sprint(r),
			})
			retries := job.GetRetries() - 1
			if retries < 0 {
				retries = 0
			}
			_, _ = client.NewFailJobCommand().
				JobKey(job.GetKey()).
				Retries(retries).
				ErrorMessage(fmt.Sprintf("[INTERNAL_ERROR] handler panic: %v", r)).
				Send(context.Background())
		}()
		handler(client, job)
	}
}
