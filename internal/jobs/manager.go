package jobs

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrAlreadyRunning is returned when a job is started while its previous
// run has not finished.
var ErrAlreadyRunning = errors.New("a job is already running")

// Task is the work a Runner performs for one argument.
type Task[T any] func(arg string) (T, error)

// Outcome is the single value delivered for one run.
type Outcome[T any] struct {
	Value T
	Err   error
}

type JobStatus struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"` // "idle", "running", "success", "failed"
	Message   string    `json:"message"`
	StartTime time.Time `json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`
}

// Runner runs one task at a time on a background goroutine.
type Runner[T any] struct {
	mu      sync.Mutex
	name    string
	task    Task[T]
	status  JobStatus
	running bool
}

func NewRunner[T any](name string, task Task[T]) *Runner[T] {
	return &Runner[T]{
		name:   name,
		task:   task,
		status: JobStatus{Name: name, Status: "idle"},
	}
}

// Run starts the task in a new goroutine. The returned channel receives
// exactly one Outcome and is never closed.
func (r *Runner[T]) Run(arg string) (<-chan Outcome[T], error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, r.name)
	}
	r.running = true
	r.status.Status = "running"
	r.status.StartTime = time.Now()
	r.status.EndTime = time.Time{}
	r.status.Message = "Job started..."
	r.mu.Unlock()

	// Buffered so the goroutine can finish even if nobody reads.
	result := make(chan Outcome[T], 1)

	log.Printf("Starting job: %s (%s)", r.name, arg)
	go func() {
		var out Outcome[T]
		defer func() {
			// Ensure we always update the status and unlock the runner
			if rec := recover(); rec != nil {
				log.Printf("Job '%s' panicked: %v", r.name, rec)
				out = Outcome[T]{Err: fmt.Errorf("job %s panicked: %v", r.name, rec)}
			}

			r.mu.Lock()
			r.status.EndTime = time.Now()
			if out.Err != nil {
				r.status.Status = "failed"
				r.status.Message = out.Err.Error()
			} else {
				r.status.Status = "success"
				r.status.Message = "Job completed successfully."
			}
			r.running = false
			r.mu.Unlock()

			log.Printf("Finished job: %s", r.name)
			result <- out
		}()

		out.Value, out.Err = r.task(arg)
	}()
	return result, nil
}

// Status returns a snapshot of the runner's current status.
func (r *Runner[T]) Status() JobStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Running reports whether a run is in flight.
func (r *Runner[T]) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
