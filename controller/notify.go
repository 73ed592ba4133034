package controller

import (
	"log"
	"sync"
)

// Notifier receives the success and error toasts controllers emit after
// mutations. Presentation decides how to surface them.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type logNotifier struct{}

func (logNotifier) Success(msg string) { log.Printf("success: %s", msg) }
func (logNotifier) Error(msg string)   { log.Printf("error: %s", msg) }

// LogNotifier writes toasts to the standard logger.
func LogNotifier() Notifier {
	return logNotifier{}
}

// Recorder captures toasts for inspection; used in tests and anywhere
// toasts need to be replayed.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}
