// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package job runs a task on a fixed interval. The client uses it to repeat a lookup in
// watch mode.
package job

import (
	"context"
	"time"
)

// Job represents a scheduled task that runs at a fixed interval
// and never overlaps with itself (singleton mode).
type Job struct {
	interval  time.Duration
	task      func(context.Context)
	immediate bool
}

type Option func(*Job)

// WithImmediateRun runs the task once when the job starts instead of waiting for the first tick.
func WithImmediateRun() Option {
	return func(j *Job) {
		j.immediate = true
	}
}

// New creates a new Job with the given interval and task.
func New(interval time.Duration, task func(context.Context), opts ...Option) *Job {
	job := &Job{
		interval: interval,
		task:     task,
	}
	for _, opt := range opts {
		opt(job)
	}
	return job
}

// Start begins executing the job on the given context. It returns when the context is cancelled.
// If a tick fires while a previous run is still executing, that tick is skipped.
func (j *Job) Start(ctx context.Context) {
	if j.task == nil || j.interval <= 0 {
		return
	}

	// 1-slot semaphore: a run is in progress
	sem := make(chan struct{}, 1)
	run := func() {
		select {
		case sem <- struct{}{}:
			go func() {
				defer func() { <-sem }()
				runCtx, cancel := context.WithCancel(ctx)
				defer cancel()
				j.task(runCtx)
			}()
		default:
		}
	}

	if j.immediate {
		run()
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
