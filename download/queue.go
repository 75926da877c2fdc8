// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package download

import (
	"log/slog"
	"sync"

	"github.com/UNO-SOFT/recsheet"
)

var (
	_ = recsheet.Executor((*Queue)(nil))
	_ = recsheet.Executor(Inline{})
)

// Queue runs posted tasks in order, one at a time, on its own goroutine.
type Queue struct {
	logger *slog.Logger
	tasks  chan func()
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// NewQueue starts a Queue with room for size pending tasks.
func NewQueue(size int, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{logger: logger, tasks: make(chan func(), size), done: make(chan struct{})}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for task := range q.tasks {
		q.do(task)
	}
}

func (q *Queue) do(task func()) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("task panicked", "panic", r)
		}
	}()
	task()
}

// Post schedules the task. After Close, the task runs inline.
func (q *Queue) Post(task func()) {
	q.mu.RLock()
	if !q.closed {
		q.tasks <- task
		q.mu.RUnlock()
		return
	}
	q.mu.RUnlock()
	q.do(task)
}

// Close waits for the pending tasks to finish.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()
	<-q.done
	return nil
}

// Inline runs the tasks immediately.
type Inline struct{}

func (Inline) Post(task func()) { task() }
