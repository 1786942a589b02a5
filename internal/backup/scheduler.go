// Package backup produces consistent point-in-time copies of the store
// on a timer, prunes old copies, and reports progress through events.
//
// The scheduler holds at most one backup in flight: a trigger arriving
// while a backup runs is silently dropped, never queued. Copy and prune
// work happens on a worker goroutine; notifications are delivered on a
// buffered channel drained by the single control-loop consumer, so
// downstream consumers stay single-threaded.
package backup

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"
)

// Options configures the scheduler. Values come straight from the
// backup section of the application configuration.
type Options struct {
	Enabled   bool
	Interval  time.Duration
	Dir       string
	Retention int
}

// Scheduler runs timer-driven backups of a store file.
type Scheduler struct {
	dbPath string
	opts   Options
	events chan Event

	// inflight caps concurrency to one backup; it guards nothing else.
	// Data consistency comes from the storage engine, not this lock.
	inflight sync.Mutex

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler for the store at dbPath.
func NewScheduler(dbPath string, opts Options) *Scheduler {
	return &Scheduler{
		dbPath: dbPath,
		opts:   opts,
		events: make(chan Event, 16),
	}
}

// Events returns the notification channel. A single consumer on the
// control loop should drain it.
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// Start begins the backup timer. It is a no-op when backups are
// disabled or the scheduler is already running.
func (s *Scheduler) Start() {
	if !s.opts.Enabled {
		log.Printf("Backups disabled via configuration")
		return
	}
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx)
	log.Printf("Backup timer started: every %s", s.opts.Interval)
}

// Stop halts the timer. An in-flight backup runs to completion and
// still delivers its notification.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.TriggerBackup()
		case <-ctx.Done():
			return
		}
	}
}

// TriggerBackup starts a backup unless one is already in flight or
// backups are disabled. It returns immediately either way; the result
// arrives later as a Finished or Failed event.
func (s *Scheduler) TriggerBackup() bool {
	if !s.opts.Enabled {
		return false
	}
	if !s.inflight.TryLock() {
		return false
	}
	s.publish(Event{Type: EventStarted})
	go s.runBackup()
	return true
}

func (s *Scheduler) runBackup() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Backup panic: %v", r)
			s.publish(Event{Type: EventFailed, Message: fmt.Sprint(r)})
		}
		s.inflight.Unlock()
	}()

	path, err := Snapshot(context.Background(), s.dbPath, s.opts.Dir)
	if err != nil {
		log.Printf("Backup failed: %v", err)
		s.publish(Event{Type: EventFailed, Message: err.Error()})
		return
	}

	pruned, err := Prune(s.opts.Dir, s.opts.Retention)
	if err != nil {
		log.Printf("Backup prune: %v", err)
	}

	log.Printf("Backup completed: %s (pruned: %d)", filepath.Base(path), len(pruned))
	s.publish(Event{Type: EventFinished, Path: path, Pruned: pruned})
}

// publish delivers an event without ever blocking the worker.
func (s *Scheduler) publish(ev Event) {
	select {
	case s.events <- ev:
	default:
		log.Printf("Backup event channel full, dropping %s", ev.Type)
	}
}
