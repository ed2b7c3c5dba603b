// Package sched runs a simulation in daemon mode: a cron schedule fires
// once per real interval and advances the scripted scenario by one
// simulated day.
package sched

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// StepFunc advances the simulation one day. It reports whether more days
// remain; returning false stops the ticker.
type StepFunc func() (more bool, err error)

// Ticker drives a StepFunc on a cron schedule.
type Ticker struct {
	cron *cron.Cron
	step StepFunc
	done chan struct{}
	once sync.Once
}

// New registers the step function on the given cron spec (with seconds
// field, as in "0 0 9 * * *").
func New(cronSpec string, step StepFunc) (*Ticker, error) {
	t := &Ticker{
		cron: cron.New(cron.WithSeconds()),
		step: step,
		done: make(chan struct{}),
	}

	if _, err := t.cron.AddFunc(cronSpec, t.tick); err != nil {
		return nil, fmt.Errorf("register day tick: %w", err)
	}
	return t, nil
}

func (t *Ticker) tick() {
	more, err := t.step()
	if err != nil {
		log.Printf("[ERROR] day tick: %v", err)
		t.Stop()
		return
	}
	if !more {
		log.Println("[INFO] scenario finished")
		t.Stop()
	}
}

// Start starts the cron scheduler.
func (t *Ticker) Start() {
	t.cron.Start()
	log.Println("[INFO] day ticker started")
}

// Stop stops the cron scheduler and releases Wait.
func (t *Ticker) Stop() {
	t.cron.Stop()
	t.once.Do(func() { close(t.done) })
}

// Wait blocks until the ticker has been stopped.
func (t *Ticker) Wait() {
	<-t.done
}
