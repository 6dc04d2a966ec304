package actions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Request is one activation of an action control.
type Request struct {
	Key Key
	// Call performs the single backend call of the action.
	Call func(ctx context.Context) error
	// OnComplete runs after a successful call, typically to refetch the list.
	OnComplete func()
	// OnError runs after a failed call.
	OnError func(error)
}

// Outcome reports what happened to a Request.
type Outcome struct {
	Key      Key
	Err      error
	Refused  bool // the tracker refused the activation; no call was made
	Detached bool // the caller went away before the call returned
	Elapsed  time.Duration
}

// OK reports a successful call.
func (o Outcome) OK() bool { return o.Err == nil && !o.Refused }

// Dispatcher runs action requests through a Tracker.
type Dispatcher struct {
	tracker *Tracker
	logger  *log.Logger
}

// NewDispatcher builds a dispatcher. A nil logger uses the standard logger.
func NewDispatcher(t *Tracker, logger *log.Logger) *Dispatcher {
	if t == nil {
		t = NewTracker()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{tracker: t, logger: logger}
}

// Tracker returns the dispatcher's tracker.
func (d *Dispatcher) Tracker() *Tracker { return d.tracker }

// call releases the tracker entry if req.Call panics, then re-panics.
func (d *Dispatcher) call(ctx context.Context, req Request) error {
	defer func() {
		if p := recover(); p != nil {
			d.tracker.Finish(req.Key, false)
			d.logger.Printf("action=%s family=%s id=%d panicked err=%q", req.Key.Action, req.Key.Family, req.Key.ID, fmt.Sprint(p))
			panic(p)
		}
	}()
	return req.Call(ctx)
}

// Run makes exactly one call for an accepted request. The tracker entry is
// always released; callbacks are skipped when ctx is already done by the
// time the call returns.
func (d *Dispatcher) Run(ctx context.Context, req Request) Outcome {
	out := Outcome{Key: req.Key}
	if req.Call == nil {
		out.Err = errors.New("action has no call")
		out.Refused = true
		return out
	}
	if err := d.tracker.Begin(req.Key); err != nil {
		out.Err = err
		out.Refused = true
		d.logger.Printf("action=%s family=%s id=%d refused err=%q", req.Key.Action, req.Key.Family, req.Key.ID, err)
		return out
	}

	start := time.Now()
	err := d.call(ctx, req)
	out.Elapsed = time.Since(start)
	out.Err = err
	d.tracker.Finish(req.Key, err == nil)

	if ctx.Err() != nil {
		out.Detached = true
		d.logger.Printf("action=%s family=%s id=%d detached ok=%t dur=%s", req.Key.Action, req.Key.Family, req.Key.ID, err == nil, out.Elapsed)
		return out
	}
	if err != nil {
		d.logger.Printf("action=%s family=%s id=%d failed dur=%s err=%q", req.Key.Action, req.Key.Family, req.Key.ID, out.Elapsed, err)
		if req.OnError != nil {
			req.OnError(err)
		}
		return out
	}
	d.logger.Printf("action=%s family=%s id=%d ok dur=%s", req.Key.Action, req.Key.Family, req.Key.ID, out.Elapsed)
	if req.OnComplete != nil {
		req.OnComplete()
	}
	return out
}
