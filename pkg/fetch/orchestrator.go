// Package fetch centralizes the debounce/epoch bookkeeping for the
// paired records+KPI requests. The orchestrator is a synchronous state
// machine: the UI layer feeds it mutation, timer-expiry, and
// response-arrival events and acts on the returned decisions. Keeping
// it free of timers and goroutines makes the epoch-discarding behavior
// directly testable.
package fetch

import (
	"io"
	"log"
)

// State is the orchestrator's position in its cycle.
type State int

const (
	// StateIdle means no timer armed and nothing in flight.
	StateIdle State = iota
	// StatePending means the debounce timer is armed.
	StatePending
	// StateInFlight means an epoch's request pair has been issued and
	// at least one half is still outstanding.
	StateInFlight
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateInFlight:
		return "in-flight"
	}
	return "idle"
}

// Epoch tags one debounced fetch cycle. Monotonically increasing;
// results from a superseded epoch are discarded on arrival.
type Epoch uint64

// Pair holds both halves of a settled epoch. The projection is updated
// from a Pair only, never from a lone half, so the table and the KPIs
// always describe the same filter state.
type Pair[R, K any] struct {
	Epoch   Epoch
	Records R
	KPIs    K
}

type pending[R, K any] struct {
	records     R
	kpis        K
	haveRecords bool
	haveKPIs    bool
}

// Orchestrator tracks the debounce sequence, the current epoch, and the
// partially arrived response pair. Only the newest epoch's pair is
// retained: issuing a new epoch implicitly cancels interest in every
// prior one.
type Orchestrator[R, K any] struct {
	armed       bool
	timerSeq    uint64
	epoch       Epoch
	pend        *pending[R, K]
	lastSettled Epoch
	logger      *log.Logger
}

// New creates an orchestrator. A nil logger silences the stale-result
// diagnostics.
func New[R, K any](logger *log.Logger) *Orchestrator[R, K] {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Orchestrator[R, K]{logger: logger}
}

// State reports the current machine state.
func (o *Orchestrator[R, K]) State() State {
	switch {
	case o.armed:
		return StatePending
	case o.pend != nil:
		return StateInFlight
	default:
		return StateIdle
	}
}

// Epoch returns the most recently issued epoch.
func (o *Orchestrator[R, K]) Epoch() Epoch { return o.epoch }

// LastSettled returns the highest epoch whose pair was applied.
func (o *Orchestrator[R, K]) LastSettled() Epoch { return o.lastSettled }

// NoteMutation records a filter-affecting change and (re)arms the
// debounce. The returned sequence number must be carried by the timer
// event; earlier mutations' timers become dead on arrival, so only the
// last mutation inside the debounce window ever fires.
func (o *Orchestrator[R, K]) NoteMutation() uint64 {
	o.armed = true
	o.timerSeq++
	return o.timerSeq
}

// TimerFired handles a debounce timer expiry. It returns the new epoch
// and true when the timer is the live one; a superseded timer returns
// false and the caller does nothing. On true, the caller captures the
// current FilterState and issues the records and KPI requests tagged
// with the returned epoch.
func (o *Orchestrator[R, K]) TimerFired(seq uint64) (Epoch, bool) {
	if !o.armed || seq != o.timerSeq {
		return 0, false
	}
	o.armed = false
	o.epoch++
	o.pend = &pending[R, K]{}
	return o.epoch, true
}

// RecordsArrived delivers the records half of an epoch. The returned
// pair is non-nil only when this arrival completes the current epoch.
func (o *Orchestrator[R, K]) RecordsArrived(e Epoch, records R) *Pair[R, K] {
	if !o.current(e, "records") {
		return nil
	}
	o.pend.records = records
	o.pend.haveRecords = true
	return o.settleIfComplete(e)
}

// KPIsArrived delivers the KPI half of an epoch.
func (o *Orchestrator[R, K]) KPIsArrived(e Epoch, kpis K) *Pair[R, K] {
	if !o.current(e, "kpis") {
		return nil
	}
	o.pend.kpis = kpis
	o.pend.haveKPIs = true
	return o.settleIfComplete(e)
}

// Fail marks an epoch as failed. It returns true when the failure
// belongs to the current epoch and should be surfaced; the machine
// drops the partial pair and returns to idle so the next filter change
// can retry. Failures of superseded epochs are discarded like any other
// stale result.
func (o *Orchestrator[R, K]) Fail(e Epoch, err error) bool {
	if e != o.epoch || o.pend == nil {
		o.logger.Printf("fetch: discarding failure of stale epoch %d: %v", e, err)
		return false
	}
	o.pend = nil
	return true
}

func (o *Orchestrator[R, K]) current(e Epoch, half string) bool {
	if e != o.epoch || o.pend == nil {
		o.logger.Printf("fetch: discarding stale %s result (epoch %d, current %d)", half, e, o.epoch)
		return false
	}
	return true
}

func (o *Orchestrator[R, K]) settleIfComplete(e Epoch) *Pair[R, K] {
	if !o.pend.haveRecords || !o.pend.haveKPIs {
		return nil
	}
	pair := &Pair[R, K]{Epoch: e, Records: o.pend.records, KPIs: o.pend.kpis}
	o.pend = nil
	o.lastSettled = e
	return pair
}
