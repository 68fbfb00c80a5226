package fetch

import (
	"errors"
	"testing"
)

type recs struct{ n int }
type kpis struct{ total int }

func newTest() *Orchestrator[recs, kpis] {
	return New[recs, kpis](nil)
}

func TestRapidMutationsIssueOneEpoch(t *testing.T) {
	// Five mutations inside one debounce window: only the last armed
	// timer is live, so exactly one epoch is issued.
	o := newTest()
	var seqs []uint64
	for i := 0; i < 5; i++ {
		seqs = append(seqs, o.NoteMutation())
	}
	if o.State() != StatePending {
		t.Fatalf("expected pending, got %v", o.State())
	}

	issued := 0
	for _, seq := range seqs {
		if _, ok := o.TimerFired(seq); ok {
			issued++
		}
	}
	if issued != 1 {
		t.Errorf("expected exactly 1 issued epoch, got %d", issued)
	}
	if o.Epoch() != 1 {
		t.Errorf("expected epoch 1, got %d", o.Epoch())
	}
	if o.State() != StateInFlight {
		t.Errorf("expected in-flight, got %v", o.State())
	}
}

func TestPairAppliesOnlyWhenBothArrive(t *testing.T) {
	o := newTest()
	e, ok := o.TimerFired(o.NoteMutation())
	if !ok {
		t.Fatal("timer should fire")
	}

	if pair := o.RecordsArrived(e, recs{n: 10}); pair != nil {
		t.Error("records alone must not settle the epoch")
	}
	pair := o.KPIsArrived(e, kpis{total: 10})
	if pair == nil {
		t.Fatal("both halves arrived; pair should settle")
	}
	if pair.Epoch != e || pair.Records.n != 10 || pair.KPIs.total != 10 {
		t.Errorf("settled pair wrong: %+v", pair)
	}
	if o.State() != StateIdle {
		t.Errorf("expected idle after settle, got %v", o.State())
	}
}

func TestEitherOrderCompletion(t *testing.T) {
	o := newTest()
	e, _ := o.TimerFired(o.NoteMutation())

	if pair := o.KPIsArrived(e, kpis{total: 3}); pair != nil {
		t.Error("kpis alone must not settle the epoch")
	}
	if pair := o.RecordsArrived(e, recs{n: 3}); pair == nil {
		t.Error("pair should settle regardless of arrival order")
	}
}

func TestStaleEpochDiscardedWhileNewerInFlight(t *testing.T) {
	// Epoch 2's halves complete while epoch 3 is already in flight:
	// they are discarded, never rendered, and the machine keeps
	// waiting for epoch 3.
	o := newTest()
	e2, _ := o.TimerFired(o.NoteMutation())

	e3, _ := o.TimerFired(o.NoteMutation())
	if e3 != e2+1 {
		t.Fatalf("expected monotonic epochs, got %d then %d", e2, e3)
	}

	if pair := o.RecordsArrived(e2, recs{n: 2}); pair != nil {
		t.Error("stale records applied")
	}
	if pair := o.KPIsArrived(e2, kpis{total: 2}); pair != nil {
		t.Error("stale complete pair applied")
	}
	if o.State() != StateInFlight {
		t.Errorf("machine must remain in-flight for epoch 3, got %v", o.State())
	}

	pair := o.RecordsArrived(e3, recs{n: 3})
	if pair != nil {
		t.Fatal("epoch 3 incomplete")
	}
	pair = o.KPIsArrived(e3, kpis{total: 3})
	if pair == nil || pair.Epoch != e3 {
		t.Fatalf("epoch 3 should settle, got %+v", pair)
	}
	if o.LastSettled() != e3 {
		t.Errorf("last settled = %d, want %d", o.LastSettled(), e3)
	}
}

func TestAtMostOneEpochApplied(t *testing.T) {
	// For a burst of N debounce firings, results are applied from at
	// most one epoch: the highest whose pair fully arrived.
	o := newTest()
	var epochs []Epoch
	for i := 0; i < 4; i++ {
		e, ok := o.TimerFired(o.NoteMutation())
		if !ok {
			t.Fatal("timer should fire")
		}
		epochs = append(epochs, e)
	}

	applied := 0
	var appliedEpoch Epoch
	for _, e := range epochs {
		if pair := o.RecordsArrived(e, recs{n: int(e)}); pair != nil {
			applied++
			appliedEpoch = pair.Epoch
		}
		if pair := o.KPIsArrived(e, kpis{total: int(e)}); pair != nil {
			applied++
			appliedEpoch = pair.Epoch
		}
	}
	if applied != 1 {
		t.Fatalf("expected exactly one applied epoch, got %d", applied)
	}
	if appliedEpoch != epochs[len(epochs)-1] {
		t.Errorf("applied epoch %d, want highest %d", appliedEpoch, epochs[len(epochs)-1])
	}
}

func TestFailureDropsPartialPairAndReturnsToIdle(t *testing.T) {
	o := newTest()
	e, _ := o.TimerFired(o.NoteMutation())

	if pair := o.RecordsArrived(e, recs{n: 1}); pair != nil {
		t.Fatal("incomplete pair applied")
	}
	if !o.Fail(e, errors.New("kpis: HTTP 500")) {
		t.Error("current-epoch failure must be surfaced")
	}
	if o.State() != StateIdle {
		t.Errorf("expected idle after failure, got %v", o.State())
	}

	// The held records half must not leak into a later settle.
	e2, _ := o.TimerFired(o.NoteMutation())
	if pair := o.KPIsArrived(e2, kpis{total: 2}); pair != nil {
		t.Error("new epoch settled from a stale half")
	}
}

func TestStaleFailureNotSurfaced(t *testing.T) {
	o := newTest()
	e1, _ := o.TimerFired(o.NoteMutation())
	o.TimerFired(o.NoteMutation()) // epoch 2 supersedes 1

	if o.Fail(e1, errors.New("late timeout")) {
		t.Error("failure of a superseded epoch must be silent")
	}
	if o.State() != StateInFlight {
		t.Errorf("expected in-flight for epoch 2, got %v", o.State())
	}
}

func TestMutationWhileInFlightArmsNewCycle(t *testing.T) {
	o := newTest()
	o.TimerFired(o.NoteMutation())
	if o.State() != StateInFlight {
		t.Fatal("setup: expected in-flight")
	}

	seq := o.NoteMutation()
	if o.State() != StatePending {
		t.Errorf("mutation while in flight should arm the debounce, got %v", o.State())
	}
	e, ok := o.TimerFired(seq)
	if !ok || e != 2 {
		t.Errorf("expected epoch 2 issued, got %d (%v)", e, ok)
	}
}

func TestDeadTimerAfterNewMutation(t *testing.T) {
	o := newTest()
	old := o.NoteMutation()
	o.NoteMutation()

	if _, ok := o.TimerFired(old); ok {
		t.Error("superseded timer must be dead on arrival")
	}
	if o.State() != StatePending {
		t.Errorf("expected still pending, got %v", o.State())
	}
}
