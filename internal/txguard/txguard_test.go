package txguard_test

import (
	"testing"

	"github.com/dm-vev/worldslice/internal/txguard"
	"github.com/dm-vev/worldslice/world"
)

func TestExec(t *testing.T) {
	w := world.Config{TickInterval: -1}.New()

	if !txguard.Exec(w, func(*world.Tx) {}) {
		t.Fatalf("Exec on an open world reported the transaction did not run")
	}
	v, ok := txguard.ExecValue(w, func(tx *world.Tx) int64 {
		return tx.World().CurrentTick()
	})
	if !ok || v != 0 {
		t.Fatalf("ExecValue on an open world = %v, %v", v, ok)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close world: %v", err)
	}
	if txguard.Exec(w, func(*world.Tx) {}) {
		t.Fatalf("Exec on a closed world reported the transaction ran")
	}
	if _, ok := txguard.ExecValue(w, func(*world.Tx) int { return 1 }); ok {
		t.Fatalf("ExecValue on a closed world reported the transaction ran")
	}
}

func TestRecoverPropagatesOtherPanics(t *testing.T) {
	w := world.Config{TickInterval: -1}.New()
	defer w.Close()

	var leaked *world.Tx
	<-w.Exec(func(tx *world.Tx) {
		leaked = tx
	})

	defer func() {
		if recover() == nil {
			t.Fatalf("unrelated panic was swallowed")
		}
	}()
	txguard.Recover(leaked, func() {
		panic("unrelated")
	})
}
