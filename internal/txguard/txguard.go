// Package txguard helps callers deal with world transactions whose lifetime
// they do not control. A transaction queued on a world that is closing never
// runs, and a *world.Tx kept past the end of its transaction function panics
// on use; the helpers here turn both conditions into boolean results.
package txguard

import "github.com/dm-vev/worldslice/world"

// ClosedPanicMessage is the message of the panic raised by a *world.Tx that
// is used after its transaction function returned.
const ClosedPanicMessage = "world.Tx: use of transaction after transaction finishes is not permitted"

// Exec queues fn on the transaction queue of w and waits for it to run. It
// reports false if the world was closed before fn could run: world.Exec
// closes the returned channel in that case without calling fn.
func Exec(w *world.World, fn world.ExecFunc) bool {
	ran := false
	<-w.Exec(func(tx *world.Tx) {
		fn(tx)
		ran = true
	})
	return ran
}

// ExecValue queues fn on the transaction queue of w, waits for it to run and
// returns its result. It reports false if the world was closed before fn
// could run.
func ExecValue[T any](w *world.World, fn func(tx *world.Tx) T) (value T, ok bool) {
	ok = Exec(w, func(tx *world.Tx) {
		value = fn(tx)
	})
	return
}

// Recover calls fn and reports whether it completed. It returns false if fn
// panicked because the transaction of tx had already finished. Any other
// panic is propagated.
func Recover(tx *world.Tx, fn func()) (ok bool) {
	if tx == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			if msg, str := r.(string); str && msg == ClosedPanicMessage {
				ok = false
				return
			}
			panic(r)
		}
	}()
	fn()
	return true
}
