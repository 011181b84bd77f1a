package world

import "time"

// ticker implements the World tick loop.
type ticker struct {
	interval time.Duration
}

// tickLoop ticks the World at the configured interval until the World is
// closed. Every tick runs as a transaction so that it is ordered with all
// other world mutation.
func (t ticker) tickLoop(w *World) {
	tc := time.NewTicker(t.interval)
	defer tc.Stop()
	for {
		select {
		case <-tc.C:
			<-w.Exec(t.tick)
		case <-w.closing:
			w.running.Done()
			return
		}
	}
}

// tick advances the tick counter of the World.
func (t ticker) tick(tx *Tx) {
	w := tx.World()
	w.set.Lock()
	w.set.CurrentTick++
	w.set.Unlock()
}
