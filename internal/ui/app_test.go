package ui

import "testing"

func TestAppCloseQuitIsIdempotent(t *testing.T) {
	a := NewApp()

	// The signal goroutine and the Run cleanup can both reach closeQuit;
	// the second call must not panic on an already-closed channel.
	a.closeQuit()
	a.closeQuit()

	select {
	case <-a.quit:
	default:
		t.Error("Expected the quit channel to be closed")
	}
}
