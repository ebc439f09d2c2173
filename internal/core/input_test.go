package core

import "testing"

func TestIntentInboxLevels(t *testing.T) {
	var inbox IntentInbox

	inbox.SetRight(true)
	in := inbox.Sample()
	if !in.MoveRight || in.MoveLeft {
		t.Errorf("expected right held, got %+v", in)
	}

	// Levels persist across samples until key-up
	in = inbox.Sample()
	if !in.MoveRight {
		t.Error("right should still be held on the next tick")
	}

	inbox.SetRight(false)
	inbox.SetLeft(true)
	in = inbox.Sample()
	if in.MoveRight || !in.MoveLeft {
		t.Errorf("expected only left held, got %+v", in)
	}
}

func TestIntentInboxRestartEdge(t *testing.T) {
	var inbox IntentInbox

	inbox.PressRestart()
	inbox.PressRestart()

	if !inbox.Sample().Restart {
		t.Error("first sample after press should carry restart")
	}
	if inbox.Sample().Restart {
		t.Error("restart is edge-triggered and must be consumed by the first sample")
	}
}

func TestIntentInboxRelease(t *testing.T) {
	var inbox IntentInbox
	inbox.SetLeft(true)
	inbox.SetRight(true)
	inbox.PressRestart()

	inbox.Release()

	if in := inbox.Sample(); in != (Intent{}) {
		t.Errorf("Release should clear everything, got %+v", in)
	}
}
