package common

import (
	"testing"
	"time"
)

func TestIsFresh(t *testing.T) {
	now := time.Now()

	if !IsFresh(now, time.Minute) {
		t.Error("just-written timestamp should be fresh")
	}
	if IsFresh(now.Add(-2*time.Minute), time.Minute) {
		t.Error("timestamp older than TTL should be stale")
	}
	if IsFresh(time.Time{}, time.Minute) {
		t.Error("zero timestamp should never be fresh")
	}
}
