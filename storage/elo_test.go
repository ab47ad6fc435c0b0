package storage

import (
	"testing"
)

func TestComputeEloUpdates_WinLoss(t *testing.T) {
	// Same rating (1000 vs 1000), player 0 wins -> player 0 gains, player 1 loses
	newR0, newR1 := computeEloUpdates(1000, 1000, 0)
	if newR0 <= 1000 {
		t.Errorf("winner (0) should gain: got R0=%d", newR0)
	}
	if newR1 >= 1000 {
		t.Errorf("loser (1) should lose: got R1=%d", newR1)
	}
	// Symmetric: player 1 wins
	newR0, newR1 = computeEloUpdates(1000, 1000, 1)
	if newR0 >= 1000 {
		t.Errorf("loser (0) should lose: got R0=%d", newR0)
	}
	if newR1 <= 1000 {
		t.Errorf("winner (1) should gain: got R1=%d", newR1)
	}
}

func TestComputeEloUpdates_UpsetGainsMore(t *testing.T) {
	// Weaker (800) beats stronger (1200): the upset pays more than a win
	// between equals.
	upsetR0, _ := computeEloUpdates(800, 1200, 0)
	evenR0, _ := computeEloUpdates(1000, 1000, 0)
	if upsetR0-800 <= evenR0-1000 {
		t.Errorf("upset should gain more: upset delta %d, even delta %d", upsetR0-800, evenR0-1000)
	}
}

func TestComputeEloUpdates_FloorAtZero(t *testing.T) {
	_, newR1 := computeEloUpdates(1000, 5, 0)
	if newR1 < 0 {
		t.Errorf("rating must not go negative, got %d", newR1)
	}
}
