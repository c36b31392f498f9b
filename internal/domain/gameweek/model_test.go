package gameweek

import "testing"

func TestStatusCompleted(t *testing.T) {
	cases := []struct {
		name   string
		status Status
		want   int
	}{
		{"in-progress gameweek does not count", Status{CurrentEvent: 5, CurrentEventFinished: false}, 4},
		{"finished gameweek counts", Status{CurrentEvent: 5, CurrentEventFinished: true}, 5},
		{"season start", Status{CurrentEvent: 1, CurrentEventFinished: false}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.status.Completed(); got != tc.want {
				t.Fatalf("completed: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestLivePointsFor(t *testing.T) {
	live := Live{Elements: map[string]LiveElement{
		"42": {Stats: LiveStats{TotalPoints: 9}},
	}}

	if got := live.PointsFor(42); got != 9 {
		t.Fatalf("points for known player: got=%d want=9", got)
	}
	if got := live.PointsFor(7); got != 0 {
		t.Fatalf("missing players score zero: got=%d", got)
	}
	if live.Has(7) {
		t.Fatalf("player 7 should be absent")
	}
}
