package model

import "testing"

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		name   string
		points int64
		want   string
	}{
		{"zero", 0, "seed"},
		{"just below root", 99, "seed"},
		{"exactly root", 100, "root"},
		{"mid bloom", 750, "bloom"},
		{"exactly divine", 1000, "divine"},
		{"beyond top", 50000, "divine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierForPoints(tt.points); got.ID != tt.want {
				t.Fatalf("got=%s want=%s", got.ID, tt.want)
			}
		})
	}
}

func TestNextTierForPoints(t *testing.T) {
	tests := []struct {
		name   string
		points int64
		want   string
	}{
		{"zero", 0, "root"},
		{"exactly root", 100, "bloom"},
		{"just below divine", 999, "divine"},
		{"top tier", 1000, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextTierForPoints(tt.points)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("got=%s want=nil", got.ID)
				}
				return
			}
			if got == nil || got.ID != tt.want {
				t.Fatalf("got=%v want=%s", got, tt.want)
			}
		})
	}
}

func TestTierThresholdsAscending(t *testing.T) {
	for i := 1; i < len(Tiers); i++ {
		if Tiers[i].PointsRequired <= Tiers[i-1].PointsRequired {
			t.Fatalf("tier %s threshold not above %s", Tiers[i].ID, Tiers[i-1].ID)
		}
	}
}
