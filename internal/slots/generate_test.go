package slots

import (
	"errors"
	"fmt"
	"testing"
)

func TestGenerateCoversDay(t *testing.T) {
	for _, g := range []int{5, 15, 30, 60, 120, 1440} {
		t.Run(fmt.Sprintf("%dmin", g), func(t *testing.T) {
			got, err := Generate("2024-08-05", g)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(got) != 1440/g {
				t.Fatalf("Generate() returned %d slots, want %d", len(got), 1440/g)
			}
			if got[0].Start != "00:00" {
				t.Errorf("first slot starts at %s, want 00:00", got[0].Start)
			}
			if got[len(got)-1].End != "00:00" {
				t.Errorf("last slot ends at %s, want 00:00", got[len(got)-1].End)
			}
			for i, s := range got {
				if s.Date != "2024-08-05" {
					t.Errorf("slot %d date = %s", i, s.Date)
				}
				if s.Truncated || s.IsOverlap || s.IsPast {
					t.Errorf("slot %d has flags set: %+v", i, s)
				}
				if i > 0 && got[i-1].End != s.Start {
					t.Errorf("slot %d starts at %s, previous ends at %s", i, s.Start, got[i-1].End)
				}
			}
		})
	}
}

func TestGenerateUnevenGranularity(t *testing.T) {
	got, err := Generate("2024-08-05", 50)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(got) != 29 {
		t.Fatalf("Generate() returned %d slots, want 29", len(got))
	}
	last := got[len(got)-1]
	if last.Start != "23:20" || last.End != "00:00" || !last.Truncated {
		t.Errorf("last slot = %+v, want truncated 23:20-00:00", last)
	}
	for _, s := range got[:len(got)-1] {
		if s.Truncated {
			t.Errorf("slot %s-%s unexpectedly truncated", s.Start, s.End)
		}
	}
}

func TestGenerateInvalid(t *testing.T) {
	for _, g := range []int{0, -30, 1441} {
		if _, err := Generate("2024-08-05", g); !errors.Is(err, ErrInvalidGranularity) {
			t.Errorf("Generate(g=%d) error = %v, want ErrInvalidGranularity", g, err)
		}
	}
	if _, err := Generate("2024/08/05", 30); err == nil {
		t.Error("Generate() with malformed date should fail")
	}
}

func TestDividesDay(t *testing.T) {
	tests := map[int]bool{30: true, 45: true, 50: false, 7: false, 1440: true, 0: false}
	for g, want := range tests {
		if got := DividesDay(g); got != want {
			t.Errorf("DividesDay(%d) = %v, want %v", g, got, want)
		}
	}
}
