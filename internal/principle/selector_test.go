package principle

import (
	"math"
	"sort"
	"testing"

	"github.com/trizworks/triz-engine/internal/knowledge"
)

func newSelector(t *testing.T) *Selector {
	t.Helper()
	base, err := knowledge.Default()
	if err != nil {
		t.Fatalf("knowledge.Default: %v", err)
	}
	return NewSelector(base)
}

func TestSelectSpeedVersusEnergy(t *testing.T) {
	s := newSelector(t)
	result := s.Select(9, 19)

	if result.MatrixSource != SourceMatrix {
		t.Fatalf("source: got %q, want %q", result.MatrixSource, SourceMatrix)
	}
	got := map[int]bool{}
	for _, r := range result.Recommendations {
		got[r.PrincipleID] = true
	}
	for _, want := range []int{15, 2, 35, 18} {
		if !got[want] {
			t.Fatalf("missing principle %d in %v", want, got)
		}
	}
}

func TestSelectSpeedScoring(t *testing.T) {
	s := newSelector(t)
	result := s.Select(9, 19)

	scores := map[int]float64{}
	for _, r := range result.Recommendations {
		scores[r.PrincipleID] = r.RelevanceScore
	}
	// 0.8 matrix base, +0.1 universal, +0.15 speed boost, capped at 1.0.
	cases := map[int]float64{15: 1.0, 18: 0.95, 35: 0.9, 2: 0.8}
	for pid, want := range cases {
		if math.Abs(scores[pid]-want) > 1e-9 {
			t.Fatalf("principle %d: got %v, want %v", pid, scores[pid], want)
		}
	}
}

func TestHeuristicFallbackPhysicalPair(t *testing.T) {
	s := newSelector(t)
	// Parameters 4 and 6 have no matrix entry and are both physical.
	result := s.Select(4, 6)
	if result.MatrixSource != SourceHeuristic {
		t.Fatalf("source: got %q", result.MatrixSource)
	}
	var ids []int
	for _, r := range result.Recommendations {
		ids = append(ids, r.PrincipleID)
	}
	sort.Ints(ids)
	want := []int{1, 2, 3, 7}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("heuristic principles: got %v, want %v", ids, want)
		}
	}
}

func TestHeuristicFallbackTechnicalPair(t *testing.T) {
	s := newSelector(t)
	// Parameter 33 is not in the physical set; dynamics principles apply.
	result := s.Select(33, 38)
	if result.MatrixSource != SourceHeuristic {
		t.Fatalf("source: got %q", result.MatrixSource)
	}
	got := map[int]bool{}
	for _, r := range result.Recommendations {
		got[r.PrincipleID] = true
	}
	for _, want := range []int{15, 35, 36, 16} {
		if !got[want] {
			t.Fatalf("missing dynamics principle %d", want)
		}
	}
}

func TestPrimarySupportingPartition(t *testing.T) {
	s := newSelector(t)
	for _, pair := range [][2]int{{9, 19}, {4, 6}, {33, 38}, {1, 14}} {
		result := s.Select(pair[0], pair[1])
		if len(result.Primary)+len(result.Supporting) != len(result.Recommendations) {
			t.Fatalf("partition incomplete for %v", pair)
		}
		for _, r := range result.Primary {
			if r.RelevanceScore < 0.7 {
				t.Fatalf("primary below threshold: %v", r.RelevanceScore)
			}
		}
		for _, r := range result.Supporting {
			if r.RelevanceScore >= 0.7 {
				t.Fatalf("supporting above threshold: %v", r.RelevanceScore)
			}
		}
	}
}

func TestRelevanceScoreBounds(t *testing.T) {
	s := newSelector(t)
	for _, pair := range [][2]int{{9, 19}, {9, 28}, {4, 6}, {33, 38}} {
		for _, r := range s.Select(pair[0], pair[1]).Recommendations {
			if r.RelevanceScore < 0 || r.RelevanceScore > 1 {
				t.Fatalf("score out of bounds: %v", r.RelevanceScore)
			}
		}
	}
}

func TestSelectIsDeterministic(t *testing.T) {
	s := newSelector(t)
	a := s.Select(9, 19)
	b := s.Select(9, 19)
	if len(a.Recommendations) != len(b.Recommendations) {
		t.Fatal("non-deterministic recommendation count")
	}
	for i := range a.Recommendations {
		if a.Recommendations[i].PrincipleID != b.Recommendations[i].PrincipleID ||
			a.Recommendations[i].RelevanceScore != b.Recommendations[i].RelevanceScore {
			t.Fatalf("non-deterministic at %d", i)
		}
	}
}

func TestExamplesLimitedToThree(t *testing.T) {
	s := newSelector(t)
	for _, r := range s.Select(9, 19).Recommendations {
		if len(r.Examples) > 3 {
			t.Fatalf("principle %d carries %d examples", r.PrincipleID, len(r.Examples))
		}
	}
}
