package knowledge

import (
	"reflect"
	"testing"
)

func mustDefault(t *testing.T) *Base {
	t.Helper()
	b, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return b
}

func TestTableCounts(t *testing.T) {
	b := mustDefault(t)
	if got := len(b.Parameters()); got != ParameterCount {
		t.Fatalf("parameters: got %d, want %d", got, ParameterCount)
	}
	if got := len(b.Principles()); got != PrincipleCount {
		t.Fatalf("principles: got %d, want %d", got, PrincipleCount)
	}
	if got := len(b.Effects()); got == 0 {
		t.Fatal("effects catalog is empty")
	}
}

func TestMatrixSymmetry(t *testing.T) {
	b := mustDefault(t)
	for _, key := range b.MatrixPairs() {
		forward := b.PrinciplesFor(key.Improving, key.Worsening)
		reverse := b.PrinciplesFor(key.Worsening, key.Improving)
		if !reflect.DeepEqual(forward, reverse) {
			t.Fatalf("asymmetric matrix at (%d,%d): %v vs %v", key.Improving, key.Worsening, forward, reverse)
		}
	}
}

func TestPrinciplesForKnownPair(t *testing.T) {
	b := mustDefault(t)
	got := b.PrinciplesFor(9, 19)
	want := []int{15, 2, 35, 18}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PrinciplesFor(9,19): got %v, want %v", got, want)
	}
}

func TestPrinciplesForAbsentPairIsNil(t *testing.T) {
	b := mustDefault(t)
	if got := b.PrinciplesFor(4, 6); got != nil {
		t.Fatalf("absent pair: got %v, want nil", got)
	}
}

func TestSearchParameters(t *testing.T) {
	b := mustDefault(t)
	hits := b.SearchParameters("SPEED")
	if len(hits) == 0 {
		t.Fatal("no hits for speed")
	}
	if hits[0].ID != 9 {
		t.Fatalf("first hit: got parameter %d, want 9", hits[0].ID)
	}
	// Table order, not relevance order.
	for i := 1; i < len(hits); i++ {
		if hits[i].ID <= hits[i-1].ID {
			t.Fatalf("hits out of table order: %v then %v", hits[i-1].ID, hits[i].ID)
		}
	}
}

func TestSearchPrinciples(t *testing.T) {
	b := mustDefault(t)
	hits := b.SearchPrinciples("segmentation")
	if len(hits) == 0 || hits[0].ID != 1 {
		t.Fatalf("segmentation search: got %+v", hits)
	}
}

func TestValidateDefaultBase(t *testing.T) {
	b := mustDefault(t)
	report := b.Validate()
	if !report.OK {
		t.Fatalf("default base failed validation: %v", report.Findings)
	}
	if !b.Valid() {
		t.Fatal("Valid() disagrees with Validate().OK")
	}
}

func TestValidateMatrixEntriesMatchSourceRows(t *testing.T) {
	b := mustDefault(t)
	report := b.Validate()

	// The in-memory map carries both orderings of every row; the
	// diagnostic reports each unordered pair once.
	mirrored := len(b.MatrixPairs())
	if report.MatrixEntries*2 != mirrored {
		t.Fatalf("matrix entries = %d with %d mirrored cells, want half", report.MatrixEntries, mirrored)
	}

	small := &Base{
		parameters: b.parameters,
		principles: b.principles,
		matrix: map[PairKey][]int{
			{9, 19}: {15, 35},
			{19, 9}: {15, 35},
		},
	}
	if got := small.Validate().MatrixEntries; got != 1 {
		t.Fatalf("matrix entries = %d, want 1", got)
	}
}

func TestValidateFlagsUnknownIDs(t *testing.T) {
	b := mustDefault(t)
	broken := &Base{
		parameters: b.parameters,
		principles: b.principles,
		matrix: map[PairKey][]int{
			{1, 99}:  {1},
			{99, 1}:  {1},
			{9, 19}:  {200},
			{19, 9}:  {200},
		},
		effects: []Effect{{ID: "ghost", RelatedPrinciples: []int{300}}},
	}
	report := broken.Validate()
	if report.OK {
		t.Fatal("expected validation findings")
	}
	if len(report.Findings) < 3 {
		t.Fatalf("expected findings for unknown parameter, principle and effect principle, got %v", report.Findings)
	}
}

func TestLoadDirMissingIsConfigurationError(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Fatal("expected error for empty knowledge dir")
	}
}
