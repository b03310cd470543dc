package nmf

import "testing"

func TestFactorizeNonNegative(t *testing.T) {
	v := Matrix{
		{1, 0, 2, 0},
		{0, 3, 0, 1},
		{4, 0, 1, 0},
	}
	res := Factorize(v, 2, 42, 50, DefaultTolerance)
	for _, row := range res.W {
		for _, x := range row {
			if x < 0 {
				t.Fatalf("W has negative entry: %v", res.W)
			}
		}
	}
	for _, row := range res.H {
		for _, x := range row {
			if x < 0 {
				t.Fatalf("H has negative entry: %v", res.H)
			}
		}
	}
}

func TestFactorizeDeterministic(t *testing.T) {
	v := Matrix{
		{1, 2, 0},
		{0, 1, 3},
	}
	a := Factorize(v, 2, 7, 30, DefaultTolerance)
	b := Factorize(v, 2, 7, 30, DefaultTolerance)
	for i := range a.W {
		for j := range a.W[i] {
			if a.W[i][j] != b.W[i][j] {
				t.Fatalf("non-deterministic W at (%d,%d): %f vs %f", i, j, a.W[i][j], b.W[i][j])
			}
		}
	}
}

func TestFactorizeEmptyInput(t *testing.T) {
	res := Factorize(nil, 3, 1, 10, DefaultTolerance)
	if res.W != nil || res.H != nil || res.Iterations != 0 {
		t.Fatalf("expected zero result for empty input, got %+v", res)
	}
}

func TestTopTermsOrderingAndTieBreak(t *testing.T) {
	h := []float64{0.5, 0.9, 0.9, 0.1}
	top := TopTerms(h, 3)
	want := []int{1, 2, 0}
	if len(top) != len(want) {
		t.Fatalf("got %v, want %v", top, want)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Fatalf("got %v, want %v", top, want)
		}
	}
}

func TestReducesReconstructionError(t *testing.T) {
	v := Matrix{
		{5, 0, 3, 0},
		{0, 4, 0, 2},
		{3, 0, 5, 0},
		{0, 2, 0, 4},
	}
	oneIter := Factorize(v, 2, 1, 1, 1e-12)
	manyIter := Factorize(v, 2, 1, 200, 1e-12)
	e1 := frobeniusError(v, oneIter.W, oneIter.H)
	e2 := frobeniusError(v, manyIter.W, manyIter.H)
	if e2 > e1 {
		t.Fatalf("expected more iterations to reduce error: %f (1 iter) vs %f (200 iter)", e1, e2)
	}
}
