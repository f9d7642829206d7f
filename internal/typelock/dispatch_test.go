package typelock

import (
	"errors"
	"testing"
)

// fakeClassification builds a Classification with the given own-type
// counts on each source; content is irrelevant to Dispatch.
func fakeClassification(inputs, outputs, cellDeps int) Classification {
	return Classification{
		Inputs:   make([]Entry, inputs),
		Outputs:  make([]Entry, outputs),
		CellDeps: make([]Entry, cellDeps),
	}
}

func TestDispatchTable(t *testing.T) {
	const clientsCount = 3
	cases := []struct {
		name           string
		i, o, d        int
		want           Operation
		wantUnknownErr bool
	}{
		{"create", 0, 1 + clientsCount, 0, OpCreate, false},
		{"destroy", 1 + clientsCount, 0, 0, OpDestroy, false},
		{"update", 2, 2, 1, OpUpdate, false},
		{"reorg-min", 3, 3, 1, OpReorg, false},
		{"reorg-deep", 5, 5, 1, OpReorg, false},
		{"update-no-celldep", 2, 2, 0, 0, true},
		{"reorg-no-celldep", 3, 3, 0, 0, true},
		{"nonsense", 1, 1, 0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cl := fakeClassification(c.i, c.o, c.d)
			op, err := Dispatch(cl, clientsCount)
			if c.wantUnknownErr {
				if !errors.Is(err, ErrUnknownOperation) {
					t.Fatalf("Dispatch(%d,%d,%d) err = %v, want ErrUnknownOperation", c.i, c.o, c.d, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dispatch(%d,%d,%d) unexpected error: %v", c.i, c.o, c.d, err)
			}
			if op != c.want {
				t.Errorf("Dispatch(%d,%d,%d) = %v, want %v", c.i, c.o, c.d, op, c.want)
			}
		})
	}
}

// TestDispatchExclusivity sweeps small (I, O, D) triples and asserts the
// dispatch predicates never match more than one row at once.
func TestDispatchExclusivity(t *testing.T) {
	const clientsCount = 3
	const maxN = 8
	for i := 0; i <= maxN; i++ {
		for o := 0; o <= maxN; o++ {
			for d := 0; d <= 2; d++ {
				matches := 0
				if i == 0 && o == 1+clientsCount {
					matches++
				}
				if i == 1+clientsCount && o == 0 {
					matches++
				}
				if i == 2 && o == 2 && d >= 1 {
					matches++
				}
				if i >= 3 && o == i && d >= 1 {
					matches++
				}
				if matches > 1 {
					t.Fatalf("(I=%d,O=%d,D=%d) matches %d operations, want at most 1", i, o, d, matches)
				}
				cl := fakeClassification(i, o, d)
				op, err := Dispatch(cl, clientsCount)
				if matches == 0 {
					if !errors.Is(err, ErrUnknownOperation) {
						t.Errorf("(I=%d,O=%d,D=%d): want ErrUnknownOperation, got op=%v err=%v", i, o, d, op, err)
					}
				} else if err != nil {
					t.Errorf("(I=%d,O=%d,D=%d): want a resolved operation, got err=%v", i, o, d, err)
				}
			}
		}
	}
}
