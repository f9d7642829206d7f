package typelock

import (
	"reflect"
	"testing"
)

func TestNextID(t *testing.T) {
	cases := []struct {
		current, count, want uint8
	}{
		{0, 5, 1},
		{4, 5, 0},
		{2, 3, 0},
	}
	for _, c := range cases {
		if got := NextID(c.current, c.count); got != c.want {
			t.Errorf("NextID(%d, %d) = %d, want %d", c.current, c.count, got, c.want)
		}
	}
}

func TestPrevID(t *testing.T) {
	cases := []struct {
		current, count, want uint8
	}{
		{0, 5, 4},
		{4, 5, 3},
		{0, 3, 2},
	}
	for _, c := range cases {
		if got := PrevID(c.current, c.count); got != c.want {
			t.Errorf("PrevID(%d, %d) = %d, want %d", c.current, c.count, got, c.want)
		}
	}
}

func TestWalkBack(t *testing.T) {
	got := WalkBack(1, 3, 5)
	want := []uint8{1, 0, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WalkBack(1, 3, 5) = %v, want %v", got, want)
	}
}
