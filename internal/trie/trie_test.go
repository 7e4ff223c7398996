package trie

import (
	"reflect"
	"sort"
	"testing"
)

func Test_roundTrip(t *testing.T) {
	tr := New[int]()
	tr.Insert("ACGT", 7)

	got := tr.Find("ACGT", true)
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("Find(ACGT, true) = %v, want [7]", got)
	}
}

func Test_insertPreservesOrder(t *testing.T) {
	tr := New[string]()
	tr.Insert("ACGT", "first")
	tr.Insert("ACGT", "second")

	got := tr.Find("ACGT", true)
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Find(ACGT, true) = %v, want %v", got, want)
	}
}

func Test_emptyKey(t *testing.T) {
	tr := New[int]()
	tr.Insert("", 1)
	tr.Insert("A", 2)

	got := tr.Find("", true)
	if !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Find(\"\", true) = %v, want [1]", got)
	}
}

func Test_exactRequiresFirstCharMatch(t *testing.T) {
	tr := New[int]()
	tr.Insert("ACGT", 1)

	if got := tr.Find("GCGT", false); len(got) != 0 {
		t.Fatalf("Find(GCGT, false) = %v, want empty: first char must match exactly", got)
	}
}

func Test_oneMismatchAfterFirstChar(t *testing.T) {
	tr := New[int]()
	tr.Insert("ACGT", 1)

	got := tr.Find("ATGT", false)
	if !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Find(ATGT, false) = %v, want [1]", got)
	}
}

func Test_exactOnlyRejectsMismatch(t *testing.T) {
	tr := New[int]()
	tr.Insert("ACGT", 1)

	if got := tr.Find("ATGT", true); len(got) != 0 {
		t.Fatalf("Find(ATGT, true) = %v, want empty", got)
	}
}

func Test_twoMismatchesRejected(t *testing.T) {
	tr := New[int]()
	tr.Insert("ACGT", 1)

	if got := tr.Find("ATTT", false); len(got) != 0 {
		t.Fatalf("Find(ATTT, false) = %v, want empty: two mismatches exceed the budget", got)
	}
}

func Test_findAggregatesAcrossPaths(t *testing.T) {
	tr := New[string]()
	tr.Insert("ACGT", "exact")
	tr.Insert("ACGA", "one-off")
	tr.Insert("ACTT", "another-one-off")
	tr.Insert("TCGT", "wrong-first-char")

	got := tr.Find("ACGT", false)
	sort.Strings(got)
	want := []string{"another-one-off", "exact", "one-off"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Find(ACGT, false) = %v, want %v", got, want)
	}
}

func Test_missingFirstChild(t *testing.T) {
	tr := New[int]()
	tr.Insert("ACGT", 1)

	if got := tr.Find("GGGG", false); len(got) != 0 {
		t.Fatalf("Find(GGGG, false) = %v, want empty", got)
	}
}

func Test_reset(t *testing.T) {
	tr := New[int]()
	tr.Insert("ACGT", 1)
	tr.Reset()

	if got := tr.Find("ACGT", true); len(got) != 0 {
		t.Fatalf("Find after Reset = %v, want empty", got)
	}
}

func Test_seedCompleteness(t *testing.T) {
	seq := "ACGTACGT"
	k := 4
	tr := New[[2]int]()
	for i := 0; i+k <= len(seq); i++ {
		tr.Insert(seq[i:i+k], [2]int{0, i})
	}

	for i := 0; i+k <= len(seq); i++ {
		got := tr.Find(seq[i:i+k], true)
		found := false
		for _, v := range got {
			if v == ([2]int{0, i}) {
				found = true
			}
		}
		if !found {
			t.Errorf("Find(%s, true) = %v, missing seed at offset %d", seq[i:i+k], got, i)
		}
	}
}
