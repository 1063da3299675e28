package mathx

import "testing"

func TestColumnName(t *testing.T) {
	tests := map[int]string{
		-1:  "",
		0:   "",
		1:   "A",
		26:  "Z",
		27:  "AA",
		52:  "AZ",
		702: "ZZ",
		703: "AAA",
	}
	for n, want := range tests {
		if got := ColumnName(n); got != want {
			t.Errorf("ColumnName(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestColumnNumber(t *testing.T) {
	tests := map[string]int{
		"":    0,
		"A":   1,
		"aa":  27,
		"Zz":  702,
		"A1":  0,
		"A B": 0,
	}
	for name, want := range tests {
		if got := ColumnNumber(name); got != want {
			t.Errorf("ColumnNumber(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestColumnRoundTrip(t *testing.T) {
	for n := 1; n <= 20000; n++ {
		if got := ColumnNumber(ColumnName(n)); got != n {
			t.Fatalf("ColumnNumber(ColumnName(%d)) = %d", n, got)
		}
	}
}
