package mathx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2 - 3 * 4^5 /6", "-509.00"},
		{"(1+2- 3 * ((4+5)*1.2)^2", "-346.92"},
		{"5", "5"},
		{"2*(3+4)", "14"},
		{"10/4", "2.50"},
		{"1/3*3", "0.99"},
		{"2.5^2", "6.25"},
		{"7^0", "1"},
		{"2^(0-1)", "0.50"},
		{"2^3^2", "64"},
		{"2+3)*4", "20"},
		{"1 2 + 3", "15"},
		{"1+-2", "<null>"},
		{"-1", "<null>"},
		{"1+", "<null>"},
		{"1/0", "<null>"},
		{"0^(0-1)", "<null>"},
		{"2^10000", "<null>"},
		{"2^9999", "<valid>"},
		{"(9^9999)^9999", "<null>"},
		{"((2^100)^100)^100", "<null>"},
		{"1.5^5001", "<null>"},
		{"1..2+1", "<null>"},
		{"", "<null>"},
		{"abc", "<null>"},
		{")(", "<null>"},
		{"()", "<null>"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got := outcome(Evaluate(tt.expr))
			if tt.want == "<valid>" && got != "<null>" {
				return
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}
}

func TestBlendExtract(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{}},
		{"no digits", []string{}},
		{"a12b-3.5c+4", []string{"12", "-3.5", "4"}},
		{"-1 2", []string{"-1", "-2"}},
		{"10 - 2 + 3", []string{"10", "-2", "3"}},
		{"v1.2.3", []string{"<null>"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := []string{}
			for _, n := range BlendExtract(tt.text) {
				got = append(got, outcome(n))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BlendExtract(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}
