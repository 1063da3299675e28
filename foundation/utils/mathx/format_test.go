package mathx

import "testing"

func TestDress(t *testing.T) {
	tests := []struct {
		src     Source
		dress   string
		dress2d string
	}{
		{Text("1234567.891"), "1,234,568", "1,234,567.89"},
		{Text("1234.5"), "1,234", "1,234.50"},
		{Text("999"), "999", "999.00"},
		{Text("0.125"), "0", "0.12"},
		{Text("0.135"), "0", "0.14"},
		{Text("-0.4"), "-0", "-0.40"},
		{Text("-1000"), "-1,000", "-1,000.00"},
		{Absent{}, "", ""},
	}
	for _, tt := range tests {
		if got := Dress(tt.src); got != tt.dress {
			t.Errorf("Dress(%v) = %q, want %q", tt.src, got, tt.dress)
		}
		if got := Dress2DP(tt.src); got != tt.dress2d {
			t.Errorf("Dress2DP(%v) = %q, want %q", tt.src, got, tt.dress2d)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		src     Source
		pattern string
		want    string
	}{
		{Text("0.5"), "#.##", ".5"},
		{Text("0"), "#.##", "0"},
		{Text("0.256"), "0.0%", "25.6%"},
		{Text("42"), "$#,##0.00", "$42.00"},
		{Text("-1234.5"), "$#,##0.00", "-$1,234.50"},
		{Text("7"), "000", "007"},
		{Text("2.5"), "0", "2"},
		{Text("3.5"), "0", "4"},
		{Text("1.5"), "0.0##", "1.5"},
		{Text("1.23456"), "0.0##", "1.235"},
		{Text("12345678"), "#,####", "1234,5678"},
		{Text("1234.6"), "#,##0.", "1,235."},
		{Text("0"), "#.", "0."},
		{Text("-3"), "0. pcs", "-3. pcs"},
		{Text("x"), "0.00", ""},
	}
	for _, tt := range tests {
		got, err := Format(tt.src, tt.pattern)
		if err != nil {
			t.Errorf("Format(%v, %q) error: %v", tt.src, tt.pattern, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tt.src, tt.pattern, got, tt.want)
		}
	}

	if got, err := FormatW0(Absent{}, "0.00"); err != nil || got != "0.00" {
		t.Errorf("FormatW0(absent) = %q, %v", got, err)
	}
}

func TestFormatInvalidPattern(t *testing.T) {
	for _, pattern := range []string{"", "  ", "#.#.#", "0#", "0.#0", "abc", "#,##0;(#)", "'#'", "#,"} {
		if _, err := Format(Int(1), pattern); !IsPatternError(err) {
			t.Errorf("Format(1, %q) error = %v, want pattern error", pattern, err)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		src    Source
		places *int
		want   string
	}{
		{Text("0.125"), Places(0), "13%"},
		{Text("0.125"), nil, "13 %"},
		{Text("0.12345"), Places(2), "12.35%"},
		{Text("0.5"), Places(-1), "50.0 %"},
		{Text("12.5"), Places(0), "1,250%"},
		{Text("-0.005"), Places(0), "-1%"},
		{Absent{}, nil, ""},
	}
	for _, tt := range tests {
		if got := Percent(tt.src, tt.places); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.src, got, tt.want)
		}
	}
	if got := PercentW0(Absent{}, Places(0)); got != "0%" {
		t.Errorf("PercentW0(absent) = %q, want 0%%", got)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Text("1.500"), "1.5"},
		{Text("-0.00"), "0"},
		{Text("1e3"), "1000"},
		{Text("1,234.50"), "1234.5"},
		{Absent{}, ""},
	}
	for _, tt := range tests {
		if got := Stringify(tt.src); got != tt.want {
			t.Errorf("Stringify(%v) = %q, want %q", tt.src, got, tt.want)
		}
	}
	if got := StringifyW0(Text("x")); got != "0" {
		t.Errorf("StringifyW0(x) = %q", got)
	}
	if got := DressW0(Text("x")); got != "0" {
		t.Errorf("DressW0(x) = %q", got)
	}
	if got := Dress2DPW0(Text("x")); got != "0.00" {
		t.Errorf("Dress2DPW0(x) = %q", got)
	}
}

func TestPlain(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Text("1.500"), "1.500"},
		{Text("-0.00"), "0.00"},
		{Text("1e3"), "1000"},
		{Int(-7), "-7"},
		{Text("x"), ""},
	}
	for _, tt := range tests {
		if got := Plain(tt.src); got != tt.want {
			t.Errorf("Plain(%v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		digits string
		size   int
		want   string
	}{
		{"1234567", 3, "1,234,567"},
		{"123456", 3, "123,456"},
		{"12", 3, "12"},
		{"12345", 0, "12345"},
	}
	for _, tt := range tests {
		if got := group(tt.digits, tt.size); got != tt.want {
			t.Errorf("group(%q, %d) = %q, want %q", tt.digits, tt.size, got, tt.want)
		}
	}
}
