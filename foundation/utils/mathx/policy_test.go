package mathx

import (
	"testing"

	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
)

func TestSums(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"sum mixed", plain(Sum(Int(20), Text("-35"), Text("50"))), "35"},
		{"sum skips void", plain(Sum(Text("1.5"), Absent{}, Text("x"))), "1.5"},
		{"sum nothing parses", plain(Sum(Absent{}, Text("A35"), Flag(false))), "0"},
		{"sum empty", plain(Sum()), "0"},
		{"reserve nothing parses", outcome(SumReserveNull(Absent{}, Text("A35"), Flag(false))), "<null>"},
		{"reserve partial", outcome(SumReserveNull(Text("x"), Int(2))), "2"},
		{"notice partial", outcome(SumNoticeNull(Int(1), Text("x"))), "<null>"},
		{"notice all", outcome(SumNoticeNull(Int(1), Text("2.50"))), "3.50"},
		{"notice empty", outcome(SumNoticeNull()), "0"},
		{"blend", plain(BlendSum(Int(20), Flag(false), Text("-35"), Text("50"))), "5"},
		{"blend restore", plain(BlendSum(Int(1), Flag(false), Int(2), Flag(true), Int(3))), "2"},
		{"blend reserve void", outcome(BlendSumReserveNull(Flag(false), Text("x"))), "<null>"},
		{"blend notice void", outcome(BlendSumNoticeNull(Int(1), Flag(false), Text("x"))), "<null>"},
		{"blend notice", outcome(BlendSumNoticeNull(Int(10), Flag(false), Int(4))), "6"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestProducts(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"product nothing parses", plain(Product(Text("x"))), "1"},
		{"product skips void", plain(Product(Int(2), Text("x"), Text("1.5"))), "3.0"},
		{"reserve void", outcome(ProductReserveNull(Absent{})), "<null>"},
		{"notice void", outcome(ProductNoticeNull(Int(2), Absent{})), "<null>"},
		{"notice", outcome(ProductNoticeNull(Int(2), Int(-3))), "-6"},
		{"depercent", plain(ProductDepercent(Int(50), Int(20))), "10.00"},
		{"depercent reserve void", outcome(ProductDepercentReserveNull(Text("x"))), "<null>"},
		{"depercent notice", outcome(ProductDepercentNoticeNull(Int(200), Text("15"))), "30.00"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestQuotients(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"zero divisor", plain(Quotient(Int(5), Int(0), 2, RoundHalfUp)), "5.00"},
		{"void divisor", plain(Quotient(Int(5), Absent{}, 2, RoundHalfUp)), "5.00"},
		{"void dividend", plain(Quotient(Absent{}, Int(3), 2, RoundHalfUp)), "0.00"},
		{"rounded", plain(Quotient(Int(2), Int(3), 3, RoundDown)), "0.666"},
		{"reserve void dividend", outcome(QuotientReserveNull(Absent{}, Int(3), 2, RoundHalfUp)), "<null>"},
		{"reserve zero divisor", outcome(QuotientReserveNull(Int(5), Int(0), 1, RoundHalfUp)), "5.0"},
		{"notice zero divisor", outcome(QuotientNoticeNull(Int(5), Int(0), 2, RoundHalfUp)), "<null>"},
		{"notice", outcome(QuotientNoticeNull(Int(1), Int(4), 2, RoundHalfUp)), "0.25"},
		{"percent", plain(QuotientPercent(Int(1), Int(8), 2, RoundHalfUp)), "12.50"},
		{"percent reserve", outcome(QuotientPercentReserveNull(Int(1), Text("x"), 0, RoundHalfUp)), "100"},
		{"percent notice void", outcome(QuotientPercentNoticeNull(Int(1), Absent{}, 2, RoundHalfUp)), "<null>"},
		{"percent notice", outcome(QuotientPercentNoticeNull(Int(1), Int(3), 2, RoundHalfUp)), "33.33"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestMods(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"mod", plain(Mod(Int(7), Int(3))), "1"},
		{"mod negative dividend", plain(Mod(Int(-7), Int(3))), "-1"},
		{"mod fraction", plain(Mod(Text("7.5"), Int(2))), "1.5"},
		{"mod zero divisor", plain(Mod(Int(7), Int(0))), "7"},
		{"mod void dividend", plain(Mod(Absent{}, Int(3))), "0"},
		{"reserve void dividend", outcome(ModReserveNull(Absent{}, Int(3))), "<null>"},
		{"reserve void divisor", outcome(ModReserveNull(Int(7), Absent{})), "7"},
		{"notice zero divisor", outcome(ModNoticeNull(Int(7), Int(0))), "<null>"},
		{"notice", outcome(ModNoticeNull(Int(9), Int(4))), "1"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

// TestPolicyLaws checks the relations between the three policies over a
// set of operand lists
func TestPolicyLaws(t *testing.T) {
	inputs := [][]Source{
		{},
		{Int(1)},
		{Int(1), Text("2.5"), Long(-4)},
		{Text("x")},
		{Absent{}, Int(3)},
		{Float(0.1), Float(0.2), Text("bad"), Nullable(Null())},
	}

	for _, in := range inputs {
		reserve := SumReserveNull(in...)
		notice := SumNoticeNull(in...)
		if got, want := Sum(in...), WrapZero(N(reserve)); !got.Equal(want) {
			t.Errorf("Sum%v = %s, want wrapped reserve %s", in, got, want)
		}

		allParse := true
		for _, src := range in {
			allParse = allParse && IsDecimal(src)
		}
		if allParse && len(in) > 0 && (!notice.Valid || !notice.Decimal.Equal(reserve.Decimal)) {
			t.Errorf("SumNoticeNull%v = %s, want %s", in, outcome(notice), outcome(reserve))
		}
		if !allParse && notice.Valid {
			t.Errorf("SumNoticeNull%v should be void", in)
		}

		productReserve := ProductReserveNull(in...)
		if got, want := Product(in...), Product(N(productReserve)); !got.Equal(want) {
			t.Errorf("Product%v = %s, want %s", in, got, want)
		}
	}
}

func TestPolicyDispatch(t *testing.T) {
	void := []Source{Text("x")}
	tests := []struct {
		policy Policy
		sum    string
		prod   string
		depct  string
		quot   string
		mod    string
	}{
		{PolicyWrapZero, "0", "1", "0.01", "0.00", "0"},
		{PolicyReserveNull, "<null>", "<null>", "<null>", "<null>", "<null>"},
		{PolicyNoticeNull, "<null>", "<null>", "<null>", "<null>", "<null>"},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			if got := outcome(SumWith(tt.policy, void...)); got != tt.sum {
				t.Errorf("SumWith = %s, want %s", got, tt.sum)
			}
			if got := outcome(BlendSumWith(tt.policy, void...)); got != tt.sum {
				t.Errorf("BlendSumWith = %s, want %s", got, tt.sum)
			}
			if got := outcome(ProductWith(tt.policy, void...)); got != tt.prod {
				t.Errorf("ProductWith = %s, want %s", got, tt.prod)
			}
			if got := outcome(ProductDepercentWith(tt.policy, void...)); got != tt.depct {
				t.Errorf("ProductDepercentWith = %s, want %s", got, tt.depct)
			}
			if got := outcome(QuotientWith(tt.policy, void[0], Int(2), 2, RoundHalfUp)); got != tt.quot {
				t.Errorf("QuotientWith = %s, want %s", got, tt.quot)
			}
			if got := outcome(QuotientPercentWith(tt.policy, void[0], Int(2), 2, RoundHalfUp)); got != tt.quot {
				t.Errorf("QuotientPercentWith = %s, want %s", got, tt.quot)
			}
			if got := outcome(ModWith(tt.policy, void[0], Int(2))); got != tt.mod {
				t.Errorf("ModWith = %s, want %s", got, tt.mod)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{PolicyWrapZero, PolicyReserveNull, PolicyNoticeNull} {
		if got, err := ParsePolicy(p.String()); err != nil || got != p {
			t.Errorf("ParsePolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if got, err := ParsePolicy("Notice-Null"); err != nil || got != PolicyNoticeNull {
		t.Errorf("ParsePolicy(Notice-Null) = %v, %v", got, err)
	}
	if got, _ := ParsePolicy(""); got != PolicyWrapZero {
		t.Errorf("ParsePolicy(\"\") = %v", got)
	}
	if _, err := ParsePolicy("lenient"); !mdwerror.HasCode(err, mdwerrors.CodeMathxInvalidPolicy) {
		t.Errorf("ParsePolicy(lenient) error = %v", err)
	}
}

func TestNullHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"wrap null zero", outcome(WrapNull(Text("0.00"))), "<null>"},
		{"wrap null value", outcome(WrapNull(Int(4))), "4"},
		{"wrap zero", plain(WrapZero(Text("x"))), "0"},
		{"if null then", outcome(IfNullThen(Text("x"), Int(3))), "3"},
		{"if null then first", outcome(IfNullThen(Int(1), Int(3))), "1"},
		{"if null then both void", outcome(IfNullThen(Absent{}, Absent{})), "<null>"},
		{"minus", outcome(Minus(Text("-2.5"))), "2.5"},
		{"minus void", outcome(Minus(Absent{})), "<null>"},
		{"absolute", outcome(Absolute(Text("-0.10"))), "0.10"},
		{"set scale", outcome(SetScale(Text("2.345"), 2, RoundHalfEven)), "2.34"},
		{"set scale pads", outcome(SetScale(Int(2), 3, RoundHalfUp)), "2.000"},
		{"set scale void", outcome(SetScale(Absent{}, 2, RoundHalfUp)), "<null>"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}
