package mathx

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
)

func TestAccumulatorLog(t *testing.T) {
	acc := NewAccumulatorWith(2, RoundHalfUp)
	acc.Add(Texts("10", "x", "5")...).Divide(Long(4)).Negate()

	want := []string{
		"initialized",
		"set value to default: 0",
		"set scale: 2, roundingMode: half_up",
		"add (10, null, 5), current value: 15",
		"divide 4 (2, half_up), current value: 3.75",
		"negate , current value: -3.75",
	}
	if diff := cmp.Diff(want, acc.LogLines()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if got := acc.Stringify(); got != "-3.75" {
		t.Errorf("Stringify() = %q, want -3.75", got)
	}
}

func TestAccumulatorClear(t *testing.T) {
	acc := NewAccumulatorWith(3, RoundFloor).Add(Int(9))
	acc.Clear()

	if diff := cmp.Diff([]string{"(re)set value to default: 0"}, acc.LogLines()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if acc.String() != "0" || acc.Scale() != 3 || acc.RoundingMode() != RoundFloor {
		t.Errorf("Clear() left value %s, scale %d, mode %s", acc, acc.Scale(), acc.RoundingMode())
	}
}

func TestAccumulatorOperations(t *testing.T) {
	tests := []struct {
		name string
		acc  *Accumulator
		want string
	}{
		{"subtract", NewAccumulator().Add(Int(10)).Subtract(Int(3), Text("x"), Text("2.5")), "4.5"},
		{"multiply", NewAccumulator().Add(Int(2)).Multiply(Texts("2", "x", "1.5")...), "6.0"},
		{"multiply all void", NewAccumulator().Add(Int(2)).Multiply(Absent{}), "2"},
		{"multiply depercent", NewAccumulator().Add(Int(200)).MultiplyDepercent(Int(15)), "30.00"},
		{"divide by zero", NewAccumulatorWith(2, RoundHalfUp).Add(Int(5)).Divide(Int(0)), "5.00"},
		{"divide with", NewAccumulator().Add(Int(10)).DivideWith(Int(3), 4, RoundDown), "3.3333"},
		{"divide percent", NewAccumulatorWith(2, RoundHalfUp).Add(Int(1)).DividePercent(Int(8)), "12.50"},
		{"divide percent with", NewAccumulator().Add(Int(1)).DividePercentWith(Int(3), 1, RoundUp), "33.4"},
		{"divide as divisor", NewAccumulatorWith(2, RoundHalfUp).Add(Int(4)).DivideAsDivisor(Int(10)), "2.50"},
		{"divide as divisor of zero", NewAccumulatorWith(2, RoundHalfUp).DivideAsDivisor(Int(10)), "10.00"},
		{"divide as divisor with", NewAccumulator().Add(Int(3)).DivideAsDivisorWith(Int(1), 3, RoundHalfEven), "0.333"},
		{"divide as divisor percent", NewAccumulator().Add(Int(4)).DivideAsDivisorPercent(Int(1)), "25"},
		{"divide as divisor percent with", NewAccumulator().Add(Int(8)).DivideAsDivisorPercentWith(Int(1), 1, RoundHalfUp), "12.5"},
		{"mod", NewAccumulator().Add(Int(7)).Mod(Int(3)), "1"},
		{"mod as divisor", NewAccumulator().Add(Int(3)).ModAsDivisor(Int(7)), "1"},
		{"mod as divisor of zero", NewAccumulator().ModAsDivisor(Int(7)), "7"},
		{"absolute", NewAccumulator().Subtract(Text("2.5")).Absolute(), "2.5"},
		{"set scale", NewAccumulator().Add(Text("3.14159")).SetScale(2), "3.14"},
		{"set scale with", NewAccumulator().Add(Text("3.145")).SetScaleWith(2, RoundHalfEven), "3.14"},
		{"set scale pads", NewAccumulator().Add(Int(3)).SetScale(2), "3.00"},
	}
	for _, tt := range tests {
		if got := tt.acc.String(); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestAccumulatorDivideWithLogsScale(t *testing.T) {
	acc := NewAccumulator().Add(Int(10)).DivideWith(Int(3), 4, RoundDown)
	lines := acc.LogLines()
	want := []string{
		"set scale: 4, roundingMode: down",
		"divide 3 (4, down), current value: 3.3333",
	}
	if diff := cmp.Diff(want, lines[len(lines)-2:]); diff != "" {
		t.Errorf("log tail mismatch (-want +got):\n%s", diff)
	}
	if acc.Scale() != 4 || acc.RoundingMode() != RoundDown {
		t.Errorf("DivideWith kept scale %d, mode %s", acc.Scale(), acc.RoundingMode())
	}
}

func TestAccumulatorComparisons(t *testing.T) {
	acc := NewAccumulator().Add(Int(5))
	if !acc.IsEquivalentTo(Text("5.00")) {
		t.Error("5 should be equivalent to 5.00")
	}
	if !acc.IsGreaterThan(Text("x")) {
		t.Error("5 should be greater than an unparseable target")
	}
	if !acc.IsGreaterEqual(Int(5)) || !acc.IsLessEqual(Int(5)) {
		t.Error("5 should be >= and <= 5")
	}
	if !acc.IsLessThan(Text("5.01")) {
		t.Error("5 should be less than 5.01")
	}
}

func TestAccumulatorOutputs(t *testing.T) {
	acc := NewAccumulator().Add(Text("-1234.5"))
	if got := plain(acc.IntegralPart()); got != "-1234" {
		t.Errorf("IntegralPart() = %s", got)
	}
	if got := plain(acc.FractionalPart()); got != "-0.5" {
		t.Errorf("FractionalPart() = %s", got)
	}
	if _, ok := acc.Int32Value(); ok {
		t.Error("Int32Value() of a fraction succeeded")
	}
	if f, ok := acc.Float64Value(); !ok || f != -1234.5 {
		t.Errorf("Float64Value() = %v, %v", f, ok)
	}
	if got := acc.Dress(); got != "-1,234" {
		t.Errorf("Dress() = %q", got)
	}
	if got := acc.Dress2DP(); got != "-1,234.50" {
		t.Errorf("Dress2DP() = %q", got)
	}
	if got, err := acc.Format("0.0"); err != nil || got != "-1234.5" {
		t.Errorf("Format() = %q, %v", got, err)
	}
	if got := NewAccumulator().Add(Text("0.2")).Percent(Places(1)); got != "20.0%" {
		t.Errorf("Percent() = %q", got)
	}
	if n, ok := NewAccumulator().Add(Int(42)).Int64Value(); !ok || n != 42 {
		t.Errorf("Int64Value() = %d, %v", n, ok)
	}
	if got := plain(Sum(acc, Int(1))); got != "-1233.5" {
		t.Errorf("accumulator as source: %s", got)
	}
}

func TestTransfer(t *testing.T) {
	accs := NewAccumulators(3)
	accs[0].Add(Int(5))
	accs[2].Add(Int(1))

	if err := TransferIndex(accs, 0, 2); err != nil {
		t.Fatalf("TransferIndex: %v", err)
	}
	if accs[0].String() != "0" || accs[2].String() != "6" {
		t.Errorf("after transfer: %s, %s", accs[0], accs[2])
	}
	if err := TransferIndex(accs, 0, 3); !mdwerror.HasCode(err, mdwerrors.CodeMathxInvalidSlot) {
		t.Errorf("TransferIndex out of range error = %v", err)
	}

	ClearAll(accs)
	if accs[2].String() != "0" {
		t.Errorf("ClearAll left %s", accs[2])
	}

	named := NewAccumulatorMap("net", "gross")
	named["net"].Add(Text("9.99"))
	if err := TransferKey(named, "net", "gross"); err != nil {
		t.Fatalf("TransferKey: %v", err)
	}
	if named["gross"].String() != "9.99" || named["net"].String() != "0" {
		t.Errorf("after transfer: net %s, gross %s", named["net"], named["gross"])
	}
	if err := TransferKey(named, "net", "tax"); !mdwerror.HasCode(err, mdwerrors.CodeMathxInvalidSlot) {
		t.Errorf("TransferKey unknown key error = %v", err)
	}

	ClearMap(named)
	if named["gross"].String() != "0" {
		t.Errorf("ClearMap left %s", named["gross"])
	}
}
