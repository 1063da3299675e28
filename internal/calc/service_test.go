package calc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/msto63/numerik/foundation/core/config"
	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	"github.com/msto63/numerik/foundation/utils/mathx"
	"github.com/msto63/numerik/internal/journal"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newService(t *testing.T, store journal.Store) *Service {
	t.Helper()
	settings := DefaultSettings()
	settings.Journal.Enabled = store != nil
	svc, err := New(settings, Options{Journal: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	settings := DefaultSettings()
	settings.Engine.RoundingMode = "sideways"
	if _, err := New(settings, Options{}); !mdwerror.HasCode(err, mdwerrors.CodeConfigInvalid) {
		t.Errorf("New error = %v, want %s", err, mdwerrors.CodeConfigInvalid)
	}
}

func TestEvaluate(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	tests := []struct {
		expr string
		want Result
	}{
		{"1/3*3", Result{Valid: true, Value: "0.99", Stringified: "0.99", Dressed: "0.99"}},
		{" 1000*2.5 ", Result{Valid: true, Value: "2500.0", Stringified: "2500", Dressed: "2,500.00"}},
		{"1/0", Result{}},
		{"", Result{}},
	}
	for _, tt := range tests {
		got, err := svc.Evaluate(ctx, tt.expr)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", tt.expr, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Evaluate(%q) mismatch (-want +got):\n%s", tt.expr, diff)
		}
	}

	if _, err := svc.Evaluate(ctx, "1/3*3"); err != nil {
		t.Fatal(err)
	}
	if hits, _, _ := svc.CacheStats(); hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}
}

func TestEvaluateCanceled(t *testing.T) {
	svc := newService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Evaluate(ctx, "1+1"); err == nil {
		t.Error("Evaluate on a canceled context should fail")
	}
}

func TestEvaluateDeadline(t *testing.T) {
	svc := newService(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	if _, err := svc.Evaluate(ctx, "(9^9999)^9999"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Evaluate after the deadline = %v, want %v", err, context.DeadlineExceeded)
	}

	got, err := svc.Evaluate(context.Background(), "(9^9999)^9999")
	if err != nil {
		t.Fatal(err)
	}
	if got.Valid {
		t.Errorf("oversized power evaluated to %d digits, want unparseable", len(got.Value))
	}
	if hits, _, _ := svc.CacheStats(); hits != 0 {
		t.Errorf("cache hits = %d, want 0 after an expired call", hits)
	}
}

func TestReduce(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ReduceRequest
		want string
		void bool
	}{
		{"sum wrap zero", ReduceRequest{Op: "sum", Operands: []any{"1.5", "x", 2}}, "3.5", false},
		{"sum notice null", ReduceRequest{Op: "sum", Policy: "notice_null", Operands: []any{"1.5", "x"}}, "", true},
		{"sum reserve null of nothing", ReduceRequest{Op: "sum", Policy: "reserve_null", Operands: []any{nil}}, "", true},
		{"product", ReduceRequest{Op: "product", Operands: []any{"2", 1.5, nil}}, "3.0", false},
		{"depercent", ReduceRequest{Op: "depercent", Operands: []any{200, 15}}, "30.00", false},
		{"blend", ReduceRequest{Op: "blend", Operands: []any{10, false, 3, true, 1}}, "8", false},
		{"json numbers", ReduceRequest{Op: "SUM", Operands: []any{json.Number("0.1"), json.Number("0.2")}}, "0.3", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Reduce(ctx, tt.req)
			if err != nil {
				t.Fatalf("Reduce: %v", err)
			}
			if got.Valid == tt.void || got.Value != tt.want {
				t.Errorf("Reduce = %+v, want %q (void %v)", got, tt.want, tt.void)
			}
		})
	}
}

func TestReduceErrors(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	for _, req := range []ReduceRequest{
		{Op: "mean", Operands: []any{1}},
		{Op: "sum", Policy: "ignore", Operands: []any{1}},
		{Op: "sum", Operands: []any{struct{}{}}},
	} {
		if _, err := svc.Reduce(ctx, req); !mdwerror.HasCode(err, mdwerrors.CodeCalcInvalidRequest) {
			t.Errorf("Reduce(%+v) error = %v, want %s", req, err, mdwerrors.CodeCalcInvalidRequest)
		}
	}
}

func TestDivide(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	four := int32(4)

	tests := []struct {
		name string
		req  DivideRequest
		want string
	}{
		{"default scale", DivideRequest{Dividend: 10, Divisor: 3}, "3.33"},
		{"explicit scale and mode", DivideRequest{Dividend: "10", Divisor: "3", Scale: &four, Mode: "down"}, "3.3333"},
		{"percent", DivideRequest{Dividend: 1, Divisor: 8, Percent: true}, "12.50"},
		{"zero divisor wraps to one", DivideRequest{Dividend: 5, Divisor: 0}, "5.00"},
		{"mod", DivideRequest{Dividend: -7, Divisor: 3, Mod: true}, "-1"},
	}
	for _, tt := range tests {
		got, err := svc.Divide(ctx, tt.req)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got.Value != tt.want {
			t.Errorf("%s: Divide = %q, want %q", tt.name, got.Value, tt.want)
		}
	}

	got, err := svc.Divide(ctx, DivideRequest{Dividend: 5, Divisor: 0, Policy: "notice_null"})
	if err != nil || got.Valid {
		t.Errorf("notice null division by zero = %+v, %v; want void", got, err)
	}
}

func TestDivideRoundingNecessary(t *testing.T) {
	svc := newService(t, nil)
	_, err := svc.Divide(context.Background(), DivideRequest{Dividend: 1, Divisor: 3, Mode: "unnecessary"})
	if !mdwerror.HasCode(err, mdwerrors.CodeMathxRoundingNecessary) {
		t.Errorf("Divide error = %v, want %s", err, mdwerrors.CodeMathxRoundingNecessary)
	}
	_, err = svc.Divide(context.Background(), DivideRequest{Dividend: 1, Divisor: 3, Mode: "sideways"})
	if !mdwerror.HasCode(err, mdwerrors.CodeCalcInvalidRequest) {
		t.Errorf("Divide error = %v, want %s", err, mdwerrors.CodeCalcInvalidRequest)
	}
}

func TestFormat(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	tests := []struct {
		req  FormatRequest
		want string
	}{
		{FormatRequest{Value: "1234.50", Style: "plain"}, "1234.50"},
		{FormatRequest{Value: "1234.50", Style: "stringify"}, "1234.5"},
		{FormatRequest{Value: "1234.5", Style: "dress"}, "1,234"},
		{FormatRequest{Value: "1234.5", Style: "dress2dp"}, "1,234.50"},
		{FormatRequest{Value: "0.125", Style: "percent"}, "12.50%"},
		{FormatRequest{Value: "0.125", Style: "percent", Places: new(int)}, "13%"},
		{FormatRequest{Value: "1234.56", Style: "pattern", Pattern: "#,##0.0"}, "1,234.6"},
		{FormatRequest{Value: "x", Style: "dress2dp"}, ""},
		{FormatRequest{Value: "x", Style: "dress2dp", W0: true}, "0.00"},
	}
	for _, tt := range tests {
		got, err := svc.Format(ctx, tt.req)
		if err != nil {
			t.Fatalf("Format(%+v): %v", tt.req, err)
		}
		if got != tt.want {
			t.Errorf("Format(%+v) = %q, want %q", tt.req, got, tt.want)
		}
	}

	if _, err := svc.Format(ctx, FormatRequest{Value: 1, Style: "pattern", Pattern: "0;0"}); !mdwerror.HasCode(err, mdwerrors.CodeMathxInvalidPattern) {
		t.Errorf("invalid pattern error = %v", err)
	}
	if _, err := svc.Format(ctx, FormatRequest{Value: 1, Style: "roman"}); !mdwerror.HasCode(err, mdwerrors.CodeCalcInvalidRequest) {
		t.Errorf("unknown style error = %v", err)
	}
	for _, places := range []int{17, -17, 1000000} {
		req := FormatRequest{Value: 1, Style: "percent", Places: &places}
		if _, err := svc.Format(ctx, req); !mdwerror.HasCode(err, mdwerrors.CodeCalcInvalidRequest) {
			t.Errorf("Format with places %d error = %v, want %s", places, err, mdwerrors.CodeCalcInvalidRequest)
		}
	}
	if got, err := svc.Format(ctx, FormatRequest{Value: "0.5", Style: "percent", Places: mathx.Places(16)}); err != nil || got != "50.0000000000000000%" {
		t.Errorf("Format with places 16 = %q, %v", got, err)
	}
}

func TestRun(t *testing.T) {
	store := journal.NewMemoryStore()
	svc := newService(t, store)
	ctx := ContextWithRequestID(context.Background(), "req-1")

	result, err := svc.RunText(ctx, "add 10 x 5\ndiv 4\nneg", "cli")
	if err != nil {
		t.Fatalf("RunText: %v", err)
	}

	wantLog := []string{
		"initialized",
		"set value to default: 0",
		"set scale: 2, roundingMode: half_up",
		"add (10, null, 5), current value: 15",
		"divide 4 (2, half_up), current value: 3.75",
		"negate , current value: -3.75",
	}
	if diff := cmp.Diff(wantLog, result.Log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if result.Value != "-3.75" || result.Dressed != "-3.75" || result.Scale != 2 || result.RoundingMode != "half_up" {
		t.Errorf("result = %+v", result)
	}
	if result.ID == "" {
		t.Fatal("run was not journaled")
	}

	entry, err := store.Get(ctx, result.ID)
	if err != nil {
		t.Fatalf("journal Get: %v", err)
	}
	if entry.Source != "cli" || entry.RequestID != "req-1" || entry.Value != "-3.75" {
		t.Errorf("journal entry = %+v", entry)
	}
	if entry.Program != "add 10 x 5\ndiv 4\nneg\n" {
		t.Errorf("journal program = %q", entry.Program)
	}
	if diff := cmp.Diff(wantLog, entry.Log); diff != "" {
		t.Errorf("journal log mismatch (-want +got):\n%s", diff)
	}

	program, err := ParseProgram("add 1")
	if err != nil {
		t.Fatal(err)
	}
	preview, err := svc.Preview(ctx, program)
	if err != nil || preview.Value != "1" || preview.ID != "" {
		t.Errorf("Preview = %+v, %v", preview, err)
	}
	if entries, _ := store.List(ctx, journal.ListOptions{}); len(entries) != 1 {
		t.Errorf("journal holds %d entries after Preview, want 1", len(entries))
	}
}

func TestRunErrors(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	if _, err := svc.RunText(ctx, "add 1; launch", "cli"); !mdwerror.HasCode(err, mdwerrors.CodeCalcInvalidProgram) {
		t.Errorf("unknown instruction error = %v", err)
	}
	if _, err := svc.Run(ctx, Program{}); !mdwerror.HasCode(err, mdwerrors.CodeCalcInvalidProgram) {
		t.Errorf("empty program error = %v", err)
	}
	if _, err := svc.RunText(ctx, "add 1; div 3 2 unnecessary", "cli"); !mdwerror.HasCode(err, mdwerrors.CodeMathxRoundingNecessary) {
		t.Errorf("rounding necessary error = %v", err)
	}
}

func TestUpdateSettings(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	cfg := config.NewFromMap(map[string]interface{}{
		"engine": map[string]interface{}{"scale": 4, "rounding_mode": "down"},
	}, "")
	if err := svc.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	result, err := svc.RunText(ctx, "add 10; div 3", "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Value != "3.3333" || result.RoundingMode != "down" {
		t.Errorf("run after update = %+v", result)
	}

	bad := svc.Settings()
	bad.Engine.Scale = -3
	if err := svc.UpdateSettings(bad); err == nil {
		t.Error("UpdateSettings accepted a negative scale")
	}
	if svc.Settings().Engine.Scale != 4 {
		t.Error("rejected settings replaced the active ones")
	}
}

func TestCodec(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	dims := [][]string{{"a", "b"}, {"x", "y", "z"}}

	id, count, err := svc.Encode(ctx, CodecRequest{Dimensions: dims, Selection: []string{"b", "z"}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if id != 5 || count != 6 {
		t.Errorf("Encode = %d of %d, want 5 of 6", id, count)
	}

	selection, err := svc.Decode(ctx, CodecRequest{Dimensions: dims, ID: 5})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "z"}, selection); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}

	if id, _, err := svc.Encode(ctx, CodecRequest{Dimensions: dims, Selection: []string{"", "Y"}, IgnoreCase: true}); err != nil || id != 2 {
		t.Errorf("case-insensitive Encode = %d, %v; want 2", id, err)
	}
	if _, _, err := svc.Encode(ctx, CodecRequest{Dimensions: dims, Selection: []string{"Y"}}); !mdwerror.HasCode(err, mdwerrors.CodeCombxNoMatch) {
		t.Errorf("Encode error = %v, want %s", err, mdwerrors.CodeCombxNoMatch)
	}
	if _, err := svc.Decode(ctx, CodecRequest{Dimensions: dims, ID: 7}); !mdwerror.HasCode(err, mdwerrors.CodeCombxIDOutOfRange) {
		t.Errorf("Decode error = %v, want %s", err, mdwerrors.CodeCombxIDOutOfRange)
	}
}
