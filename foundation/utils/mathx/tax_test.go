package mathx

import "testing"

func TestStatelessTax(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"included", plain(TaxIncluded(Int(110), Text("0.1"), 2, RoundHalfUp)), "10.00"},
		{"included rounded", plain(TaxIncluded(Int(100), Text("0.19"), 2, RoundHalfUp)), "15.97"},
		{"excluded", plain(TaxExcluded(Int(100), Text("0.1"), 2, RoundHalfUp)), "10.00"},
		{"net", plain(NetOfTax(Int(110), Text("0.1"), 2, RoundHalfUp)), "100.00"},
		{"gross", plain(GrossOfTax(Int(100), Text("0.1"), 2, RoundHalfUp)), "110.00"},
		{"void amount", plain(TaxIncluded(Text("x"), Text("0.1"), 2, RoundHalfUp)), "0.00"},
		{"zero rate", plain(TaxExcluded(Int(100), Int(0), 1, RoundHalfUp)), "0.0"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestTaxAccumulator(t *testing.T) {
	tax := NewTaxAccumulatorWith(2, RoundHalfUp)
	tax.AddOutTax(Int(100), Text("0.19")).AddInTax(Int(119), Text("0.19"))

	if got := tax.Pay().Dress2DP(); got != "200.00" {
		t.Errorf("Pay = %s, want 200.00", got)
	}
	if got := tax.Tax().Dress2DP(); got != "38.00" {
		t.Errorf("Tax = %s, want 38.00", got)
	}
	if got := tax.All().Dress2DP(); got != "238.00" {
		t.Errorf("All = %s, want 238.00", got)
	}
}

func TestTaxAccumulatorUnits(t *testing.T) {
	tax := NewTaxAccumulatorWith(2, RoundHalfUp)
	tax.AddOutTaxUnits(Text("9.99"), Int(3), Text("0.07"))

	if got := tax.Pay().Dress2DP(); got != "29.97" {
		t.Errorf("Pay = %s, want 29.97", got)
	}
	if got := tax.Tax().Dress2DP(); got != "2.10" {
		t.Errorf("Tax = %s, want 2.10", got)
	}
	if got := tax.All().Dress2DP(); got != "32.07" {
		t.Errorf("All = %s, want 32.07", got)
	}

	tax.AddInTaxUnits(Text("x"), Int(3), Text("0.07"))
	if got := tax.All().Dress2DP(); got != "32.07" {
		t.Errorf("void unit price changed All to %s", got)
	}

	whole := NewTaxAccumulator().AddInTax(Int(107), Text("0.07"))
	if got := whole.Tax().String(); got != "7" {
		t.Errorf("whole unit tax = %s, want 7", got)
	}
}
