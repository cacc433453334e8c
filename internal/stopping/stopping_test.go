package stopping

import "testing"

func TestEvaluatePriorityOrder(t *testing.T) {
	cfg := Config{MinItems: 3, MaxItems: 10, MinSEM: 0.3}

	tests := []struct {
		name         string
		administered int
		se           float64
		seKnown      bool
		poolEmpty    bool
		wantContinue bool
		wantReason   Reason
	}{
		{"below floor continues", 2, 0.5, true, false, true, ReasonMinItemsNotMet},
		{"floor outranks precision", 2, 0.1, true, false, true, ReasonMinItemsNotMet},
		{"floor outranks exhaustion", 2, 0.1, true, true, true, ReasonMinItemsNotMet},
		{"ceiling stops", 10, 0.5, true, false, false, ReasonMaxItemsReached},
		{"ceiling outranks precision", 10, 0.1, true, false, false, ReasonMaxItemsReached},
		{"precision met stops", 5, 0.3, true, false, false, ReasonPrecisionMet},
		{"precision above target continues", 5, 0.31, true, false, true, ReasonPrecisionNotMet},
		{"precision outranks exhaustion", 5, 0.2, true, true, false, ReasonPrecisionMet},
		{"exhaustion stops", 5, 0.5, true, true, false, ReasonBankExhausted},
		{"unknown se blocks precision stop", 5, 0.1, false, false, true, ReasonPrecisionNotMet},
		{"otherwise continues", 5, 0.5, true, false, true, ReasonPrecisionNotMet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.administered, tt.se, tt.seKnown, tt.poolEmpty, cfg)
			if d.Continue != tt.wantContinue {
				t.Errorf("Continue = %v, want %v", d.Continue, tt.wantContinue)
			}
			if d.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", d.Reason, tt.wantReason)
			}
		})
	}
}

func TestEvaluateDisabledPrecision(t *testing.T) {
	cfg := Config{MinItems: 2, MaxItems: 9, MinSEM: DisabledMinSEM}

	// Even a tiny standard error never stops the session; only the
	// ceiling does.
	for n := 2; n < 9; n++ {
		d := Evaluate(n, 0.01, true, false, cfg)
		if !d.Continue {
			t.Fatalf("administered=%d: stopped with %q, want continue", n, d.Reason)
		}
	}
	d := Evaluate(9, 0.01, true, false, cfg)
	if d.Continue || d.Reason != ReasonMaxItemsReached {
		t.Errorf("at ceiling: (%v, %q), want stop on max_items_reached", d.Continue, d.Reason)
	}
}

func TestEvaluateZeroMinSEMDisablesPrecision(t *testing.T) {
	cfg := Config{MinItems: 1, MaxItems: 10, MinSEM: 0}
	d := Evaluate(5, 0.0, true, false, cfg)
	if !d.Continue {
		t.Errorf("MinSEM=0 should disable the precision stop, got %q", d.Reason)
	}
}

func TestEvaluateUnboundedMaxItems(t *testing.T) {
	cfg := Config{MinItems: 1, MaxItems: 0, MinSEM: DisabledMinSEM}
	d := Evaluate(500, 1.0, true, false, cfg)
	if !d.Continue {
		t.Errorf("MaxItems=0 should not cap the session, got %q", d.Reason)
	}
}

func TestPrecisionStopEnabled(t *testing.T) {
	tests := []struct {
		minSEM float64
		want   bool
	}{
		{0.3, true},
		{0, false},
		{DisabledMinSEM, false},
		{DisabledMinSEM + 50, false},
		{99.9, true},
	}
	for _, tt := range tests {
		cfg := Config{MinSEM: tt.minSEM}
		if got := cfg.PrecisionStopEnabled(); got != tt.want {
			t.Errorf("MinSEM=%g: enabled = %v, want %v", tt.minSEM, got, tt.want)
		}
	}
}
