package payroll

import "testing"

func TestRateFromProfile(t *testing.T) {
	if r := RateFromProfile(6); r.Mode != ModeFixed {
		t.Fatalf("rate 6 should be fixed mode, got %v", r.Mode)
	}
	if r := RateFromProfile(5); r.Mode != ModeMultiplier {
		t.Fatalf("rate 5 should be multiplier mode, got %v", r.Mode)
	}
	if r := RateFromProfile(1.5); r.Mode != ModeMultiplier {
		t.Fatalf("rate 1.5 should be multiplier mode, got %v", r.Mode)
	}
}

func TestFixedModePay(t *testing.T) {
	pay := RateFromProfile(6).Pay(4800, 10)
	if pay != 60 {
		t.Fatalf("expected pay 60, got %v", pay)
	}
}

func TestMultiplierModePay(t *testing.T) {
	// basic 4800 / 240 = 20 hourly, x1.5 x10h = 300
	pay := RateFromProfile(1.5).Pay(4800, 10)
	if pay != 300 {
		t.Fatalf("expected pay 300, got %v", pay)
	}
}

func TestNet(t *testing.T) {
	b := Breakdown{
		Basic:       4000,
		Housing:     500,
		Transport:   300,
		OvertimePay: 300,
		Bonus:       200,
		Deduction:   100,
	}
	if net := b.Net(); net != 5200 {
		t.Fatalf("expected net 5200, got %v", net)
	}
}

func TestNetNotClamped(t *testing.T) {
	b := Breakdown{Basic: 100, Deduction: 500}
	if net := b.Net(); net != -400 {
		t.Fatalf("expected net -400, got %v", net)
	}
}

func TestCompute(t *testing.T) {
	p := Profile{
		BasicSalary:        4800,
		HousingAllowance:   500,
		TransportAllowance: 300,
		OvertimeRate:       1.5,
		Deduction:          50,
	}

	b := Compute(p, 10, 200, 100)
	if b.OvertimePay != 300 {
		t.Fatalf("expected overtime pay 300, got %v", b.OvertimePay)
	}
	if b.Deduction != 150 {
		t.Fatalf("expected deduction 150, got %v", b.Deduction)
	}
	if net := b.Net(); net != 5750 {
		t.Fatalf("expected net 5750, got %v", net)
	}
}

func TestBatchNet(t *testing.T) {
	// The batch formula ignores housing/transport/overtime on purpose.
	if net := BatchNet(3000, 500, 200); net != 3300 {
		t.Fatalf("expected net 3300, got %v", net)
	}
	if net := BatchNet(100, 0, 500); net != -400 {
		t.Fatalf("expected net -400, got %v", net)
	}
}
