package payroll

const (
	StatusDraft = "DRAFT"
	StatusPaid  = "PAID"
)

// Profile is the salary configuration a record is derived from.
type Profile struct {
	BasicSalary        float64
	HousingAllowance   float64
	TransportAllowance float64
	OtherAllowance     float64
	OvertimeRate       float64
	Deduction          float64
}

// Breakdown is a fully derived single payroll record before persistence.
type Breakdown struct {
	Basic       float64
	Housing     float64
	Transport   float64
	OvertimePay float64
	Bonus       float64
	Deduction   float64
}

// Net is the single-record formula. The result is intentionally not clamped
// at zero; a deduction can exceed earnings.
func (b Breakdown) Net() float64 {
	return b.Basic + b.Housing + b.Transport + b.OvertimePay + b.Bonus - b.Deduction
}

// Compute derives a record from a profile, aggregated overtime hours and the
// operator adjustments. OvertimePay is a suggested default; callers may
// override it before persisting.
func Compute(p Profile, overtimeHours, bonus, extraDeduction float64) Breakdown {
	rate := RateFromProfile(p.OvertimeRate)

	return Breakdown{
		Basic:       p.BasicSalary,
		Housing:     p.HousingAllowance,
		Transport:   p.TransportAllowance,
		OvertimePay: rate.Pay(p.BasicSalary, overtimeHours),
		Bonus:       bonus,
		Deduction:   p.Deduction + extraDeduction,
	}
}

// BatchNet is the bulk-generation formula. It deliberately tracks only the
// base salary plus the per-employee overrides, matching the original batch
// behavior rather than the single-record formula.
func BatchNet(basic, bonus, deduction float64) float64 {
	return basic + bonus - deduction
}
