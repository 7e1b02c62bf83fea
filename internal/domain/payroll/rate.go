package payroll

// StandardMonthlyHours is the fixed divisor turning a basic salary into an
// hourly wage for multiplier-mode overtime.
const StandardMonthlyHours = 240

// RateMode selects how an overtime rate value is interpreted.
type RateMode int

const (
	// ModeFixed treats the rate as a currency amount per overtime hour.
	ModeFixed RateMode = iota
	// ModeMultiplier treats the rate as a factor applied to the hourly wage.
	ModeMultiplier
)

// OvertimeRate is the tagged form of the profile's magnitude-dual rate
// field: Fixed(amount) or Multiplier(factor).
type OvertimeRate struct {
	Mode  RateMode
	Value float64
}

func Fixed(amount float64) OvertimeRate {
	return OvertimeRate{Mode: ModeFixed, Value: amount}
}

func Multiplier(factor float64) OvertimeRate {
	return OvertimeRate{Mode: ModeMultiplier, Value: factor}
}

// rateModeBoundary splits the stored numeric rate: anything above it is a
// currency-per-hour amount, anything at or below a wage multiplier.
const rateModeBoundary = 5

// RateFromProfile maps the raw stored rate onto its tagged form.
func RateFromProfile(value float64) OvertimeRate {
	if value > rateModeBoundary {
		return Fixed(value)
	}
	return Multiplier(value)
}

// Pay computes overtime pay for the given hours against a basic salary.
func (r OvertimeRate) Pay(basicSalary, hours float64) float64 {
	switch r.Mode {
	case ModeFixed:
		return hours * r.Value
	default:
		hourly := basicSalary / StandardMonthlyHours
		return hourly * r.Value * hours
	}
}
