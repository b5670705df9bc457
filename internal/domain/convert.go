package domain

const (
	kgToLb  = 2.2046226218
	kgToJin = 2.0
)

// Supported weight units.
const (
	UnitKg  = "kg"
	UnitLb  = "lb"
	UnitJin = "jin"
)

// ValidUnit reports whether u is a unit ConvertWeight understands.
func ValidUnit(u string) bool {
	return u == UnitKg || u == UnitLb || u == UnitJin
}

// ConvertWeight converts a weight value between "kg", "lb" and "jin".
// Returns v unchanged if from == to or if either unit is unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to || !ValidUnit(from) || !ValidUnit(to) {
		return v
	}
	kg := v
	switch from {
	case UnitLb:
		kg = v / kgToLb
	case UnitJin:
		kg = v / kgToJin
	}
	switch to {
	case UnitLb:
		return kg * kgToLb
	case UnitJin:
		return kg * kgToJin
	}
	return kg
}
