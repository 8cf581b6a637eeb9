package enums

import "fmt"

// MovementType is the direction of a stock adjustment.
type MovementType string

const (
	MovementTypeIn         MovementType = "in"
	MovementTypeOut        MovementType = "out"
	MovementTypeAdjustment MovementType = "adjustment"
)

var movementTypeLabels = map[MovementType]string{
	MovementTypeIn:         "Entrada",
	MovementTypeOut:        "Salida",
	MovementTypeAdjustment: "Ajuste",
}

// String implements fmt.Stringer.
func (m MovementType) String() string {
	return string(m)
}

// Label returns the display name.
func (m MovementType) Label() string {
	if label, ok := movementTypeLabels[m]; ok {
		return label
	}
	return string(m)
}

// IsValid reports whether the value is a known MovementType.
func (m MovementType) IsValid() bool {
	_, ok := movementTypeLabels[m]
	return ok
}

// ParseMovementType converts raw input into a MovementType.
func ParseMovementType(value string) (MovementType, error) {
	movement := MovementType(value)
	if !movement.IsValid() {
		return "", fmt.Errorf("invalid movement type %q", value)
	}
	return movement, nil
}
