package enums

// DeviceType classifies the device attached to a repair order.
type DeviceType string

const (
	DeviceTypePhone   DeviceType = "phone"
	DeviceTypeTablet  DeviceType = "tablet"
	DeviceTypeLaptop  DeviceType = "laptop"
	DeviceTypeDesktop DeviceType = "desktop"
	DeviceTypeOther   DeviceType = "other"
)

var deviceTypeLabels = map[DeviceType]string{
	DeviceTypePhone:   "Celular",
	DeviceTypeTablet:  "Tablet",
	DeviceTypeLaptop:  "Notebook",
	DeviceTypeDesktop: "PC de Escritorio",
	DeviceTypeOther:   "Otro",
}

// String implements fmt.Stringer.
func (d DeviceType) String() string {
	return string(d)
}

// Label returns the display name.
func (d DeviceType) Label() string {
	if label, ok := deviceTypeLabels[d]; ok {
		return label
	}
	return string(d)
}

// IsValid reports whether the value is a known DeviceType.
func (d DeviceType) IsValid() bool {
	_, ok := deviceTypeLabels[d]
	return ok
}
