package enums

// Severity ranks a notification for display purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}
