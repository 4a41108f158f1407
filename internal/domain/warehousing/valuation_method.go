package warehousing

// ValuationMethod defines how outbound stock is costed against lots
type ValuationMethod string

const (
	// ValuationMethodFIFO consumes the oldest lots first (by acquisition time)
	ValuationMethodFIFO ValuationMethod = "FIFO"
	// ValuationMethodLIFO consumes the newest lots first
	ValuationMethodLIFO ValuationMethod = "LIFO"
	// ValuationMethodAVG costs at the weighted average across open lots
	ValuationMethodAVG ValuationMethod = "AVG"
)

// IsValid checks if the valuation method is valid
func (m ValuationMethod) IsValid() bool {
	switch m {
	case ValuationMethodFIFO, ValuationMethodLIFO, ValuationMethodAVG:
		return true
	}
	return false
}

// String returns the string representation
func (m ValuationMethod) String() string {
	return string(m)
}

// AllValuationMethods returns all valid valuation methods
func AllValuationMethods() []ValuationMethod {
	return []ValuationMethod{
		ValuationMethodFIFO,
		ValuationMethodLIFO,
		ValuationMethodAVG,
	}
}

// ParseValuationMethod validates a raw method string
func ParseValuationMethod(raw string) (ValuationMethod, error) {
	m := ValuationMethod(raw)
	if !m.IsValid() {
		return "", newInvalidMethodError(raw)
	}
	return m, nil
}
