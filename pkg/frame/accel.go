package frame

// Acceleration names the converter chosen for this process.
type Acceleration int

const (
	// AccelerationNone means only the scalar converter is available.
	AccelerationNone Acceleration = iota
	// AccelerationAVX2 means the 256 bit shuffle converter is in use.
	AccelerationAVX2
)

func (a Acceleration) String() string {
	switch a {
	case AccelerationAVX2:
		return "avx2"
	default:
		return "none"
	}
}

// Resolved once at init from the platform specific files.
var (
	defaultConverter = Converter(convertScalar)
	vectorConverter  Converter
	acceleration     = AccelerationNone
)

func init() {
	if c, accel := detectVectorConverter(); c != nil {
		vectorConverter = c
		defaultConverter = c
		acceleration = accel
	}
}

// CurrentAcceleration reports which converter DefaultConverter returns. The value
// never changes during the lifetime of the process.
func CurrentAcceleration() Acceleration {
	return acceleration
}

// VectorConverter returns the vectorized converter and true, or nil and false
// when the CPU lacks the required instructions.
func VectorConverter() (Converter, bool) {
	return vectorConverter, vectorConverter != nil
}

// DefaultConverter returns the fastest converter available.
func DefaultConverter() Converter {
	return defaultConverter
}
