//go:build !amd64 || purego

package frame

func detectVectorConverter() (Converter, Acceleration) {
	return nil, AccelerationNone
}
