//go:build amd64 && !purego

package frame

import "golang.org/x/sys/cpu"

// blockBytes is the size of one AVX2 register, 8 pixels.
const blockBytes = 32

// bgr0ToRGBAAVX2 converts len(src)/32 blocks from src into dst. Both slices
// must hold at least that many blocks. Defined in convert_amd64.s.
//
//go:noescape
func bgr0ToRGBAAVX2(dst, src []byte)

func detectVectorConverter() (Converter, Acceleration) {
	if !cpu.X86.HasAVX2 {
		return nil, AccelerationNone
	}
	return convertAVX2, AccelerationAVX2
}

func convertAVX2(dst, src []byte, d Descriptor) {
	if d.Packed() {
		convertRunAVX2(dst, src[:len(dst)])
		return
	}
	rowBytes := d.RowBytes()
	for y := 0; y < d.Height; y++ {
		s := y * d.Stride
		o := y * rowBytes
		convertRunAVX2(dst[o:o+rowBytes], src[s:s+rowBytes])
	}
}

// convertRunAVX2 converts a contiguous run of pixels, the vector body covers
// whole blocks and the remaining len%32 bytes go through the scalar path.
func convertRunAVX2(dst, src []byte) {
	n := len(src) &^ (blockBytes - 1)
	if n > 0 {
		bgr0ToRGBAAVX2(dst[:n], src[:n])
	}
	convertRow(dst[n:], src[n:])
}
