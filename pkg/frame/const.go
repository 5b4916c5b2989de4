package frame

type Format string

const (
	// FormatBGR0 is the 4 bytes per pixel layout produced by X11 ZPixmap
	// images and DXGI desktop duplication: blue, green, red, then one unused
	// byte. https://www.fourcc.org/pixel-format/rgb-bi_rgb/
	FormatBGR0 Format = "BGR0"
	// FormatRGBA is the interleaved layout used by image.RGBA.
	FormatRGBA Format = "RGBA"
)

// FormatXRGB32 is an alias of FormatBGR0 using the little endian word name.
const FormatXRGB32 = FormatBGR0

// Pixel layout of FormatBGR0.
const (
	BytesPerPixel = 4

	OffsetBlue  = 0
	OffsetGreen = 1
	OffsetRed   = 2
	// OffsetPad is never read as alpha. Converters force it to Opaque.
	OffsetPad = 3

	Opaque = 0xFF
)
