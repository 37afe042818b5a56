package pixfmt

// BitDepths lists the sample depths offered for YUV formats.
var BitDepths = []int{8, 9, 10, 12, 14, 16}

// Presets returns the commonly used YUV formats.
func Presets() []YUVFormat {
	return []YUVFormat{
		NewPlanarYUV(Subsampling420, 8, PlaneOrderYUV, LittleEndian),
		NewPlanarYUV(Subsampling420, 10, PlaneOrderYUV, LittleEndian),
		NewPlanarYUV(Subsampling422, 8, PlaneOrderYUV, LittleEndian),
		NewPlanarYUV(Subsampling444, 8, PlaneOrderYUV, LittleEndian),
	}
}

// DefaultYUV is the format assumed when nothing else is known.
func DefaultYUV() YUVFormat {
	return NewPlanarYUV(Subsampling420, 8, PlaneOrderYUV, LittleEndian)
}

// DefaultRGB is the RGB format assumed when nothing else is known.
func DefaultRGB() RGBFormat {
	return NewRGB(8, OrderRGB, AlphaNone, LayoutPacked, LittleEndian)
}
