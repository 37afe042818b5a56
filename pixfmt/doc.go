// Package pixfmt describes raw YUV and RGB pixel formats.
//
// A descriptor is an immutable value that pins down one exact byte layout:
// subsampling, sample depth, endianness, planar or packed storage, plane or
// packing order, bit packing and chroma siting. Descriptors are checked with
// Validate on every use; nothing is repaired or guessed.
//
// # Names
//
// Every valid descriptor has a canonical name that parses back to an equal
// value. This is the form persisted by callers:
//
//	f, err := pixfmt.ParseYUV("YUV 4:2:0 10-bit LE")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(f.Name()) // YUV 4:2:0 10-bit LE
//
// RGB names follow "[A]<order>[A] <bits>bit[ planar][ BE]", e.g. "BGRA 8bit".
//
// # Byte layout
//
// BytesPerFrame returns the size of one frame. Planes returns strided views
// of every component for byte aligned layouts, including packed ones:
//
//	planes, err := f.Planes(pixfmt.Size{Width: 176, Height: 144})
//
// # Errors
//
// All failures wrap one of the sentinel errors in errors.go. CanConvert
// reports every violated precondition at once through ConversionError.
package pixfmt
