// Package conversion turns raw YUV and RGB frames into canonical BGRA rasters.
//
// All entry points are pure functions of their arguments. They allocate their
// own output and keep no reference to the input buffer, so concurrent calls
// need no locking.
//
// # Pipeline
//
// A YUV frame goes through these stages:
//
//   - ToPlanar unpacks packed, bit packed and V210 layouts
//   - GridFromPlane applies the luma or chroma math parameters
//   - CorrectSiting moves chroma onto the luma grid (bilinear only)
//   - Upsample brings chroma to luma resolution
//   - the ColorMatrix maps Y'CbCr to clipped 8-bit RGB
//
// Single component display skips the matrix and shows the component as grey.
//
// # Usage
//
//	s := conversion.DefaultSettings()
//	s.Matrix = conversion.BT601Limited
//	r, err := conversion.Convert(buf, pixfmt.DefaultYUV(), pixfmt.Size{Width: 352, Height: 288}, s)
//	if err != nil {
//	    return err
//	}
//	err = r.EncodeBMP(out)
//
// Precondition failures are returned as *pixfmt.ConversionError and match the
// pixfmt sentinel errors with errors.Is.
package conversion
