// Package rawview interprets raw video frames in YUV and RGB sample layouts.
//
// The module is split into small packages that build on each other:
//
//   - pixfmt describes pixel formats, their byte layout and their names.
//   - sample reads and writes single samples of 8 to 16 bits.
//   - conversion turns a raw frame into a BGRA raster.
//   - raster holds the canonical BGRA raster and encodes it as BMP or PNG.
//   - difference compares two YUV frames and finds the first block that differs.
//   - guess proposes a frame size and pixel format from a file name.
//
// # Getting Started
//
// Convert one 4:2:0 frame and save it:
//
//	f, err := pixfmt.ParseYUV("YUV 4:2:0 8-bit")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	size := pixfmt.Size{Width: 1920, Height: 1080}
//	r, err := conversion.Convert(frame, f, size, conversion.DefaultSettings())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := os.Create("frame.bmp")
//	defer out.Close()
//	r.EncodeBMP(out)
//
// Compare two frames:
//
//	res, err := difference.Compute(
//	    difference.Item{Buffer: a, Format: f, Size: size},
//	    difference.Item{Buffer: b, Format: f, Size: size},
//	    difference.DefaultOptions(),
//	)
//	fmt.Printf("average MSE %.3f\n", res.AverageMSE)
//
// The rawview command in cmd/rawview wraps these packages for raw sequence files.
package rawview
