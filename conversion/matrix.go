package conversion

import (
	"fmt"
	"strings"
)

// ColorMatrix holds integer YUV to RGB coefficients in 16-bit fixed point.
//
//	R = Y' * YScale + V' * CrToR
//	G = Y' * YScale + U' * CbToG + V' * CrToG
//	B = Y' * YScale + U' * CbToB
type ColorMatrix struct {
	Name      string
	YScale    int
	CrToR     int
	CbToG     int
	CrToG     int
	CbToB     int
	FullRange bool
}

// The six supported coefficient sets.
var (
	BT709Limited  = ColorMatrix{Name: "ITU-R.BT709", YScale: 76309, CrToR: 117489, CbToG: -13975, CrToG: -34925, CbToB: 138438}
	BT709Full     = ColorMatrix{Name: "ITU-R.BT709 Full Range", YScale: 65536, CrToR: 103206, CbToG: -12276, CrToG: -30679, CbToB: 121609, FullRange: true}
	BT601Limited  = ColorMatrix{Name: "ITU-R.BT601", YScale: 76309, CrToR: 104597, CbToG: -25675, CrToG: -53279, CbToB: 132201}
	BT601Full     = ColorMatrix{Name: "ITU-R.BT601 Full Range", YScale: 65536, CrToR: 91881, CbToG: -22553, CrToG: -46802, CbToB: 116130, FullRange: true}
	BT2020Limited = ColorMatrix{Name: "ITU-R.BT2020", YScale: 76309, CrToR: 110014, CbToG: -12277, CrToG: -42626, CbToB: 140363}
	BT2020Full    = ColorMatrix{Name: "ITU-R.BT2020 Full Range", YScale: 65536, CrToR: 96639, CbToG: -10784, CrToG: -37444, CbToB: 123299, FullRange: true}
)

// ColorMatrices lists the supported matrices in presentation order.
var ColorMatrices = []ColorMatrix{BT709Limited, BT709Full, BT601Limited, BT601Full, BT2020Limited, BT2020Full}

// LookupColorMatrix finds a matrix by its name or a short alias such as
// "bt601", "709-full" or "bt2020f".
func LookupColorMatrix(name string) (ColorMatrix, error) {
	for _, m := range ColorMatrices {
		if m.Name == name {
			return m, nil
		}
	}
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", ".", "", " ", "").Replace(name))
	key = strings.TrimPrefix(strings.TrimPrefix(key, "itur"), "bt")
	full := false
	for _, suffix := range []string{"fullrange", "full", "f"} {
		if strings.HasSuffix(key, suffix) {
			key, full = strings.TrimSuffix(key, suffix), true
			break
		}
	}
	key = strings.TrimSuffix(key, "limited")
	switch {
	case key == "709" && !full:
		return BT709Limited, nil
	case key == "709":
		return BT709Full, nil
	case key == "601" && !full:
		return BT601Limited, nil
	case key == "601":
		return BT601Full, nil
	case key == "2020" && !full:
		return BT2020Limited, nil
	case key == "2020":
		return BT2020Full, nil
	}
	return ColorMatrix{}, fmt.Errorf("unknown color matrix %q", name)
}

// yuvToRGB converts one sample triple of the given depth into clipped 8-bit RGB.
//
// Above 14 bits the inputs drop two bits first; the products would otherwise
// overflow 32-bit intermediate precision.
func (m ColorMatrix) yuvToRGB(y, u, v, bits int) (r, g, b int) {
	depth := bits
	if bits > 14 {
		y, u, v = y>>2, u>>2, v>>2
		depth = bits - 2
	}
	yOffset := 16 << (depth - 8)
	if m.FullRange {
		yOffset = 0
	}
	cZero := 128 << (depth - 8)
	shift := 16 + depth - 8

	yt := (y - yOffset) * m.YScale
	uc, vc := u-cZero, v-cZero
	r = clip((yt+vc*m.CrToR)>>shift, 0, 255)
	g = clip((yt+uc*m.CbToG+vc*m.CrToG)>>shift, 0, 255)
	b = clip((yt+uc*m.CbToB)>>shift, 0, 255)
	return r, g, b
}

func clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
