package lurk

import (
	"image"
	"math"
)

// Canny parameters for hiding-spot detection. The thresholds are on raw
// Sobel magnitude over 8-bit luma, so they are deliberately sensitive: UI
// chrome separators are often only a few levels apart.
const (
	cannySigma = 1.4
	cannyLow   = 0.5
	cannyHigh  = 10.0
)

// detectEdges runs a Canny edge detector over src and returns a binary mask
// (255 = edge, 0 = not) with origin at (0, 0).
func detectEdges(src *image.Gray, low, high float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return out
	}

	lum := make([]float32, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			lum[y*w+x] = float32(row[x])
		}
	}

	blurred := gaussianBlur(lum, w, h, cannySigma)
	mag, dir := sobel(blurred, w, h)
	thin := suppressNonMax(mag, dir, w, h)
	hysteresis(thin, w, h, float32(low), float32(high), out)
	return out
}

// gaussianBlur applies a separable Gaussian with edge clamping.
func gaussianBlur(src []float32, w, h int, sigma float64) []float32 {
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float32, 2*radius+1)
	var sum float32
	for i := -radius; i <= radius; i++ {
		v := float32(math.Exp(-float64(i*i) / (2 * sigma * sigma)))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	tmp := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for k := -radius; k <= radius; k++ {
				xx := min(max(x+k, 0), w-1)
				acc += src[y*w+xx] * kernel[k+radius]
			}
			tmp[y*w+x] = acc
		}
	}
	dst := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for k := -radius; k <= radius; k++ {
				yy := min(max(y+k, 0), h-1)
				acc += tmp[yy*w+x] * kernel[k+radius]
			}
			dst[y*w+x] = acc
		}
	}
	return dst
}

// Quantized gradient directions.
const (
	dirHorizontal uint8 = iota // gradient along x: compare left/right
	dirDiagDown                // gradient along (+1,+1)
	dirVertical                // gradient along y: compare up/down
	dirDiagUp                  // gradient along (-1,+1)
)

// sobel returns gradient magnitude and quantized direction. Border pixels
// are left at zero.
func sobel(p []float32, w, h int) ([]float32, []uint8) {
	mag := make([]float32, w*h)
	dir := make([]uint8, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			tl, tc, tr := p[(y-1)*w+x-1], p[(y-1)*w+x], p[(y-1)*w+x+1]
			ml, mr := p[y*w+x-1], p[y*w+x+1]
			bl, bc, br := p[(y+1)*w+x-1], p[(y+1)*w+x], p[(y+1)*w+x+1]

			gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy := (bl + 2*bc + br) - (tl + 2*tc + tr)
			mag[y*w+x] = float32(math.Hypot(float64(gx), float64(gy)))

			angle := math.Atan2(float64(gy), float64(gx)) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			switch {
			case angle < 22.5 || angle >= 157.5:
				dir[y*w+x] = dirHorizontal
			case angle < 67.5:
				dir[y*w+x] = dirDiagDown
			case angle < 112.5:
				dir[y*w+x] = dirVertical
			default:
				dir[y*w+x] = dirDiagUp
			}
		}
	}
	return mag, dir
}

// suppressNonMax keeps only pixels that are local maxima along their
// gradient direction.
func suppressNonMax(mag []float32, dir []uint8, w, h int) []float32 {
	out := make([]float32, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			m := mag[i]
			if m == 0 {
				continue
			}
			var a, b float32
			switch dir[i] {
			case dirHorizontal:
				a, b = mag[i-1], mag[i+1]
			case dirDiagDown:
				a, b = mag[i-w-1], mag[i+w+1]
			case dirVertical:
				a, b = mag[i-w], mag[i+w]
			default:
				a, b = mag[i-w+1], mag[i+w-1]
			}
			if m >= a && m >= b {
				out[i] = m
			}
		}
	}
	return out
}

// hysteresis marks every pixel at or above high, plus every pixel at or above
// low that is 8-connected to one, as an edge in out.
func hysteresis(mag []float32, w, h int, low, high float32, out *image.Gray) {
	stack := make([]int, 0, 256)
	for i, m := range mag {
		if m >= high && out.Pix[i] == 0 {
			out.Pix[i] = 255
			stack = append(stack, i)
		}
		for len(stack) > 0 {
			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := j%w, j/w
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					k := ny*w + nx
					if out.Pix[k] == 0 && mag[k] >= low {
						out.Pix[k] = 255
						stack = append(stack, k)
					}
				}
			}
		}
	}
}
