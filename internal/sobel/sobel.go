package sobel

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/pixmap-sobel-mcp/internal/pixmap"
)

// OutputMaxValue is the max value of every image Apply produces.
const OutputMaxValue = 255

// Apply returns the normalized gradient-magnitude map of img. The output has
// the same dimensions as img and a max value of 255.
func Apply(img *pixmap.Image) (*pixmap.Image, error) {
	mags, err := Magnitudes(img)
	if err != nil {
		return nil, err
	}
	return Quantize(mags, img.Width, img.Height)
}

// Magnitudes computes the raw gradient magnitude sqrt(Gx² + Gy²) of every
// pixel, row-major. Neighbors outside the image are read as 0.
func Magnitudes(img *pixmap.Image) ([]float64, error) {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil, errors.New("sobel: empty image")
	}
	if len(img.Samples) != img.Width*img.Height {
		return nil, errors.New("sobel: sample count does not match dimensions")
	}

	width, height := img.Width, img.Height
	mags := make([]float64, width*height)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			var gx, gy float64
			for ky := 0; ky < 3; ky++ {
				y := row + ky - 1
				if y < 0 || y >= height {
					continue
				}
				for kx := 0; kx < 3; kx++ {
					x := col + kx - 1
					if x < 0 || x >= width {
						continue
					}
					v := float64(img.Samples[y*width+x])
					gx += sobelX.At(kx, ky) * v
					gy += sobelY.At(kx, ky) * v
				}
			}
			mags[row*width+col] = math.Sqrt(gx*gx + gy*gy)
		}
	}
	return mags, nil
}

// MaxMagnitude returns the largest value in mags, or 0 for an empty slice.
func MaxMagnitude(mags []float64) float64 {
	if len(mags) == 0 {
		return 0
	}
	return floats.Max(mags)
}

// Quantize normalizes raw magnitudes against their maximum and maps them to
// 0..255 as floor(G / Gmax * 255). If the maximum is 0 the result is all
// zeros.
func Quantize(mags []float64, width, height int) (*pixmap.Image, error) {
	out, err := pixmap.New(width, height, OutputMaxValue)
	if err != nil {
		return nil, err
	}
	if len(mags) != width*height {
		return nil, errors.New("sobel: magnitude count does not match dimensions")
	}

	gmax := MaxMagnitude(mags)
	if gmax == 0 {
		return out, nil
	}

	for i, g := range mags {
		q := math.Floor(g / gmax * OutputMaxValue)
		if q < 0 {
			q = 0
		} else if q > OutputMaxValue {
			q = OutputMaxValue
		}
		out.Samples[i] = uint16(q)
	}
	return out, nil
}
