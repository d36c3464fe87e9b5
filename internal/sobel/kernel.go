package sobel

import "github.com/anthonynsimon/bild/convolution"

var (
	sobelX = convolution.Kernel{
		Matrix: []float64{
			-1, 0, 1,
			-2, 0, 2,
			-1, 0, 1,
		},
		Width:  3,
		Height: 3,
	}
	sobelY = convolution.Kernel{
		Matrix: []float64{
			-1, -2, -1,
			0, 0, 0,
			1, 2, 1,
		},
		Width:  3,
		Height: 3,
	}
)

// SobelX returns a copy of the horizontal-gradient kernel.
func SobelX() *convolution.Kernel {
	return cloneKernel(&sobelX)
}

// SobelY returns a copy of the vertical-gradient kernel.
func SobelY() *convolution.Kernel {
	return cloneKernel(&sobelY)
}

func cloneKernel(k *convolution.Kernel) *convolution.Kernel {
	return &convolution.Kernel{
		Matrix: append([]float64(nil), k.Matrix...),
		Width:  k.Width,
		Height: k.Height,
	}
}
