package pixmap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// MaxSampleValue is the largest max value the format allows.
const MaxSampleValue = 65535

// Encoding selects between the two pixel-map encodings.
type Encoding int

const (
	// ASCII stores samples as decimal text (magic "P2").
	ASCII Encoding = iota
	// Binary stores samples as raw bytes (magic "P5").
	Binary
)

// Magic returns the header token for the encoding.
func (e Encoding) Magic() string {
	if e == ASCII {
		return "P2"
	}
	return "P5"
}

func (e Encoding) String() string {
	if e == ASCII {
		return "ascii"
	}
	return "binary"
}

// ParseEncoding maps "ascii"/"binary" (or a magic token) to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "ascii", "P2":
		return ASCII, nil
	case "binary", "P5", "":
		return Binary, nil
	}
	return Binary, fmt.Errorf("unknown encoding %q", s)
}

// SampleWidth is the number of bytes a binary sample occupies.
type SampleWidth int

const (
	OneByte SampleWidth = 1
	TwoByte SampleWidth = 2
)

// SampleWidthFor derives the binary sample width from a max value.
func SampleWidthFor(maxValue int) SampleWidth {
	if maxValue < 256 {
		return OneByte
	}
	return TwoByte
}

// Image is a grayscale raster stored row-major: the sample at (row, col) is
// Samples[row*Width+col].
type Image struct {
	Width    int
	Height   int
	MaxValue int
	Samples  []uint16
}

// New allocates a zeroed image.
func New(width, height, maxValue int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pixmap: invalid dimensions %dx%d", width, height)
	}
	if maxValue < 1 || maxValue > MaxSampleValue {
		return nil, fmt.Errorf("pixmap: invalid max value %d", maxValue)
	}
	return &Image{
		Width:    width,
		Height:   height,
		MaxValue: maxValue,
		Samples:  make([]uint16, width*height),
	}, nil
}

// At returns the sample at (row, col).
func (img *Image) At(row, col int) uint16 {
	return img.Samples[row*img.Width+col]
}

// Set stores v at (row, col).
func (img *Image) Set(row, col int, v uint16) {
	img.Samples[row*img.Width+col] = v
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	out := *img
	out.Samples = append([]uint16(nil), img.Samples...)
	return &out
}

// SampleWidth returns the binary width used to encode this image.
func (img *Image) SampleWidth() SampleWidth {
	return SampleWidthFor(img.MaxValue)
}

// Validate checks the dimensions, max value and every sample.
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("pixmap: invalid dimensions %dx%d", img.Width, img.Height)
	}
	if img.MaxValue < 1 || img.MaxValue > MaxSampleValue {
		return fmt.Errorf("pixmap: invalid max value %d", img.MaxValue)
	}
	if len(img.Samples) != img.Width*img.Height {
		return fmt.Errorf("pixmap: have %d samples, want %d", len(img.Samples), img.Width*img.Height)
	}
	for i, v := range img.Samples {
		if int(v) > img.MaxValue {
			return &RangeError{Index: i, Value: int(v), MaxValue: img.MaxValue}
		}
	}
	return nil
}

// Gray converts the image to a standard library image. Images with a max
// value below 256 become *image.Gray, others *image.Gray16; samples are
// rescaled so that MaxValue maps to full white.
func (img *Image) Gray() image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	maxv := uint32(img.MaxValue)

	if img.SampleWidth() == OneByte {
		out := image.NewGray(rect)
		for i, v := range img.Samples {
			out.Pix[i] = uint8(uint32(v) * 255 / maxv)
		}
		return out
	}

	out := image.NewGray16(rect)
	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			v := uint32(img.At(row, col)) * 65535 / maxv
			out.SetGray16(col, row, color.Gray16{Y: uint16(v)})
		}
	}
	return out
}

// FromImage converts any decoded image into an 8-bit pixmap using luminance
// grayscale conversion.
func FromImage(src image.Image) (*Image, error) {
	bounds := src.Bounds()
	out, err := New(bounds.Dx(), bounds.Dy(), 255)
	if err != nil {
		return nil, err
	}

	gray := imaging.Grayscale(src)
	for row := 0; row < out.Height; row++ {
		for col := 0; col < out.Width; col++ {
			// Grayscale output has R == G == B.
			out.Set(row, col, uint16(gray.Pix[gray.PixOffset(col, row)]))
		}
	}
	return out, nil
}
