package pixmap

import (
	"bufio"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

func init() {
	image.RegisterFormat("pgm", "P2", decodeImage, decodeConfig)
	image.RegisterFormat("pgm", "P5", decodeImage, decodeConfig)
}

// Header is the metadata that precedes the sample data.
type Header struct {
	Encoding Encoding
	Width    int
	Height   int
	MaxValue int
}

// SampleCount is the number of samples the header declares.
func (h Header) SampleCount() int {
	return h.Width * h.Height
}

// ReadFile opens path, decodes it and closes it again on every path.
// Errors carry the path.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, withSource(err, path)
	}
	return img, nil
}

// Decode reads one pixel-map image from r. On failure no Image is returned.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	var samples []uint16
	if h.Encoding == ASCII {
		samples, err = readASCIISamples(br, h)
	} else {
		samples, err = readBinarySamples(br, h)
	}
	if err != nil {
		return nil, err
	}

	return &Image{
		Width:    h.Width,
		Height:   h.Height,
		MaxValue: h.MaxValue,
		Samples:  samples,
	}, nil
}

// DecodeHeader reads only the header from r.
func DecodeHeader(r io.Reader) (Header, error) {
	return readHeader(bufio.NewReader(r))
}

func readHeader(br *bufio.Reader) (Header, error) {
	var h Header

	line, err := readLine(br)
	if err != nil {
		return h, headerError(err, "unsupported magic")
	}
	switch magic := strings.TrimSpace(line); magic {
	case ASCII.Magic():
		h.Encoding = ASCII
	case Binary.Magic():
		h.Encoding = Binary
	default:
		return h, &FormatError{Reason: "unsupported magic", Found: magic}
	}

	// A comment line starts with '#' in its first column.
	line, err = readLine(br)
	for err == nil && strings.HasPrefix(line, "#") {
		line, err = readLine(br)
	}
	if err != nil {
		return h, headerError(err, "malformed dimensions")
	}
	if h.Width, h.Height, err = parseDimensions(strings.TrimSpace(line)); err != nil {
		return h, err
	}

	line, err = readLine(br)
	if err != nil {
		return h, headerError(err, "malformed maxvalue")
	}
	line = strings.TrimSpace(line)
	maxValue, err := strconv.Atoi(line)
	if err != nil || maxValue < 1 || maxValue > MaxSampleValue {
		return h, &FormatError{Reason: "malformed maxvalue", Found: line}
	}
	h.MaxValue = maxValue

	return h, nil
}

func parseDimensions(line string) (int, int, error) {
	bad := &FormatError{Reason: "malformed dimensions", Found: line}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, bad
	}
	width, err := strconv.Atoi(fields[0])
	if err != nil || width <= 0 {
		return 0, 0, bad
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil || height <= 0 {
		return 0, 0, bad
	}
	if width > math.MaxInt32/height {
		return 0, 0, bad
	}
	return width, height, nil
}

// readLine returns the next header line without its line terminator.
// Leading whitespace is kept. A final line without a newline is still
// returned; io.EOF is only reported when nothing was left to read.
func readLine(br *bufio.Reader) (string, error) {
	s, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// headerError turns a read failure inside the header into either a format
// error (the stream just ended) or an I/O error.
func headerError(err error, reason string) error {
	if errors.Is(err, io.EOF) {
		return &FormatError{Reason: reason}
	}
	return &IOError{Op: "read", Err: err}
}

// Sample storage grows as data arrives, at most chunkSamples at a time, so a
// short input with huge declared dimensions fails as truncated without first
// allocating the full raster.
const chunkSamples = 1 << 16

// maxSampleToken bounds an ASCII sample token. Valid samples need at most
// five digits; the slack allows leading zeros.
const maxSampleToken = 64

func readASCIISamples(br *bufio.Reader, h Header) ([]uint16, error) {
	n := h.SampleCount()
	samples := make([]uint16, 0, min(n, chunkSamples))

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, maxSampleToken), maxSampleToken)
	sc.Split(bufio.ScanWords)
	for len(samples) < n && sc.Scan() {
		tok := sc.Text()
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			return nil, &FormatError{Reason: "malformed sample", Found: tok}
		}
		if v > h.MaxValue {
			return nil, &RangeError{Index: len(samples), Value: v, MaxValue: h.MaxValue}
		}
		samples = append(samples, uint16(v))
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &FormatError{Reason: "malformed sample", Found: "token longer than 64 bytes"}
		}
		return nil, &IOError{Op: "read", Err: err}
	}
	if len(samples) < n {
		return nil, &TruncatedInputError{Expected: n, Found: len(samples)}
	}
	return samples, nil
}

func readBinarySamples(br *bufio.Reader, h Header) ([]uint16, error) {
	n := h.SampleCount()
	width := int(SampleWidthFor(h.MaxValue))

	samples := make([]uint16, 0, min(n, chunkSamples))
	buf := make([]byte, min(n, chunkSamples)*width)
	for len(samples) < n {
		chunk := buf[:min(n-len(samples), chunkSamples)*width]
		got, err := io.ReadFull(br, chunk)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &TruncatedInputError{Expected: n, Found: len(samples) + got/width}
		}
		if err != nil {
			return nil, &IOError{Op: "read", Err: err}
		}

		for i := 0; i < len(chunk); i += width {
			var v uint16
			if width == 1 {
				v = uint16(chunk[i])
			} else {
				v = binary.BigEndian.Uint16(chunk[i:])
			}
			if int(v) > h.MaxValue {
				return nil, &RangeError{Index: len(samples), Value: int(v), MaxValue: h.MaxValue}
			}
			samples = append(samples, v)
		}
	}
	return samples, nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return img.Gray(), nil
}

func decodeConfig(r io.Reader) (image.Config, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	model := color.GrayModel
	if SampleWidthFor(h.MaxValue) == TwoByte {
		model = color.Gray16Model
	}
	return image.Config{ColorModel: model, Width: h.Width, Height: h.Height}, nil
}
