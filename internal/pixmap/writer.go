package pixmap

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Encode writes img in the binary encoding: magic, dimensions and max value
// on their own lines, then the raw samples row-major. Samples are 1 byte wide
// when the max value is below 256, otherwise 2 bytes big-endian. No comment
// lines are written.
//
// The only errors returned come from w.
func Encode(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	writeHeader(bw, Binary, img)

	if img.SampleWidth() == OneByte {
		for _, v := range img.Samples {
			bw.WriteByte(byte(v))
		}
	} else {
		var b [2]byte
		for _, v := range img.Samples {
			binary.BigEndian.PutUint16(b[:], v)
			bw.Write(b[:])
		}
	}
	return bw.Flush()
}

// EncodeASCII writes img in the ASCII encoding with one decimal sample per
// line, so sample i sits on line i+4 of the output. This is the layout the
// golden reference files use.
func EncodeASCII(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	writeHeader(bw, ASCII, img)

	var num []byte
	for _, v := range img.Samples {
		num = strconv.AppendUint(num[:0], uint64(v), 10)
		num = append(num, '\n')
		bw.Write(num)
	}
	return bw.Flush()
}

// bufio.Writer keeps the first error and returns it from Flush, so the
// intermediate writes are not checked.
func writeHeader(bw *bufio.Writer, enc Encoding, img *Image) {
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", enc.Magic(), img.Width, img.Height, img.MaxValue)
}

// WriteFile creates (or truncates) path and writes img with the given
// encoding. The file is closed on every path.
func WriteFile(path string, img *Image, enc Encoding) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if enc == ASCII {
		err = EncodeASCII(f, img)
	} else {
		err = Encode(f, img)
	}
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
