// Package pixmap reads and writes grayscale pixel-map images.
//
// Two encodings of the format are understood:
//
//	P2  ASCII: samples are whitespace-separated decimal integers
//	P5  binary: samples are raw bytes, 1 byte each when the max value is
//	    below 256, otherwise 2 bytes each in big-endian order
//
// Both share a line-oriented text header:
//
//	P5
//	# zero or more comment lines
//	<width> <height>
//	<maxValue>
//
// The header order is fixed. Comments are only recognized between the magic
// line and the dimensions line, and only when '#' is the first character of
// the line; an indented '#' line is read as a malformed dimensions line.
//
// # Images
//
// An Image is a flat, row-major grid of uint16 samples with its width, height
// and maximum sample value. Images returned by Decode, ReadFile, New, Clone
// and FromImage are owned by the caller and share no buffer with any other
// Image. Cache.Load is the exception: every caller loading the same path gets
// the same *Image, which must be treated as read-only (Clone it to modify).
//
// # Errors
//
// Decoding failures are reported with typed errors so callers can tell them
// apart with errors.As:
//   - *FormatError: bad magic, dimensions, max value or sample token
//   - *TruncatedInputError: fewer samples than the header declares
//   - *RangeError: a sample above the declared max value (samples are never clamped)
//   - *IOError: the file could not be opened, read, created or written
//
// # Thread Safety
//
// Cache is safe for concurrent use. Decode and Encode are stateless.
package pixmap
