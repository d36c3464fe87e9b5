package pixmap

import "fmt"

// FormatError reports a header or sample token that does not follow the
// pixel-map format.
type FormatError struct {
	// Source identifies the input, usually a file path. Empty for raw streams.
	Source string

	// Reason is a short fixed description such as "unsupported magic".
	Reason string

	// Found is the offending text, if any.
	Found string
}

func (e *FormatError) Error() string {
	msg := "pixmap: " + e.Reason
	if e.Found != "" {
		msg += fmt.Sprintf(" (found %q)", e.Found)
	}
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return msg
}

// TruncatedInputError reports a stream that ended before all declared samples
// were read.
type TruncatedInputError struct {
	Source   string
	Expected int
	Found    int
}

func (e *TruncatedInputError) Error() string {
	msg := fmt.Sprintf("pixmap: truncated input: expected %d samples, found %d", e.Expected, e.Found)
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return msg
}

// RangeError reports a sample whose value exceeds the declared max value.
type RangeError struct {
	Source   string
	Index    int
	Value    int
	MaxValue int
}

func (e *RangeError) Error() string {
	msg := fmt.Sprintf("pixmap: sample %d has value %d, exceeds max value %d", e.Index, e.Value, e.MaxValue)
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return msg
}

// IOError wraps a failure of the underlying file or stream.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("pixmap: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pixmap: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// withSource stamps the input name onto a decoding error.
func withSource(err error, source string) error {
	switch e := err.(type) {
	case *FormatError:
		e.Source = source
	case *TruncatedInputError:
		e.Source = source
	case *RangeError:
		e.Source = source
	case *IOError:
		if e.Path == "" {
			e.Path = source
		}
	}
	return err
}
