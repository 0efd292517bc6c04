package eventstack

import (
	"strconv"
	"strings"
)

// delimiter separates serialized items. The format carries no escaping:
// an element whose text form contains the delimiter corrupts the
// round-trip. The format is frozen; see the package documentation.
const delimiter = ';'

// Codec renders elements to and from their wire text form.
type Codec[T any] interface {
	Encode(v T) (string, error)
	Decode(s string) (T, error)
}

// StringCodec passes strings through verbatim.
type StringCodec struct{}

func (StringCodec) Encode(v string) (string, error) { return v, nil }
func (StringCodec) Decode(s string) (string, error) { return s, nil }

// IntCodec renders ints in base 10.
type IntCodec struct{}

func (IntCodec) Encode(v int) (string, error) { return strconv.Itoa(v), nil }
func (IntCodec) Decode(s string) (int, error) { return strconv.Atoi(s) }

// Float64Codec renders float64s in the shortest exact form.
type Float64Codec struct{}

func (Float64Codec) Encode(v float64) (string, error) {
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

func (Float64Codec) Decode(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// encodeAll renders items (oldest first) into the wire form: every item is
// followed by the delimiter, including the last.
func encodeAll[T any](items []T, c Codec[T]) (string, error) {
	var b strings.Builder
	b.Grow(len(items) * 8)
	for _, v := range items {
		text, err := c.Encode(v)
		if err != nil {
			return "", &SerializationError{Err: err}
		}
		b.WriteString(text)
		b.WriteByte(delimiter)
	}
	return b.String(), nil
}

// decodeAll parses the wire form back into a slice, skipping empty
// segments. The whole input is decoded before anything is returned, so a
// malformed token leaves the caller's state untouched.
func decodeAll[T any](data string, c Codec[T]) ([]T, error) {
	items := make([]T, 0, strings.Count(data, string(delimiter)))
	for len(data) > 0 {
		i := strings.IndexByte(data, delimiter)
		var token string
		if i < 0 {
			token, data = data, ""
		} else {
			token, data = data[:i], data[i+1:]
		}
		if token == "" {
			continue
		}
		v, err := c.Decode(token)
		if err != nil {
			return nil, &SerializationError{Token: token, Err: err}
		}
		items = append(items, v)
	}
	return items, nil
}
