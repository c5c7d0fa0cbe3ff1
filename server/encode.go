package server

import (
	"math"
	"strconv"
)

// score is a similarity that encodes NaN as JSON null.
type score float32

func (s score) MarshalJSON() ([]byte, error) {
	return appendFloat(nil, float32(s)), nil
}

// vector is an embedding whose non-finite components encode as null.
type vector []float32

func (v vector) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}

	buf := make([]byte, 0, 2+len(v)*10)
	buf = append(buf, '[')
	for i, f := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendFloat(buf, f)
	}
	return append(buf, ']'), nil
}

func appendFloat(buf []byte, f float32) []byte {
	f64 := float64(f)
	if math.IsNaN(f64) || math.IsInf(f64, 0) {
		return append(buf, "null"...)
	}
	return strconv.AppendFloat(buf, f64, 'g', -1, 32)
}
