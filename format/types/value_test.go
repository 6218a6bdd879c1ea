package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	t.Parallel()
	now := time.Date(2005, 3, 1, 0, 0, 0, 0, time.UTC)
	stamp := FromTime(now)
	conv := converter{ts: stamp}

	for _, tc := range []struct {
		name string
		src  any
		exp  Value
		err  string
	}{
		{name: "nil", src: nil, exp: Now{}},
		{name: "int", src: 20050301, exp: Int(20050301)},
		{name: "int8", src: int8(8), exp: Int(8)},
		{name: "int16", src: int16(838), exp: Int(838)},
		{name: "int32", src: int32(184530), exp: Int(184530)},
		{name: "int64", src: int64(20050301), exp: Int(20050301)},
		{name: "uint", src: uint(20050301), exp: Int(20050301)},
		{name: "uint8", src: uint8(8), exp: Int(8)},
		{name: "uint16", src: uint16(838), exp: Int(838)},
		{name: "uint32", src: uint32(184530), exp: Int(184530)},
		{name: "uint64", src: uint64(20050301), exp: Int(20050301)},
		{name: "string", src: "2005-03-01", exp: Text("2005-03-01")},
		{name: "bytes", src: []byte("2005-03-01"), exp: Text("2005-03-01")},
		{name: "time", src: now, exp: DateTime{now}},
		{name: "time_ptr", src: &now, exp: DateTime{now}},
		{name: "nil_time_ptr", src: (*time.Time)(nil), exp: Now{}},
		{name: "timestamp", src: stamp, exp: stamp},
		{name: "value", src: Date{now}, exp: Date{now}},
		{name: "converter", src: conv, exp: Convert{conv}},
		{
			name: "uint_overflow",
			src:  uint64(math.MaxUint64),
			err:  "format: integer 18446744073709551615 out of range",
		},
		{
			name: "float",
			src:  1.5,
			err:  "format: invalid datetime 1.5 (float64) provided, could not process",
		},
		{
			name: "bool",
			src:  true,
			err:  "format: invalid datetime true (bool) provided, could not process",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			val, err := ValueOf(tc.src)
			if tc.err != "" {
				r.EqualError(err, tc.err)
				r.ErrorIs(err, ErrFormat)
				a.Nil(val)
				return
			}
			r.NoError(err)
			a.Equal(tc.exp, val)
		})
	}
}
