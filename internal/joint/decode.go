// internal/joint/decode.go
package joint

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// ErrDecodeMismatch is returned when a block does not have BlockWords registers.
// Its Kind is "decode".
var ErrDecodeMismatch error = &decodeError{msg: "joint: register block length mismatch"}

type decodeError struct{ msg string }

func (e *decodeError) Error() string { return e.msg }

// Kind labels the error for logs.
func (e *decodeError) Kind() string { return "decode" }

// Decode converts one raw register block into a Measurement.
//
// Registers arrive as big-endian words, but the controller stores each float
// little-endian across two consecutive registers. The block is re-linearized
// word by word (big-endian) and then read back as little-endian float32.
//
// All-or-nothing: a block of the wrong length yields no measurement.
func Decode(words []uint16, at time.Time) (Measurement, error) {
	if len(words) != int(BlockWords) {
		return Measurement{}, fmt.Errorf("%w: got=%d want=%d", ErrDecodeMismatch, len(words), BlockWords)
	}

	buf := linearize(words)

	return Measurement{
		Joint1:    floatAt(buf, JointOffset+0),
		Joint2:    floatAt(buf, JointOffset+4),
		Joint3:    floatAt(buf, JointOffset+8),
		Joint4:    floatAt(buf, JointOffset+12),
		Joint5:    floatAt(buf, JointOffset+16),
		Joint6:    floatAt(buf, JointOffset+20),
		Timestamp: at.UTC(),
	}, nil
}

// EncodeWords is the inverse of Decode for the joint section.
// It returns a full block with the reserved tool section zeroed.
func EncodeWords(joints [JointCount]float32) []uint16 {
	buf := make([]byte, BlockBytes)
	for i, v := range joints {
		binary.LittleEndian.PutUint32(buf[JointOffset+i*4:], math.Float32bits(v))
	}

	words := make([]uint16, BlockWords)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(buf[i*2:])
	}
	return words
}

// ---- helpers ----

func linearize(words []uint16) []byte {
	buf := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(buf[i*2:], w)
	}
	return buf
}

func floatAt(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
}
