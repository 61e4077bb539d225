// internal/joint/decode_test.go
package joint

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 3, 1, 12, 0, 0, 123_000_000, time.UTC)

func TestDecode_FirstJoint45(t *testing.T) {
	// 45.0 = 0x42340000; little-endian bytes 00 00 34 42 -> words 0x0000, 0x3442
	words := make([]uint16, BlockWords)
	words[0] = 0x0000
	words[1] = 0x3442

	m, err := Decode(words, at)
	require.NoError(t, err)

	assert.Equal(t, float32(45.0), m.Joint1)
	assert.Equal(t, float32(0), m.Joint2)
	assert.Equal(t, float32(0), m.Joint3)
	assert.Equal(t, float32(0), m.Joint4)
	assert.Equal(t, float32(0), m.Joint5)
	assert.Equal(t, float32(0), m.Joint6)
	assert.False(t, m.IsMockData)
	assert.Equal(t, at, m.Timestamp)
}

func TestDecode_RoundTrip(t *testing.T) {
	joints := [JointCount]float32{45, -90.5, 0.125, 179.99, -0.001, 12345.678}

	words := EncodeWords(joints)
	require.Len(t, words, int(BlockWords))

	m, err := Decode(words, at)
	require.NoError(t, err)
	assert.Equal(t, joints, m.Joints())
}

func TestDecode_ReservedToolSectionIgnored(t *testing.T) {
	joints := [JointCount]float32{1, 2, 3, 4, 5, 6}
	words := EncodeWords(joints)

	// garbage in x, y, z
	for i := ToolOffset / 2; i < int(BlockWords); i++ {
		words[i] = 0xFFFF
	}

	m, err := Decode(words, at)
	require.NoError(t, err)
	assert.Equal(t, joints, m.Joints())
}

func TestDecode_Deterministic(t *testing.T) {
	words := []uint16{
		0x1234, 0x5678, 0x9ABC, 0xDEF0, 0x0F0F, 0xF0F0,
		0x0001, 0x0002, 0x0003, 0x0004, 0x0005, 0x0006,
		0x0007, 0x0008, 0x0009, 0x000A, 0x000B, 0x000C,
	}

	first, err := Decode(words, at)
	require.NoError(t, err)

	// unrelated decode in between must not affect the result
	_, _ = Decode(EncodeWords([JointCount]float32{9, 9, 9, 9, 9, 9}), at)

	second, err := Decode(words, at)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecode_LengthMismatch(t *testing.T) {
	for _, n := range []int{0, 1, 12, 17, 19, 36} {
		m, err := Decode(make([]uint16, n), at)
		if !errors.Is(err, ErrDecodeMismatch) {
			t.Fatalf("len=%d: expected ErrDecodeMismatch, got %v", n, err)
		}
		assert.Equal(t, Measurement{}, m)
	}
}

func TestDecode_StampsUTC(t *testing.T) {
	local := time.Date(2026, 3, 1, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	m, err := Decode(make([]uint16, BlockWords), local)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, m.Timestamp.Location())
	assert.True(t, m.Timestamp.Equal(local))
}
