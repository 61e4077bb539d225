// internal/joint/measurement.go
package joint

import (
	"encoding/json"
	"math"
	"time"
)

// Measurement is one decoded robot pose sample.
// It is only ever built from a complete register block.
type Measurement struct {
	Joint1 float32 `json:"joint1"`
	Joint2 float32 `json:"joint2"`
	Joint3 float32 `json:"joint3"`
	Joint4 float32 `json:"joint4"`
	Joint5 float32 `json:"joint5"`
	Joint6 float32 `json:"joint6"`

	Timestamp time.Time `json:"timestamp"`

	// IsMockData is false for everything read from the device.
	IsMockData bool `json:"isMockData"`
}

// Joints returns the six angles in joint order.
func (m Measurement) Joints() [JointCount]float32 {
	return [JointCount]float32{m.Joint1, m.Joint2, m.Joint3, m.Joint4, m.Joint5, m.Joint6}
}

// MarshalJSON renders NaN and ±Inf joints as null.
// Unset controller registers (0xFFFF) decode to NaN.
func (m Measurement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Joint1     *float32  `json:"joint1"`
		Joint2     *float32  `json:"joint2"`
		Joint3     *float32  `json:"joint3"`
		Joint4     *float32  `json:"joint4"`
		Joint5     *float32  `json:"joint5"`
		Joint6     *float32  `json:"joint6"`
		Timestamp  time.Time `json:"timestamp"`
		IsMockData bool      `json:"isMockData"`
	}{
		Joint1:     finite(m.Joint1),
		Joint2:     finite(m.Joint2),
		Joint3:     finite(m.Joint3),
		Joint4:     finite(m.Joint4),
		Joint5:     finite(m.Joint5),
		Joint6:     finite(m.Joint6),
		Timestamp:  m.Timestamp,
		IsMockData: m.IsMockData,
	})
}

func finite(v float32) *float32 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &v
}
