package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty name", "", 0xef46db3751d8e999},
		{"short name", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestBytes(t *testing.T) {
	empty := []byte{0x05, 0x00, 0x00, 0x00, 0x00}
	withField := []byte{0x0C, 0x00, 0x00, 0x00, 0x10, 'a', 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}

	assert.Equal(t, Bytes(empty), Bytes(append([]byte(nil), empty...)))
	assert.NotEqual(t, Bytes(empty), Bytes(withField))

	for _, name := range []string{"", "a", "field_name", "$meta"} {
		assert.Equal(t, ID(name), Bytes([]byte(name)))
	}
}

func BenchmarkID(b *testing.B) {
	name := "sensor_reading_value"
	for b.Loop() {
		ID(name)
	}
}
