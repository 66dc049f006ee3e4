package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	// Check value from RFC 3720, appendix B.4: 32 bytes of zeros.
	assert.Equal(t, uint32(0x8a9136aa), CRC32C(make([]byte, 32)))
}

func TestUpdateCRC32CMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	var crc uint32
	for i := 0; i < len(data); i += 7 {
		crc = UpdateCRC32C(crc, data[i:min(i+7, len(data))])
	}
	assert.Equal(t, CRC32C(data), crc)
}

func TestCRC32CBase64(t *testing.T) {
	assert.Equal(t, "AAAAAA==", CRC32CBase64(nil))
	assert.Len(t, CRC32CBase64([]byte("x")), 8)
}
