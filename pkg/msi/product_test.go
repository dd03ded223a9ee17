package msi

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCodeRoundTrip(t *testing.T) {
	for _, u := range []uuid.UUID{uuid.Nil, uuid.New()} {
		pc := ProductCode(u)
		parsed, err := ParseProductCode(pc.String())
		require.NoError(t, err)
		assert.Equal(t, pc, parsed)
	}
}

func TestProductCodeString(t *testing.T) {
	pc := MustParseProductCode("{90160000-008c-0000-0000-0000000ff1ce}")
	assert.Equal(t, "{90160000-008C-0000-0000-0000000FF1CE}", pc.String())
	assert.Len(t, pc.String(), ProductCodeBufferLen-1)
	assert.True(t, ProductCode{}.IsZero())
	assert.False(t, pc.IsZero())
}

func TestParseProductCode(t *testing.T) {
	want := MustParseProductCode("{23170F69-40C1-2702-1900-000001000000}")

	valid := []string{
		"{23170F69-40C1-2702-1900-000001000000}",
		"{23170f69-40c1-2702-1900-000001000000}",
		"23170F69-40C1-2702-1900-000001000000",
		"{23170F69-40C1-2702-1900-000001000000}\x00",
		"{23170F69-40C1-2702-1900-000001000000}\x00\x00\x00",
	}
	for _, s := range valid {
		pc, err := ParseProductCode(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, pc, s)
	}

	invalid := []string{
		"",
		"not-a-guid",
		"(23170F69-40C1-2702-1900-000001000000)",
		"{23170F69-40C1-2702-1900-000001000000",
		"{23170F69-40C1-2702-1900-00000100000Z}",
		"{23170F69X40C1-2702-1900-000001000000}",
		"{{23170F69-40C1-2702-1900-000001000000}}",
	}
	for _, s := range invalid {
		_, err := ParseProductCode(s)
		assert.Error(t, err, s)
	}
}

func TestProductCodeText(t *testing.T) {
	pc := ProductCode(uuid.New())
	data, err := json.Marshal(map[string]ProductCode{"code": pc})
	require.NoError(t, err)

	var decoded map[string]ProductCode
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, pc, decoded["code"])

	var bad ProductCode
	assert.Error(t, bad.UnmarshalText([]byte("nope")))
}

func TestUTF16ToString(t *testing.T) {
	assert.Equal(t, "", utf16ToString(nil))
	assert.Equal(t, "", utf16ToString([]uint16{0, 0}))
	assert.Equal(t, "ab", utf16ToString([]uint16{'a', 'b', 0, 0}))
	assert.Equal(t, "é", utf16ToString([]uint16{0x00e9, 0}))
}
