package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMAC(t *testing.T) {
	key := []byte("key")
	data := []byte("payload")

	mac := HMAC(key, data)
	assert.Len(t, mac, 32)
	assert.Equal(t, mac, HMAC(key, data))
	assert.NotEqual(t, mac, HMAC([]byte("other"), data))
	assert.NotEqual(t, mac, HMAC(key, []byte("tampered")))
}

func TestGenerateRandomBytes(t *testing.T) {
	a, err := GenerateRandomBytes(16)
	require.NoError(t, err)
	b, err := GenerateRandomBytes(16)
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestMaskSensitiveData(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "****"},
		{"abcd", "****"},
		{"abcdef", "ab****ef"},
		{"super-secret-key", "su****ey"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskSensitiveData(tt.in))
	}
}

func TestRedactSecrets(t *testing.T) {
	in := map[string]interface{}{
		"name":    "seclynx",
		"api_key": "abc123",
		"nested": map[string]interface{}{
			"password": "hunter2",
			"port":     443,
		},
	}

	out, isMap := RedactSecrets(in).(map[string]interface{})
	require.True(t, isMap)

	assert.Equal(t, "seclynx", out["name"])
	assert.Equal(t, "[REDACTED]", out["api_key"])
	nested := out["nested"].(map[string]interface{})
	assert.Equal(t, "[REDACTED]", nested["password"])
	assert.Equal(t, 443, nested["port"])
}
