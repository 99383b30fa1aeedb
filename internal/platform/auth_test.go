package platform

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

func deterministicSigner(creds Credentials) *Signer {
	s := NewSigner(creds)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	s.nonce = func() ([]byte, error) {
		return []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, nil
	}
	return s
}

func TestSignerHeaderShape(t *testing.T) {
	creds := Credentials{APIID: "test-id", APIKey: hex.EncodeToString([]byte("secret-key"))}
	s := deterministicSigner(creds)

	req, err := http.NewRequest(http.MethodGet, "https://api.example.com/appsec/v2/applications/g/findings?page=0&size=50", nil)
	require.NoError(t, err)
	require.NoError(t, s.Sign(req))

	auth := req.Header.Get("Authorization")
	assert.True(t, strings.HasPrefix(auth, "SECLYNX-HMAC-SHA-256 "), auth)
	assert.Contains(t, auth, "id=test-id")
	assert.Contains(t, auth, "ts=1700000000000")
	assert.Contains(t, auth, "nonce=000102030405060708090a0b0c0d0e0f")
	assert.Contains(t, auth, "sig=")
}

func TestSignerSignatureValue(t *testing.T) {
	key := []byte("secret-key")
	creds := Credentials{APIID: "test-id", APIKey: hex.EncodeToString(key)}
	s := deterministicSigner(creds)

	req, err := http.NewRequest(http.MethodGet, "https://api.example.com/path?a=1", nil)
	require.NoError(t, err)
	require.NoError(t, s.Sign(req))

	nonce := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	data := "id=test-id&host=api.example.com&url=/path?a=1&method=GET"

	kNonce := utils.HMAC(key, nonce)
	kDate := utils.HMAC(kNonce, []byte("1700000000000"))
	kSig := utils.HMAC(kDate, []byte("seclynx_request_version_1"))
	want := hex.EncodeToString(utils.HMAC(kSig, []byte(data)))

	assert.True(t, strings.HasSuffix(req.Header.Get("Authorization"), "sig="+want))
}

func TestSignerIsDeterministic(t *testing.T) {
	creds := Credentials{APIID: "test-id", APIKey: hex.EncodeToString([]byte("k"))}

	headers := make([]string, 2)
	for i := range headers {
		s := deterministicSigner(creds)
		req, err := http.NewRequest(http.MethodGet, "https://api.example.com/x", nil)
		require.NoError(t, err)
		require.NoError(t, s.Sign(req))
		headers[i] = req.Header.Get("Authorization")
	}
	assert.Equal(t, headers[0], headers[1])
}

func TestSignerCoversQueryAndMethod(t *testing.T) {
	creds := Credentials{APIID: "test-id", APIKey: hex.EncodeToString([]byte("k"))}

	sign := func(method, url string) string {
		s := deterministicSigner(creds)
		req, err := http.NewRequest(method, url, nil)
		require.NoError(t, err)
		require.NoError(t, s.Sign(req))
		return req.Header.Get("Authorization")
	}

	base := sign(http.MethodGet, "https://api.example.com/x?page=0")
	assert.NotEqual(t, base, sign(http.MethodGet, "https://api.example.com/x?page=1"))
	assert.NotEqual(t, base, sign(http.MethodHead, "https://api.example.com/x?page=0"))
}

func TestSignerRejectsMissingCredentials(t *testing.T) {
	tests := []Credentials{
		{},
		{APIID: "id"},
		{APIKey: "abcd"},
	}

	for i, creds := range tests {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "https://api.example.com/", nil)
			require.NoError(t, err)
			assert.Error(t, NewSigner(creds).Sign(req))
		})
	}
}

func TestSignerRejectsNonHexKey(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://api.example.com/", nil)
	require.NoError(t, err)

	s := NewSigner(Credentials{APIID: "id", APIKey: "not hex!"})
	assert.Error(t, s.Sign(req))
}
