package platform

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

const (
	authScheme     = "SECLYNX-HMAC-SHA-256"
	requestVersion = "seclynx_request_version_1"
	nonceSize      = 16
)

// Credentials hold the API id/secret pair issued by the platform. The
// secret is hex-encoded key material, never sent on the wire.
type Credentials struct {
	APIID  string
	APIKey string
}

func (c Credentials) Valid() bool {
	return c.APIID != "" && c.APIKey != ""
}

// Signer signs outbound requests with the platform's HMAC scheme: a
// per-request nonce and timestamp are chained through HMAC-SHA-256 to
// derive a request key, which signs id/host/path/method.
type Signer struct {
	creds Credentials

	// overridable in tests for deterministic signatures
	now   func() time.Time
	nonce func() ([]byte, error)
}

func NewSigner(creds Credentials) *Signer {
	return &Signer{
		creds: creds,
		now:   time.Now,
		nonce: func() ([]byte, error) {
			return utils.GenerateRandomBytes(nonceSize)
		},
	}
}

// Sign adds the Authorization header to req. The signed payload covers the
// host, the path including the raw query, and the method, so any change to
// the request after signing invalidates it.
func (s *Signer) Sign(req *http.Request) error {
	if !s.creds.Valid() {
		return fmt.Errorf("missing API credentials")
	}

	key, err := hex.DecodeString(s.creds.APIKey)
	if err != nil {
		return fmt.Errorf("failed to decode API key: %w", err)
	}

	nonce, err := s.nonce()
	if err != nil {
		return err
	}
	ts := fmt.Sprintf("%d", s.now().UnixMilli())

	pathAndQuery := req.URL.Path
	if req.URL.RawQuery != "" {
		pathAndQuery += "?" + req.URL.RawQuery
	}

	data := fmt.Sprintf("id=%s&host=%s&url=%s&method=%s",
		s.creds.APIID, strings.ToLower(req.URL.Host), pathAndQuery, req.Method)

	kNonce := utils.HMAC(key, nonce)
	kDate := utils.HMAC(kNonce, []byte(ts))
	kSig := utils.HMAC(kDate, []byte(requestVersion))
	sig := utils.HMAC(kSig, []byte(data))

	req.Header.Set("Authorization", fmt.Sprintf("%s id=%s,ts=%s,nonce=%s,sig=%s",
		authScheme, s.creds.APIID, ts, hex.EncodeToString(nonce), hex.EncodeToString(sig)))
	return nil
}
