package credential

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssue_Format(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	codec := NewCodec(time.Hour, fixedClock(now))

	token, expiresAt, err := codec.Issue("1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("Expected expiry %v, got %v", now.Add(time.Hour), expiresAt)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(parts))
	}

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		t.Fatalf("Header not base64: %v", err)
	}
	var h map[string]string
	if err := json.Unmarshal(header, &h); err != nil {
		t.Fatalf("Header not JSON: %v", err)
	}
	if h["alg"] != "HS256" || h["typ"] != "JWT" {
		t.Errorf("Unexpected header %v", h)
	}

	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		t.Fatalf("Payload not JSON: %v", err)
	}
	if claims.UserID != "1" || claims.Exp != now.Add(time.Hour).UnixMilli() {
		t.Errorf("Unexpected claims %+v", claims)
	}

	sig, _ := base64.RawURLEncoding.DecodeString(parts[2])
	if string(sig) != "mock-signature-1" {
		t.Errorf("Expected placeholder signature, got %q", sig)
	}
}

func TestDecode_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	token, _, err := NewCodec(time.Hour, fixedClock(issuedAt)).Issue("2")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		want error
	}{
		{"fresh", issuedAt.Add(time.Minute), nil},
		{"one ms before expiry", issuedAt.Add(time.Hour - time.Millisecond), nil},
		{"exactly at expiry", issuedAt.Add(time.Hour), ErrTokenExpired},
		{"after expiry", issuedAt.Add(2 * time.Hour), ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := NewCodec(time.Hour, fixedClock(tt.now))
			claims, err := codec.Decode(token)
			if err != tt.want {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			if tt.want == nil && claims.UserID != "2" {
				t.Errorf("Expected user 2, got %q", claims.UserID)
			}
			if codec.Valid(token) != (tt.want == nil) {
				t.Errorf("Valid disagrees with Decode")
			}
		})
	}
}

func TestValid_MalformedInput(t *testing.T) {
	codec := NewCodec(time.Hour, nil)

	inputs := []string{
		"",
		"not-a-token",
		"a.b",
		"a.b.c.d",
		"!!!.###.$$$",
		base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`)) + ".e30.c2ln",
		base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`)) + "." +
			base64.RawURLEncoding.EncodeToString([]byte(`not json`)) + ".c2ln",
	}

	for _, in := range inputs {
		if codec.Valid(in) {
			t.Errorf("Expected %q to be invalid", in)
		}
	}
}
