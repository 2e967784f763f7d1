package auth

import (
	"testing"
	"time"
)

var testSecret = []byte("test-secret")

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	token, err := codec.Encode(42)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	claims := codec.Decode(token)
	if claims == nil {
		t.Fatal("decode returned nil for a fresh token")
	}
	if claims.UserID != 42 {
		t.Fatalf("user id = %d, want 42", claims.UserID)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("timestamps missing from decoded claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("lifetime = %v, want 1h", got)
	}
}

func TestDecodeExpiredToken(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := issued
	codec := NewCodecAt(testSecret, time.Hour, func() time.Time { return clock })

	token, err := codec.Encode(7)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	clock = issued.Add(2 * time.Hour)
	if codec.Decode(token) != nil {
		t.Fatal("decode accepted a token past its expiry")
	}
}

func TestDecodeExpiryBoundaryInclusive(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := issued
	codec := NewCodecAt(testSecret, time.Hour, func() time.Time { return clock })

	token, err := codec.Encode(7)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	// now == exp counts as expired
	clock = issued.Add(time.Hour)
	if codec.Decode(token) != nil {
		t.Fatal("decode accepted a token at exactly its expiry instant")
	}

	clock = issued.Add(time.Hour - time.Second)
	if codec.Decode(token) == nil {
		t.Fatal("decode rejected a token one second before expiry")
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	token, err := NewCodec([]byte("other-secret"), time.Hour).Encode(7)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	if NewCodec(testSecret, time.Hour).Decode(token) != nil {
		t.Fatal("decode accepted a token signed with a different secret")
	}
}

func TestDecodeGarbage(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)
	for _, token := range []string{"", "not-a-token", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		if codec.Decode(token) != nil {
			t.Fatalf("decode accepted garbage token %q", token)
		}
	}
}

func TestEncodeRejectsZeroUser(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)
	if _, err := codec.Encode(0); err == nil {
		t.Fatal("encode accepted user id 0")
	}
}
