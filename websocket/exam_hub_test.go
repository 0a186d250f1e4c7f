package websocket

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func TestUserIDFromToken(t *testing.T) {
	valid := uuid.New()

	tests := []struct {
		name   string
		claims jwt.Claims
		want   uuid.UUID
		ok     bool
	}{
		{"valid claim", jwt.MapClaims{"user_id": valid.String()}, valid, true},
		{"missing claim", jwt.MapClaims{"email": "student@ecolearn.com"}, uuid.Nil, false},
		{"non-string claim", jwt.MapClaims{"user_id": 42}, uuid.Nil, false},
		{"malformed uuid", jwt.MapClaims{"user_id": "not-a-uuid"}, uuid.Nil, false},
		{"wrong claims type", jwt.RegisteredClaims{}, uuid.Nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := userIDFromToken(&jwt.Token{Claims: tt.claims})
			if ok != tt.ok || got != tt.want {
				t.Errorf("userIDFromToken = (%s, %v), want (%s, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClientShutdownStopsTickerAndIsIdempotent(t *testing.T) {
	client := newAttemptClient(nil)

	select {
	case <-client.stop:
		t.Fatal("stop channel closed before shutdown")
	default:
	}

	// A reconnect takeover and the reader's own exit both call
	// shutdown; the second call must be a no-op, not a panic.
	client.shutdown()
	client.shutdown()

	select {
	case <-client.stop:
	default:
		t.Fatal("stop channel still open after shutdown")
	}
}
