package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowAndBlock(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("attempt over the limit should be blocked")
	}
	if !l.Allow("other") {
		t.Error("a different key has its own window")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)

	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("second attempt should be blocked")
	}
	l.Reset("key")
	if !l.Allow("key") {
		t.Error("reset should open a fresh window")
	}
}

func TestLimiter_WindowExpiry(t *testing.T) {
	l := New(1, 10*time.Millisecond)

	l.Allow("key")
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("key") {
		t.Error("expired window should allow again")
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr with port", "10.0.0.1:4321", "", "", "10.0.0.1"},
		{"forwarded-for wins", "10.0.0.1:4321", "203.0.113.7, 10.0.0.2", "", "203.0.113.7"},
		{"real-ip fallback", "10.0.0.1:4321", "", "203.0.113.9", "203.0.113.9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/auth/login", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				r.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				r.Header.Set("X-Real-IP", tc.xri)
			}
			if got := ClientIP(r); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginLimiter_EmailWindow(t *testing.T) {
	ll := NewLoginLimiter()
	r := httptest.NewRequest("POST", "/auth/login", nil)

	for i := 0; i < 5; i++ {
		if ok, reason := ll.Check(r, "user@example.com"); !ok {
			t.Fatalf("attempt %d blocked: %s", i+1, reason)
		}
	}
	if ok, _ := ll.Check(r, "user@example.com"); ok {
		t.Error("sixth attempt for the same email should be blocked")
	}

	ll.ResetEmail("User@Example.com")
	if ok, _ := ll.Check(r, "user@example.com"); !ok {
		t.Error("reset should clear the email window")
	}
}
