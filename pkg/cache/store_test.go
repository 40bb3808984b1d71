package cache

import (
	"testing"
	"time"
)

func TestPutGetRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := s.Put("snapshot", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := s.Get("snapshot")
	if !ok {
		t.Fatal("expected entry to be present")
	}
	if string(got) != `{"n":1}` {
		t.Errorf("Get = %q", got)
	}
}

func TestPutOpaqueBytes(t *testing.T) {
	s, err := NewStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	// Payloads are opaque; they need not be valid JSON.
	raw := []byte{0x00, 'x', 0xFF, '{'}
	if err := s.Put("raw", raw); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := s.Get("raw")
	if !ok {
		t.Fatal("expected entry to be present")
	}
	if string(got) != string(raw) {
		t.Errorf("Get = %v, want %v", got, raw)
	}
}

func TestGetMissing(t *testing.T) {
	s, err := NewStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, ok := s.Get("nope"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestTTLExpiry(t *testing.T) {
	s, err := NewStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := s.PutWithTTL("short", []byte("x"), 10*time.Millisecond); err != nil {
		t.Fatalf("PutWithTTL: %v", err)
	}
	if _, ok := s.Get("short"); !ok {
		t.Fatal("entry should be live immediately after write")
	}
	time.Sleep(30 * time.Millisecond)
	if _, ok := s.Get("short"); ok {
		t.Error("entry should have expired")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s, err := NewStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.PutWithTTL("forever", []byte("x"), 0); err != nil {
		t.Fatalf("PutWithTTL: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := s.Get("forever"); !ok {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestDelete(t *testing.T) {
	s, err := NewStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.Delete("k")
	if _, ok := s.Get("k"); ok {
		t.Error("expected miss after delete")
	}
	s.Delete("k") // second delete is a no-op
}

func TestTypedHelpers(t *testing.T) {
	s, err := NewStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := PutTyped(s, "p", payload{Name: "a", Count: 3}); err != nil {
		t.Fatalf("PutTyped: %v", err)
	}
	got, ok := GetTyped[payload](s, "p")
	if !ok {
		t.Fatal("expected typed hit")
	}
	if got.Name != "a" || got.Count != 3 {
		t.Errorf("GetTyped = %+v", got)
	}
}

func TestTypedMismatchDropsEntry(t *testing.T) {
	s, err := NewStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.Put("bad", []byte(`"just a string"`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	type obj struct{ N int }
	if _, ok := GetTyped[obj](s, "bad"); ok {
		t.Fatal("expected typed miss on shape mismatch")
	}
	if _, ok := s.Get("bad"); ok {
		t.Error("mismatched entry should have been dropped")
	}
}
