package server

import (
	"context"
	"testing"
)

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"8080":           ":8080",
		":9090":          ":9090",
		" 3000 ":         ":3000",
		"127.0.0.1:8080": "127.0.0.1:8080",
		"":               "",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShutdown_BeforeRunIsNoop(t *testing.T) {
	var s Server
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown on idle server: %v", err)
	}
}
