package app

import (
	"strings"
	"testing"

	"github.com/diegok/pixbowl/internal/config"
)

func TestHasPort(t *testing.T) {
	a := NewApp(&config.Config{})
	tests := []struct {
		addr string
		want bool
	}{
		{"localhost", false},
		{"localhost:5555", true},
		{"192.168.1.100", false},
		{"192.168.1.100:9000", true},
	}

	for _, tt := range tests {
		if got := a.hasPort(tt.addr); got != tt.want {
			t.Errorf("hasPort(%q) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestGenerateRandomName(t *testing.T) {
	a := NewApp(&config.Config{})
	name := a.generateRandomName()
	if name == "" {
		t.Fatal("expected a name")
	}
	if strings.ContainsAny(name, " \t") {
		t.Errorf("expected no whitespace in %q", name)
	}
}
