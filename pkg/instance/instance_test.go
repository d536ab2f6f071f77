package instance

import "testing"

func TestIDPrefersExplicitInstance(t *testing.T) {
	t.Setenv("MUSEUMCART_INSTANCE_ID", "api-7")
	t.Setenv("DYNO", "web.1")
	if got := ID(); got != "api-7" {
		t.Fatalf("expected api-7, got %q", got)
	}
}

func TestIDFallsBackToLocal(t *testing.T) {
	t.Setenv("MUSEUMCART_INSTANCE_ID", "")
	t.Setenv("DYNO", "")
	t.Setenv("HOSTNAME", "")
	if got := ID(); got != "local" {
		t.Fatalf("expected local, got %q", got)
	}
}
