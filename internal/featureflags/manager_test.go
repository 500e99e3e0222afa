package featureflags

import "testing"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	if !m.Enabled("a", "10.0.0.1", false) || !m.Enabled("c", "10.0.0.1", false) || !m.Enabled("e", "10.0.0.1", false) {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("b", "10.0.0.1", true) || m.Enabled("d", "10.0.0.1", true) || m.Enabled("f", "10.0.0.1", true) {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
}

func TestEnabled_UnconfiguredDefaults(t *testing.T) {
	m := NewManager("x=on")

	if !m.Enabled("missing", "10.0.0.1", true) {
		t.Fatal("unconfigured flag should fall back to the default")
	}
	if m.Enabled("missing", "10.0.0.1", false) {
		t.Fatal("unconfigured flag should fall back to the default")
	}

	var nilManager *Manager
	if !nilManager.Enabled("anything", "10.0.0.1", true) {
		t.Fatal("nil manager should fall back to the default")
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%")

	if !m.Enabled("always", "10.0.0.1", false) {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", "10.0.0.1", true) {
		t.Fatal("0% rollout should always be disabled")
	}

	first := m.Enabled("canary", "192.168.1.42", false)
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", "192.168.1.42", false); got != first {
			t.Fatal("rollout evaluation must be deterministic per subject")
		}
	}

	if m.Enabled("canary", "", false) {
		t.Fatal("percentage rollout requires a non-empty subject")
	}
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off ")

	raw := m.Raw()
	if len(raw) != 3 {
		t.Fatalf("expected 3 parsed flags, got %d", len(raw))
	}
	if raw["x"] != "on" || raw["y"] != "20%" || raw["z"] != "off" {
		t.Fatalf("unexpected raw flags: %#v", raw)
	}

	snap := m.Snapshot("10.0.0.9")
	if len(snap) != 3 {
		t.Fatalf("expected snapshot size 3, got %d", len(snap))
	}
}
