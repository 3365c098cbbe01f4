package types

import "testing"

func TestIdentityParts(t *testing.T) {
	tests := []struct {
		name    string
		id      Identity
		simple  string
		pkg     string
	}{
		{name: "qualified", id: "org.apache.log4j.Layout", simple: "Layout", pkg: "org.apache.log4j"},
		{name: "default package", id: "Layout", simple: "Layout", pkg: ""},
		{name: "nested-ish", id: "a.B", simple: "B", pkg: "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Simple(); got != tt.simple {
				t.Fatalf("Simple = %q, want %q", got, tt.simple)
			}
			if got := tt.id.Package(); got != tt.pkg {
				t.Fatalf("Package = %q, want %q", got, tt.pkg)
			}
		})
	}
}

func TestUnresolvedNeverMatches(t *testing.T) {
	if None.Is(None) {
		t.Fatal("None must not match None")
	}
	if None.Is("org.x.Y") {
		t.Fatal("None must not match a resolved identity")
	}
	if !Identity("org.x.Y").Is("org.x.Y") {
		t.Fatal("exact names must match")
	}
	if Identity("org.x.Y").Is("org.x.Z") {
		t.Fatal("different names must not match")
	}
}
