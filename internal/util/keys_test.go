package util

import "testing"

func TestValidKey(t *testing.T) {
	for _, k := range []string{"a", "user:1", "日本語", "with space inside"} {
		if !ValidKey(k) {
			t.Errorf("ValidKey(%q) = false", k)
		}
	}
	for _, k := range []string{"", " ", "\t\n", "\xff\xfe"} {
		if ValidKey(k) {
			t.Errorf("ValidKey(%q) = true", k)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("", "k"); got != "k" {
		t.Fatalf("Join without namespace: %q", got)
	}
	if got := Join("user", "k"); got != "user:k" {
		t.Fatalf("Join with namespace: %q", got)
	}
}
