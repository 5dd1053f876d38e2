package semantics

import (
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("Bio: hello")
	b := Fingerprint("Bio: hello")
	c := Fingerprint("Bio: goodbye")

	if a != b {
		t.Fatalf("same text produced different fingerprints: %q vs %q", a, b)
	}
	if a == c {
		t.Fatalf("different text produced equal fingerprints: %q", a)
	}
	if !strings.HasPrefix(a, FingerprintVersion+":") {
		t.Fatalf("fingerprint %q missing version prefix %q", a, FingerprintVersion)
	}
}
