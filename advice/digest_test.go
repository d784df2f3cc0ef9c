package advice

import "testing"

func TestDigestKeyDeterministic(t *testing.T) {
	a := DigestKey([]byte("note-123"))
	b := DigestKey([]byte("note-123"))
	if !a.Equal(b) {
		t.Fatal("DigestKey should be deterministic for the same input")
	}
}

func TestDigestKeyDistinguishesInputs(t *testing.T) {
	a := DigestKey([]byte("note-123"))
	b := DigestKey([]byte("note-124"))
	if a.Equal(b) {
		t.Fatal("distinct inputs should (overwhelmingly) produce distinct keys")
	}
}
