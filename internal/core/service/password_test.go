package service

import (
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword("Secret1!")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	parts := strings.Split(hash, ".")
	if len(parts) != 2 {
		t.Fatalf("expected hash.salt format, got %q", hash)
	}
	if len(parts[0]) != keyLen*2 || len(parts[1]) != saltLen*2 {
		t.Fatalf("unexpected segment lengths: %d, %d", len(parts[0]), len(parts[1]))
	}
}

func TestComparePasswords(t *testing.T) {
	hash, err := HashPassword("Secret1!")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	ok, err := ComparePasswords("Secret1!", hash)
	if err != nil {
		t.Fatalf("ComparePasswords returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching password to compare true")
	}

	ok, err = ComparePasswords("Wrong1!!", hash)
	if err != nil {
		t.Fatalf("ComparePasswords returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to compare false")
	}
}

func TestComparePasswords_DistinctSalts(t *testing.T) {
	h1, _ := HashPassword("Secret1!")
	h2, _ := HashPassword("Secret1!")
	if h1 == h2 {
		t.Fatalf("expected different salts to produce different hashes")
	}
}

func TestComparePasswords_Malformed(t *testing.T) {
	if _, err := ComparePasswords("whatever", "no-separator"); err == nil {
		t.Fatalf("expected error for malformed stored hash")
	}
	if _, err := ComparePasswords("whatever", "zz.zz"); err == nil {
		t.Fatalf("expected error for non-hex stored hash")
	}
}
