package tokenize

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	got := Tokenize("Rust is fast, safe, and concurrent!", Default())
	want := []string{"rust", "fast", "safe", "concurrent"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize("", Default()); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestTokenizeMinLen(t *testing.T) {
	opts := Options{Lowercase: true, MinLen: 3}
	got := Tokenize("a go is ok programming", opts)
	want := []string{"programming"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeNGram(t *testing.T) {
	opts := Options{Lowercase: true, NGramSize: 2}
	got := Tokenize("quick brown fox jumps", opts)
	want := []string{"quick brown", "brown fox", "fox jumps"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeUnicode(t *testing.T) {
	got := Tokenize("café résumé", Options{Lowercase: true})
	want := []string{"café", "résumé"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	opts := Default()
	a := Tokenize("rust fast safe systems programming", opts)
	b := Tokenize("rust fast safe systems programming", opts)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("tokenize not deterministic: %v vs %v", a, b)
	}
}
