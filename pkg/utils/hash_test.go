package utils

import "testing"

func TestSumSHA256Hex(t *testing.T) {
	got := SumSHA256Hex([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}
