package qrcode

import (
	"bytes"
	"image/png"
	"testing"
)

func TestGenerate(t *testing.T) {
	data, err := Generate("http://localhost:8080/lobby.html?game=abcd1234", 128)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w := img.Bounds().Dx(); w != 128 {
		t.Errorf("width: got %d, want 128", w)
	}
}

func TestGenerateDefaultSize(t *testing.T) {
	data, err := Generate("http://localhost:8080/", 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w := img.Bounds().Dx(); w != DefaultSize {
		t.Errorf("width: got %d, want %d", w, DefaultSize)
	}
}
