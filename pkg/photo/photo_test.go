package photo

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/pisica/pkg/errors"
)

func encode(t *testing.T, w, h int, f imaging.Format) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 120, B: 80, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		format imaging.Format
		mime   string
	}{
		{"cat.png", imaging.PNG, "image/png"},
		{"cat.jpg", imaging.JPEG, "image/jpeg"},
		{"cat.gif", imaging.GIF, "image/gif"},
		{"cat.bmp", imaging.BMP, "image/bmp"},
		{"cat.tiff", imaging.TIFF, "image/tiff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(encode(t, 8, 6, tt.format), tt.name)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if img.MIME != tt.mime {
				t.Errorf("MIME = %q, want %q", img.MIME, tt.mime)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("Bounds() = %v, want 8x6", b)
			}
		})
	}
}

func TestDecodeRejectsNonImages(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"notes.txt", []byte("not a cat, just words")},
		{"empty.png", nil},
		{"page.html", []byte("<!DOCTYPE html><html></html>")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, tt.name)
			if !errors.Is(err, errors.ErrCodeUnsupportedMedia) {
				t.Errorf("Decode() error = %v, want UNSUPPORTED_MEDIA", err)
			}
		})
	}
}

func TestDecodeCorruptImage(t *testing.T) {
	data := encode(t, 4, 4, imaging.PNG)
	_, err := Decode(data[:20], "broken.png")
	if !errors.Is(err, errors.ErrCodeUnsupportedMedia) {
		t.Errorf("Decode(truncated) error = %v, want UNSUPPORTED_MEDIA", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cat.png")
	if err := os.WriteFile(path, encode(t, 3, 3, imaging.PNG), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Name != "cat.png" {
		t.Errorf("Name = %q, want cat.png", img.Name)
	}

	_, err = Load(filepath.Join(dir, "missing.png"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDataURI(t *testing.T) {
	png, err := Decode(encode(t, 2, 2, imaging.PNG), "a.png")
	if err != nil {
		t.Fatal(err)
	}
	if uri := png.DataURI(); !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("DataURI() = %.40q", uri)
	}

	bmp, err := Decode(encode(t, 2, 2, imaging.BMP), "a.bmp")
	if err != nil {
		t.Fatal(err)
	}
	if uri := bmp.DataURI(); !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("bmp DataURI() should be re-encoded as png, got %.40q", uri)
	}
}

func TestContain(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want image.Rectangle
	}{
		{"wide shrinks", 1440, 360, image.Rect(0, 0, 720, 180)},
		{"small grows", 40, 10, image.Rect(0, 0, 720, 180)},
		{"tall grows", 30, 60, image.Rect(0, 0, 300, 600)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(encode(t, tt.w, tt.h, imaging.PNG), "p.png")
			if err != nil {
				t.Fatal(err)
			}
			if got := img.Contain(720, 600).Bounds(); got != tt.want {
				t.Errorf("Contain() bounds = %v, want %v", got, tt.want)
			}
		})
	}
}
