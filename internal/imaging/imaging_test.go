package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// helper function to build a gradient test image of the given size
func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), uint8((x + y) % 256), 255})
		}
	}
	return img
}

// helper function to write a png image into dir and return its path
func writePNG(t *testing.T, dir string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "test.png")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestNormalizeShape
func TestNormalizeShape(t *testing.T) {
	sizes := [][2]int{{1, 1}, {200, 100}, {128, 128}, {37, 512}}
	for _, size := range sizes {
		data := Normalize(testImage(size[0], size[1]))
		if len(data) != TensorLen {
			t.Errorf("source %dx%d: wrong tensor length %d, expected %d",
				size[0], size[1], len(data), TensorLen)
		}
		for i, v := range data {
			if v < 0 || v > 1 {
				t.Fatalf("source %dx%d: value %f at index %d out of [0,1]",
					size[0], size[1], v, i)
			}
		}
	}
}

// TestNormalizeDeterministic
func TestNormalizeDeterministic(t *testing.T) {
	img := testImage(64, 48)
	first := Normalize(img)
	second := Normalize(img)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("normalize is not deterministic at index %d", i)
		}
	}
}

// TestNormalizeChannelOrder
func TestNormalizeChannelOrder(t *testing.T) {
	// pure red image must put all signal in the first channel slot
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	data := Normalize(img)
	for i := 0; i < len(data); i += Channels {
		if data[i] < 0.99 {
			t.Fatalf("red channel value %f at index %d", data[i], i)
		}
		if data[i+1] > 0.01 || data[i+2] > 0.01 {
			t.Fatalf("green/blue leak at index %d: %f %f", i, data[i+1], data[i+2])
		}
	}
}

// TestDecode
func TestDecode(t *testing.T) {
	path := writePNG(t, t.TempDir(), testImage(20, 30))
	img, err := Decode(path)
	if err != nil {
		t.Fatalf("unable to decode %s, error %v", path, err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 30 {
		t.Errorf("wrong decoded bounds %v", img.Bounds())
	}
}

// TestDecodeMissing
func TestDecodeMissing(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "no-such-file.png"))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for missing file, got %v", err)
	}
}

// TestDecodeGarbage
func TestDecodeGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image at all"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for garbage bytes, got %v", err)
	}
}

// TestDecodeEmpty
func TestDecodeEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := os.WriteFile(path, []byte{}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for empty file, got %v", err)
	}
}
