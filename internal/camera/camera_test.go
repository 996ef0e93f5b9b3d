package camera

import (
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/jorkle/chatscreen/internal/models"
)

func TestQscale(t *testing.T) {
	tests := []struct {
		quality float64
		want    int
	}{
		{1, 2},
		{0, 31},
		{0.5, 16},
		{2, 2},
		{-1, 31},
	}
	for _, tt := range tests {
		if got := qscale(tt.quality); got != tt.want {
			t.Errorf("qscale(%v) = %d, want %d", tt.quality, got, tt.want)
		}
	}
}

func TestCaptureArgs(t *testing.T) {
	args := captureArgs("/dev/video0", "/tmp/out.jpg", models.CaptureOptions{Quality: 1})
	if !slices.Contains(args, "-map_metadata") {
		t.Errorf("metadata not stripped: %v", args)
	}
	if args[len(args)-1] != "/tmp/out.jpg" {
		t.Errorf("output not last: %v", args)
	}
	i := slices.Index(args, "-q:v")
	if i < 0 || args[i+1] != "2" {
		t.Errorf("quality args: %v", args)
	}

	args = captureArgs("/dev/video0", "/tmp/out.jpg", models.CaptureOptions{Quality: 1, IncludeMetadata: true})
	if slices.Contains(args, "-map_metadata") {
		t.Errorf("metadata stripped although requested: %v", args)
	}
}

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "shot.jpg")
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	f, err := os.Create(file)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
	f.Close()

	photo, err := Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if photo.Width != 8 || photo.Height != 6 || photo.Locator != file {
		t.Errorf("photo = %dx%d at %s", photo.Width, photo.Height, photo.Locator)
	}
	raw, err := base64.StdEncoding.DecodeString(photo.Base64)
	if err != nil {
		t.Fatal(err)
	}
	if photo.Size() != len(raw) {
		t.Errorf("Size() = %d, decoded = %d", photo.Size(), len(raw))
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	file := filepath.Join(t.TempDir(), "shot.jpg")
	if err := os.WriteFile(file, []byte("not a jpeg"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(file); err == nil {
		t.Error("Load accepted a non-image")
	}
}

func TestRequestPermissionMissingDevice(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "video9"), "ffmpeg", t.TempDir())
	ok, err := c.RequestPermission(context.Background())
	if err != nil || ok {
		t.Errorf("RequestPermission = %v, %v; want false, nil", ok, err)
	}
}
