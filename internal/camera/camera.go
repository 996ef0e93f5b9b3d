// Package camera takes still pictures from a V4L2 video device by asking
// ffmpeg to grab a single frame.
package camera

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/jorkle/chatscreen/internal/models"
)

// Camera captures JPEG stills into outDir
type Camera struct {
	device string
	ffmpeg string
	outDir string

	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New returns a camera reading from device
func New(device, ffmpeg, outDir string) *Camera {
	return &Camera{
		device:  device,
		ffmpeg:  ffmpeg,
		outDir:  outDir,
		command: exec.CommandContext,
	}
}

// RequestPermission reports whether the video device can be opened for
// reading and ffmpeg is installed.
func (c *Camera) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := exec.LookPath(c.ffmpeg); err != nil {
		return false, nil
	}
	f, err := os.Open(c.device)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open %s: %w", c.device, err)
	}
	f.Close()
	return true, nil
}

// Capture grabs one frame and returns it base64 encoded
func (c *Camera) Capture(ctx context.Context, opts models.CaptureOptions) (models.Photo, error) {
	out := filepath.Join(c.outDir, fmt.Sprintf("photo_%s.jpg", uuid.NewString()))

	var stderr bytes.Buffer
	cmd := c.command(ctx, c.ffmpeg, captureArgs(c.device, out, opts)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return models.Photo{}, fmt.Errorf("ffmpeg capture failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return Load(out)
}

// Load reads a JPEG file into a photo
func Load(file string) (models.Photo, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return models.Photo{}, fmt.Errorf("failed to read captured image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return models.Photo{}, fmt.Errorf("captured image is not decodable: %w", err)
	}

	return models.Photo{
		Base64:  base64.StdEncoding.EncodeToString(raw),
		Locator: file,
		Width:   cfg.Width,
		Height:  cfg.Height,
	}, nil
}

func captureArgs(device, out string, opts models.CaptureOptions) []string {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "v4l2", "-i", device,
		"-frames:v", "1",
		"-q:v", strconv.Itoa(qscale(opts.Quality)),
	}
	if !opts.IncludeMetadata {
		args = append(args, "-map_metadata", "-1")
	}
	return append(args, "-y", out)
}

// qscale maps a 0..1 quality onto ffmpeg's JPEG scale, where 2 is best and
// 31 is worst.
func qscale(quality float64) int {
	if quality > 1 {
		quality = 1
	}
	if quality < 0 {
		quality = 0
	}
	return 31 - int(math.Round(quality*29))
}
