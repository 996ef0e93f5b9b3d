package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorkle/chatscreen/internal/models"
)

func TestPlayerLoadAndRelease(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "note.wav")
	if err := os.WriteFile(file, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewPlayer()
	h, err := p.Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h.ID == "" || h.Locator != file {
		t.Errorf("handle = %+v", h)
	}
	if p.Loaded() != 1 {
		t.Errorf("loaded = %d", p.Loaded())
	}

	if err := p.Release(h); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := p.Release(h); err == nil {
		t.Error("second Release succeeded")
	}
	if err := p.Play(context.Background(), h); err == nil {
		t.Error("Play of a released sound succeeded")
	}
}

func TestPlayerLoadRejects(t *testing.T) {
	dir := t.TempDir()
	p := NewPlayer()

	if _, err := p.Load(filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("Load of a missing file succeeded")
	}

	ogg := filepath.Join(dir, "note.ogg")
	if err := os.WriteFile(ogg, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Load(ogg); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("Load(.ogg) err = %v", err)
	}
}

func TestPlayerWithoutInstalledPlayer(t *testing.T) {
	file := filepath.Join(t.TempDir(), "note.wav")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewPlayer()
	p.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	h, err := p.Load(file)
	if err != nil {
		t.Fatal(err)
	}
	err = p.Play(context.Background(), h)
	if err == nil || !strings.Contains(err.Error(), "aplay, paplay, ffplay") {
		t.Errorf("Play err = %v", err)
	}
	if p.IsPlaying() {
		t.Error("player reports playing after a failed start")
	}
}

func TestDeviceStopUnknownHandle(t *testing.T) {
	d := NewDevice(&Recorder{}, NewPlayer(), t.TempDir(), Settings{}, Settings{})
	if _, err := d.Stop(context.Background(), models.RecordingHandle{ID: "nope"}); err == nil {
		t.Error("Stop of an unknown recording succeeded")
	}
}

func TestDeviceBeginNeedsRecordingMode(t *testing.T) {
	d := NewDevice(&Recorder{}, NewPlayer(), t.TempDir(), Settings{}, Settings{})
	if _, err := d.BeginRecording(context.Background(), models.HighQuality); err == nil {
		t.Error("BeginRecording without Configure succeeded")
	}
	if err := d.Configure(models.AudioMode{}); err == nil {
		t.Error("Configure accepted a mode without recording")
	}
}
