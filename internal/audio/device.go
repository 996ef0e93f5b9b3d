package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jorkle/chatscreen/internal/models"
)

// Device is the desktop microphone and speaker. Recordings are written as
// WAV files into a temp directory.
type Device struct {
	recorder *Recorder
	player   *Player
	tempDir  string
	settings Settings
	mode     models.AudioMode
}

// NewDevice creates a device recording high quality takes with settings
func NewDevice(recorder *Recorder, player *Player, tempDir string, settings Settings) *Device {
	return &Device{
		recorder: recorder,
		player:   player,
		tempDir:  tempDir,
		settings: settings,
	}
}

// RequestPermission reports whether a microphone can be opened. A desktop
// has no permission prompt; a missing input device counts as a denial.
func (d *Device) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return d.recorder.InputAvailable()
}

// Configure applies the audio session mode
func (d *Device) Configure(mode models.AudioMode) error {
	if !mode.AllowsRecording {
		return fmt.Errorf("audio mode does not allow recording")
	}
	d.mode = mode
	return nil
}

// BeginRecording opens the microphone with the settings of preset
func (d *Device) BeginRecording(ctx context.Context, preset models.QualityPreset) (models.RecordingHandle, error) {
	if err := ctx.Err(); err != nil {
		return models.RecordingHandle{}, err
	}
	if !d.mode.AllowsRecording {
		return models.RecordingHandle{}, fmt.Errorf("audio mode is not configured for recording")
	}

	if preset != models.HighQuality {
		return models.RecordingHandle{}, fmt.Errorf("unsupported recording preset %v", preset)
	}
	return d.recorder.Start(d.settings)
}

// Stop ends the recording and writes it to a WAV file
func (d *Device) Stop(ctx context.Context, handle models.RecordingHandle) (models.Recording, error) {
	data, err := d.recorder.Stop(handle)
	if err != nil {
		return models.Recording{}, err
	}

	file := filepath.Join(d.tempDir, fmt.Sprintf("voice_%s.wav", handle.ID))
	if err := WriteWAV(data, file); err != nil {
		return models.Recording{}, fmt.Errorf("failed to save recording: %w", err)
	}

	slog.Debug("recording saved", "file", file, "duration", data.Duration)
	return models.Recording{
		DurationMillis: data.Duration.Milliseconds(),
		Locator:        file,
	}, nil
}

// LoadPlayable loads a recorded file for playback
func (d *Device) LoadPlayable(ctx context.Context, locator string) (models.PlayHandle, error) {
	if err := ctx.Err(); err != nil {
		return models.PlayHandle{}, err
	}
	return d.player.Load(locator)
}

// Play replays a loaded sound from the start
func (d *Device) Play(ctx context.Context, handle models.PlayHandle) error {
	return d.player.Play(ctx, handle)
}

// Release unloads a sound and removes its file
func (d *Device) Release(handle models.PlayHandle) error {
	if err := d.player.Release(handle); err != nil {
		return err
	}
	if err := os.Remove(handle.Locator); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", handle.Locator, err)
	}
	return nil
}

// Close stops playback and releases the microphone
func (d *Device) Close() error {
	d.player.StopPlayback()
	return d.recorder.Close()
}
