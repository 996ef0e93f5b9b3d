package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jorkle/chatscreen/internal/ai"
	"github.com/jorkle/chatscreen/internal/audio"
	"github.com/jorkle/chatscreen/internal/camera"
	"github.com/jorkle/chatscreen/internal/chat"
	"github.com/jorkle/chatscreen/internal/config"
	"github.com/jorkle/chatscreen/internal/media"
	"github.com/jorkle/chatscreen/internal/models"
)

// Capabilities are the platform services the chat screen drives
type Capabilities struct {
	Audio     chat.AudioCapability
	Camera    chat.CameraCapability
	Library   chat.MediaLibrary
	Responder chat.Responder
}

// App represents the main application
type App struct {
	config *config.Config
	caps   Capabilities
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// voice notes and captured photos; released on cleanup
	mu     sync.Mutex
	sounds []models.PlayHandle
	photos []string

	closeDevice func() error
}

// NewApp creates the application with the desktop microphone, camera and
// media library
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	recorder, err := audio.NewRecorder(cfg.InputDevice)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio recorder: %w", err)
	}

	device := audio.NewDevice(recorder, audio.NewPlayer(), cfg.AudioTempDir,
		audio.Settings{SampleRate: cfg.SampleRate, Channels: cfg.Channels, BufferSize: cfg.BufferSize})

	a := New(cfg, logger, Capabilities{
		Audio:     device,
		Camera:    camera.New(cfg.CameraDevice, cfg.FFmpegPath, cfg.PhotoTempDir),
		Library:   media.NewLibrary(cfg.MediaLibraryDir),
		Responder: ai.NewCannedResponder(cfg.AutoResponse),
	})
	a.closeDevice = device.Close
	return a, nil
}

// New creates an application over the given capabilities
func New(cfg *config.Config, logger *slog.Logger, caps Capabilities) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		config: cfg,
		caps:   caps,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Run shows the chat screen until the user quits or ctx is done
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(NewModel(a), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return nil
}

// captureOptions returns the configured camera settings
func (a *App) captureOptions() models.CaptureOptions {
	return models.CaptureOptions{
		Quality:         a.config.PhotoQuality,
		IncludeMetadata: a.config.IncludeMetadata,
	}
}

func (a *App) trackSound(h models.PlayHandle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sounds = append(a.sounds, h)
}

func (a *App) trackPhoto(locator string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.photos = append(a.photos, locator)
}

// Cleanup releases every loaded voice note, removes the captured photo
// files and closes the devices. Calling it more than once is safe.
func (a *App) Cleanup() error {
	a.cancel()

	a.mu.Lock()
	sounds, photos := a.sounds, a.photos
	a.sounds, a.photos = nil, nil
	a.mu.Unlock()

	var errs []error
	for _, h := range sounds {
		if err := a.caps.Audio.Release(h); err != nil {
			a.logger.Warn("failed to release voice note", "sound", h.ID, "error", err)
			errs = append(errs, err)
		}
	}

	for _, file := range photos {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			a.logger.Warn("failed to remove photo", "file", file, "error", err)
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", file, err))
		}
	}

	if a.closeDevice != nil {
		closeDevice := a.closeDevice
		a.closeDevice = nil
		if err := closeDevice(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close audio device: %w", err))
		}
	}

	return errors.Join(errs...)
}
