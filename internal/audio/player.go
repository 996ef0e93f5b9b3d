package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jorkle/chatscreen/internal/models"
)

// playerCommands lists the external players tried per file extension, in order
var playerCommands = map[string][][]string{
	".wav": {{"aplay"}, {"paplay"}, {"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}},
	".mp3": {{"mpg123", "-q"}, {"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}},
}

// Player plays loaded sounds through the first system audio player found.
// Only one sound plays at a time; playing a sound restarts it.
type Player struct {
	sounds     map[string]string // handle id -> file
	currentCmd *exec.Cmd
	mutex      sync.Mutex

	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewPlayer creates a new audio player
func NewPlayer() *Player {
	return &Player{
		sounds:   make(map[string]string),
		lookPath: exec.LookPath,
		command:  exec.CommandContext,
	}
}

// Load registers a sound file for playback
func (p *Player) Load(locator string) (models.PlayHandle, error) {
	if _, err := os.Stat(locator); err != nil {
		return models.PlayHandle{}, fmt.Errorf("audio file is not readable: %w", err)
	}
	if _, ok := playerCommands[strings.ToLower(filepath.Ext(locator))]; !ok {
		return models.PlayHandle{}, fmt.Errorf("unsupported audio format: %s", filepath.Ext(locator))
	}

	handle := models.PlayHandle{ID: uuid.NewString(), Locator: locator}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.sounds[handle.ID] = locator
	return handle, nil
}

// Play starts handle from the beginning, stopping whatever was playing
func (p *Player) Play(ctx context.Context, handle models.PlayHandle) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	file, ok := p.sounds[handle.ID]
	if !ok {
		return fmt.Errorf("sound %q is not loaded", handle.ID)
	}

	argv, err := p.resolve(file)
	if err != nil {
		return err
	}

	p.stopLocked()

	args := append(append([]string{}, argv[1:]...), file)
	cmd := p.command(ctx, argv[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	p.currentCmd = cmd

	go func() {
		err := cmd.Wait()

		p.mutex.Lock()
		if p.currentCmd == cmd {
			p.currentCmd = nil
		}
		p.mutex.Unlock()

		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			slog.Warn("audio playback ended with error", "file", file, "error", err)
		}
	}()

	return nil
}

// resolve picks the first installed player for file
func (p *Player) resolve(file string) ([]string, error) {
	candidates := playerCommands[strings.ToLower(filepath.Ext(file))]
	var tried []string
	for _, argv := range candidates {
		if _, err := p.lookPath(argv[0]); err == nil {
			return argv, nil
		}
		tried = append(tried, argv[0])
	}
	return nil, fmt.Errorf("no suitable audio player found (tried: %s)", strings.Join(tried, ", "))
}

// Release forgets handle and stops it if it is playing
func (p *Player) Release(handle models.PlayHandle) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.sounds[handle.ID]; !ok {
		return fmt.Errorf("sound %q is not loaded", handle.ID)
	}
	delete(p.sounds, handle.ID)
	return nil
}

// StopPlayback stops the current audio playback
func (p *Player) StopPlayback() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.currentCmd == nil || p.currentCmd.Process == nil {
		return
	}
	if err := p.currentCmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		slog.Warn("failed to stop playback", "error", err)
	}
	p.currentCmd = nil
}

// IsPlaying returns true if audio is currently playing
func (p *Player) IsPlaying() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.currentCmd != nil
}

// Loaded returns the number of sounds still registered
func (p *Player) Loaded() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.sounds)
}
