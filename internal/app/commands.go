package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jorkle/chatscreen/internal/chat"
	"github.com/jorkle/chatscreen/internal/models"
)

// Platform calls run as Bubbletea commands. Each one reports back with a
// chat.Event, which goes through the reducer like any gesture.

// effectCmd turns a reducer effect into a command. ScrollToEnd is handled
// by the model and yields nil.
func (a *App) effectCmd(e chat.Effect) tea.Cmd {
	switch e := e.(type) {
	case chat.RequestResponse:
		return a.respondCmd(e.Prompt)
	case chat.BeginRecording:
		return a.beginRecordingCmd(e)
	case chat.StopRecording:
		return a.stopRecordingCmd(e.Handle)
	case chat.PlayAudio:
		return a.playCmd(e.Handle)
	case chat.CapturePhoto:
		return a.captureCmd()
	case chat.SavePhoto:
		return a.saveCmd(e.Locator)
	}
	return nil
}

// FetchPermissionsCmd asks for camera and media library access once, at mount
func (a *App) FetchPermissionsCmd() tea.Cmd {
	return func() tea.Msg {
		cameraOK, err := a.caps.Camera.RequestPermission(a.ctx)
		if err != nil {
			a.logger.Warn("camera permission request failed", "error", err)
			cameraOK = false
		}
		libraryOK, err := a.caps.Library.RequestPermission(a.ctx)
		if err != nil {
			a.logger.Warn("media library permission request failed", "error", err)
			libraryOK = false
		}
		a.logger.Info("permissions resolved", "camera", cameraOK, "media_library", libraryOK)
		return chat.PermissionsResolved{Camera: cameraOK, MediaLibrary: libraryOK}
	}
}

func (a *App) respondCmd(prompt string) tea.Cmd {
	return func() tea.Msg {
		reply, err := a.caps.Responder.Respond(a.ctx, prompt)
		if err != nil {
			a.logger.Warn("responder failed", "error", err)
			return chat.ResponseFailed{Err: err}
		}
		return chat.ResponseReceived{Text: reply}
	}
}

// beginRecordingCmd asks for the microphone on every press, then starts
// recording
func (a *App) beginRecordingCmd(e chat.BeginRecording) tea.Cmd {
	return func() tea.Msg {
		granted, err := a.caps.Audio.RequestPermission(a.ctx)
		if err != nil {
			a.logger.Warn("microphone permission request failed", "error", err)
			return chat.RecordingFailed{Err: err}
		}
		if !granted {
			a.logger.Info("microphone permission denied")
			return chat.RecordingDenied{}
		}

		if err := a.caps.Audio.Configure(e.Mode); err != nil {
			a.logger.Warn("failed to configure audio mode", "error", err)
			return chat.RecordingFailed{Err: err}
		}

		handle, err := a.caps.Audio.BeginRecording(a.ctx, e.Preset)
		if err != nil {
			a.logger.Warn("failed to start recording", "preset", e.Preset, "error", err)
			return chat.RecordingFailed{Err: err}
		}

		a.logger.Debug("recording started", "recording", handle.ID)
		return chat.RecordingStarted{Handle: handle}
	}
}

// stopRecordingCmd stops the session and turns it into a voice note
func (a *App) stopRecordingCmd(h models.RecordingHandle) tea.Cmd {
	return func() tea.Msg {
		rec, err := a.caps.Audio.Stop(a.ctx, h)
		if err != nil {
			a.logger.Warn("failed to stop recording", "recording", h.ID, "error", err)
			return chat.FinalizeFailed{Err: err}
		}

		sound, err := a.caps.Audio.LoadPlayable(a.ctx, rec.Locator)
		if err != nil {
			a.logger.Warn("failed to load recording", "file", rec.Locator, "error", err)
			return chat.FinalizeFailed{Err: fmt.Errorf("loading %s: %w", rec.Locator, err)}
		}
		a.trackSound(sound)

		duration := chat.FormatDuration(rec.DurationMillis)
		a.logger.Debug("recording finalized", "file", rec.Locator, "duration", duration)
		return chat.RecordingFinalized{Audio: models.AudioPayload{
			Sound:    sound,
			Duration: duration,
			Locator:  rec.Locator,
		}}
	}
}

func (a *App) playCmd(h models.PlayHandle) tea.Cmd {
	return func() tea.Msg {
		if err := a.caps.Audio.Play(a.ctx, h); err != nil {
			a.logger.Warn("playback failed", "sound", h.ID, "error", err)
			return chat.PlaybackFailed{Err: err}
		}
		return nil
	}
}

func (a *App) captureCmd() tea.Cmd {
	opts := a.captureOptions()
	return func() tea.Msg {
		photo, err := a.caps.Camera.Capture(a.ctx, opts)
		if err != nil {
			a.logger.Warn("capture failed", "error", err)
			return chat.CaptureFailed{Err: err}
		}
		a.trackPhoto(photo.Locator)
		a.logger.Debug("photo captured", "file", photo.Locator, "width", photo.Width, "height", photo.Height)
		return chat.PhotoCaptured{Photo: photo}
	}
}

func (a *App) saveCmd(locator string) tea.Cmd {
	return func() tea.Msg {
		if err := a.caps.Library.Save(a.ctx, locator); err != nil {
			a.logger.Warn("failed to save photo", "file", locator, "error", err)
			return chat.PhotoSaveFailed{Err: err}
		}
		a.logger.Info("photo saved to library", "file", locator)
		return chat.PhotoSaved{}
	}
}
