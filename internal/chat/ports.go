package chat

import (
	"context"

	"github.com/jorkle/chatscreen/internal/models"
)

// AudioCapability records voice notes and plays them back.
type AudioCapability interface {
	RequestPermission(ctx context.Context) (bool, error)
	Configure(mode models.AudioMode) error
	BeginRecording(ctx context.Context, preset models.QualityPreset) (models.RecordingHandle, error)
	Stop(ctx context.Context, handle models.RecordingHandle) (models.Recording, error)
	LoadPlayable(ctx context.Context, locator string) (models.PlayHandle, error)
	Play(ctx context.Context, handle models.PlayHandle) error
	Release(handle models.PlayHandle) error
}

// CameraCapability takes single still pictures.
type CameraCapability interface {
	RequestPermission(ctx context.Context) (bool, error)
	Capture(ctx context.Context, opts models.CaptureOptions) (models.Photo, error)
}

// MediaLibrary is the external store pictures can be saved to.
type MediaLibrary interface {
	RequestPermission(ctx context.Context) (bool, error)
	Save(ctx context.Context, locator string) error
}

// Responder produces the system reply to a user text message.
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}
