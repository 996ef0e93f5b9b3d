package chat

import "github.com/jorkle/chatscreen/internal/models"

// Event is anything that can change the screen state. Events come from user
// gestures and from platform calls completing.
type Event interface {
	event()
}

// Permission gate

type PermissionsResolved struct {
	Camera       bool
	MediaLibrary bool
}

// Text input

type TextSubmitted struct{ Text string }
type ResponseReceived struct{ Text string }
type ResponseFailed struct{ Err error }

// Microphone

type MicPressed struct{}
type MicReleased struct{}
type RecordingStarted struct{ Handle models.RecordingHandle }
type RecordingDenied struct{}
type RecordingFailed struct{ Err error }
type RecordingFinalized struct{ Audio models.AudioPayload }
type FinalizeFailed struct{ Err error }

// Playback

type PlayRequested struct{ MessageID string }
type PlaybackFailed struct{ Err error }

// Camera

type CameraOpened struct{}
type CameraClosed struct{}
type ShutterPressed struct{}
type PhotoCaptured struct{ Photo models.Photo }
type CaptureFailed struct{ Err error }
type PhotoSent struct{}
type PhotoSaveRequested struct{}
type PhotoSaved struct{}
type PhotoSaveFailed struct{ Err error }
type PhotoDiscarded struct{}

func (PermissionsResolved) event() {}
func (TextSubmitted) event()       {}
func (ResponseReceived) event()    {}
func (ResponseFailed) event()      {}
func (MicPressed) event()          {}
func (MicReleased) event()         {}
func (RecordingStarted) event()    {}
func (RecordingDenied) event()     {}
func (RecordingFailed) event()     {}
func (RecordingFinalized) event()  {}
func (FinalizeFailed) event()      {}
func (PlayRequested) event()       {}
func (PlaybackFailed) event()      {}
func (CameraOpened) event()        {}
func (CameraClosed) event()        {}
func (ShutterPressed) event()      {}
func (PhotoCaptured) event()       {}
func (CaptureFailed) event()       {}
func (PhotoSent) event()           {}
func (PhotoSaveRequested) event()  {}
func (PhotoSaved) event()          {}
func (PhotoSaveFailed) event()     {}
func (PhotoDiscarded) event()      {}

// gesture reports whether ev comes straight from the user. A gesture clears
// the previous status line.
func gesture(ev Event) bool {
	switch ev.(type) {
	case TextSubmitted, MicPressed, MicReleased, PlayRequested,
		CameraOpened, CameraClosed, ShutterPressed,
		PhotoSent, PhotoSaveRequested, PhotoDiscarded:
		return true
	}
	return false
}

// Effect is work the driver must perform after a state transition. Effects
// that call a platform capability report back with an Event.
type Effect interface {
	effect()
}

// ScrollToEnd is emitted exactly once per appended message. The view must
// take the new content before scrolling.
type ScrollToEnd struct{}

type RequestResponse struct{ Prompt string }

type BeginRecording struct {
	Preset models.QualityPreset
	Mode   models.AudioMode
}

type StopRecording struct{ Handle models.RecordingHandle }

type PlayAudio struct{ Handle models.PlayHandle }

type CapturePhoto struct{}

type SavePhoto struct{ Locator string }

func (ScrollToEnd) effect()     {}
func (RequestResponse) effect() {}
func (BeginRecording) effect()  {}
func (StopRecording) effect()   {}
func (PlayAudio) effect()       {}
func (CapturePhoto) effect()    {}
func (SavePhoto) effect()       {}
