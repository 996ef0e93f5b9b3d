package chat

import (
	"errors"
	"strings"

	"github.com/jorkle/chatscreen/internal/models"
)

// StatusKind classifies the status line
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusError
)

// Status is the user-visible outcome of the last gesture
type Status struct {
	Kind StatusKind
	Text string
	Err  error
}

// State is everything the chat screen shows. It is only changed by Reduce.
type State struct {
	Log          Log
	Mode         CaptureMode
	PendingPhoto *models.Photo
	Capturing    bool
	Saving       bool
	Recording    RecordingSession
	Permissions  PermissionGate
	Status       Status
}

// NewState returns the state of a freshly mounted screen. A non-empty
// greeting becomes the first system message.
func NewState(greeting string) State {
	s := State{Mode: Chat}
	if g := strings.TrimSpace(greeting); g != "" {
		s.Log = s.Log.Append(models.NewTextMessage(models.System, g))
	}
	return s
}

// Reduce applies ev to s and returns the new state, the effects the driver
// has to run, and the failure of the gesture if it was rejected. A failure
// is also recorded in the returned state's Status.
func Reduce(s State, ev Event) (State, []Effect, error) {
	if gesture(ev) {
		s.Status = Status{}
	}

	var (
		effects []Effect
		err     error
	)
	switch ev := ev.(type) {
	case PermissionsResolved:
		s.Permissions = s.Permissions.resolve(ev)

	case TextSubmitted:
		s, effects, err = submitText(s, ev.Text)
	case ResponseReceived:
		if strings.TrimSpace(ev.Text) != "" {
			s.Log = s.Log.Append(models.NewTextMessage(models.System, ev.Text))
			effects = []Effect{ScrollToEnd{}}
		}
	case ResponseFailed:
		err = capabilityFailure("respond", ev.Err)

	case MicPressed, MicReleased, RecordingStarted, RecordingDenied,
		RecordingFailed, RecordingFinalized, FinalizeFailed:
		s, effects, err = reduceRecording(s, ev)

	case PlayRequested:
		s, effects, err = requestPlay(s, ev.MessageID)
	case PlaybackFailed:
		err = capabilityFailure("play", ev.Err)

	case CameraOpened, CameraClosed, ShutterPressed, PhotoCaptured,
		CaptureFailed, PhotoSent, PhotoSaveRequested, PhotoSaved,
		PhotoSaveFailed, PhotoDiscarded:
		s, effects, err = reduceCapture(s, ev)
	}

	if err != nil {
		s.Status = Status{Kind: StatusError, Text: describe(err), Err: err}
	}
	return s, effects, err
}

func submitText(s State, text string) (State, []Effect, error) {
	if s.Mode != Chat {
		return s, nil, precondition("send", "text input is only available in the chat view")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return s, nil, nil
	}
	s.Log = s.Log.Append(models.NewTextMessage(models.User, text))
	return s, []Effect{ScrollToEnd{}, RequestResponse{Prompt: text}}, nil
}

func requestPlay(s State, id string) (State, []Effect, error) {
	msg, ok := s.Log.Find(id)
	if !ok {
		return s, nil, precondition("play", "no such message")
	}
	audio, ok := msg.Audio()
	if !ok {
		return s, nil, precondition("play", "message is not a voice note")
	}
	return s, []Effect{PlayAudio{Handle: audio.Sound}}, nil
}

// describe turns a failure into the status line text
func describe(err error) string {
	var f *Failure
	if !errors.As(err, &f) {
		return err.Error()
	}
	switch {
	case errors.Is(f, ErrPermissionDenied):
		switch f.Op {
		case "record":
			return "Microphone permission was denied"
		case "capture":
			return "Camera permission is not granted"
		case "save":
			return "Media library permission is not granted"
		}
		return "Permission denied"
	case errors.Is(f, ErrPrecondition):
		return f.Err.Error()
	default:
		if f.Err != nil {
			return "Could not " + f.Op + ": " + f.Err.Error()
		}
		return "Could not " + f.Op
	}
}
