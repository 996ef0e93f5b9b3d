package chat

import "github.com/jorkle/chatscreen/internal/models"

// RecordingState is the phase of the microphone session
type RecordingState int

const (
	Idle RecordingState = iota
	Recording
	Finalizing
)

func (r RecordingState) String() string {
	switch r {
	case Idle:
		return "Idle"
	case Recording:
		return "Recording"
	case Finalizing:
		return "Finalizing"
	default:
		return "Unknown"
	}
}

// RecordingSession tracks the single voice note being recorded. Handle is
// empty while the platform has not yet started the recording.
type RecordingSession struct {
	State  RecordingState
	Handle models.RecordingHandle

	// set when the mic was released before the recording started
	stopPending bool
}

// Active reports whether a session exists
func (r RecordingSession) Active() bool {
	return r.State != Idle
}

var recordingMode = models.AudioMode{AllowsRecording: true, PlaysInSilentMode: true}

func reduceRecording(s State, ev Event) (State, []Effect, error) {
	rec := s.Recording

	switch ev := ev.(type) {
	case MicPressed:
		if s.Mode != Chat {
			return s, nil, precondition("record", "the microphone is only available in the chat view")
		}
		if rec.Active() {
			return s, nil, precondition("record", "a recording is already in progress")
		}
		s.Recording = RecordingSession{State: Recording}
		return s, []Effect{BeginRecording{Preset: models.HighQuality, Mode: recordingMode}}, nil

	case RecordingStarted:
		switch {
		case rec.State == Recording && !rec.Handle.Valid():
			rec.Handle = ev.Handle
			s.Recording = rec
			return s, nil, nil
		case rec.State == Finalizing && rec.stopPending:
			s.Recording = RecordingSession{State: Finalizing, Handle: ev.Handle}
			return s, []Effect{StopRecording{Handle: ev.Handle}}, nil
		}
		return s, nil, nil

	case RecordingDenied:
		s.Recording = RecordingSession{}
		return s, nil, permissionDenied("record")

	case RecordingFailed:
		s.Recording = RecordingSession{}
		return s, nil, capabilityFailure("start recording", ev.Err)

	case MicReleased:
		if rec.State != Recording {
			return s, nil, nil
		}
		if !rec.Handle.Valid() {
			s.Recording = RecordingSession{State: Finalizing, stopPending: true}
			return s, nil, nil
		}
		s.Recording = RecordingSession{State: Finalizing, Handle: rec.Handle}
		return s, []Effect{StopRecording{Handle: rec.Handle}}, nil

	case RecordingFinalized:
		if rec.State != Finalizing {
			return s, nil, precondition("finalize recording", "no recording is being finalized")
		}
		s.Recording = RecordingSession{}
		s.Log = s.Log.Append(models.NewAudioMessage(models.User, ev.Audio))
		return s, []Effect{ScrollToEnd{}}, nil

	case FinalizeFailed:
		s.Recording = RecordingSession{}
		return s, nil, capabilityFailure("finish recording", ev.Err)
	}
	return s, nil, nil
}
