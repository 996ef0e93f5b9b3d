package chat

import "github.com/jorkle/chatscreen/internal/models"

// CaptureMode selects the active view
type CaptureMode int

const (
	Chat CaptureMode = iota
	CameraLive
	PhotoPreview
)

func (m CaptureMode) String() string {
	switch m {
	case Chat:
		return "Chat"
	case CameraLive:
		return "Camera"
	case PhotoPreview:
		return "Photo preview"
	default:
		return "Unknown"
	}
}

func reduceCapture(s State, ev Event) (State, []Effect, error) {
	switch ev := ev.(type) {
	case CameraOpened:
		if s.Mode != Chat {
			return s, nil, precondition("open camera", "the camera can only be opened from the chat view")
		}
		if s.Recording.Active() {
			return s, nil, precondition("open camera", "a voice note is being recorded")
		}
		s.Mode = CameraLive
		return s, nil, nil

	case CameraClosed:
		if s.Mode != CameraLive {
			return s, nil, precondition("close camera", "the camera is not open")
		}
		s.Mode = Chat
		s.Capturing = false
		return s, nil, nil

	case ShutterPressed:
		if s.Mode != CameraLive {
			return s, nil, precondition("capture", "the camera is not open")
		}
		if s.Capturing {
			return s, nil, precondition("capture", "a picture is already being taken")
		}
		if !s.Permissions.CameraGranted() {
			return s, nil, permissionDenied("capture")
		}
		s.Capturing = true
		return s, []Effect{CapturePhoto{}}, nil

	case PhotoCaptured:
		// a capture that finishes after Back is dropped
		if s.Mode != CameraLive || !s.Capturing {
			return s, nil, nil
		}
		photo := ev.Photo
		s.Capturing = false
		s.PendingPhoto = &photo
		s.Mode = PhotoPreview
		return s, nil, nil

	case CaptureFailed:
		if !s.Capturing {
			return s, nil, nil
		}
		s.Capturing = false
		return s, nil, capabilityFailure("capture", ev.Err)

	case PhotoSent:
		if s.Mode != PhotoPreview || s.PendingPhoto == nil {
			return s, nil, precondition("send photo", "there is no photo to send")
		}
		if s.Saving {
			return s, nil, precondition("send photo", "the photo is being saved")
		}
		s.Log = s.Log.Append(models.NewPhotoMessage(models.User, *s.PendingPhoto))
		s.PendingPhoto = nil
		s.Mode = Chat
		return s, []Effect{ScrollToEnd{}}, nil

	case PhotoSaveRequested:
		if s.Mode != PhotoPreview || s.PendingPhoto == nil {
			return s, nil, precondition("save", "there is no photo to save")
		}
		if s.Saving {
			return s, nil, precondition("save", "the photo is already being saved")
		}
		if !s.Permissions.MediaLibraryGranted() {
			return s, nil, permissionDenied("save")
		}
		s.Saving = true
		return s, []Effect{SavePhoto{Locator: s.PendingPhoto.Locator}}, nil

	case PhotoSaved:
		if !s.Saving {
			return s, nil, nil
		}
		s.Saving = false
		s.PendingPhoto = nil
		s.Mode = Chat
		s.Status = Status{Kind: StatusInfo, Text: "Photo saved to library"}
		return s, nil, nil

	case PhotoSaveFailed:
		if !s.Saving {
			return s, nil, nil
		}
		s.Saving = false
		return s, nil, capabilityFailure("save", ev.Err)

	case PhotoDiscarded:
		if s.Mode != PhotoPreview {
			return s, nil, precondition("discard", "there is no photo to discard")
		}
		s.PendingPhoto = nil
		s.Saving = false
		s.Mode = Chat
		return s, nil, nil
	}
	return s, nil, nil
}
