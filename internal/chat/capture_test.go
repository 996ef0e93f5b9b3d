package chat

import (
	"errors"
	"testing"

	"github.com/jorkle/chatscreen/internal/models"
)

var testPhoto = models.Photo{Base64: "/9j/4AAQ", Locator: "/tmp/photo.jpg", Width: 640, Height: 480}

func inPreview(t *testing.T) State {
	t.Helper()
	s := granted()
	s, _ = step(t, s, CameraOpened{})
	s, effects := step(t, s, ShutterPressed{})
	if _, ok := effects[0].(CapturePhoto); !ok {
		t.Fatalf("shutter effects = %#v", effects)
	}
	s, _ = step(t, s, PhotoCaptured{Photo: testPhoto})
	if s.Mode != PhotoPreview || s.PendingPhoto == nil {
		t.Fatalf("mode = %v, pending = %v", s.Mode, s.PendingPhoto)
	}
	return s
}

func TestCaptureSendAppendsOnePhoto(t *testing.T) {
	s := inPreview(t)
	s, effects := step(t, s, PhotoSent{})

	if s.Mode != Chat || s.PendingPhoto != nil {
		t.Errorf("mode = %v, pending = %v", s.Mode, s.PendingPhoto)
	}
	if s.Log.Len() != 1 || countScrolls(effects) != 1 {
		t.Fatalf("len = %d, scrolls = %d", s.Log.Len(), countScrolls(effects))
	}
	if p, ok := s.Log.All()[0].Photo(); !ok || p != testPhoto {
		t.Errorf("photo = %+v", p)
	}
}

func TestCaptureDiscardAppendsNothing(t *testing.T) {
	s := inPreview(t)
	s, effects := step(t, s, PhotoDiscarded{})
	if s.Mode != Chat || s.PendingPhoto != nil || s.Log.Len() != 0 || len(effects) != 0 {
		t.Errorf("mode = %v, pending = %v, len = %d, effects = %d", s.Mode, s.PendingPhoto, s.Log.Len(), len(effects))
	}
}

func TestCaptureSaveReturnsToChat(t *testing.T) {
	s := inPreview(t)
	s, effects := step(t, s, PhotoSaveRequested{})
	if save, ok := effects[0].(SavePhoto); !ok || save.Locator != testPhoto.Locator {
		t.Fatalf("effects = %#v", effects)
	}

	if _, _, err := Reduce(s, PhotoSaveRequested{}); !errors.Is(err, ErrPrecondition) {
		t.Errorf("double save: err = %v", err)
	}
	if _, _, err := Reduce(s, PhotoSent{}); !errors.Is(err, ErrPrecondition) {
		t.Errorf("send while saving: err = %v", err)
	}

	s, _ = step(t, s, PhotoSaved{})
	if s.Mode != Chat || s.PendingPhoto != nil || s.Log.Len() != 0 {
		t.Errorf("mode = %v, pending = %v, len = %d", s.Mode, s.PendingPhoto, s.Log.Len())
	}
	if s.Status.Kind != StatusInfo {
		t.Errorf("status = %+v", s.Status)
	}
}

func TestCaptureSaveFailureKeepsPreview(t *testing.T) {
	s := inPreview(t)
	s, _ = step(t, s, PhotoSaveRequested{})
	s, _, err := Reduce(s, PhotoSaveFailed{Err: errors.New("read-only")})
	if !errors.Is(err, ErrCapabilityFailure) {
		t.Fatalf("err = %v", err)
	}
	if s.Mode != PhotoPreview || s.PendingPhoto == nil || s.Saving {
		t.Errorf("mode = %v, pending = %v, saving = %v", s.Mode, s.PendingPhoto, s.Saving)
	}
	s, _ = step(t, s, PhotoSent{})
	if s.Log.Len() != 1 {
		t.Error("photo could not be sent after a failed save")
	}
}

func TestCaptureSaveNeedsMediaPermission(t *testing.T) {
	s := NewState("")
	s, _ = step(t, s, PermissionsResolved{Camera: true, MediaLibrary: false})
	s, _ = step(t, s, CameraOpened{})
	s, _ = step(t, s, ShutterPressed{})
	s, _ = step(t, s, PhotoCaptured{Photo: testPhoto})

	s, effects, err := Reduce(s, PhotoSaveRequested{})
	if !errors.Is(err, ErrPermissionDenied) || len(effects) != 0 {
		t.Fatalf("err = %v, effects = %#v", err, effects)
	}
	if s.Mode != PhotoPreview || s.PendingPhoto == nil {
		t.Error("denied save left the preview")
	}
}

func TestCameraOpensWithoutPermission(t *testing.T) {
	s, _ := step(t, NewState(""), CameraOpened{})
	if s.Mode != CameraLive {
		t.Fatalf("mode = %v, want CameraLive", s.Mode)
	}
	s, effects, err := Reduce(s, ShutterPressed{})
	if !errors.Is(err, ErrPermissionDenied) || len(effects) != 0 || s.Capturing {
		t.Errorf("err = %v, effects = %#v, capturing = %v", err, effects, s.Capturing)
	}
	if s.Mode != CameraLive {
		t.Errorf("mode = %v after denied shutter", s.Mode)
	}
}

func TestCaptureFailureStaysLive(t *testing.T) {
	s := granted()
	s, _ = step(t, s, CameraOpened{})
	s, _ = step(t, s, ShutterPressed{})

	if _, _, err := Reduce(s, ShutterPressed{}); !errors.Is(err, ErrPrecondition) {
		t.Errorf("double shutter: err = %v", err)
	}

	s, _, err := Reduce(s, CaptureFailed{Err: errors.New("device busy")})
	if !errors.Is(err, ErrCapabilityFailure) {
		t.Fatalf("err = %v", err)
	}
	if s.Mode != CameraLive || s.Capturing {
		t.Errorf("mode = %v, capturing = %v", s.Mode, s.Capturing)
	}
}

func TestCameraBack(t *testing.T) {
	s := granted()
	s, _ = step(t, s, CameraOpened{})
	s, _ = step(t, s, ShutterPressed{})
	s, _ = step(t, s, CameraClosed{})
	if s.Mode != Chat {
		t.Fatalf("mode = %v", s.Mode)
	}

	// the in-flight capture lands after Back and is dropped
	s, _ = step(t, s, PhotoCaptured{Photo: testPhoto})
	if s.Mode != Chat || s.PendingPhoto != nil {
		t.Errorf("late capture reopened the preview: mode = %v", s.Mode)
	}
}

func TestPreviewCannotReturnToCameraDirectly(t *testing.T) {
	s := inPreview(t)
	for _, ev := range []Event{CameraOpened{}, CameraClosed{}, ShutterPressed{}} {
		next, _, err := Reduce(s, ev)
		if !errors.Is(err, ErrPrecondition) {
			t.Errorf("%T: err = %v", ev, err)
		}
		if next.Mode != PhotoPreview {
			t.Errorf("%T moved to %v", ev, next.Mode)
		}
	}
}

func TestChatOnlyGestures(t *testing.T) {
	s := granted()
	s, _ = step(t, s, CameraOpened{})
	for _, ev := range []Event{MicPressed{}, TextSubmitted{Text: "hi"}} {
		if _, _, err := Reduce(s, ev); !errors.Is(err, ErrPrecondition) {
			t.Errorf("%T in camera view: err = %v", ev, err)
		}
	}
}

func TestCameraBlockedWhileRecording(t *testing.T) {
	s := granted()
	s, _ = step(t, s, MicPressed{})
	if _, _, err := Reduce(s, CameraOpened{}); !errors.Is(err, ErrPrecondition) {
		t.Errorf("before start resolved: err = %v", err)
	}

	s, _ = step(t, s, RecordingStarted{Handle: models.RecordingHandle{ID: "rec-1"}})
	next, effects, err := Reduce(s, CameraOpened{})
	if !errors.Is(err, ErrPrecondition) || len(effects) != 0 {
		t.Fatalf("err = %v, effects = %#v", err, effects)
	}
	if next.Mode != Chat || next.Recording.State != Recording || next.Recording.Handle.ID != "rec-1" {
		t.Errorf("mode = %v, recording = %+v", next.Mode, next.Recording)
	}

	s, _ = step(t, s, MicReleased{})
	if _, _, err := Reduce(s, CameraOpened{}); !errors.Is(err, ErrPrecondition) {
		t.Errorf("while finalizing: err = %v", err)
	}
	s, _ = step(t, s, RecordingFinalized{Audio: models.AudioPayload{Duration: "0:03"}})
	if s, _ = step(t, s, CameraOpened{}); s.Mode != CameraLive {
		t.Errorf("after finalize mode = %v", s.Mode)
	}
}
