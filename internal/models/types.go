package models

import (
	"time"

	"github.com/google/uuid"
)

// Author decides which side of the screen a message is drawn on
type Author int

const (
	User Author = iota
	System
)

func (a Author) String() string {
	switch a {
	case User:
		return "User"
	case System:
		return "System"
	default:
		return "Unknown"
	}
}

// MessageKind tags the payload carried by a message
type MessageKind int

const (
	TextKind MessageKind = iota
	AudioKind
	PhotoKind
)

func (k MessageKind) String() string {
	switch k {
	case TextKind:
		return "Text"
	case AudioKind:
		return "Audio"
	case PhotoKind:
		return "Photo"
	default:
		return "Unknown"
	}
}

// Payload is the sealed set of message bodies. Only the types in this file
// implement it.
type Payload interface {
	Kind() MessageKind
	sealed()
}

// TextPayload is a plain text message body
type TextPayload struct {
	Text string
}

// AudioPayload is a finalized voice note
type AudioPayload struct {
	Sound    PlayHandle
	Duration string // M:SS
	Locator  string
}

// PhotoPayload is a captured picture
type PhotoPayload struct {
	Photo Photo
}

func (TextPayload) Kind() MessageKind  { return TextKind }
func (AudioPayload) Kind() MessageKind { return AudioKind }
func (PhotoPayload) Kind() MessageKind { return PhotoKind }

func (TextPayload) sealed()  {}
func (AudioPayload) sealed() {}
func (PhotoPayload) sealed() {}

// Message is one entry of the chat timeline. Values are never modified
// after they are appended to the log.
type Message struct {
	ID      string
	Author  Author
	Payload Payload
}

// Kind returns the tag of the message payload
func (m Message) Kind() MessageKind {
	if m.Payload == nil {
		return TextKind
	}
	return m.Payload.Kind()
}

// Text returns the text body and whether the message is a text message
func (m Message) Text() (string, bool) {
	p, ok := m.Payload.(TextPayload)
	return p.Text, ok
}

// Audio returns the voice note body and whether the message is a voice note
func (m Message) Audio() (AudioPayload, bool) {
	p, ok := m.Payload.(AudioPayload)
	return p, ok
}

// Photo returns the picture body and whether the message is a photo
func (m Message) Photo() (Photo, bool) {
	p, ok := m.Payload.(PhotoPayload)
	return p.Photo, ok
}

// NewTextMessage creates a text message
func NewTextMessage(author Author, text string) Message {
	return Message{ID: uuid.NewString(), Author: author, Payload: TextPayload{Text: text}}
}

// NewAudioMessage creates a voice note message
func NewAudioMessage(author Author, audio AudioPayload) Message {
	return Message{ID: uuid.NewString(), Author: author, Payload: audio}
}

// NewPhotoMessage creates a photo message
func NewPhotoMessage(author Author, photo Photo) Message {
	return Message{ID: uuid.NewString(), Author: author, Payload: PhotoPayload{Photo: photo}}
}

// Photo is an in-memory picture as returned by the camera
type Photo struct {
	Base64  string
	Locator string
	Width   int
	Height  int
}

// Size returns the decoded size of the picture in bytes
func (p Photo) Size() int {
	n := len(p.Base64)
	if n == 0 {
		return 0
	}
	pad := 0
	if p.Base64[n-1] == '=' {
		pad++
		if n > 1 && p.Base64[n-2] == '=' {
			pad++
		}
	}
	return n/4*3 - pad
}

// CaptureOptions controls a single camera capture
type CaptureOptions struct {
	Quality         float64 // 0 (smallest) to 1 (best)
	IncludeMetadata bool
}

// QualityPreset selects recorder settings. Voice notes are always
// recorded with HighQuality.
type QualityPreset int

const (
	HighQuality QualityPreset = iota
)

func (q QualityPreset) String() string {
	switch q {
	case HighQuality:
		return "High"
	default:
		return "Unknown"
	}
}

// AudioMode is the audio session configuration applied before recording
type AudioMode struct {
	AllowsRecording   bool
	PlaysInSilentMode bool
}

// RecordingHandle identifies an in-flight recording
type RecordingHandle struct {
	ID string
}

// Valid reports whether the handle refers to a started recording
func (h RecordingHandle) Valid() bool {
	return h.ID != ""
}

// Recording is the result of stopping a recording session
type Recording struct {
	DurationMillis int64
	Locator        string
}

// PlayHandle identifies a loaded, replayable sound
type PlayHandle struct {
	ID      string
	Locator string
}

// AudioData represents audio data for recording/playback
type AudioData struct {
	Data       []float32
	SampleRate int
	Channels   int
	Duration   time.Duration
}
