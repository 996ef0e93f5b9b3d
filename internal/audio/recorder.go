package audio

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gordonklaus/portaudio"
	"github.com/jorkle/chatscreen/internal/models"
)

// Settings are the stream parameters of one recording
type Settings struct {
	SampleRate int
	Channels   int
	BufferSize int
}

// Recorder captures microphone input through PortAudio. It holds at most
// one open stream.
type Recorder struct {
	device   string
	stream   *portaudio.Stream
	handle   models.RecordingHandle
	settings Settings
	buffer   []float32
	mutex    sync.Mutex
}

// DefaultDevice selects the system default input
const DefaultDevice = "default"

// NewRecorder initializes PortAudio and returns an idle recorder reading
// from the named input device, or the system default for "" or "default".
func NewRecorder(device string) (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return &Recorder{device: device, buffer: make([]float32, 0)}, nil
}

// InputAvailable reports whether the configured input device exists
func (r *Recorder) InputAvailable() (bool, error) {
	if _, err := r.inputDevice(); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *Recorder) inputDevice() (*portaudio.DeviceInfo, error) {
	if r.device == "" || r.device == DefaultDevice {
		dev, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("failed to get default input device: %w", err)
		}
		if dev.MaxInputChannels < 1 {
			return nil, fmt.Errorf("default device %q has no input channels", dev.Name)
		}
		return dev, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to list audio devices: %w", err)
	}
	return findInputDevice(devices, r.device)
}

// findInputDevice picks the input device called name. An exact match wins
// over a case-insensitive substring match.
func findInputDevice(devices []*portaudio.DeviceInfo, name string) (*portaudio.DeviceInfo, error) {
	var partial *portaudio.DeviceInfo
	for _, dev := range devices {
		if dev == nil || dev.MaxInputChannels < 1 {
			continue
		}
		if dev.Name == name {
			return dev, nil
		}
		if partial == nil && strings.Contains(strings.ToLower(dev.Name), strings.ToLower(name)) {
			partial = dev
		}
	}
	if partial != nil {
		return partial, nil
	}
	return nil, fmt.Errorf("no input device named %q", name)
}

// Start opens an input stream on the configured device
func (r *Recorder) Start(settings Settings) (models.RecordingHandle, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.handle.Valid() {
		return models.RecordingHandle{}, fmt.Errorf("recording is already in progress")
	}

	r.buffer = r.buffer[:0]

	device, err := r.inputDevice()
	if err != nil {
		return models.RecordingHandle{}, err
	}

	inputParams := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: settings.Channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(settings.SampleRate),
		FramesPerBuffer: settings.BufferSize,
	}

	stream, err := portaudio.OpenStream(inputParams, r.recordCallback)
	if err != nil {
		return models.RecordingHandle{}, fmt.Errorf("failed to open audio stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return models.RecordingHandle{}, fmt.Errorf("failed to start audio stream: %w", err)
	}

	r.stream = stream
	r.settings = settings
	r.handle = models.RecordingHandle{ID: uuid.NewString()}
	return r.handle, nil
}

// Stop closes the stream of handle and returns what was recorded
func (r *Recorder) Stop(handle models.RecordingHandle) (*models.AudioData, error) {
	r.mutex.Lock()
	if !r.handle.Valid() || r.handle != handle {
		r.mutex.Unlock()
		return nil, fmt.Errorf("no recording in progress for %q", handle.ID)
	}
	stream := r.stream
	r.stream = nil
	r.handle = models.RecordingHandle{}
	r.mutex.Unlock()

	if err := stream.Stop(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("failed to stop audio stream: %w", err)
	}

	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("failed to close audio stream: %w", err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	audioData := &models.AudioData{
		Data:       make([]float32, len(r.buffer)),
		SampleRate: r.settings.SampleRate,
		Channels:   r.settings.Channels,
		Duration:   frameDuration(len(r.buffer), r.settings),
	}
	copy(audioData.Data, r.buffer)

	return audioData, nil
}

// recordCallback is called by PortAudio when audio data is available
func (r *Recorder) recordCallback(inputBuffer []float32) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.buffer = append(r.buffer, inputBuffer...)
}

// Close stops any open stream and shuts PortAudio down
func (r *Recorder) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.stream != nil {
		r.stream.Stop()
		r.stream.Close()
		r.stream = nil
		r.handle = models.RecordingHandle{}
	}

	return portaudio.Terminate()
}

func frameDuration(samples int, s Settings) time.Duration {
	if s.Channels <= 0 || s.SampleRate <= 0 {
		return 0
	}
	frames := samples / s.Channels
	return time.Duration(frames) * time.Second / time.Duration(s.SampleRate)
}
