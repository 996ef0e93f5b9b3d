package audio

import (
	"testing"
	"time"

	"github.com/gordonklaus/portaudio"
)

func TestFindInputDevice(t *testing.T) {
	devices := []*portaudio.DeviceInfo{
		{Name: "HDA Intel PCH: ALC257 Analog (hw:0,0)", MaxInputChannels: 2},
		{Name: "HDMI 0", MaxOutputChannels: 8},
		{Name: "USB Microphone", MaxInputChannels: 1},
		{Name: "pulse", MaxInputChannels: 32},
	}

	tests := []struct {
		name string
		want string
	}{
		{"pulse", "pulse"},
		{"usb", "USB Microphone"},
		{"ALC257", "HDA Intel PCH: ALC257 Analog (hw:0,0)"},
	}
	for _, tt := range tests {
		dev, err := findInputDevice(devices, tt.name)
		if err != nil {
			t.Errorf("findInputDevice(%q): %v", tt.name, err)
			continue
		}
		if dev.Name != tt.want {
			t.Errorf("findInputDevice(%q) = %q, want %q", tt.name, dev.Name, tt.want)
		}
	}

	for _, name := range []string{"HDMI 0", "webcam"} {
		if dev, err := findInputDevice(devices, name); err == nil {
			t.Errorf("findInputDevice(%q) = %q, want error", name, dev.Name)
		}
	}
}

func TestFindInputDevicePrefersExactName(t *testing.T) {
	devices := []*portaudio.DeviceInfo{
		{Name: "pulse monitor", MaxInputChannels: 2},
		{Name: "pulse", MaxInputChannels: 2},
	}
	dev, err := findInputDevice(devices, "pulse")
	if err != nil || dev.Name != "pulse" {
		t.Errorf("dev = %v, err = %v", dev, err)
	}
}

func TestFrameDuration(t *testing.T) {
	s := Settings{SampleRate: 44100, Channels: 2}
	if d := frameDuration(2*44100*3, s); d != 3*time.Second {
		t.Errorf("duration = %v", d)
	}
	if d := frameDuration(100, Settings{}); d != 0 {
		t.Errorf("zero settings duration = %v", d)
	}
}
