package audio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/jorkle/chatscreen/internal/models"
)

const wavHeaderSize = 44

// WriteWAV saves audio data as a 16-bit PCM WAV file
func WriteWAV(audioData *models.AudioData, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	defer file.Close()

	channels := uint16(audioData.Channels)
	if channels == 0 {
		channels = 1
	}
	sampleRate := uint32(audioData.SampleRate)
	bitsPerSample := uint16(16)
	byteRate := sampleRate * uint32(channels) * uint32(bitsPerSample) / 8
	blockAlign := channels * bitsPerSample / 8
	dataSize := uint32(len(audioData.Data) * 2)

	header := make([]byte, wavHeaderSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], wavHeaderSize+dataSize-8)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	w := bufio.NewWriter(file)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}

	samples := make([]int16, len(audioData.Data))
	for i, sample := range audioData.Data {
		samples[i] = toPCM16(sample)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return file.Close()
}

// toPCM16 converts a float sample in [-1, 1] to int16, clipping overflow
func toPCM16(sample float32) int16 {
	v := math.Round(float64(sample) * math.MaxInt16)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < -math.MaxInt16 {
		return -math.MaxInt16
	}
	return int16(v)
}
