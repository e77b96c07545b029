package notify

import (
	"encoding/base64"
	"encoding/binary"
	"math"
)

const defaultSampleRate = 44100

// MelodicWAV synthesizes a 16-bit mono PCM WAV where the given frequencies
// play as an evenly spaced note sequence with a sine envelope per note and
// an overall exponential decay.
func MelodicWAV(frequencies []float64, duration float64, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	samples := int(float64(sampleRate) * duration)
	buf := newWAVBuffer(samples, sampleRate)

	noteDuration := duration / float64(len(frequencies))
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(sampleRate)
		var amplitude float64

		for n, freq := range frequencies {
			noteStart := noteDuration * float64(n)
			noteEnd := noteDuration * float64(n+1)
			if t >= noteStart && t < noteEnd {
				noteTime := t - noteStart
				envelope := math.Sin(math.Pi * (noteTime / noteDuration))
				amplitude += math.Sin(2*math.Pi*freq*noteTime) * envelope * 0.2
			}
		}

		amplitude *= math.Exp(-t * 1.5)
		buf.writeSample(i, amplitude)
	}

	return buf.bytes
}

// SimpleWAV synthesizes a 16-bit mono PCM WAV with a single soft sine tone
// fading out over the duration.
func SimpleWAV(frequency float64, duration float64, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	samples := int(float64(sampleRate) * duration)
	buf := newWAVBuffer(samples, sampleRate)

	for i := 0; i < samples; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-t*2) * math.Sin(math.Pi*t/duration)
		amplitude := math.Sin(2*math.Pi*frequency*t) * envelope * 0.3
		buf.writeSample(i, amplitude)
	}

	return buf.bytes
}

// NewTaskSound is a short ascending C-E-G-C melody.
func NewTaskSound() []byte {
	return MelodicWAV([]float64{523.25, 659.25, 783.99, 1046.50}, 1.2, defaultSampleRate)
}

// SuccessSound is a short ascending two-note chime.
func SuccessSound() []byte {
	return MelodicWAV([]float64{659.25, 1046.50}, 0.8, defaultSampleRate)
}

// ErrorSound is a low warning tone.
func ErrorSound() []byte {
	return SimpleWAV(400, 0.6, defaultSampleRate)
}

// DataURL wraps WAV bytes into a data: URL playable by an HTML audio element.
func DataURL(wav []byte) string {
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav)
}

type wavBuffer struct {
	bytes []byte
}

// newWAVBuffer writes the 44-byte RIFF/WAVE header for 16-bit mono PCM.
func newWAVBuffer(samples, sampleRate int) *wavBuffer {
	b := make([]byte, 44+samples*2)

	copy(b[0:4], "RIFF")
	binary.LittleEndian.PutUint32(b[4:8], uint32(36+samples*2))
	copy(b[8:12], "WAVE")
	copy(b[12:16], "fmt ")
	binary.LittleEndian.PutUint32(b[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(b[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(b[22:24], 1)  // mono
	binary.LittleEndian.PutUint32(b[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(b[28:32], uint32(sampleRate*2)) // byte rate
	binary.LittleEndian.PutUint16(b[32:34], 2)                    // block align
	binary.LittleEndian.PutUint16(b[34:36], 16)                   // bits per sample
	copy(b[36:40], "data")
	binary.LittleEndian.PutUint32(b[40:44], uint32(samples*2))

	return &wavBuffer{bytes: b}
}

func (w *wavBuffer) writeSample(i int, amplitude float64) {
	clamped := math.Max(-1, math.Min(1, amplitude))
	binary.LittleEndian.PutUint16(w.bytes[44+i*2:], uint16(int16(clamped*0x7FFF)))
}
