package notify

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVHeader(t *testing.T) {
	wav := SimpleWAV(400, 0.1, 8000)

	samples := 800 // 8000 Hz * 0.1s
	require.Len(t, wav, 44+samples*2)

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, "data", string(wav[36:40]))

	assert.EqualValues(t, 1, binary.LittleEndian.Uint16(wav[20:22]), "PCM format")
	assert.EqualValues(t, 1, binary.LittleEndian.Uint16(wav[22:24]), "mono")
	assert.EqualValues(t, 8000, binary.LittleEndian.Uint32(wav[24:28]))
	assert.EqualValues(t, 16, binary.LittleEndian.Uint16(wav[34:36]))
	assert.EqualValues(t, samples*2, binary.LittleEndian.Uint32(wav[40:44]))
}

func TestMelodicWAVNotSilent(t *testing.T) {
	wav := MelodicWAV([]float64{523.25, 659.25}, 0.2, 8000)

	var nonZero int
	for i := 44; i+1 < len(wav); i += 2 {
		if int16(binary.LittleEndian.Uint16(wav[i:])) != 0 {
			nonZero++
		}
	}
	assert.Greater(t, nonZero, 100, "generated melody should contain audible samples")
}

func TestNewTaskSoundIsLongerThanErrorSound(t *testing.T) {
	assert.Greater(t, len(NewTaskSound()), len(ErrorSound()))
}

func TestDataURL(t *testing.T) {
	url := DataURL(SimpleWAV(400, 0.01, 8000))
	assert.True(t, strings.HasPrefix(url, "data:audio/wav;base64,"))
}
