package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundPlace SoundType = iota
	SoundCapture
	SoundPass
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager plays procedurally generated sound effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates a new audio manager.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: true,
		volume:  0.5,
	}
	am.sounds[SoundPlace] = render(0.07, func(t float64) float64 {
		return 0.35 * math.Exp(-t*60) * math.Sin(2*math.Pi*520*t)
	})
	am.sounds[SoundCapture] = render(0.16, func(t float64) float64 {
		return 0.3*math.Exp(-t*35)*math.Sin(2*math.Pi*330*t) +
			0.2*math.Exp(-(t-0.06)*35)*math.Sin(2*math.Pi*660*t)*step(t-0.06)
	})
	am.sounds[SoundPass] = render(0.12, func(t float64) float64 {
		return 0.25 * math.Sin(math.Pi*t/0.12) * math.Sin(2*math.Pi*700*t)
	})
	am.sounds[SoundInvalid] = render(0.1, func(t float64) float64 {
		return 0.25 * math.Exp(-t*20) * math.Copysign(1, math.Sin(2*math.Pi*150*t))
	})
	am.sounds[SoundGameEnd] = render(0.45, func(t float64) float64 {
		env := math.Exp(-t * 6)
		return env * 0.15 * (math.Sin(2*math.Pi*523*t) + math.Sin(2*math.Pi*659*t) + math.Sin(2*math.Pi*784*t))
	})
	return am
}

func step(x float64) float64 {
	if x < 0 {
		return 0
	}
	return 1
}

// render samples wave over duration seconds into 16-bit little-endian stereo.
func render(duration float64, wave func(t float64) float64) []byte {
	n := int(sampleRate * duration)
	data := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := wave(float64(i) / sampleRate)
		v = max(-1, min(1, v))
		s := int16(v * math.MaxInt16)
		data[i*4] = byte(s)
		data[i*4+1] = byte(s >> 8)
		data[i*4+2] = byte(s)
		data[i*4+3] = byte(s >> 8)
	}
	return data
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
