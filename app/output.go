package app

import (
	"github.com/lixenwraith/platanus-dice/audio"
	"github.com/lixenwraith/platanus-dice/config"
)

// NewOutput builds the audio sink for a configured backend, nil for none
func NewOutput(backend string) audio.Output {
	switch backend {
	case config.AudioBackendSpeaker:
		return audio.NewSpeakerOutput()
	case config.AudioBackendPipe:
		return audio.NewPipeOutput()
	case config.AudioBackendNone:
		return nil
	default:
		return audio.NewFallbackOutput(audio.NewSpeakerOutput(), audio.NewPipeOutput())
	}
}
