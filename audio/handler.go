package audio

import (
	"github.com/lixenwraith/platanus-dice/constants"
	"github.com/lixenwraith/platanus-dice/events"
)

// EventTypes implements events.Handler
func (g *ToneGenerator) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventGameStarted,
		events.EventIntroJingle,
		events.EventPlaybackStep,
		events.EventInputAccepted,
		events.EventRoundWon,
		events.EventGameOver,
	}
}

// HandleEvent maps engine transitions to sounds
func (g *ToneGenerator) HandleEvent(ev events.GameEvent) {
	switch ev.Type {
	case events.EventGameStarted:
		g.Stop()

	case events.EventIntroJingle:
		g.PlayJingle(IntroJingle.Notes, IntroJingle.Overlap)

	case events.EventPlaybackStep:
		if p, ok := ev.Payload.(events.PlaybackStepPayload); ok {
			g.PlayTone(p.Color.Freq, p.Tone, WaveSquare, constants.PlaybackToneVolume)
		}

	case events.EventInputAccepted:
		g.PlayTone(constants.SuccessToneFreq, constants.SuccessToneDuration, WaveSine, constants.SuccessToneVolume)

	case events.EventRoundWon:
		g.PlayJingle(WinJingle.Notes, WinJingle.Overlap)

	case events.EventGameOver:
		g.PlayJingle(GameOverJingle.Notes, GameOverJingle.Overlap)
	}
}
