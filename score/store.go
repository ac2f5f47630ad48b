package score

import (
	"errors"

	"go.uber.org/zap"

	"github.com/lixenwraith/platanus-dice/constants"
	"github.com/lixenwraith/platanus-dice/storage"
)

// Prompt asks the player for initials; ok false means cancelled
type Prompt interface {
	Initials(score int) (initials string, ok bool)
}

// PromptFunc adapts a function to Prompt
type PromptFunc func(score int) (string, bool)

func (f PromptFunc) Initials(score int) (string, bool) {
	return f(score)
}

// Store persists the table under a single storage key
// Storage failures are logged and degrade to an empty or unsaved table
type Store struct {
	kv     storage.KV
	prompt Prompt
	logger *zap.Logger
	key    string
}

// NewStore wraps kv; a nil prompt records default initials
func NewStore(kv storage.KV, prompt Prompt, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		kv:     kv,
		prompt: prompt,
		logger: logger,
		key:    constants.HighScoreKey,
	}
}

// SetPrompt replaces the initials collaborator
func (s *Store) SetPrompt(p Prompt) {
	s.prompt = p
}

// Load returns the stored table, empty when missing or unreadable
func (s *Store) Load() Table {
	data, err := s.kv.Get(s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return Table{}
	}
	if err != nil {
		s.logger.Warn("high score load failed", zap.Error(err))
		return Table{}
	}

	t, err := Decode(data)
	if err != nil {
		s.logger.Warn("high score table unreadable, starting empty", zap.Error(err))
		return Table{}
	}
	return Normalize(t)
}

// Submit records score if it qualifies, asking the prompt once for initials
// The returned table reflects the submission even when saving failed
func (s *Store) Submit(score int) Table {
	t := s.Load()
	if !Qualifies(t, score) {
		return t
	}

	initials := ""
	if s.prompt != nil {
		if in, ok := s.prompt.Initials(score); ok {
			initials = in
		}
	}
	entry := Entry{Initials: NormalizeInitials(initials), Score: score}
	t = Insert(t, entry)

	data, err := Encode(t)
	if err != nil {
		s.logger.Error("high score encode failed", zap.Error(err))
		return t
	}
	if err := s.kv.Set(s.key, data); err != nil {
		s.logger.Warn("high score save failed", zap.Error(err))
		return t
	}

	s.logger.Info("high score recorded",
		zap.String("initials", entry.Initials),
		zap.Int("score", entry.Score),
	)
	return t
}
