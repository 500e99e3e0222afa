package service

import (
	"math/rand"
	"sync"
)

var captionPrefixes = []string{
	"When you",
	"That moment when",
	"Nobody:",
	"Me:",
	"My brain at 3am:",
}

var captionScenarios = []string{
	"try to code without coffee",
	"finally fix that bug",
	"see your code working on the first try",
	"forget to save your work",
	"have too many browser tabs open",
	"debug production code",
	"write documentation",
	"attend morning standups",
}

var captionResponses = []string{
	"This is fine",
	"What could go wrong?",
	"Success!",
	"Help me",
	"Why am I like this?",
	"Professional developer",
	"Living my best life",
	"No regrets",
}

// CaptionSuggestion is a generated top and bottom caption pair.
type CaptionSuggestion struct {
	TopText    string `json:"topText"`
	BottomText string `json:"bottomText"`
}

// CaptionService generates caption suggestions from fixed phrase tables.
type CaptionService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewCaptionService returns a CaptionService drawing from src.
func NewCaptionService(src rand.Source) *CaptionService {
	return &CaptionService{rng: rand.New(src)}
}

// Suggest picks one prefix, one scenario, and one response at random. The
// prefix and scenario form the top caption, the response is the bottom one.
func (s *CaptionService) Suggest() CaptionSuggestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := captionPrefixes[s.rng.Intn(len(captionPrefixes))]
	scenario := captionScenarios[s.rng.Intn(len(captionScenarios))]
	response := captionResponses[s.rng.Intn(len(captionResponses))]

	return CaptionSuggestion{
		TopText:    prefix + " " + scenario,
		BottomText: response,
	}
}
