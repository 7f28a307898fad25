package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/travel-story-api/internal/domain/repository"
	"github.com/oksasatya/travel-story-api/pkg/metrics"
)

// AssistantFallback answers the assistant when the model is unavailable.
const AssistantFallback = "I'd love to help you plan your next adventure! What destination interests you?"

// MaxTitles is how many title suggestions GenerateTitles returns at most.
const MaxTitles = 3

// AssistantService wraps the generative text model. It never retries.
type AssistantService struct {
	Gen     TextGenerator
	Stories repo.StoryRepository
	Logger  *logrus.Logger
}

func NewAssistantService(gen TextGenerator, stories repo.StoryRepository, logger *logrus.Logger) *AssistantService {
	return &AssistantService{Gen: gen, Stories: stories, Logger: logger}
}

func (s *AssistantService) generate(ctx context.Context, op, prompt string) (string, error) {
	if s.Gen == nil {
		metrics.RecordAssistantCall(op, ErrUpstream)
		return "", ErrUpstream
	}
	out, err := s.Gen.Generate(ctx, prompt)
	metrics.RecordAssistantCall(op, err)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("op", op).Warn("generative call failed")
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return out, nil
}

// Ask answers a free-text travel question using the user's visited places as context.
func (s *AssistantService) Ask(ctx context.Context, userID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", ErrValidation)
	}

	var b strings.Builder
	b.WriteString("You are a helpful travel assistant. ")
	if s.Stories != nil {
		stories, err := s.Stories.ListByUser(ctx, userID)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("load stories for assistant failed")
		}
		var places []string
		for _, st := range stories {
			places = append(places, st.VisitedLocation...)
		}
		if len(places) > 0 {
			b.WriteString("The user has visited: " + strings.Join(places, ", ") + ". ")
		}
	}
	b.WriteString("Answer naturally and conversationally: " + question)

	answer, err := s.generate(ctx, "ask", b.String())
	if err != nil {
		return AssistantFallback, nil
	}
	return answer, nil
}

// EnhanceStory rewrites a story to read better without changing its facts.
func (s *AssistantService) EnhanceStory(ctx context.Context, story string) (string, error) {
	if strings.TrimSpace(story) == "" {
		return "", fmt.Errorf("%w: story is required", ErrValidation)
	}
	prompt := "Enhance this travel story by improving the writing style, adding vivid descriptions, " +
		"and making it more engaging while keeping the original meaning and facts. " +
		"Keep it concise and travel-focused:\n\n\"" + story + "\"\n\nEnhanced version:"
	return s.generate(ctx, "enhance", prompt)
}

// GenerateTitles suggests up to MaxTitles titles, one per non-empty model line.
func (s *AssistantService) GenerateTitles(ctx context.Context, story string, locations []string) ([]string, error) {
	if strings.TrimSpace(story) == "" {
		return nil, fmt.Errorf("%w: story is required", ErrValidation)
	}
	prompt := fmt.Sprintf("Generate %d catchy, creative titles for this travel story. Consider the locations: %s\n\n"+
		"Story: \"%s\"\n\nProvide exactly %d titles, one per line, without numbering or bullets:",
		MaxTitles, strings.Join(locations, ", "), story, MaxTitles)
	out, err := s.generate(ctx, "titles", prompt)
	if err != nil {
		return nil, err
	}
	return splitTitles(out, MaxTitles), nil
}

func splitTitles(text string, n int) []string {
	titles := make([]string, 0, n)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		titles = append(titles, line)
		if len(titles) == n {
			break
		}
	}
	return titles
}
