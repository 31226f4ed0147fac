package service

import (
	"context"
	"errors"
	"testing"

	"parakeet/internal/domain"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter returns a fixed completion payload or an error.
type stubCompleter struct {
	content string
	err     error
	called  bool
}

func (s *stubCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.called = true
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func seedAssistantCatalog(t *testing.T, env testEnv) {
	t.Helper()
	category := env.addCategory(t, "AI Services", "ai-services")
	env.addProduct(t, domain.Product{
		Name:        "AI Chatbot Development",
		Description: "Custom chatbot development for your business",
		CategoryID:  category.ID,
		Price:       29900,
	})
	env.addProduct(t, domain.Product{
		Name:        "SEO Automation Tool",
		Description: "Automated SEO analysis for websites",
		CategoryID:  category.ID,
		Price:       14900,
	})
}

func TestChatRejectsBlankMessage(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAssistantService(env.store, nil, "")

	_, err := svc.Chat(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChatSearchIntentServedFromCatalog(t *testing.T) {
	env := newTestEnv(t)
	seedAssistantCatalog(t, env)
	completer := &stubCompleter{content: `{"message":"unused"}`}
	svc := NewAssistantService(env.store, completer, "")

	out, err := svc.Chat(context.Background(), "I'm looking for a chatbot")
	require.NoError(t, err)

	require.Len(t, out.Products, 1)
	assert.Equal(t, "AI Chatbot Development", out.Products[0].Name)
	assert.Equal(t, "AI Services", out.Products[0].Category.Name)
	assert.NotEmpty(t, out.ID)
	assert.NotEmpty(t, out.Message)

	// Catalog answered; the LLM was never consulted
	assert.False(t, completer.called)
}

func TestChatSearchWithoutHitsFallsThroughToLLM(t *testing.T) {
	env := newTestEnv(t)
	seedAssistantCatalog(t, env)
	completer := &stubCompleter{content: `{"message":"We do not carry submarines.","options":[{"text":"Featured Products","value":"show_featured"}]}`}
	svc := NewAssistantService(env.store, completer, "")

	out, err := svc.Chat(context.Background(), "find me a submarine")
	require.NoError(t, err)

	assert.True(t, completer.called)
	assert.Empty(t, out.Products)
	assert.Equal(t, "We do not carry submarines.", out.Message)
	require.Len(t, out.Options, 1)
	assert.Equal(t, "show_featured", out.Options[0].Value)
}

func TestChatCompletionFailureDegradesToFallback(t *testing.T) {
	env := newTestEnv(t)
	completer := &stubCompleter{err: errors.New("upstream unavailable")}
	svc := NewAssistantService(env.store, completer, "")

	out, err := svc.Chat(context.Background(), "what payment methods do you accept?")
	require.NoError(t, err)

	assert.NotEmpty(t, out.Message)
	require.Len(t, out.Options, 3)
	values := []string{out.Options[0].Value, out.Options[1].Value, out.Options[2].Value}
	assert.Equal(t, []string{"show_featured", "show_services", "show_courses"}, values)
}

func TestChatMalformedCompletionDegradesToFallback(t *testing.T) {
	env := newTestEnv(t)
	completer := &stubCompleter{content: "not json at all"}
	svc := NewAssistantService(env.store, completer, "")

	out, err := svc.Chat(context.Background(), "tell me about your company")
	require.NoError(t, err)
	assert.Len(t, out.Options, 3)
}

func TestChatNilCompleterUsesFallback(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAssistantService(env.store, nil, "")

	out, err := svc.Chat(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Len(t, out.Options, 3)
}

func TestChatRecommendationsAreCapped(t *testing.T) {
	env := newTestEnv(t)
	category := env.addCategory(t, "Tools", "tools")
	for i := 0; i < 6; i++ {
		env.addProduct(t, domain.Product{
			Name:        "Automation Tool",
			Description: "Automates business workflows",
			CategoryID:  category.ID,
		})
	}
	svc := NewAssistantService(env.store, nil, "")

	out, err := svc.Chat(context.Background(), "search for automation")
	require.NoError(t, err)
	assert.Len(t, out.Products, maxRecommendations)
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"i'm looking for a chatbot", []string{"chatbot"}},
		{"find me an seo tool, please!", []string{"seo", "tool", "please"}},
		{"can you help me?", nil},
		{"chatbot chatbot chatbot", []string{"chatbot"}},
	}
	for _, tt := range tests {
		got := extractKeywords(tt.in)
		if tt.want == nil {
			assert.Empty(t, got, "input %q", tt.in)
			continue
		}
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestIsSearchQuery(t *testing.T) {
	assert.True(t, isSearchQuery("find me a tool"))
	assert.True(t, isSearchQuery("i am searching for courses"))
	assert.True(t, isSearchQuery("looking for analytics"))
	assert.False(t, isSearchQuery("how much does shipping cost"))
}
