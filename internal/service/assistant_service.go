package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"parakeet/internal/domain"
	"parakeet/internal/repository"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// marketplaceInfo grounds the LLM in the storefront's offerings.
const marketplaceInfo = `
Parakeet is an AI-powered Telegram marketplace by ApexBart Solutions with the following offerings:

- AI Services:
  * Custom AI Chatbot Development ($299) - Trained on business data
  * Content Generation Service ($199) - AI-powered blog and social media content
  * Predictive Analytics ($399) - Business intelligence reports

- SEO & Copywriting:
  * Website SEO Audit ($99) - Full analysis and recommendations
  * Content Strategy ($149) - Monthly content planning
  * Product Description Writing ($49) - Compelling copy for your products

- Automation Tools:
  * Workflow Automation ($249) - Automate routine business tasks
  * Process Optimization ($299) - Streamline business operations
  * Data Integration ($199) - Connect different data sources

- Online Courses:
  * AI Strategy Masterclass ($199) - 10 modules, 6 hours
  * Python for Automation ($149) - 12 modules, 8 hours
  * Data Analytics Fundamentals ($129) - 8 modules, 5 hours
`

const assistantSystemPrompt = `You are the AI assistant for Parakeet, an AI-powered marketplace on Telegram.
You are helpful, knowledgeable, and tailored to assist users find and understand products.
` + marketplaceInfo + `
When responding:
1. Keep answers concise and focused on the marketplace products
2. If users ask about product recommendations, suggest relevant items from the catalog
3. Provide pricing information when available
4. Offer quick option buttons when appropriate
5. Never mention that you're an AI model, just focus on being the marketplace assistant
6. Format your answers with clear sections using line breaks and bullet points for readability
7. Respond in JSON format with these fields:
   - message: your response text
   - options: array of option objects with 'text' and 'value' fields (optional)`

// maxRecommendations caps the products returned for a search-style query.
const maxRecommendations = 3

// ChatCompleter is the slice of the OpenAI client the assistant uses.
// *openai.Client satisfies it; tests substitute a stub.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AssistantService answers chat messages: direct search-style questions are
// served from the catalog by keyword matching; everything else falls back to
// the LLM, and any failure degrades to a canned reply with quick options.
type AssistantService interface {
	Chat(ctx context.Context, message string) (domain.AssistantResponse, error)
}

type assistantService struct {
	catalog   repository.CatalogStore
	completer ChatCompleter
	model     string
}

// NewAssistantService creates a new instance of AssistantService. completer
// may be nil, in which case every non-search query gets the fallback reply.
func NewAssistantService(catalog repository.CatalogStore, completer ChatCompleter, model string) AssistantService {
	if model == "" {
		model = openai.GPT4o
	}
	return &assistantService{catalog: catalog, completer: completer, model: model}
}

func (s *assistantService) Chat(ctx context.Context, message string) (domain.AssistantResponse, error) {
	if strings.TrimSpace(message) == "" {
		return domain.AssistantResponse{}, fmt.Errorf("%w: message must not be empty", ErrValidation)
	}

	normalized := strings.ToLower(message)
	if isSearchQuery(normalized) {
		keywords := extractKeywords(normalized)
		products, err := s.searchByKeywords(ctx, keywords)
		if err != nil {
			return domain.AssistantResponse{}, err
		}
		if len(products) > 0 {
			if len(products) > maxRecommendations {
				products = products[:maxRecommendations]
			}
			return domain.AssistantResponse{
				ID:       uuid.NewString(),
				Message:  fmt.Sprintf("I found %d products that might interest you:", len(products)),
				Products: products,
			}, nil
		}
	}

	reply, err := s.complete(ctx, message)
	if err != nil {
		return fallbackResponse(), nil
	}
	return reply, nil
}

func (s *assistantService) complete(ctx context.Context, message string) (domain.AssistantResponse, error) {
	if s.completer == nil {
		return domain.AssistantResponse{}, fmt.Errorf("no completion client configured")
	}

	resp, err := s.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return domain.AssistantResponse{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return domain.AssistantResponse{}, fmt.Errorf("empty completion response")
	}

	var parsed struct {
		Message string                   `json:"message"`
		Options []domain.AssistantOption `json:"options"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return domain.AssistantResponse{}, fmt.Errorf("decode completion response: %w", err)
	}

	return domain.AssistantResponse{
		ID:      uuid.NewString(),
		Message: parsed.Message,
		Options: parsed.Options,
	}, nil
}

func fallbackResponse() domain.AssistantResponse {
	return domain.AssistantResponse{
		ID:      uuid.NewString(),
		Message: "I'm sorry, I encountered an error while processing your request. Please try again later.",
		Options: []domain.AssistantOption{
			{Text: "Featured Products", Value: "show_featured"},
			{Text: "Popular Services", Value: "show_services"},
			{Text: "Trending Courses", Value: "show_courses"},
		},
	}
}

// searchByKeywords matches any keyword as a substring of the product's name
// and description, and joins each hit with its category.
func (s *assistantService) searchByKeywords(ctx context.Context, keywords []string) ([]domain.ProductWithCategory, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ProductWithCategory, 0)
	for _, product := range products {
		text := strings.ToLower(product.Name + " " + product.Description)
		matched := false
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		category, err := s.catalog.GetCategory(ctx, product.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, domain.ProductWithCategory{Product: product, Category: category})
	}
	return out, nil
}

var searchIntents = []string{"find", "search", "looking for"}

func isSearchQuery(normalized string) bool {
	for _, intent := range searchIntents {
		if strings.Contains(normalized, intent) {
			return true
		}
	}
	return false
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// extractKeywords strips punctuation and stop words, keeps tokens longer
// than two characters and dedupes them preserving order.
func extractKeywords(normalized string) []string {
	cleaned := nonWord.ReplaceAllString(normalized, "")
	seen := make(map[string]struct{})
	keywords := make([]string, 0)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

var stopWords = func() map[string]struct{} {
	words := []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your", "yours",
		"yourself", "yourselves", "he", "him", "his", "himself", "she", "her", "hers",
		"herself", "it", "its", "itself", "they", "them", "their", "theirs", "themselves",
		"what", "which", "who", "whom", "this", "that", "these", "those", "am", "is", "are",
		"was", "were", "be", "been", "being", "have", "has", "had", "having", "do", "does",
		"did", "doing", "a", "an", "the", "and", "but", "if", "or", "because", "as", "until",
		"while", "of", "at", "by", "for", "with", "about", "against", "between", "into",
		"through", "during", "before", "after", "above", "below", "to", "from", "up", "down",
		"in", "out", "on", "off", "over", "under", "again", "further", "then", "once", "here",
		"there", "when", "where", "why", "how", "all", "any", "both", "each", "few", "more",
		"most", "other", "some", "such", "no", "nor", "not", "only", "own", "same", "so",
		"than", "too", "very", "s", "t", "can", "will", "just", "don", "dont", "should",
		"shouldve", "now", "d", "ll", "m", "o", "re", "ve", "y", "ain", "aren", "arent",
		"couldn", "couldnt", "didn", "didnt", "doesn", "doesnt", "hadn", "hadnt",
		"hasn", "hasnt", "haven", "havent", "isn", "isnt", "ma", "mightn", "mightnt",
		"mustn", "mustnt", "needn", "neednt", "shan", "shant", "shouldn", "shouldnt",
		"wasn", "wasnt", "weren", "werent", "won", "wont", "wouldn", "wouldnt",
		"looking", "find", "need", "want", "search", "help",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
