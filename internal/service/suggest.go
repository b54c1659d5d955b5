package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Junaid083/SprintSync/internal/apperr"
)

const (
	openAIEndpoint   = "https://api.openai.com/v1/chat/completions"
	maxSuggestInput  = 200
	suggestCacheTTL  = time.Hour
	suggestSystemMsg = "You are a helpful assistant that creates detailed task descriptions and implementation plans for software engineering tasks. Be specific and actionable."
)

type Suggestion struct {
	Description string `json:"description"`
}

// SuggestService proxies task-description generation to OpenAI when a key
// is configured and falls back to a deterministic local template otherwise.
// The redis cache is optional; a nil client disables it.
type SuggestService struct {
	apiKey   string
	endpoint string
	httpc    *http.Client
	cache    *redis.Client
	logger   *zap.Logger
}

func NewSuggestService(apiKey string, cache *redis.Client, logger *zap.Logger) *SuggestService {
	return &SuggestService{
		apiKey:   apiKey,
		endpoint: openAIEndpoint,
		httpc:    &http.Client{Timeout: 30 * time.Second},
		cache:    cache,
		logger:   logger,
	}
}

// WithEndpoint overrides the upstream URL. Used by tests.
func (s *SuggestService) WithEndpoint(url string) *SuggestService {
	s.endpoint = url
	return s
}

func (s *SuggestService) Suggest(ctx context.Context, input string) (Suggestion, error) {
	if strings.TrimSpace(input) == "" {
		return Suggestion{}, apperr.Validation("Please provide a task title for AI suggestions", nil)
	}
	if len(input) > maxSuggestInput {
		return Suggestion{}, apperr.Validation("Input text is too long. Please keep it under 200 characters.", nil)
	}

	if cached, ok := s.cacheGet(ctx, input); ok {
		return cached, nil
	}

	if s.apiKey == "" {
		return fallbackSuggestion(input), nil
	}

	suggestion, err := s.callUpstream(ctx, input)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindThrottled {
			// Throttling passes through to the caller, never silently degraded
			return Suggestion{}, err
		}
		s.logger.Warn("suggestion upstream failed, using fallback", zap.Error(err))
		return fallbackSuggestion(input), nil
	}

	s.cacheSet(ctx, input, suggestion)
	return suggestion, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *SuggestService) callUpstream(ctx context.Context, input string) (Suggestion, error) {
	body, err := json.Marshal(chatRequest{
		Model: "gpt-3.5-turbo",
		Messages: []chatMessage{
			{Role: "system", Content: suggestSystemMsg},
			{Role: "user", Content: fmt.Sprintf("Create a detailed task description and implementation plan for: %q", input)},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return Suggestion{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return Suggestion{}, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return Suggestion{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return Suggestion{}, apperr.Throttled("AI service is currently busy. Please try again in a few minutes.")
	case resp.StatusCode != http.StatusOK:
		return Suggestion{}, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Suggestion{}, err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return Suggestion{}, fmt.Errorf("upstream returned no choices")
	}
	return Suggestion{Description: parsed.Choices[0].Message.Content}, nil
}

func (s *SuggestService) cacheGet(ctx context.Context, input string) (Suggestion, bool) {
	if s.cache == nil {
		return Suggestion{}, false
	}
	raw, err := s.cache.Get(ctx, cacheKey(input)).Result()
	if err != nil {
		return Suggestion{}, false
	}
	var suggestion Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err != nil {
		return Suggestion{}, false
	}
	return suggestion, true
}

func (s *SuggestService) cacheSet(ctx context.Context, input string, suggestion Suggestion) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(suggestion)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(input), raw, suggestCacheTTL).Err(); err != nil {
		s.logger.Warn("suggestion cache write failed", zap.Error(err))
	}
}

func cacheKey(input string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(input))))
	return "suggest:" + hex.EncodeToString(sum[:])
}

func fallbackSuggestion(input string) Suggestion {
	return Suggestion{Description: fmt.Sprintf(`Detailed implementation plan for: %s

**Objective:**
Complete the task "%s" with high quality and attention to detail.

**Implementation Steps:**
1. **Research & Planning**
   - Analyze requirements and constraints
   - Identify dependencies and prerequisites
   - Create technical specification

2. **Development Phase**
   - Set up development environment
   - Implement core functionality
   - Write comprehensive tests

3. **Quality Assurance**
   - Code review and refactoring
   - Performance optimization
   - Security considerations

4. **Documentation & Deployment**
   - Update documentation
   - Prepare deployment strategy
   - Monitor and validate results

**Acceptance Criteria:**
- All functionality works as expected
- Code follows best practices
- Tests pass with good coverage
- Documentation is complete

**Estimated Time:** 2-4 hours depending on complexity`, input, input)}
}
