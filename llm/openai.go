package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ecom-intel/config"
	"ecom-intel/models"
	"ecom-intel/utils"
)

const (
	openaiAPIURL   = "https://api.openai.com/v1/chat/completions"
	defaultTimeout = 60 * time.Second
)

// Client talks to the OpenAI chat-completions API. It implements the
// analyzer's SentimentClassifier and InsightGenerator contracts.
type Client struct {
	apiKey     string
	model      string
	baseURL    string // overrides the API endpoint in tests
	httpClient *http.Client
	logger     *utils.Logger
}

// Message represents a message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// New creates an OpenAI client from the application config. The API key is
// mandatory: a missing key is a configuration error, not an analysis
// failure.
func New(cfg *config.Config, logger *utils.Logger) (*Client, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("llm: OPENAI_API_KEY is not set")
	}
	return &Client{
		apiKey:     cfg.OpenAIAPIKey,
		model:      cfg.OpenAIModel,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}, nil
}

// Classify labels the sentiment of a single review. Callers treat any
// returned error as a neutral/0.5 verdict; this method never substitutes
// defaults itself.
func (c *Client) Classify(ctx context.Context, text string) (models.Sentiment, error) {
	messages := []Message{
		{
			Role: "system",
			Content: "Analyze the sentiment of the following review. Return a JSON object with " +
				"'sentiment' (positive, negative, or neutral) and 'score' " +
				"(0-1, where 0 is very negative and 1 is very positive).",
		},
		{Role: "user", Content: "Review: " + text},
	}

	raw, err := c.sendRequest(ctx, messages, true)
	if err != nil {
		return models.Sentiment{}, err
	}

	var parsed struct {
		Sentiment string  `json:"sentiment"`
		Score     float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.Sentiment{}, fmt.Errorf("llm: parse sentiment response: %w", err)
	}

	label := strings.ToLower(parsed.Sentiment)
	switch label {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
	default:
		label = models.SentimentNeutral
	}

	return models.Sentiment{Label: label, Score: parsed.Score}, nil
}

// Summarize generates narrative insights over a record set. At most
// maxRecords reviews are included in the prompt.
func (c *Client) Summarize(ctx context.Context, records []*models.ReviewRecord, maxRecords int) (models.Insights, error) {
	if len(records) > maxRecords {
		records = records[:maxRecords]
	}

	var reviewLines []string
	for i, r := range records {
		rating := "N/A"
		if r.Rating > 0 {
			rating = fmt.Sprintf("%.1f", r.Rating)
		}
		reviewLines = append(reviewLines, fmt.Sprintf("Review %d: %s (Rating: %s)", i+1, r.Text, rating))
	}

	systemPrompt := `You are an expert product analyst. Analyze the following product reviews and provide insights in JSON format:
{
    "key_insights": ["insight 1", "insight 2", ...],
    "pros": ["pro 1", "pro 2", ...],
    "cons": ["con 1", "con 2", ...],
    "recommendations": ["recommendation 1", "recommendation 2", ...]
}

Focus on:
- Key themes and patterns
- Most praised features
- Common complaints
- Actionable recommendations
Keep insights concise and specific.`

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Analyze these product reviews:\n\n" + strings.Join(reviewLines, "\n")},
	}

	raw, err := c.sendRequest(ctx, messages, true)
	if err != nil {
		return models.Insights{}, err
	}

	var parsed struct {
		KeyInsights     []string `json:"key_insights"`
		Pros            []string `json:"pros"`
		Cons            []string `json:"cons"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.Insights{}, fmt.Errorf("llm: parse insights response: %w", err)
	}

	return models.Insights{
		KeyInsights:     parsed.KeyInsights,
		Pros:            parsed.Pros,
		Cons:            parsed.Cons,
		Recommendations: parsed.Recommendations,
	}, nil
}

// Compare ranks several analyzed products against each other. It needs at
// least two analyses to have anything to compare.
func (c *Client) Compare(ctx context.Context, analyses map[string]*models.AnalysisResult) (models.Comparison, error) {
	if len(analyses) < 2 {
		return models.Comparison{}, fmt.Errorf("llm: need at least 2 products to compare, got %d", len(analyses))
	}

	type productData struct {
		Name              string   `json:"name"`
		Rating            float64  `json:"rating"`
		TotalReviews      int      `json:"total_reviews"`
		PositiveSentiment float64  `json:"positive_sentiment"`
		KeyPros           []string `json:"key_pros"`
		KeyCons           []string `json:"key_cons"`
	}

	var data []productData
	for name, a := range analyses {
		data = append(data, productData{
			Name:              name,
			Rating:            a.AverageRating,
			TotalReviews:      a.TotalReviews,
			PositiveSentiment: a.Sentiment.Positive,
			KeyPros:           capList(a.Pros, 3),
			KeyCons:           capList(a.Cons, 3),
		})
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return models.Comparison{}, fmt.Errorf("llm: encode comparison data: %w", err)
	}

	userPrompt := fmt.Sprintf(`Compare these products based on their review analysis:
%s

Provide a JSON comparison with:
{
    "best_overall": "product name",
    "best_value": "product name",
    "highest_quality": "product name",
    "comparison_points": ["point 1", "point 2", ...],
    "recommendation": "which product and why"
}`, encoded)

	messages := []Message{
		{Role: "system", Content: "You are a product comparison expert. Provide objective analysis based on the provided data."},
		{Role: "user", Content: userPrompt},
	}

	raw, err := c.sendRequest(ctx, messages, true)
	if err != nil {
		return models.Comparison{}, err
	}

	var parsed struct {
		BestOverall      string   `json:"best_overall"`
		BestValue        string   `json:"best_value"`
		HighestQuality   string   `json:"highest_quality"`
		ComparisonPoints []string `json:"comparison_points"`
		Recommendation   string   `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.Comparison{}, fmt.Errorf("llm: parse comparison response: %w", err)
	}

	return models.Comparison{
		BestOverall:      parsed.BestOverall,
		BestValue:        parsed.BestValue,
		HighestQuality:   parsed.HighestQuality,
		ComparisonPoints: parsed.ComparisonPoints,
		Recommendation:   parsed.Recommendation,
	}, nil
}

// sendRequest sends a chat-completion request and returns the first
// choice's content.
func (c *Client) sendRequest(ctx context.Context, messages []Message, jsonMode bool) (string, error) {
	requestBody := chatRequest{
		Model:    c.model,
		Messages: messages,
	}
	if jsonMode {
		requestBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("llm: parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm: no choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}

// apiURL is overridable for tests.
func (c *Client) apiURL() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return openaiAPIURL
}

func capList(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}
