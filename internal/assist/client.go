// Package assist is the enrichment client: two one-shot operations against a
// generative model, with no retries and no streaming. Image analysis fails
// soft into an editable draft; the assistant query never fails outward at all.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"stash/internal/models"
)

// ErrUnavailable is returned when image analysis cannot reach the service.
// The add-item workflow falls back to manual entry when it sees this.
var ErrUnavailable = errors.New("image analysis unavailable")

// Defaults substituted for missing or invalid analysis fields.
const (
	DefaultName     = "Unknown Item"
	DefaultLocation = "Living Room"
)

// Canned assistant replies.
const (
	// FallbackAnswer is shown when the assistant query fails.
	FallbackAnswer = "Sorry, I'm having trouble connecting to my brain right now."
	// EmptyAnswer is shown when the model returns nothing.
	EmptyAnswer = "I couldn't find that in your inventory."
)

const analysisPrompt = `Analyze this image of a household item.
Identify the item name.
Categorize it into one of these: Food, Electronics, Clothing, Documents, Medicine, Tools, Misc.
If it is food or medicine, try to read the expiry date from the package. Return YYYY-MM-DD format if found, otherwise null.
Suggest a typical home location for this item (e.g., "Kitchen Pantry", "Medicine Cabinet").
Add a short 1-sentence description/note.
Respond with a single JSON object with exactly these keys:
{"name": string, "category": string, "expiryDate": string or null, "suggestedLocation": string, "notes": string}`

// Client wraps the generative model behind the two enrichment operations.
type Client struct {
	llm         llms.Model
	chatModel   string
	visionModel string
	logger      *zap.Logger
	now         func() time.Time
}

// NewClient builds an enrichment client. The model names override the
// provider default per operation; empty strings keep the provider default.
// A nil logger disables logging.
func NewClient(llm llms.Model, chatModel, visionModel string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		llm:         llm,
		chatModel:   chatModel,
		visionModel: visionModel,
		logger:      logger,
		now:         time.Now,
	}
}

// AnalyzeImage sends a JPEG-encoded photo to the model and returns a draft
// record for the add-item form. A reply the model mangles still yields a
// usable draft via field-wise defaults; only a transport or service failure
// returns an error, wrapping ErrUnavailable.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte) (*models.AIAnalysisResult, error) {
	content := []llms.MessageContent{{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.BinaryPart("image/jpeg", image),
			llms.TextPart(analysisPrompt),
		},
	}}

	opts := []llms.CallOption{llms.WithJSONMode(), llms.WithTemperature(0.2)}
	if c.visionModel != "" {
		opts = append(opts, llms.WithModel(c.visionModel))
	}

	resp, err := c.llm.GenerateContent(ctx, content, opts...)
	if err != nil {
		c.logger.Warn("image analysis failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("image analysis returned no choices")
		return nil, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	return parseAnalysis(resp.Choices[0].Content), nil
}

// rawAnalysis is the untrusted wire shape of the model's reply.
type rawAnalysis struct {
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	ExpiryDate        *string `json:"expiryDate"`
	SuggestedLocation string  `json:"suggestedLocation"`
	Notes             string  `json:"notes"`
}

// parseAnalysis validates the reply field by field, substituting defaults.
// A reply that is not JSON at all produces the all-defaults draft.
func parseAnalysis(reply string) *models.AIAnalysisResult {
	var raw rawAnalysis
	_ = json.Unmarshal([]byte(stripFences(reply)), &raw)

	result := &models.AIAnalysisResult{
		Name:              raw.Name,
		Category:          models.ParseCategory(raw.Category),
		SuggestedLocation: raw.SuggestedLocation,
		Notes:             raw.Notes,
	}
	if result.Name == "" {
		result.Name = DefaultName
	}
	if result.SuggestedLocation == "" {
		result.SuggestedLocation = DefaultLocation
	}
	if raw.ExpiryDate != nil {
		if t, err := time.Parse("2006-01-02", *raw.ExpiryDate); err == nil {
			result.ExpiryDate = &t
		}
	}
	return result
}

// stripFences removes a markdown code fence wrapper, which some models emit
// even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// projectedItem is the compact inventory view shared with the assistant.
// Identifiers and image data are deliberately left out.
type projectedItem struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Expiry   string `json:"expiry,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Ask answers a free-text question about the current inventory. The reply is
// advisory, so this never returns an error: any failure degrades to
// FallbackAnswer and an empty reply to EmptyAnswer.
func (c *Client) Ask(ctx context.Context, query string, items []models.InventoryItem) string {
	prompt := c.assistantPrompt(query, items)

	var opts []llms.CallOption
	if c.chatModel != "" {
		opts = append(opts, llms.WithModel(c.chatModel))
	}

	answer, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, opts...)
	if err != nil {
		c.logger.Warn("assistant query failed", zap.Error(err))
		return FallbackAnswer
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return EmptyAnswer
	}
	return answer
}

func (c *Client) assistantPrompt(query string, items []models.InventoryItem) string {
	projection := make([]projectedItem, 0, len(items))
	for _, item := range items {
		p := projectedItem{
			Name:     item.Name,
			Location: item.Location,
			Notes:    item.Notes,
		}
		if item.ExpiryDate != nil {
			p.Expiry = item.ExpiryDate.Format("2006-01-02")
		}
		projection = append(projection, p)
	}
	context, _ := json.Marshal(projection)

	return fmt.Sprintf(`You are StashAI, a helpful home inventory assistant.
Here is the user's current inventory JSON:
%s

User Query: %q

Answer the user's question based strictly on the inventory list provided.
If the user is looking for an item, tell them the location.
If they ask about expired items, check the dates against today (%s).
Keep the tone friendly, concise, and helpful.`,
		context, query, c.now().Format("2006-01-02"))
}
