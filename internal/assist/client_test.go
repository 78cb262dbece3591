package assist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"stash/internal/models"
)

// fakeLLM stands in for the remote model.
type fakeLLM struct {
	reply    string
	err      error
	messages []llms.MessageContent
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestClient(llm llms.Model) *Client {
	c := NewClient(llm, "", "", nil)
	c.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func TestAnalyzeImageParsesReply(t *testing.T) {
	llm := &fakeLLM{reply: `{
		"name": "Cough Syrup",
		"category": "Medicine",
		"expiryDate": "2026-12-31",
		"suggestedLocation": "Medicine Cabinet",
		"notes": "Cherry flavored cough suppressant."
	}`}

	result, err := newTestClient(llm).AnalyzeImage(context.Background(), []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "Cough Syrup", result.Name)
	assert.Equal(t, models.CategoryMedicine, result.Category)
	assert.Equal(t, "Medicine Cabinet", result.SuggestedLocation)
	assert.Equal(t, "Cherry flavored cough suppressant.", result.Notes)
	require.NotNil(t, result.ExpiryDate)
	assert.Equal(t, "2026-12-31", result.ExpiryDate.Format("2006-01-02"))
}

func TestAnalyzeImageSubstitutesDefaults(t *testing.T) {
	llm := &fakeLLM{reply: `{}`}

	result, err := newTestClient(llm).AnalyzeImage(context.Background(), []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, DefaultName, result.Name)
	assert.Equal(t, models.CategoryMisc, result.Category)
	assert.Equal(t, DefaultLocation, result.SuggestedLocation)
	assert.Nil(t, result.ExpiryDate)
	assert.Empty(t, result.Notes)
}

func TestAnalyzeImageFencedReply(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n{\"name\": \"Torch\", \"category\": \"Tools\", \"suggestedLocation\": \"Garage\"}\n```"}

	result, err := newTestClient(llm).AnalyzeImage(context.Background(), []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "Torch", result.Name)
	assert.Equal(t, models.CategoryTools, result.Category)
	assert.Equal(t, "Garage", result.SuggestedLocation)
}

func TestAnalyzeImageGarbageReplyFailsSoft(t *testing.T) {
	llm := &fakeLLM{reply: "I cannot identify this item."}

	result, err := newTestClient(llm).AnalyzeImage(context.Background(), []byte("jpeg"))
	require.NoError(t, err, "a mangled reply must still yield a usable draft")

	assert.Equal(t, DefaultName, result.Name)
	assert.Equal(t, models.CategoryMisc, result.Category)
	assert.Equal(t, DefaultLocation, result.SuggestedLocation)
}

func TestAnalyzeImageInvalidFieldsReplaced(t *testing.T) {
	llm := &fakeLLM{reply: `{
		"name": "Mystery Box",
		"category": "Treasure",
		"expiryDate": "soonish",
		"suggestedLocation": "Attic"
	}`}

	result, err := newTestClient(llm).AnalyzeImage(context.Background(), []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, models.CategoryMisc, result.Category, "unknown category falls back to Misc")
	assert.Nil(t, result.ExpiryDate, "unparseable date is dropped")
}

func TestAnalyzeImageTransportError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection refused")}

	result, err := newTestClient(llm).AnalyzeImage(context.Background(), []byte("jpeg"))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAnalyzeImageSendsImageAndInstruction(t *testing.T) {
	llm := &fakeLLM{reply: `{}`}

	_, err := newTestClient(llm).AnalyzeImage(context.Background(), []byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)
	require.Len(t, llm.messages, 1)

	var sawImage, sawText bool
	for _, part := range llm.messages[0].Parts {
		switch p := part.(type) {
		case llms.BinaryContent:
			sawImage = true
			assert.Equal(t, "image/jpeg", p.MIMEType)
			assert.Equal(t, []byte{0xff, 0xd8, 0xff}, p.Data)
		case llms.TextContent:
			sawText = true
			assert.Contains(t, p.Text, "household item")
		}
	}
	assert.True(t, sawImage, "request must carry the image payload")
	assert.True(t, sawText, "request must carry the instruction")
}

func TestAskReturnsAnswerVerbatim(t *testing.T) {
	llm := &fakeLLM{reply: "Your batteries are in the Living Room Drawer."}

	answer := newTestClient(llm).Ask(context.Background(), "where are my batteries?", nil)
	assert.Equal(t, "Your batteries are in the Living Room Drawer.", answer)
}

func TestAskFallbackOnError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection refused")}

	answer := newTestClient(llm).Ask(context.Background(), "where are my batteries?", nil)
	assert.Equal(t, FallbackAnswer, answer)
}

func TestAskEmptyReply(t *testing.T) {
	llm := &fakeLLM{reply: "   "}

	answer := newTestClient(llm).Ask(context.Background(), "where are my batteries?", nil)
	assert.Equal(t, EmptyAnswer, answer)
}

func TestAskPromptProjection(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	expiry := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	items := []models.InventoryItem{{
		ID:         "secret-id",
		Name:       "Cough Syrup",
		Category:   models.CategoryMedicine,
		Location:   "Bathroom Cabinet",
		ExpiryDate: &expiry,
		ImageURL:   "data:image/jpeg;base64,AAAA",
		Notes:      "Half empty",
	}}

	newTestClient(llm).Ask(context.Background(), "what is expired?", items)

	require.Len(t, llm.messages, 1)
	require.Len(t, llm.messages[0].Parts, 1)
	prompt := llm.messages[0].Parts[0].(llms.TextContent).Text

	assert.Contains(t, prompt, "Cough Syrup")
	assert.Contains(t, prompt, "Bathroom Cabinet")
	assert.Contains(t, prompt, "2026-08-31")
	assert.Contains(t, prompt, "Half empty")
	assert.Contains(t, prompt, "what is expired?")
	// Today's date anchors the expiry cross-check.
	assert.Contains(t, prompt, "2026-09-01")
	// The projection never leaks identifiers or image payloads.
	assert.NotContains(t, prompt, "secret-id")
	assert.NotContains(t, prompt, "base64")
}
