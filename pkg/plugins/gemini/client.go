// Package gemini asks a generative model for travel tips about the
// current itinerary. It is strictly advisory: callers substitute fixed
// copy when the itinerary is empty or the request fails, and never
// surface an error to the user.
package gemini

import (
	"context"
	"fmt"
	"strings"

	v1 "github.com/byxorna/stopover/pkg/types/v1"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.0-flash"

	// Placeholder is shown instead of calling the API when there are no
	// stops yet.
	Placeholder = "Add a stop to your itinerary and I'll round up some travel tips."
	// Fallback replaces tips whenever a request fails, for any reason.
	Fallback = "Couldn't fetch travel tips right now. They'll refresh next time the itinerary changes."
)

var (
	ErrMissingAPIKey = fmt.Errorf("an API key is required for travel tips")
)

type Client struct {
	client   *genai.Client
	model    string
	language string
}

// New builds a tips client. The key is opaque to the rest of the app and
// comes from the environment.
func New(ctx context.Context, apiKey, model, language string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create gemini client: %w", err)
	}

	return &Client{client: client, model: model, language: language}, nil
}

// RequestTips produces free-form advisory text for the given stops.
// Callers are expected not to call this with an empty itinerary.
func (c *Client) RequestTips(ctx context.Context, stops []v1.Stop) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(Prompt(stops, c.language)), nil)
	if err != nil {
		return "", fmt.Errorf("unable to generate tips: %w", err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", fmt.Errorf("empty tips response")
	}
	return text, nil
}

// Prompt enumerates every stop as "{title} ({address})" and asks for
// exactly three concise tips in the configured language.
func Prompt(stops []v1.Stop, language string) string {
	if language == "" {
		language = "English"
	}

	var b strings.Builder
	b.WriteString("You are a travel assistant. Here is my trip itinerary:\n")
	for _, s := range stops {
		fmt.Fprintf(&b, "- %s (%s)\n", s.Title, s.Address)
	}
	fmt.Fprintf(&b, "\nGive me exactly three concise travel tips for this itinerary, in %s.", language)
	return b.String()
}
