package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/giftscape-studio/storefront-core/internal/config"
)

// Client is the generative-AI collaborator. Two operations are consumed:
// a short marketing description for a product, and photo restoration that
// returns an image of the same logical content.
type Client interface {
	GenerateDescription(ctx context.Context, productName, baseDescription string) (string, error)
	RestorePhoto(ctx context.Context, imageData []byte, mimeType string) ([]byte, string, error)
}

var ErrNoImageReturned = errors.New("model did not return an image")

type geminiClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	maxRetries uint64
}

func NewClient(cfg *config.Gemini) Client {
	return &geminiClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		maxRetries: cfg.MaxRetries,
	}
}

type inlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *geminiClient) GenerateDescription(ctx context.Context, productName, baseDescription string) (string, error) {

	if c.apiKey == "" {
		return "", errors.New("gemini api key is not configured")
	}

	prompt := fmt.Sprintf(`You are a creative marketing assistant for an e-commerce store called 'GiftScape Studio'. Write a short, engaging, and cinematic product description for the following product. Keep it to 2-3 sentences max. Do not use markdown or special formatting.

Product Name: %q
Keywords/Base Description: %q`, productName, baseDescription)

	req := &generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	resp, err := c.generate(ctx, c.textModel, req)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("model returned no candidates")
	}

	for _, p := range resp.Candidates[0].Content.Parts {
		if text := strings.TrimSpace(p.Text); text != "" {
			return text, nil
		}
	}

	return "", errors.New("model returned an empty description")
}

func (c *geminiClient) RestorePhoto(ctx context.Context, imageData []byte, mimeType string) ([]byte, string, error) {

	if c.apiKey == "" {
		return nil, "", errors.New("gemini api key is not configured")
	}

	req := &generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{
				MimeType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(imageData),
			}},
			{Text: "Restore this old photograph. Improve clarity, fix scratches, correct colors, and enhance overall quality without adding or removing elements from the original image."},
		}}},
		GenerationConfig: &generationConfig{ResponseModalities: []string{"IMAGE", "TEXT"}},
	}

	resp, err := c.generate(ctx, c.imageModel, req)
	if err != nil {
		return nil, "", err
	}

	if len(resp.Candidates) == 0 {
		return nil, "", ErrNoImageReturned
	}

	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, "", fmt.Errorf("failed to decode restored image: %w", err)
			}

			restoredMime := p.InlineData.MimeType
			if restoredMime == "" {
				restoredMime = mimeType
			}

			return data, restoredMime, nil
		}
	}

	return nil, "", ErrNoImageReturned
}

func (c *geminiClient) generate(ctx context.Context, model string, req *generateRequest) (*generateResponse, error) {

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	var out generateResponse

	operation := func() error {

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}

		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return err
		}

		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			// Worth retrying; the model endpoint sheds load with 5xx.
			return fmt.Errorf("gemini responded with status %d", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("gemini responded with status %d: %s", resp.StatusCode, string(respBody)))
		}

		if err := json.Unmarshal(respBody, &out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}

		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return &out, nil
}
