package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"nanomerch/internal/domain"
	"nanomerch/internal/imagecodec"
	"nanomerch/internal/infra"
	"nanomerch/internal/infra/credentials"
)

const (
	// DefaultModel supports image-to-image editing driven by a text prompt.
	DefaultModel = "gemini-2.5-flash-image"

	responseModalityImage = "IMAGE"
)

// Options controls how the Gemini client is configured.
type Options struct {
	Credentials credentials.Source
	BaseURL     string
	Model       string
	HTTPClient  *http.Client
	Timeout     time.Duration
	Logger      *infra.Logger
}

// Client performs one image-editing request per call against the Gemini API
// and maps every outcome onto the domain error kinds.
type Client struct {
	creds      credentials.Source
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; one bounded by Timeout will be created.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	model := strings.TrimPrefix(strings.TrimSpace(opts.Model), "models/")
	if model == "" {
		model = DefaultModel
	}

	creds := opts.Credentials
	if creds == nil {
		creds = credentials.NewEnv()
	}

	logger := opts.Logger
	if logger == nil {
		discard := infra.DiscardLogger()
		logger = &discard
	}

	return &Client{
		creds:      creds,
		baseURL:    strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate sends src and prompt as a single multimodal request asking for an
// image back, and returns the first image of the first candidate as a PNG
// data-URI. Nothing is retried.
func (c *Client) Generate(ctx context.Context, src domain.SourceImage, prompt string) (domain.SourceImage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", domain.ErrEmptyPrompt
	}

	apiKey, err := c.creds.GeminiAPIKey(ctx)
	if err != nil {
		return "", domain.Classify(domain.KindMissingCredential, fmt.Errorf("load api key: %w", err))
	}
	if apiKey == "" {
		return "", domain.Classify(domain.KindMissingCredential, nil)
	}

	data, mime, err := imagecodec.DecodeBytes(src)
	if err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, c.clientConfig(apiKey))
	if err != nil {
		return "", domain.Classify(domain.KindUnclassifiedService, fmt.Errorf("create genai client: %w", err))
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{responseModalityImage},
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		classified := classifyError(err)
		c.logger.Warn().
			Err(err).
			Str("model", c.model).
			Str("kind", classified.Kind.String()).
			Dur("elapsed", time.Since(start)).
			Msg("gemini: generation failed")
		return "", classified
	}

	image, err := firstInlineImage(resp)
	if err != nil {
		c.logger.Warn().
			Str("model", c.model).
			Str("finish_reason", finishReason(resp)).
			Msg("gemini: response carried no image")
		return "", err
	}

	c.logger.Debug().
		Str("model", c.model).
		Str("source_mime", mime).
		Int("prompt_len", len(prompt)).
		Int("result_bytes", len(image)).
		Dur("elapsed", time.Since(start)).
		Msg("gemini: generated image")

	return imagecodec.EncodeBytes(image, imagecodec.PNG), nil
}

func (c *Client) clientConfig(apiKey string) *genai.ClientConfig {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	return cfg
}

// firstInlineImage applies the selection rule: only the first candidate is
// considered, and within it the first part carrying inline bytes.
func firstInlineImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, domain.Classify(domain.KindNoImageReturned, errors.New("response has no candidates"))
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return nil, domain.Classify(domain.KindNoImageReturned, errors.New("first candidate has no content"))
	}
	for _, part := range candidate.Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return part.InlineData.Data, nil
	}
	return nil, domain.Classify(domain.KindNoImageReturned, errors.New("first candidate has no inline image"))
}

func finishReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	return string(resp.Candidates[0].FinishReason)
}

// classifyError maps a failed call onto the closed set of kinds using the
// status code carried by the API error.
func classifyError(err error) *domain.ClassifiedError {
	switch statusCode(err) {
	case http.StatusForbidden:
		return domain.Classify(domain.KindPermissionDenied, err)
	case http.StatusServiceUnavailable:
		return domain.Classify(domain.KindServiceUnavailable, err)
	default:
		return domain.Classify(domain.KindUnclassifiedService, err)
	}
}

func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}
