package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"nanomerch/internal/domain"
	"nanomerch/internal/imagecodec"
	"nanomerch/internal/infra"
	"nanomerch/internal/infra/credentials"
	"nanomerch/internal/prompt"
	"nanomerch/internal/providers/gemini"
	"nanomerch/internal/storage"
)

func main() {
	_ = godotenv.Load()

	var (
		imageFlag   string
		productFlag string
		promptFlag  string
		outFlag     string
		keyFlag     string
	)
	flag.StringVar(&imageFlag, "image", "", "Path to the source image")
	flag.StringVar(&productFlag, "product", "", "Catalog product id (tshirt, mug, tote, hoodie, cap, notebook)")
	flag.StringVar(&promptFlag, "prompt", "", "Free-form edit instruction (used when -product is empty)")
	flag.StringVar(&outFlag, "out", "", "Output PNG path (default nanomerch-<id>.png in the current directory)")
	flag.StringVar(&keyFlag, "key", "", "Gemini API key (fallbacks to GEMINI_API_KEY or API_KEY)")
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger("cli").With().Str("cmd", "mockup").Logger()

	if strings.TrimSpace(imageFlag) == "" {
		fmt.Fprintln(os.Stderr, "-image is required")
		os.Exit(2)
	}
	instruction, mode, err := resolveInstruction(domain.MerchCatalog(), productFlag, promptFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	f, err := os.Open(imageFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open image: %v\n", err)
		os.Exit(1)
	}
	src, err := imagecodec.Encode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", domain.UserMessage(err))
		os.Exit(1)
	}

	client := gemini.NewClient(gemini.Options{
		Credentials: credentials.Chain{credentials.Static(keyFlag), credentials.NewEnv()},
		BaseURL:     cfg.GeminiBaseURL,
		Model:       cfg.GeminiModel,
		Timeout:     cfg.GeminiTimeout,
		Logger:      &logger,
	})

	ctx := context.Background()
	result, err := client.Generate(ctx, src, instruction)
	if err != nil {
		logger.Error().Err(err).Str("kind", domain.KindOf(err).String()).Str("mode", string(mode)).Msg("generation failed")
		fmt.Fprintln(os.Stderr, domain.UserMessage(err))
		os.Exit(1)
	}

	rec := domain.GenerationRecord{ID: uuid.NewString(), Mode: mode}
	out := strings.TrimSpace(outFlag)
	if out == "" {
		out = rec.Filename()
	}
	dir, name := filepath.Split(out)
	if dir == "" {
		dir = "."
	}
	fs, err := storage.NewFileStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	key, err := fs.WriteImage(ctx, name, result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println(fs.Path(key))
}

// resolveInstruction turns the flags into the prompt sent to the model. A
// product id wins over free text.
func resolveInstruction(catalog domain.Catalog, product, text string) (string, domain.Mode, error) {
	if id := strings.TrimSpace(product); id != "" {
		entry, ok := catalog.Lookup(id)
		if !ok {
			return "", "", fmt.Errorf("%w: %q", domain.ErrUnknownProduct, id)
		}
		return prompt.FromCatalogSelection(entry), domain.ModeCatalog, nil
	}
	instruction, err := prompt.FromFreeText(text)
	if err != nil {
		return "", "", errors.New("either -product or a non-empty -prompt is required")
	}
	return instruction, domain.ModeFreeText, nil
}
