package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/infographic/internal/chunker"
	"github.com/dgallion1/infographic/internal/config"
	"github.com/dgallion1/infographic/internal/document"
	"github.com/dgallion1/infographic/internal/extract"
	"github.com/dgallion1/infographic/internal/ingest"
	"github.com/dgallion1/infographic/internal/pipeline"
)

type generateFlags struct {
	text     string
	provider string
	server   string
	apiKey   string
	save     string
	export   exportFlags
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate an infographic from text",
		Long: `Generate sends text to a language model, turns the answer into an ordered
list of steps and exports the rendered infographic.

The text comes from --text, from a file (txt, md, csv, html, pdf or docx),
or from stdin when neither is given. With --server the request goes to a
running infographic server instead of a model provider.`,
		Example: `  infographic generate --text "Plan the sprint. Build the feature. Ship it." -f svg
  infographic generate notes.md --layout radial-process -o out/
  pbpaste | infographic generate --server http://localhost:8080 -o - -f svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, &f)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.text, "text", "t", "", "Text to turn into an infographic")
	fs.StringVar(&f.provider, "provider", "", "Model provider: gemini or anthropic (default: LLM_PROVIDER)")
	fs.StringVar(&f.server, "server", "", "Generate through an infographic server at this URL")
	fs.StringVar(&f.apiKey, "api-key", "", "Bearer key for --server (default: INFOGRAPHIC_API_KEY)")
	fs.StringVar(&f.save, "save", "", "Also save the document as JSON or YAML for later rendering")
	f.export.register(cmd)
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, f *generateFlags) error {
	cfg := config.Load()
	if f.provider != "" {
		cfg.LLMProvider = f.provider
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	text, err := inputText(cmd.InOrStdin(), args, f.text, cfg)
	if err != nil {
		return err
	}

	parser, closeParser := cliParser(cfg, f)
	defer closeParser()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	gen := pipeline.NewGenerator(parser, nil, cfg.ParseTimeout, pipeline.DefaultRetryPolicy, log)
	res, err := gen.Generate(ctx, text)
	if err != nil {
		return err
	}
	log.Info("generated", "title", res.Document.Title, "steps", len(res.Document.Steps), "attempts", res.Attempts)

	if f.save != "" {
		if err := saveDocument(f.save, res.Document); err != nil {
			return err
		}
	}
	return f.export.export(cmd, res.Document)
}

// inputText picks --text, a file argument or stdin. Files are extracted and
// condensed to the prompt budget.
func inputText(stdin io.Reader, args []string, text string, cfg config.Config) (string, error) {
	switch {
	case text != "":
		return text, nil
	case len(args) == 1 && args[0] != "-":
		return fileText(args[0], cfg)
	}
	data, err := io.ReadAll(io.LimitReader(stdin, cfg.MaxUploadBytes))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func fileText(path string, cfg config.Config) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := filepath.Base(path)
	if !ingest.IsSupportedExtension(name) {
		return "", fmt.Errorf("unsupported file type %q (supported: %s)", filepath.Ext(name), strings.Join(ingest.Extensions(), ", "))
	}
	tree, err := ingest.Read(f, name, ingest.Options{
		MaxBytes:          cfg.MaxUploadBytes,
		PdftotextFallback: cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		return "", err
	}
	c := chunker.Condense(tree, cfg.MaxInputTokens)
	if c.Truncated {
		log.Warn("input truncated to fit the prompt", "file", name, "tokens", c.Tokens)
	}
	return c.Text, nil
}

func cliParser(cfg config.Config, f *generateFlags) (extract.Parser, func()) {
	if f.server != "" {
		key := f.apiKey
		if key == "" {
			key = cfg.APIKey
		}
		c := extract.NewRemoteClient(f.server, key)
		return c, c.Close
	}
	switch {
	case cfg.ProviderKey() == "":
		return extract.Misconfigured{}, func() {}
	case cfg.LLMProvider == config.ProviderAnthropic:
		c := extract.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		return c, c.Close
	default:
		c := extract.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		return c, c.Close
	}
}

// saveDocument writes doc in the format implied by the extension so render
// can load it back.
func saveDocument(path string, doc *document.Document) error {
	var (
		data []byte
		err  error
	)
	if document.FormatForFile(path) == document.FormatYAML {
		data, err = yaml.Marshal(doc.Raw())
	} else {
		data, err = json.MarshalIndent(doc.Raw(), "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	log.Info("saved document", "path", path)
	return nil
}

