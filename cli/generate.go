package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vitalvas/apidoc/api"
	"github.com/vitalvas/apidoc/generator"
	"github.com/vitalvas/apidoc/metadata"
	"github.com/vitalvas/apidoc/openapi"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// GenerateOptions captures the inputs of the generate command after merging
// defaults and flag overrides.
type GenerateOptions struct {
	Output     string
	Format     string
	Indent     int
	Validate   bool
	ConfigPath string
	SourceDir  string
	Verbose    bool
}

func defaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Output: "-", Indent: 2}
}

// NewGenerateCmd builds the generate command for config. Extractor options
// replace the default source loading, mostly for tests.
func NewGenerateCmd(config *api.Config, opts ...metadata.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the OpenAPI document of the application",
		Example: strings.TrimSpace(`  app generate --output openapi.json
  app generate --format yaml --validate
  app generate --config apidoc.yaml -o - --indent 0`),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options, err := resolveGenerateOptions(cmd)
			if err != nil {
				return err
			}

			return runGenerate(cmd, config, options, opts)
		},
	}

	cmd.SetFlagErrorFunc(flagError)

	flags := cmd.Flags()
	flags.StringP("output", "o", "", `Output file, "-" for stdout (default "-")`)
	flags.StringP("format", "f", "", "Output format (json|yaml); derived from the output extension when omitted")
	flags.Int("indent", 0, "JSON indentation width, 0 for compact output (default 2)")
	flags.Bool("validate", false, "Validate the document before writing it")
	flags.String("source-dir", "", "Directory used to locate Go packages (default: working directory)")
	flags.StringP("config", "c", "", "Config file path (YAML, JSON or TOML)")
	flags.BoolP("verbose", "v", false, "Enable debug logging on stderr")

	return cmd
}

func resolveGenerateOptions(cmd *cobra.Command) (GenerateOptions, error) {
	options := defaultGenerateOptions()

	if err := applyGenerateFlagOverrides(cmd.Flags(), &options); err != nil {
		return options, err
	}

	options.normalize()

	return options, options.validate()
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, options *GenerateOptions) error {
	var err error

	if flags.Changed("output") {
		if options.Output, err = flags.GetString("output"); err != nil {
			return err
		}
	}

	if flags.Changed("format") {
		if options.Format, err = flags.GetString("format"); err != nil {
			return err
		}
	}

	if flags.Changed("indent") {
		if options.Indent, err = flags.GetInt("indent"); err != nil {
			return err
		}
	}

	if flags.Changed("validate") {
		if options.Validate, err = flags.GetBool("validate"); err != nil {
			return err
		}
	}

	if flags.Changed("source-dir") {
		if options.SourceDir, err = flags.GetString("source-dir"); err != nil {
			return err
		}
	}

	if flags.Changed("config") {
		if options.ConfigPath, err = flags.GetString("config"); err != nil {
			return err
		}
	}

	if flags.Changed("verbose") {
		if options.Verbose, err = flags.GetBool("verbose"); err != nil {
			return err
		}
	}

	return nil
}

func (o *GenerateOptions) normalize() {
	o.Output = strings.TrimSpace(o.Output)
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	o.ConfigPath = strings.TrimSpace(o.ConfigPath)
	o.SourceDir = strings.TrimSpace(o.SourceDir)

	if o.Output == "" {
		o.Output = "-"
	}

	if o.Format == "" {
		switch strings.ToLower(filepath.Ext(o.Output)) {
		case ".yaml", ".yml":
			o.Format = FormatYAML
		default:
			o.Format = FormatJSON
		}
	}
}

func (o *GenerateOptions) validate() error {
	switch o.Format {
	case FormatJSON, FormatYAML:
	default:
		return newUsageError(fmt.Sprintf("generate: unsupported --format %q (allowed: json, yaml)", o.Format))
	}

	if o.Indent < 0 {
		return newUsageError(fmt.Sprintf("generate: --indent must not be negative, got %d", o.Indent))
	}

	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runGenerate(cmd *cobra.Command, base *api.Config, options GenerateOptions, extractorOpts []metadata.Option) error {
	logger := newLogger(cmd.ErrOrStderr(), options.Verbose)

	config, err := api.LoadConfig(options.ConfigPath, base)
	if err != nil {
		return err
	}

	opts := []metadata.Option{
		metadata.WithLoader(metadata.NewPackagesLoader(options.SourceDir)),
		metadata.WithLogger(logger),
	}
	opts = append(opts, extractorOpts...)

	doc, err := generator.New(config, metadata.NewExtractor(opts...), generator.WithLogger(logger)).Generate()
	if err != nil {
		return fmt.Errorf("generate document: %w", err)
	}

	if options.Validate {
		if err := doc.Validate(cmd.Context()); err != nil {
			return err
		}
	}

	data, err := encode(doc, options)
	if err != nil {
		return err
	}

	if options.Output == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(options.Output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", options.Output, err)
	}

	logger.Info("document written", "path", options.Output, "paths", len(doc.Paths), "format", options.Format)

	return nil
}

func encode(doc *openapi.Document, options GenerateOptions) ([]byte, error) {
	if options.Format == FormatYAML {
		return doc.YAML()
	}

	var (
		data []byte
		err  error
	)

	if options.Indent == 0 {
		data, err = doc.MarshalJSON()
	} else {
		data, err = doc.MarshalIndentJSON("", strings.Repeat(" ", options.Indent))
	}

	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}
