package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mgpai22/subpo/internal/catalog"
	"github.com/mgpai22/subpo/internal/config"
	"github.com/mgpai22/subpo/internal/convert"
	"github.com/mgpai22/subpo/internal/logging"
	"github.com/mgpai22/subpo/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [file]",
	Short: "Pre-translate a subtitle or catalog with an AI model",
	Long: `Fill the empty message strings of a catalog with machine translations.

The input may be a .srt file, which is converted first, or a .po catalog.
Entries that already carry a translation are kept unless
--overwrite-translations is set. The result is a catalog named after the
input and the target language, ready for review in a catalog editor.

Examples:
  subpo translate movie.srt --target-language japanese
  subpo translate movie.po -t es --provider openai
  subpo translate movie.po -t de -l english -o movie.de.po`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation")
	translateCmd.Flags().
		StringP("language", "l", "", "Language of the source text")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", 50, "Number of entries per API request")
	translateCmd.Flags().
		String("prompt", "", "Additional instructions for the model")
	translateCmd.Flags().
		Bool("overwrite-translations", false, "Replace translations already present in the catalog")
	translateCmd.Flags().
		StringP("output", "o", "", "Output catalog path")
	translateCmd.Flags().
		BoolP("force", "f", false, "Overwrite an existing output file")
}

type translateSettings struct {
	provider    translate.Provider
	apiKey      string
	options     translate.Options
	concurrency int
}

// translateSettingsFrom merges flags over the loaded configuration.
func translateSettingsFrom(cmd *cobra.Command) (translateSettings, error) {
	flags := cmd.Flags()
	stringFlag := func(name, fallback string) string {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			return strings.TrimSpace(v)
		}
		return fallback
	}
	intFlag := func(name string, fallback int) int {
		if flags.Changed(name) {
			v, _ := flags.GetInt(name)
			return v
		}
		return fallback
	}

	tc := cfg.Translate
	s := translateSettings{
		provider:    translate.Provider(strings.ToLower(stringFlag("provider", tc.Provider))),
		concurrency: intFlag("concurrency", tc.Concurrency),
		options: translate.Options{
			TargetLanguage: stringFlag("target-language", tc.TargetLanguage),
			InputLanguage:  stringFlag("language", tc.InputLanguage),
			Model:          stringFlag("model", tc.Model),
			Prompt:         stringFlag("prompt", tc.Prompt),
			BatchSize:      intFlag("batch-size", tc.BatchSize),
		},
	}

	if s.options.TargetLanguage == "" {
		return s, fmt.Errorf("target language is required: use --target-language or set translate.target_language")
	}
	if s.options.InputLanguage != "" && strings.EqualFold(s.options.InputLanguage, s.options.TargetLanguage) {
		return s, fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			s.options.InputLanguage,
			s.options.TargetLanguage,
		)
	}
	if s.concurrency <= 0 {
		return s, fmt.Errorf("concurrency must be positive, got %d", s.concurrency)
	}
	if s.options.BatchSize <= 0 {
		return s, fmt.Errorf("batch-size must be positive, got %d", s.options.BatchSize)
	}

	if override, _ := flags.GetBool("model-override"); !override {
		if err := checkModel(s.provider, s.options.Model); err != nil {
			return s, err
		}
	}

	s.apiKey = stringFlag("api-key", "")
	if s.apiKey == "" && string(s.provider) == tc.Provider {
		s.apiKey = tc.APIKey
	}
	if s.apiKey == "" {
		s.apiKey = config.APIKeyFromEnv(string(s.provider))
	}
	if s.apiKey == "" {
		return s, fmt.Errorf(
			"API key is required: use --api-key, set translate.api_key, or export %s_API_KEY",
			strings.ToUpper(string(s.provider)),
		)
	}
	return s, nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx := cmd.Context()

	settings, err := translateSettingsFrom(cmd)
	if err != nil {
		return err
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite-translations")
	force, _ := cmd.Flags().GetBool("force")
	force = force || cfg.Convert.Overwrite

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		stem, _ := convert.SplitExt(input)
		outputPath = fmt.Sprintf("%s.%s%s", stem, settings.options.TargetLanguage, catalog.Extension)
	}
	if err := checkOverwrite(outputPath, force); err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}
	entries, err := registry.Entries(filepath.Base(input), data)
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%s contains no entries", input)
	}

	logger.Infow("Starting catalog translation",
		"input", input,
		"output", outputPath,
		"provider", settings.provider,
		"model", settings.options.Model,
		"target_language", settings.options.TargetLanguage,
		"input_language", settings.options.InputLanguage,
		"entries", len(entries),
	)

	if logging.IsTerminal(cmd.ErrOrStderr()) {
		var bar *progressbar.ProgressBar
		settings.options.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionEnableColorCodes(true),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("[cyan]Translating batches[reset]"),
					progressbar.OptionClearOnFinish(),
				)
			}
			_ = bar.Set(done)
		}
	}

	translator, err := translate.Factory(ctx, settings.provider, settings.apiKey, settings.options)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	updated, changed, err := translate.Pretranslate(ctx, translator, entries, registry.Mapper(), translate.PretranslateOptions{
		Concurrency: settings.concurrency,
		Overwrite:   overwrite,
	})
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	if err := writeOutput(outputPath, catalog.MarshalAll(updated), force); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Infow("Translation complete", "translated", changed, "output", outputPath)

	out := cmd.OutOrStdout()
	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(out, "Catalog translated successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Entries: %d\n", len(updated))
	fmt.Fprintf(out, "  Translated: %d\n", changed)
	fmt.Fprintf(out, "  Target language: %s\n", settings.options.TargetLanguage)
	return nil
}
