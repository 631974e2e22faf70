package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mgpai22/subpo/internal/config"
	"github.com/mgpai22/subpo/internal/convert"
	"github.com/mgpai22/subpo/internal/logging"
)

const skipConfigLoad = "skipConfigLoad"

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
	registry   *convert.Registry
)

var rootCmd = &cobra.Command{
	Use:   "subpo",
	Short: "Convert subtitles to translation catalogs and back",
	Long: `Subpo turns SubRip (.srt) subtitles into gettext catalogs (.po) so they
can be translated with ordinary catalog tools, and turns the translated
catalogs back into subtitles with the original cue numbers and timings.

Zip archives are converted member by member into a .converted.zip.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the CLI with ctx, which commands use to cancel
// provider requests and ffmpeg.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Path to config file (default ~/.config/subpo/config.toml)")
}

// setup loads configuration and builds the logger and registry every
// command shares.
func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipConfigLoad] == "true" {
		c := config.Default()
		cfg = &c
	} else {
		loaded, _, _, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	base, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
		Writer:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger = base.With("run_id", uuid.NewString())

	registry = convert.NewRegistry(convert.Options{
		Sentinel: cfg.Convert.Sentinel,
		Logger:   logger,
	})
	return nil
}
