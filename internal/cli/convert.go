package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subpo/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file...]",
	Short: "Convert subtitles to catalogs, catalogs to subtitles, or zip archives of both",
	Long: `Convert each file according to its extension:

  .srt  ->  .po             subtitle cues become catalog entries
  .po   ->  .srt            translated entries become subtitle cues
  .zip  ->  .converted.zip  every supported member is converted

Output is written next to the input unless --out-dir or --output is given.
Existing files are kept unless --force is set.

Examples:
  subpo convert movie.srt
  subpo convert movie.fr.po -o movie.fr.srt
  subpo convert season1.zip --out-dir converted/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("output", "o", "", "Output file path (single input only)")
	convertCmd.Flags().
		String("out-dir", "", "Directory for converted files")
	convertCmd.Flags().
		BoolP("force", "f", false, "Overwrite existing output files")
}

func runConvert(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	outDir, _ := cmd.Flags().GetString("out-dir")
	force, _ := cmd.Flags().GetBool("force")
	force = force || cfg.Convert.Overwrite

	if outputPath != "" && len(args) > 1 {
		return fmt.Errorf("--output needs exactly one input, got %d", len(args))
	}
	if outputPath != "" && outDir != "" {
		return fmt.Errorf("--output and --out-dir cannot be combined")
	}

	var errs []error
	for _, input := range args {
		target, err := convertOne(cmd, input, outputPath, outDir, force)
		if err != nil {
			logger.Errorw("Conversion failed", "input", input, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", input, err))
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", input, target)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(errs), len(args), errors.Join(errs...))
	}
	return nil
}

func convertOne(cmd *cobra.Command, input, outputPath, outDir string, force bool) (string, error) {
	data, err := readInput(input)
	if err != nil {
		return "", err
	}

	logger.Debugw("Converting file", "input", input, "bytes", len(data))
	result, err := registry.ConvertFile(filepath.Base(input), data)
	if err != nil {
		if errors.Is(err, convert.ErrUnsupportedFormat) {
			return "", fmt.Errorf("%w (supported: %s)", err, strings.Join(registry.Extensions(), ", "))
		}
		return "", err
	}

	target := outputPath
	if target == "" {
		dir := outDir
		if dir == "" {
			dir = filepath.Dir(input)
		}
		target = filepath.Join(dir, result.Name)
	}

	if err := writeOutput(target, result.Data, force); err != nil {
		return "", err
	}

	logger.Infow("Converted file",
		"input", input,
		"output", target,
		"bytes", len(result.Data),
	)
	return target, nil
}
