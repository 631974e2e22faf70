package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subpo/internal/catalog"
	"github.com/mgpai22/subpo/internal/convert"
	"github.com/mgpai22/subpo/internal/media"
	"github.com/mgpai22/subpo/internal/subtitle"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle track from a video file",
	Long: `Extract a text subtitle track from a video container with ffmpeg and save
it as SubRip, or directly as a catalog ready for translation.

Bitmap tracks (PGS, VobSub) cannot be extracted as text.

Examples:
  subpo extract movie.mkv --list
  subpo extract movie.mkv
  subpo extract movie.mkv --stream 2 --format po -o movie.po`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream number, counting subtitle streams only")
	extractCmd.Flags().
		String("format", "srt", "Output format (srt, po)")
	extractCmd.Flags().
		Bool("list", false, "List the subtitle streams and exit")
	extractCmd.Flags().
		StringP("output", "o", "", "Output file path")
	extractCmd.Flags().
		BoolP("force", "f", false, "Overwrite an existing output file")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := cmd.Context()

	stream, _ := cmd.Flags().GetInt("stream")
	format, _ := cmd.Flags().GetString("format")
	list, _ := cmd.Flags().GetBool("list")
	outputPath, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")
	force = force || cfg.Convert.Overwrite

	var outExt string
	switch format {
	case "srt":
		outExt = subtitle.Extension
	case "po":
		outExt = catalog.Extension
	default:
		return fmt.Errorf("invalid format %q: supported formats are srt, po", format)
	}

	extractor := media.NewExtractor(
		media.NewLocator(media.BinaryPaths{
			FFmpeg:  cfg.Media.FFmpegPath,
			FFprobe: cfg.Media.FFprobePath,
		}),
		logger,
	)

	streams, err := extractor.SubtitleStreams(ctx, videoPath)
	if err != nil {
		return err
	}
	if list {
		fmt.Fprintln(cmd.OutOrStdout(), streamTable(streams))
		return nil
	}

	if stream < 0 || stream >= len(streams) {
		return fmt.Errorf("%s has %d subtitle streams, stream %d does not exist", videoPath, len(streams), stream)
	}
	if !streams[stream].Textual() {
		return fmt.Errorf("subtitle stream %d is %s, a bitmap format that cannot be extracted as text", stream, streams[stream].Codec)
	}

	stem, _ := convert.SplitExt(videoPath)
	if outputPath == "" {
		outputPath = stem + outExt
	}
	if err := checkOverwrite(outputPath, force); err != nil {
		return err
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"stream", stream,
		"codec", streams[stream].Codec,
		"language", streams[stream].Language,
		"output", outputPath,
	)

	data, err := extractor.ExtractSubtitle(ctx, videoPath, stream)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if format == "po" {
		result, err := registry.ConvertFile(filepath.Base(stem)+subtitle.Extension, data)
		if err != nil {
			return fmt.Errorf("convert extracted subtitles: %w", err)
		}
		data = result.Data
	}

	if err := writeOutput(outputPath, data, force); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s\n", absOutput)
	return nil
}

func streamTable(streams []media.SubtitleStream) string {
	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		def := ""
		if s.Default {
			def = "yes"
		}
		text := "yes"
		if !s.Textual() {
			text = "no"
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Index),
			s.Codec,
			s.Language,
			s.Title,
			def,
			text,
		})
	}
	return renderTable([]string{"Stream", "Codec", "Language", "Title", "Default", "Text"}, rows)
}
