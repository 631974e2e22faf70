// Package media pulls embedded subtitle tracks out of video containers with
// ffmpeg.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/mgpai22/subpo/internal/logging"
)

type Extractor struct {
	locator *Locator
	logger  *logging.Logger
}

func NewExtractor(locator *Locator, logger *logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Extractor{locator: locator, logger: logger}
}

// ExtractSubtitle renders subtitle stream n of the file at path as SRT.
func (e *Extractor) ExtractSubtitle(ctx context.Context, path string, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid subtitle stream %d", n)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video file not found: %w", err)
	}

	ffmpegPath, err := e.locator.FFmpegPath()
	if err != nil {
		return nil, err
	}

	args := extractArgs(path, n)
	e.logger.Debugw("Running ffmpeg",
		"path", ffmpegPath,
		"args", strings.Join(args, " "),
	)

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("ffmpeg extraction failed: %w", err)
		}
		return nil, fmt.Errorf("ffmpeg extraction failed: %w: %s", err, msg)
	}

	e.logger.Debugw("Extracted subtitle stream",
		"stream", n,
		"bytes", stdout.Len(),
	)
	return stdout.Bytes(), nil
}

// extractArgs builds the ffmpeg command line that writes subtitle stream n
// to stdout as SRT.
func extractArgs(path string, n int) []string {
	return ffmpeg.Input(path, ffmpeg.KwArgs{
		"hide_banner": "",
		"loglevel":    "error",
	}).
		Output("pipe:", ffmpeg.KwArgs{
			"map": fmt.Sprintf("0:s:%d", n),
			"f":   "srt",
		}).
		GetArgs()
}
