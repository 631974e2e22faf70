package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// SubtitleStream describes one subtitle track of a container. Index counts
// subtitle streams only, which is what ffmpeg's "0:s:N" selector expects.
type SubtitleStream struct {
	Index       int
	StreamIndex int
	Codec       string
	Language    string
	Title       string
	Default     bool
}

// Textual reports whether ffmpeg can render the stream as SRT. Bitmap
// formats such as PGS need OCR instead.
func (s SubtitleStream) Textual() bool {
	switch s.Codec {
	case "hdmv_pgs_subtitle", "dvd_subtitle", "dvb_subtitle", "xsub":
		return false
	default:
		return true
	}
}

type ffprobeOutput struct {
	Streams []struct {
		Index       int    `json:"index"`
		CodecName   string `json:"codec_name"`
		CodecType   string `json:"codec_type"`
		Disposition struct {
			Default int `json:"default"`
		} `json:"disposition"`
		Tags map[string]string `json:"tags"`
	} `json:"streams"`
}

// SubtitleStreams lists the subtitle tracks of the file at path.
func (e *Extractor) SubtitleStreams(ctx context.Context, path string) ([]SubtitleStream, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video file not found: %w", err)
	}

	ffprobePath, err := e.locator.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "s",
		path,
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseStreams(out.Bytes())
}

func parseStreams(data []byte) ([]SubtitleStream, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var streams []SubtitleStream
	for _, s := range probe.Streams {
		if s.CodecType != "" && s.CodecType != "subtitle" {
			continue
		}
		streams = append(streams, SubtitleStream{
			Index:       len(streams),
			StreamIndex: s.Index,
			Codec:       s.CodecName,
			Language:    tag(s.Tags, "language"),
			Title:       tag(s.Tags, "title"),
			Default:     s.Disposition.Default == 1,
		})
	}
	return streams, nil
}

// tag looks a key up case-insensitively; containers disagree on case.
func tag(tags map[string]string, key string) string {
	if v, ok := tags[key]; ok {
		return v
	}
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
