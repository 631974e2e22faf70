package media

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

const (
	EnvFFmpegPath  = "SUBPO_FFMPEG_PATH"
	EnvFFprobePath = "SUBPO_FFPROBE_PATH"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

// Locator finds the ffmpeg and ffprobe executables once and remembers the
// answer. Configured paths win over the environment, which wins over $PATH.
type Locator struct {
	configured BinaryPaths
	getenv     func(string) string
	lookPath   func(string) (string, error)

	once  sync.Once
	paths BinaryPaths
	err   error
}

func NewLocator(configured BinaryPaths) *Locator {
	return &Locator{
		configured: configured,
		getenv:     os.Getenv,
		lookPath:   exec.LookPath,
	}
}

func (l *Locator) Paths() (BinaryPaths, error) {
	l.once.Do(func() {
		l.paths, l.err = l.resolve()
	})
	return l.paths, l.err
}

func (l *Locator) FFmpegPath() (string, error) {
	paths, err := l.Paths()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func (l *Locator) FFprobePath() (string, error) {
	paths, err := l.Paths()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func (l *Locator) resolve() (BinaryPaths, error) {
	ffmpegPath, err := l.find("ffmpeg", l.configured.FFmpeg, EnvFFmpegPath)
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := l.find("ffprobe", l.configured.FFprobe, EnvFFprobePath)
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func (l *Locator) find(name, configured, envKey string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if fromEnv := l.getenv(envKey); fromEnv != "" {
		return fromEnv, nil
	}
	found, err := l.lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found: set %s or install it on PATH: %w", name, envKey, err)
	}
	return found, nil
}
