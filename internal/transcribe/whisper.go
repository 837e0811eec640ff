package transcribe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
)

// Whisper transcribes stored video artifacts by shelling out to ffmpeg for
// audio extraction and the whisper CLI for speech to text. Artifact
// references name a flat file served from a mount prefix; the file itself
// lives directly under BaseDir, the artifact store's directory.
type Whisper struct {
	FFmpegPath  string
	WhisperPath string
	Model       string
	BaseDir     string
}

// New builds a Whisper transcriber, falling back to binaries on PATH and the
// process working directory when fields are empty.
func New(ffmpegPath, whisperPath, model, baseDir string) *Whisper {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if whisperPath == "" {
		whisperPath = "whisper"
	}
	if model == "" {
		model = "small"
	}
	if baseDir == "" {
		baseDir = "."
	}
	return &Whisper{
		FFmpegPath:  ffmpegPath,
		WhisperPath: whisperPath,
		Model:       model,
		BaseDir:     baseDir,
	}
}

// Transcribe converts the referenced video to 16kHz mono wav, runs whisper on
// it and returns the produced transcript text.
func (w *Whisper) Transcribe(ctx context.Context, videoURL string) (string, error) {
	// the mount prefix on the reference is a serving concern; only the file
	// name locates the artifact on disk
	videoPath := filepath.Join(w.BaseDir, path.Base(videoURL))

	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("video file not found: %s", videoPath)
	}

	dir := filepath.Dir(videoPath)
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	wavPath := filepath.Join(dir, base+".wav")
	transcriptPath := filepath.Join(dir, base+".txt")

	ffmpeg := exec.CommandContext(ctx, w.FFmpegPath,
		"-y", "-i", videoPath, "-ar", "16000", "-ac", "1", wavPath)
	if out, err := ffmpeg.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg: %w: %s", err, tail(out))
	}

	whisper := exec.CommandContext(ctx, w.WhisperPath,
		wavPath,
		"--model", w.Model,
		"--language", "en",
		"--output_format", "txt",
		"--output_dir", dir)
	if out, err := whisper.CombinedOutput(); err != nil {
		return "", fmt.Errorf("whisper: %w: %s", err, tail(out))
	}

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", fmt.Errorf("transcript not found: %s", transcriptPath)
	}

	return strings.TrimSpace(string(data)), nil
}

// tail keeps the last part of subprocess output for error messages.
func tail(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > 512 {
		s = "..." + s[len(s)-512:]
	}
	return s
}
