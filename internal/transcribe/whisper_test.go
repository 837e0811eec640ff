package transcribe

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/storage"
)

func TestNew_Defaults(t *testing.T) {
	w := New("", "", "", "")
	if w.FFmpegPath != "ffmpeg" {
		t.Errorf("FFmpegPath = %q, want ffmpeg", w.FFmpegPath)
	}
	if w.WhisperPath != "whisper" {
		t.Errorf("WhisperPath = %q, want whisper", w.WhisperPath)
	}
	if w.Model != "small" {
		t.Errorf("Model = %q, want small", w.Model)
	}
	if w.BaseDir != "." {
		t.Errorf("BaseDir = %q, want .", w.BaseDir)
	}
}

// TestTranscribe_LocatesStoredArtifact wires a store and a transcriber onto
// the same upload directory, the way the application does, and checks the
// issued reference resolves to the stored file. The ffmpeg binary is pointed
// nowhere so the run stops right after the artifact lookup succeeds.
func TestTranscribe_LocatesStoredArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "videos")
	store, err := storage.NewLocal(dir, 1)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	ref, err := store.Save(strings.NewReader("fake video bytes"), "answer.webm")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	w := New(filepath.Join(t.TempDir(), "no-such-ffmpeg"), "", "", dir)

	_, err = w.Transcribe(context.Background(), ref)
	if err == nil {
		t.Fatal("Transcribe() error = nil, want ffmpeg failure")
	}
	if strings.Contains(err.Error(), "not found:") {
		t.Fatalf("Transcribe() error = %v, artifact lookup failed for a stored reference", err)
	}
	if !strings.Contains(err.Error(), "ffmpeg") {
		t.Errorf("Transcribe() error = %v, want failure at the ffmpeg step", err)
	}
}

func TestTranscribe_MissingArtifact(t *testing.T) {
	w := New("", "", "", t.TempDir())

	_, err := w.Transcribe(context.Background(), "/uploads/videos/gone.webm")
	if err == nil {
		t.Fatal("Transcribe() error = nil, want missing file error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Transcribe() error = %v, want file not found", err)
	}
}
