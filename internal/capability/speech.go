package capability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// SpeakerConfig configures OpenAISpeaker.
type SpeakerConfig struct {
	Model string // Default: "tts-1"
	Voice string // Default: "alloy"

	// Dir is where audio files are written; URLPrefix is the public path
	// Dir is served under.
	Dir       string
	URLPrefix string
}

// OpenAISpeaker synthesizes mp3 files with the OpenAI speech endpoint.
// Every call writes a new file, so concurrent learners never overwrite each
// other's audio.
type OpenAISpeaker struct {
	client *openai.Client
	cfg    SpeakerConfig
}

// NewOpenAISpeaker creates a speaker using client.
func NewOpenAISpeaker(client *openai.Client, cfg SpeakerConfig) (*OpenAISpeaker, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	if cfg.Dir == "" {
		return nil, errors.New("audio directory is required")
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.TTSModel1)
	}
	if cfg.Voice == "" {
		cfg.Voice = string(openai.VoiceAlloy)
	}
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = "/static"
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &OpenAISpeaker{client: client, cfg: cfg}, nil
}

// NewOpenAISpeakerFromKey is NewOpenAISpeaker with a client built from an
// API key and optional base URL.
func NewOpenAISpeakerFromKey(apiKey, baseURL string, cfg SpeakerConfig) (*OpenAISpeaker, error) {
	if apiKey == "" {
		return nil, errors.New("TTS API key is required")
	}
	oc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		oc.BaseURL = baseURL
	}
	return NewOpenAISpeaker(openai.NewClientWithConfig(oc), cfg)
}

func (s *OpenAISpeaker) Speak(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("nothing to pronounce")
	}

	audio, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.cfg.Model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.cfg.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return "", fmt.Errorf("synthesize speech: %w", err)
	}
	defer audio.Close()

	name := fmt.Sprintf("pronunciation-%s.mp3", uuid.NewString())
	dst := filepath.Join(s.cfg.Dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	if _, err := io.Copy(f, audio); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write audio file: %w", err)
	}

	return path.Join(s.cfg.URLPrefix, name), nil
}
