// File: services/intelligence/transcriber.go
package ai

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// MaxAudioSize is the largest voice note accepted for synchronous recognition.
const MaxAudioSize = 5 * 1024 * 1024

// GoogleTranscriber transcribes WhatsApp voice notes (OGG/Opus) with Google Speech-to-Text.
type GoogleTranscriber struct {
	client   *speech.Client
	language string
}

func NewGoogleTranscriber(ctx context.Context, credentialsFile, language string) (*GoogleTranscriber, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	return &GoogleTranscriber{client: client, language: language}, nil
}

func (t *GoogleTranscriber) Close() error {
	return t.client.Close()
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) > MaxAudioSize {
		return "", fmt.Errorf("voice note too large: %d bytes", len(audio))
	}
	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_OGG_OPUS,
			SampleRateHertz:   16000,
			LanguageCode:      t.language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}
