package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Speech synthesizes short phrases through a Google-style TTS endpoint and
// hands the base64 audio payload straight to the frontend. Without an API
// key, or on any failure, Synthesize reports unavailable instead of
// erroring; spoken audio is a nice-to-have.
type Speech struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSpeech(apiKey string) *Speech {
	return &Speech{
		baseURL: "https://texttospeech.googleapis.com/v1/text:synthesize",
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type SpeechResult struct {
	Available   bool   `json:"available"`
	AudioBase64 string `json:"audioBase64,omitempty"` // mp3
}

func (s *Speech) Synthesize(ctx context.Context, text, lang string, slow bool) SpeechResult {
	if s.apiKey == "" || text == "" {
		return SpeechResult{}
	}
	if lang == "" {
		lang = "de-DE"
	}

	rate := 1.0
	if slow {
		rate = 0.75
	}
	reqBody := map[string]any{
		"input": map[string]string{"text": text},
		"voice": map[string]any{
			"languageCode": lang,
			"ssmlGender":   "FEMALE",
		},
		"audioConfig": map[string]any{
			"audioEncoding": "MP3",
			"speakingRate":  rate,
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return SpeechResult{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"?key="+s.apiKey, bytes.NewReader(jsonBody))
	if err != nil {
		return SpeechResult{}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return SpeechResult{}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return SpeechResult{}
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.AudioContent == "" {
		return SpeechResult{}
	}
	return SpeechResult{Available: true, AudioBase64: result.AudioContent}
}
