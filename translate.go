package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Translator wraps the MyMemory translation API with a static phrase
// dictionary as fallback. An optional contact email raises the free quota.
type Translator struct {
	baseURL string
	email   string
	client  *http.Client
}

func NewTranslator(email string) *Translator {
	return &Translator{
		baseURL: "https://api.mymemory.translated.net/get",
		email:   email,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type TranslationResult struct {
	Success      bool     `json:"success"`
	Translation  string   `json:"translation"`
	Confidence   int      `json:"confidence"` // 0..100
	Alternatives []string `json:"alternatives"`
	Note         string   `json:"note,omitempty"`
}

type myMemoryResponse struct {
	ResponseStatus int `json:"responseStatus"`
	ResponseData   struct {
		TranslatedText string  `json:"translatedText"`
		Match          float64 `json:"match"` // 0..1
	} `json:"responseData"`
	Matches []struct {
		Translation string `json:"translation"`
	} `json:"matches"`
}

// Translate asks MyMemory first and degrades to the static dictionary on
// any failure. It never returns an error; a miss everywhere yields an
// explicit unavailable result echoing the input.
func (t *Translator) Translate(ctx context.Context, text, source, target string) TranslationResult {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", source+"|"+target)
	if t.email != "" {
		q.Set("de", t.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fallbackTranslation(text, source, target)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return fallbackTranslation(text, source, target)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fallbackTranslation(text, source, target)
	}

	var mm myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&mm); err != nil || mm.ResponseStatus != 200 {
		return fallbackTranslation(text, source, target)
	}

	translation := mm.ResponseData.TranslatedText
	var alts []string
	for _, m := range mm.Matches {
		if len(alts) == 3 {
			break
		}
		if m.Translation != translation {
			alts = append(alts, m.Translation)
		}
	}
	return TranslationResult{
		Success:      true,
		Translation:  translation,
		Confidence:   int(mm.ResponseData.Match * 100),
		Alternatives: alts,
	}
}

// fallbackPhrases covers the most common phrases in both directions, keyed
// by "source-target" pair and the lowercased input.
var fallbackPhrases = map[string]map[string]string{
	"en-de": {
		"hello":             "hallo",
		"goodbye":           "auf wiedersehen",
		"thank you":         "danke",
		"please":            "bitte",
		"yes":               "ja",
		"no":                "nein",
		"good morning":      "guten morgen",
		"good evening":      "guten abend",
		"how are you":       "wie geht es dir",
		"i love you":        "ich liebe dich",
		"my name is":        "mein name ist",
		"what is your name": "wie heißt du",
	},
	"de-en": {
		"hallo":            "hello",
		"auf wiedersehen":  "goodbye",
		"danke":            "thank you",
		"bitte":            "please",
		"ja":               "yes",
		"nein":             "no",
		"guten morgen":     "good morning",
		"guten abend":      "good evening",
		"wie geht es dir":  "how are you",
		"ich liebe dich":   "i love you",
		"mein name ist":    "my name is",
		"wie heißt du":     "what is your name",
	},
}

func fallbackTranslation(text, source, target string) TranslationResult {
	pair := source + "-" + target
	key := strings.ToLower(strings.TrimSpace(text))
	if dict, ok := fallbackPhrases[pair]; ok {
		if tr, ok := dict[key]; ok {
			return TranslationResult{
				Success:      true,
				Translation:  tr,
				Confidence:   100,
				Alternatives: []string{},
				Note:         "Basic translation - for better results, configure a MyMemory email",
			}
		}
	}
	return TranslationResult{
		Success:      false,
		Translation:  fmt.Sprintf("[Translation pending: %s]", text),
		Confidence:   0,
		Alternatives: []string{},
		Note:         "Translation service temporarily unavailable",
	}
}
