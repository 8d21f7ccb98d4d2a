package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// GrammarChecker wraps the LanguageTool public API. Failures degrade to an
// empty result; grammar feedback is never a hard error for the user.
type GrammarChecker struct {
	baseURL string
	client  *http.Client
}

func NewGrammarChecker() *GrammarChecker {
	return &GrammarChecker{
		baseURL: "https://api.languagetoolplus.com/v2/check",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type GrammarError struct {
	Message      string   `json:"message"`
	Offset       int      `json:"offset"` // rune offset
	Length       int      `json:"length"` // rune length
	Replacements []string `json:"replacements"`
	Type         string   `json:"type"`
}

type GrammarResult struct {
	HasErrors     bool           `json:"hasErrors"`
	ErrorCount    int            `json:"errorCount"`
	Errors        []GrammarError `json:"errors"`
	Suggestions   []string       `json:"suggestions"`
	CorrectedText string         `json:"correctedText"`
	Checked       bool           `json:"checked"` // false when the service was unreachable
}

type languageToolResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			Category struct {
				ID string `json:"id"`
			} `json:"category"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check runs a de-DE check on the text.
func (g *GrammarChecker) Check(ctx context.Context, text string) GrammarResult {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", "de-DE")
	form.Set("enabledOnly", "false")

	empty := GrammarResult{Errors: []GrammarError{}, Suggestions: []string{}, CorrectedText: text}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return empty
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return empty
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return empty
	}

	var lt languageToolResponse
	if err := json.NewDecoder(resp.Body).Decode(&lt); err != nil {
		return empty
	}

	runes := []rune(text)
	result := GrammarResult{Errors: []GrammarError{}, Suggestions: []string{}, Checked: true}
	for _, m := range lt.Matches {
		ge := GrammarError{
			Message: m.Message,
			Offset:  m.Offset,
			Length:  m.Length,
			Type:    m.Rule.Category.ID,
		}
		for _, r := range m.Replacements {
			if len(ge.Replacements) == 3 {
				break
			}
			ge.Replacements = append(ge.Replacements, r.Value)
		}
		result.Errors = append(result.Errors, ge)
		if len(ge.Replacements) > 0 && ge.Offset+ge.Length <= len(runes) {
			span := string(runes[ge.Offset : ge.Offset+ge.Length])
			result.Suggestions = append(result.Suggestions,
				"'"+span+"' -> '"+ge.Replacements[0]+"'")
		}
	}
	result.ErrorCount = len(result.Errors)
	result.HasErrors = result.ErrorCount > 0
	result.CorrectedText = ApplyCorrections(text, result.Errors)
	return result
}

// ApplyCorrections rebuilds the text with each error's first replacement.
// Corrections are applied right-to-left so earlier offsets stay valid.
func ApplyCorrections(text string, errs []GrammarError) string {
	if len(errs) == 0 {
		return text
	}
	sorted := make([]GrammarError, len(errs))
	copy(sorted, errs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset > sorted[j].Offset })

	runes := []rune(text)
	for _, e := range sorted {
		if len(e.Replacements) == 0 {
			continue
		}
		start, end := e.Offset, e.Offset+e.Length
		if start < 0 || end > len(runes) || start > end {
			continue
		}
		repl := []rune(e.Replacements[0])
		runes = append(runes[:start], append(repl, runes[end:]...)...)
	}
	return string(runes)
}
