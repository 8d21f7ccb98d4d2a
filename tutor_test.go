package main

import (
	"context"
	"strings"
	"testing"
)

func TestScriptedReply(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Can you explain German grammar?", "4 cases"},
		{"I want to practice", "Ich gehe heute ins Kino"},
		{"please translate something for me", "grammar structure"},
		{"Was bedeutet Fernweh?", "Fernweh"},
	}

	for _, tt := range tests {
		got := scriptedReply(tt.input, LevelB1)
		if !strings.Contains(got, tt.want) {
			t.Errorf("scriptedReply(%q) = %q, want mention of %q", tt.input, got, tt.want)
		}
	}
}

func TestScriptedReplyMentionsLevel(t *testing.T) {
	got := scriptedReply("let's practice", LevelA2)
	if !strings.Contains(got, LevelA2) {
		t.Errorf("practice reply should mention the student level: %q", got)
	}
}

func TestTutorWithoutKeyUsesScriptedReplies(t *testing.T) {
	tutor := NewTutor("", "openai/gpt-4o-mini")
	got := tutor.Reply(context.Background(), "tell me about grammar", LevelA1, nil)
	if !strings.Contains(got, "Nominative") {
		t.Errorf("limited-mode reply = %q, want the cases overview", got)
	}
}

func TestScoreExam(t *testing.T) {
	tests := []struct {
		name string
		req  SubmitExamReq
		want int
	}{
		{"empty", SubmitExamReq{}, 0},
		{"article only", SubmitExamReq{Q1: "Mann"}, 25},
		{"wrong article", SubmitExamReq{Q1: "Frau"}, 0},
		{"conjugation", SubmitExamReq{Q2: "Ich habe ein Auto."}, 25},
		{"translation keyword", SubmitExamReq{Q3: "Ich lerne Deutsch."}, 25},
		{
			"short email scores nothing",
			SubmitExamReq{Q4: "Komm zum Essen."},
			0,
		},
		{
			"full marks",
			SubmitExamReq{
				Q1: "Mann",
				Q2: "habe",
				Q3: "Ich lerne Deutsch, weil ich in Deutschland arbeiten möchte.",
				Q4: strings.Repeat("Liebe Anna, ich lade dich herzlich zum Abendessen ein. ", 4),
			},
			100,
		},
	}

	for _, tt := range tests {
		if got := scoreExam(tt.req); got != tt.want {
			t.Errorf("%s: score = %d, want %d", tt.name, got, tt.want)
		}
	}
}
