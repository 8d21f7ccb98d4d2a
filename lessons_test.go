package main

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestAssembleLessonAllLevelsAndSkills(t *testing.T) {
	for _, level := range levelOrder {
		for _, skill := range allSkills {
			rng := rand.New(rand.NewSource(1))
			lesson := AssembleLesson(level, skill, "", rng)

			if lesson.Title == "" {
				t.Errorf("%s/%s: empty title", level, skill)
			}
			if lesson.Content == "" {
				t.Errorf("%s/%s: empty content", level, skill)
			}
			if lesson.Exercise == "" || lesson.Tip == "" {
				t.Errorf("%s/%s: missing exercise or tip", level, skill)
			}
			if lesson.Level != level || lesson.Skill != skill {
				t.Errorf("%s/%s: echoed level/skill = %s/%s", level, skill, lesson.Level, lesson.Skill)
			}

			if skill == SkillGrammar {
				if len(lesson.Vocabulary) != 0 {
					t.Errorf("%s/grammar: vocabulary should be empty", level)
				}
				continue
			}
			pool := vocabPools[level][lesson.Topic]
			want := min(3, len(pool))
			if len(lesson.Vocabulary) != want {
				t.Errorf("%s/%s: vocabulary length = %d, want %d", level, skill, len(lesson.Vocabulary), want)
			}
		}
	}
}

func TestAssembleLessonDeterministicWithSeed(t *testing.T) {
	a := AssembleLesson(LevelA2, SkillWriting, "daily", rand.New(rand.NewSource(42)))
	b := AssembleLesson(LevelA2, SkillWriting, "daily", rand.New(rand.NewSource(42)))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and topic should produce identical lessons:\n%+v\n%+v", a, b)
	}
}

func TestAssembleLessonFallbacks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	got := AssembleLesson("C1", SkillReading, "", rng)
	if got.Level != LevelA1 {
		t.Errorf("unknown level should fall back to A1, got %s", got.Level)
	}

	got = AssembleLesson(LevelB1, "dancing", "", rng)
	if got.Skill != SkillGrammar {
		t.Errorf("unknown skill should fall back to grammar, got %s", got.Skill)
	}

	// unknown topic falls back to a random valid topic for the level
	got = AssembleLesson(LevelA1, SkillSpeaking, "quantum", rng)
	if vocabPools[LevelA1][got.Topic] == nil {
		t.Errorf("fallback topic %q not in the A1 pool", got.Topic)
	}
}

func TestValidateContentPools(t *testing.T) {
	if err := ValidateContentPools(); err != nil {
		t.Fatalf("built-in pools should validate: %v", err)
	}
}

func TestValidateContentPoolsRequiresThreePatterns(t *testing.T) {
	// the speaking and writing branches index into the pattern list, so a
	// level with too few patterns must be rejected at startup
	saved := sentencePatterns[LevelA1]
	sentencePatterns[LevelA1] = []string{"Ich bin [Name]."}
	defer func() { sentencePatterns[LevelA1] = saved }()

	if err := ValidateContentPools(); err == nil {
		t.Fatal("a level with a single sentence pattern should not validate")
	}
}

func TestTitleForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want string
	}{
		{0, "Anfänger (Beginner)"},
		{99, "Anfänger (Beginner)"},
		{100, "Entdecker (Explorer)"},
		{599, "Lerner (Learner)"},
		{600, "Fortgeschritten (Advanced)"},
		{2500, "Guru"},
	}
	for _, tt := range tests {
		if got := TitleForXP(tt.xp); got != tt.want {
			t.Errorf("TitleForXP(%d) = %q, want %q", tt.xp, got, tt.want)
		}
	}
}

func TestExamplesForWord(t *testing.T) {
	if got := ExamplesForWord("Haus"); len(got) != 3 {
		t.Errorf("curated examples for Haus: got %d, want 3", len(got))
	}
	generic := ExamplesForWord("Zeitgeist")
	if len(generic) != 3 {
		t.Fatalf("generic examples: got %d, want 3", len(generic))
	}
	for _, ex := range generic {
		if !strings.Contains(ex, "Zeitgeist") {
			t.Errorf("generic example %q should mention the word", ex)
		}
	}
}
