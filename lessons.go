package main

import (
	"fmt"
	"math/rand"
	"strings"
)

// LessonRecord is the unit served to the frontend for one skill session.
type LessonRecord struct {
	Title      string   `json:"title"`
	Skill      string   `json:"skill"`
	Level      string   `json:"level"`
	Topic      string   `json:"topic"`
	Vocabulary []string `json:"vocabulary"`
	Content    string   `json:"content"`
	Exercise   string   `json:"exercise"`
	Tip        string   `json:"tip"`
}

// AssembleLesson builds a lesson for the given band and skill. Unknown
// levels fall back to A1 and unknown skills to the grammar branch. The
// caller supplies the random source; a fixed seed plus a fixed topic makes
// the output deterministic.
func AssembleLesson(level, skill, topic string, rng *rand.Rand) LessonRecord {
	if !isValidLevel(level) {
		level = LevelA1
	}
	if !isValidSkill(skill) {
		skill = SkillGrammar
	}

	if skill == SkillGrammar {
		return grammarLesson(level, rng)
	}

	topics := topicsFor(level)
	if topic == "" || vocabPools[level][topic] == nil {
		topic = topics[rng.Intn(len(topics))]
	}
	vocab := sampleWords(vocabPools[level][topic], 3, rng)
	patterns := sentencePatterns[level]

	title := titleCase(topic)
	rec := LessonRecord{
		Skill:      skill,
		Level:      level,
		Topic:      topic,
		Vocabulary: vocab,
	}

	switch skill {
	case SkillSpeaking:
		rec.Title = "Speaking Practice: " + title
		rec.Content = fmt.Sprintf(
			"Today's focus: %s vocabulary.\n\nNew words to practice: %s\n\nPractice patterns:\n1. %s\n2. %s\n\nSpeaking exercise: use the vocabulary above to create 3 sentences and say them aloud.",
			title, strings.Join(vocab, " | "), patterns[0], patterns[1])
		rec.Exercise = "Create sentences using: " + strings.Join(vocab[:min(2, len(vocab))], ", ")
		rec.Tip = "Focus on pronunciation. Say each word slowly first, then speed up."

	case SkillWriting:
		numbered := make([]string, 0, 3)
		for i, p := range patterns[:min(3, len(patterns))] {
			numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, p))
		}
		rec.Title = "Writing Practice: " + title
		rec.Content = fmt.Sprintf(
			"Writing theme: %s.\n\nKey vocabulary: %s\n\nSentence structures to use:\n%s",
			title, strings.Join(vocab, " | "), strings.Join(numbered, "\n"))
		rec.Exercise = fmt.Sprintf(
			"Write a short paragraph (3-5 sentences) about %s using at least 2 of these words: %s",
			topic, strings.Join(vocab, ", "))
		rec.Tip = "Remember word order and use correct articles (der/die/das)."

	case SkillListening:
		rec.Title = "Listening Comprehension: " + title
		rec.Content = fmt.Sprintf(
			"Listening focus: %s dialogue.\n\nPre-listening vocabulary: %s\n\nDialogue to practice:\n%s\n\nListen for key words from the vocabulary, question words (Was, Wie, Wo, Wann) and time expressions.",
			title, strings.Join(vocab, " | "), listeningDialogues[level])
		rec.Exercise = "Read the dialogue aloud 3 times, then answer: what is the main topic of the conversation?"
		rec.Tip = "First, read through once for general understanding. Then focus on specific details."

	case SkillReading:
		rec.Title = "Reading Comprehension: " + title
		rec.Content = fmt.Sprintf(
			"Key vocabulary: %s\n\n%s\n\nComprehension questions:\n1. What is the main topic of the text?\n2. Identify 3 key facts mentioned.\n3. Find one sentence you find challenging and analyze its structure.",
			strings.Join(vocab, " | "), readingTexts[level])
		rec.Exercise = "Summarize the text in 2-3 sentences in your own words."
		rec.Tip = "Underline words you don't know, but try to understand them from context first."
	}

	return rec
}

func grammarLesson(level string, rng *rand.Rand) LessonRecord {
	topics := grammarTopics[level]
	gt := topics[rng.Intn(len(topics))]
	return LessonRecord{
		Title:      "Grammar: " + gt.Name,
		Skill:      SkillGrammar,
		Level:      level,
		Topic:      gt.Name,
		Vocabulary: []string{},
		Content: fmt.Sprintf(
			"Grammar focus: %s.\n\nConcept: %s\n\nExamples: %s\n\nTry creating your own sentences using this structure.",
			gt.Name, gt.Rule, gt.Example),
		Exercise: fmt.Sprintf("Create 3 sentences using %s", gt.Name),
		Tip:      "Write down the rule and keep examples handy for reference.",
	}
}

// sampleWords draws min(n, len(words)) words without replacement.
func sampleWords(words []string, n int, rng *rand.Rand) []string {
	out := make([]string, len(words))
	copy(out, words)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// titleCase capitalizes a topic key for display ("daily" -> "Daily").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
