package main

import "strings"

// PlacementAnswers carries the quiz responses. The v1 scorer reads q1..q6,
// the v2 scorer reads q1..q9 plus the grammar-error count of q9 (supplied
// by the caller, usually from the grammar adapter; -1 means unchecked).
type PlacementAnswers struct {
	Q1 string `json:"q1"` // Wie ____ du? (choice)
	Q2 string `json:"q2"` // Ich komme ____ Deutschland. (choice)
	Q3 string `json:"q3"` // Wenn ich Zeit ____, würde ich mehr lesen. (choice)
	Q4 string `json:"q4"` // Ich _____ einen Hund. (fill-in)
	Q5 string `json:"q5"` // Er _____ gestern ins Kino _____. (fill-in)
	Q6 string `json:"q6"` // Ich wünschte, ich _____ besser Deutsch sprechen. (fill-in)
	Q7 string `json:"q7"` // translate: I would like a coffee, please.
	Q8 string `json:"q8"` // translate: Könnten Sie mir bitte helfen?
	Q9 string `json:"q9"` // free writing, 3-5 sentences
}

type PlacementResult struct {
	Level    string   `json:"level"`
	Score    int      `json:"score"`
	MaxScore int      `json:"maxScore"`
	Feedback []string `json:"feedback"`
}

// ScorePlacementV2 is the fine-grained 9-question scorer, out of 100.
// q9GrammarErrors < 0 skips the grammar bonus entirely.
func ScorePlacementV2(a PlacementAnswers, q9GrammarErrors int) PlacementResult {
	score := 0
	var feedback []string

	if a.Q1 == "heißt" {
		score += 5
		feedback = append(feedback, "Correct verb conjugation")
	} else {
		feedback = append(feedback, "Review verb conjugation: heißen -> du heißt")
	}

	if a.Q2 == "aus" {
		score += 5
		feedback = append(feedback, "Correct preposition usage")
	} else {
		feedback = append(feedback, "Remember: 'aus' for origin (from)")
	}

	if a.Q3 == "hätte" {
		score += 10
		feedback = append(feedback, "Good grasp of Konjunktiv II")
	} else {
		feedback = append(feedback, "Study conditional forms (Konjunktiv II)")
	}

	if strings.Contains(strings.ToLower(a.Q4), "habe") {
		score += 5
		feedback = append(feedback, "Present tense correct")
	}

	q5 := strings.ToLower(a.Q5)
	if strings.Contains(q5, "ist") && strings.Contains(q5, "gegangen") {
		score += 10
		feedback = append(feedback, "Perfect tense mastered")
	} else if strings.Contains(q5, "ging") {
		score += 5
		feedback = append(feedback, "Simple past is okay, but perfect tense is more common")
	}

	if strings.Contains(strings.ToLower(a.Q6), "könnte") {
		score += 10
		feedback = append(feedback, "Excellent use of modal in Konjunktiv")
	}

	q7 := strings.ToLower(a.Q7)
	if strings.Contains(q7, "möchte") || strings.Contains(q7, "kaffee") || strings.Contains(q7, "bitte") {
		score += 10
		feedback = append(feedback, "Good translation attempt")
	}

	q8 := strings.ToLower(a.Q8)
	if strings.Contains(q8, "could you please help me") || strings.Contains(q8, "can you please help me") {
		score += 10
		feedback = append(feedback, "Correct translation from German")
	}

	if a.Q9 != "" {
		words := len(strings.Fields(a.Q9))
		switch {
		case words >= 15:
			score += 20
			feedback = append(feedback, "Good writing")
		case words >= 10:
			score += 15
			feedback = append(feedback, "Try to write more")
		default:
			score += 10
			feedback = append(feedback, "Writing sample too short")
		}

		switch {
		case q9GrammarErrors == 0:
			score += 10
			feedback = append(feedback, "No grammar errors detected")
		case q9GrammarErrors > 0 && q9GrammarErrors <= 2:
			score += 5
			feedback = append(feedback, "A few minor grammar errors")
		case q9GrammarErrors > 2:
			feedback = append(feedback, "Several grammar errors to work on")
		}
	}

	level := LevelA1
	switch {
	case score >= 80:
		level = LevelB2
	case score >= 60:
		level = LevelB1
	case score >= 40:
		level = LevelA2
	}

	return PlacementResult{Level: level, Score: score, MaxScore: 100, Feedback: feedback}
}

// ScorePlacementV1 is the older coarse 6-question scorer, out of 8 points.
func ScorePlacementV1(a PlacementAnswers) PlacementResult {
	score := 0
	var feedback []string

	if a.Q1 == "heißt" {
		score++
	} else {
		feedback = append(feedback, "Review verb conjugation: heißen -> du heißt")
	}
	if a.Q2 == "aus" {
		score++
	} else {
		feedback = append(feedback, "Remember: 'aus' for origin (from)")
	}
	if strings.Contains(strings.ToLower(a.Q3), "habe") {
		score++
	}
	if strings.Contains(strings.ToLower(a.Q4), "geht") {
		score++
	}
	q5 := strings.ToLower(a.Q5)
	if strings.Contains(q5, "möchte") || strings.Contains(q5, "kaffee") || strings.Contains(q5, "bitte") {
		score += 2
	}
	if strings.Contains(strings.ToLower(a.Q6), "morgen gehe ich zur arbeit") {
		score += 2
	}

	level := LevelB2
	switch {
	case score <= 2:
		level = LevelA1
	case score <= 4:
		level = LevelA2
	case score <= 6:
		level = LevelB1
	}

	return PlacementResult{Level: level, Score: score, MaxScore: 8, Feedback: feedback}
}
