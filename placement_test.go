package main

import "testing"

func perfectAnswers() PlacementAnswers {
	return PlacementAnswers{
		Q1: "heißt",
		Q2: "aus",
		Q3: "hätte",
		Q4: "Ich habe einen Hund.",
		Q5: "Er ist gestern ins Kino gegangen.",
		Q6: "Ich wünschte, ich könnte besser Deutsch sprechen.",
		Q7: "Ich möchte einen Kaffee, bitte.",
		Q8: "Could you please help me?",
		Q9: "Ich heiße Anna und ich komme aus Berlin. Ich arbeite in einem Büro und ich lese gerne Bücher am Wochenende.",
	}
}

func TestScorePlacementV2Perfect(t *testing.T) {
	got := ScorePlacementV2(perfectAnswers(), 0)
	if got.Score != 95 {
		t.Errorf("score = %d, want 95", got.Score)
	}
	if got.Level != LevelB2 {
		t.Errorf("level = %s, want B2", got.Level)
	}
	if len(got.Feedback) == 0 {
		t.Error("expected feedback lines")
	}
}

func TestScorePlacementV2Bands(t *testing.T) {
	tests := []struct {
		name    string
		answers PlacementAnswers
		errors  int
		want    string
	}{
		{"empty answers", PlacementAnswers{}, -1, LevelA1},
		{
			"basics only", // q1+q2+q4 = 15, short writing = 10+10
			PlacementAnswers{Q1: "heißt", Q2: "aus", Q4: "habe", Q9: "Ich bin Anna."},
			0,
			LevelA1,
		},
		{
			"solid elementary", // 5+5+5+10+10 = 35 + short writing 10 = 45
			PlacementAnswers{Q1: "heißt", Q2: "aus", Q4: "habe", Q5: "ist gegangen", Q7: "kaffee bitte", Q9: "Ich bin Anna."},
			-1,
			LevelA2,
		},
		{
			"intermediate", // 5+5+10+5+10+10+10 = 55 + writing(11 words) 15 = 70
			PlacementAnswers{
				Q1: "heißt", Q2: "aus", Q3: "hätte", Q4: "habe",
				Q5: "ist gegangen", Q6: "könnte", Q7: "möchte",
				Q9: "Ich bin Anna und ich wohne in Berlin mit meiner kleinen Familie.",
			},
			-1,
			LevelB1,
		},
	}

	for _, tt := range tests {
		got := ScorePlacementV2(tt.answers, tt.errors)
		if got.Level != tt.want {
			t.Errorf("%s: level = %s (score %d), want %s", tt.name, got.Level, got.Score, tt.want)
		}
	}
}

func TestScorePlacementV2SimplePastPartialCredit(t *testing.T) {
	full := ScorePlacementV2(PlacementAnswers{Q5: "Er ist gestern ins Kino gegangen."}, -1)
	partial := ScorePlacementV2(PlacementAnswers{Q5: "Er ging gestern ins Kino."}, -1)
	if full.Score != 10 {
		t.Errorf("perfect tense score = %d, want 10", full.Score)
	}
	if partial.Score != 5 {
		t.Errorf("simple past score = %d, want 5", partial.Score)
	}
}

func TestScorePlacementV1(t *testing.T) {
	tests := []struct {
		name      string
		answers   PlacementAnswers
		wantScore int
		wantLevel string
	}{
		{"empty", PlacementAnswers{}, 0, LevelA1},
		{"two basics", PlacementAnswers{Q1: "heißt", Q2: "aus"}, 2, LevelA1},
		{"four points", PlacementAnswers{Q1: "heißt", Q2: "aus", Q3: "Ich habe", Q4: "Wie geht es dir"}, 4, LevelA2},
		{"six points", PlacementAnswers{Q1: "heißt", Q2: "aus", Q3: "habe", Q4: "geht", Q5: "Ich möchte einen Kaffee"}, 6, LevelB1},
		{
			"perfect",
			PlacementAnswers{
				Q1: "heißt", Q2: "aus", Q3: "habe", Q4: "geht",
				Q5: "Ich möchte einen Kaffee bitte",
				Q6: "Morgen gehe ich zur Arbeit",
			},
			8, LevelB2,
		},
	}

	for _, tt := range tests {
		got := ScorePlacementV1(tt.answers)
		if got.Score != tt.wantScore || got.Level != tt.wantLevel {
			t.Errorf("%s: got (%d, %s), want (%d, %s)", tt.name, got.Score, got.Level, tt.wantScore, tt.wantLevel)
		}
	}
}
