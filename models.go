package main

import (
	"strings"
	"time"
)

// --- Proficiency bands ---

const (
	LevelA1 = "A1"
	LevelA2 = "A2"
	LevelB1 = "B1"
	LevelB2 = "B2"
)

// levelOrder lists the bands from easiest to hardest.
var levelOrder = []string{LevelA1, LevelA2, LevelB1, LevelB2}

// nextLevel maps each band to the one above it. B2 is the ceiling.
var nextLevel = map[string]string{
	LevelA1: LevelA2,
	LevelA2: LevelB1,
	LevelB1: LevelB2,
}

func isValidLevel(level string) bool {
	for _, l := range levelOrder {
		if l == level {
			return true
		}
	}
	return false
}

// --- Skills ---

const (
	SkillSpeaking  = "speaking"
	SkillWriting   = "writing"
	SkillListening = "listening"
	SkillReading   = "reading"
	SkillGrammar   = "grammar"
)

var allSkills = []string{SkillSpeaking, SkillWriting, SkillListening, SkillReading, SkillGrammar}

func isValidSkill(skill string) bool {
	for _, s := range allSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// --- Chat ---

type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// --- Exams ---

type Certificate struct {
	Title string `json:"title"`
	Date  string `json:"date"` // YYYY-MM-DD
	Score string `json:"score"`
}

type ExamResult struct {
	ID          string       `json:"id"`
	Date        time.Time    `json:"date"`
	Type        string       `json:"type"` // "level_progression" | "goethe_mock"
	Level       string       `json:"level"`
	Score       int          `json:"score"` // 0..100
	Passed      bool         `json:"passed"`
	Feedback    string       `json:"feedback,omitempty"`
	Certificate *Certificate `json:"certificate,omitempty"`
}

// --- Progress record ---

// ProgressRecord is the whole per-user state. It is persisted as a single
// JSON file per username; everything else in the app mutates it.
type ProgressRecord struct {
	UserName           string         `json:"user_name"`
	UserLevel          string         `json:"user_level,omitempty"` // unset until placement
	XP                 int            `json:"xp"`
	Streak             int            `json:"streak"`
	CurrentDay         int            `json:"current_day"` // 1..180+
	Achievements       []string       `json:"achievements"`
	CompletedExercises []string       `json:"completed_exercises"`
	PlacementCompleted bool           `json:"placement_completed"`
	ExamHistory        []ExamResult   `json:"exam_history"`
	ChatHistory        []ChatMessage  `json:"chat_history"`  // last 50 kept on save
	ChatMessages       int            `json:"chat_messages"` // lifetime count, unaffected by truncation
	SkillScores        map[string]int `json:"skill_scores"` // skill -> 0..100
	LastLogin          time.Time      `json:"last_login"`

	// Daily counters survive restarts but reset when the calendar day
	// changes (see UpdateStreak).
	DailyTasks        []string `json:"daily_tasks_completed"`
	DailyXP           int      `json:"daily_xp"`
	DailyBonusAwarded bool     `json:"daily_bonus_awarded"`
}

// NewProgressRecord returns the empty defaults for a first-time username.
func NewProgressRecord(username string) *ProgressRecord {
	scores := make(map[string]int, len(allSkills))
	for _, s := range allSkills {
		scores[s] = 0
	}
	return &ProgressRecord{
		UserName:           username,
		CurrentDay:         1,
		Achievements:       []string{},
		CompletedExercises: []string{},
		ExamHistory:        []ExamResult{},
		ChatHistory:        []ChatMessage{},
		DailyTasks:         []string{},
		SkillScores:        scores,
	}
}

// HasAchievement reports whether name is already unlocked.
func (r *ProgressRecord) HasAchievement(name string) bool {
	for _, a := range r.Achievements {
		if a == name {
			return true
		}
	}
	return false
}

// CountExercises counts completed-exercise tags containing the given
// substring (skill names are embedded in the tags).
func (r *ProgressRecord) CountExercises(substr string) int {
	n := 0
	sub := strings.ToLower(substr)
	for _, e := range r.CompletedExercises {
		if strings.Contains(strings.ToLower(e), sub) {
			n++
		}
	}
	return n
}

// BumpSkillScore adds delta to a skill score, clamped to [0, 100].
func (r *ProgressRecord) BumpSkillScore(skill string, delta int) {
	if _, ok := r.SkillScores[skill]; !ok {
		return
	}
	v := r.SkillScores[skill] + delta
	if v > 100 {
		v = 100
	}
	if v < 0 {
		v = 0
	}
	r.SkillScores[skill] = v
}
