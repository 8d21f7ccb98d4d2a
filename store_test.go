package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	return s
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	rec := NewProgressRecord("Anna")
	rec.UserLevel = LevelA2
	rec.XP = 140
	rec.Streak = 3
	rec.PlacementCompleted = true
	rec.Achievements = []string{"First Steps"}
	rec.CompletedExercises = []string{"day1_reading", "day2_grammar"}
	rec.ChatHistory = []ChatMessage{{Role: "user", Content: "Hallo"}}
	rec.ChatMessages = 7
	rec.SkillScores[SkillReading] = 25

	if err := s.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load("Anna")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.UserLevel != LevelA2 || got.XP != 140 || got.Streak != 3 {
		t.Errorf("core fields lost: %+v", got)
	}
	if !got.PlacementCompleted || len(got.CompletedExercises) != 2 {
		t.Errorf("progress fields lost: %+v", got)
	}
	if got.SkillScores[SkillReading] != 25 {
		t.Errorf("skill score = %d, want 25", got.SkillScores[SkillReading])
	}
	if got.ChatMessages != 7 {
		t.Errorf("chat message count = %d, want 7", got.ChatMessages)
	}
	if got.LastLogin.IsZero() {
		t.Error("Save should stamp last_login")
	}
}

func TestStoreLoadUnknownUser(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Load("nobody"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreLoadFillsMissingSkills(t *testing.T) {
	s := newTestStore(t)
	// a record written before skill tracking existed
	raw := []byte(`{"user_name": "old", "xp": 10}`)
	if err := os.WriteFile(filepath.Join(s.dir, "user_old.json"), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load("old")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.SkillScores) != len(allSkills) {
		t.Errorf("skill map has %d keys, want %d", len(got.SkillScores), len(allSkills))
	}
}

func TestStoreChatHistoryTruncation(t *testing.T) {
	s := newTestStore(t)
	rec := NewProgressRecord("anna")
	for i := 0; i < 60; i++ {
		rec.ChatHistory = append(rec.ChatHistory, ChatMessage{Role: "user", Content: strings.Repeat("x", i+1)})
	}
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load("anna")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ChatHistory) != chatHistoryLimit {
		t.Fatalf("history length = %d, want %d", len(got.ChatHistory), chatHistoryLimit)
	}
	// the oldest 10 messages are dropped, not the newest
	if len(got.ChatHistory[0].Content) != 11 {
		t.Errorf("first kept message = %q, want the 11th", got.ChatHistory[0].Content)
	}
}

func TestSanitizeUsername(t *testing.T) {
	s := newTestStore(t)
	rec := NewProgressRecord("../../../etc/passwd")
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file in the data dir, got %d", len(entries))
	}
	name := entries[0].Name()
	if strings.Contains(name, "..") || strings.Contains(name, "/") || !strings.HasPrefix(name, "user_") {
		t.Errorf("suspicious stored filename %q", name)
	}
}

func TestUpdateStreak(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		lastLogin  time.Time
		streak     int
		wantStreak int
	}{
		{"first login", time.Time{}, 0, 1},
		{"consecutive day", base.AddDate(0, 0, -1), 4, 5},
		{"same day", base.Add(-2 * time.Hour), 4, 4},
		{"late night to early morning", time.Date(2026, 3, 9, 23, 50, 0, 0, time.UTC), 4, 5},
		{"gap of three days", base.AddDate(0, 0, -3), 9, 1},
	}

	for _, tt := range tests {
		rec := NewProgressRecord("anna")
		rec.LastLogin = tt.lastLogin
		rec.Streak = tt.streak
		UpdateStreak(rec, base)
		if rec.Streak != tt.wantStreak {
			t.Errorf("%s: streak = %d, want %d", tt.name, rec.Streak, tt.wantStreak)
		}
	}
}

func TestUpdateStreakResetsDailyCounters(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	rec := NewProgressRecord("anna")
	rec.LastLogin = base.AddDate(0, 0, -1)
	rec.DailyTasks = []string{SkillReading, SkillGrammar}
	rec.DailyXP = 65
	rec.DailyBonusAwarded = true

	UpdateStreak(rec, base)

	if len(rec.DailyTasks) != 0 || rec.DailyXP != 0 || rec.DailyBonusAwarded {
		t.Errorf("daily counters not reset: tasks=%v dailyXP=%d bonus=%v",
			rec.DailyTasks, rec.DailyXP, rec.DailyBonusAwarded)
	}

	// same calendar day: counters must survive
	rec.DailyXP = 30
	UpdateStreak(rec, base.Add(time.Hour))
	if rec.DailyXP != 30 {
		t.Errorf("same-day update cleared daily XP")
	}
}

func TestAddXP(t *testing.T) {
	s := newTestStore(t)
	rec := NewProgressRecord("anna")

	if _, err := s.AddXP(rec, 15, quietTime); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if rec.XP != 15 || rec.DailyXP != 15 {
		t.Errorf("XP = %d, DailyXP = %d, want 15/15", rec.XP, rec.DailyXP)
	}

	got, err := s.Load("anna")
	if err != nil {
		t.Fatal(err)
	}
	if got.XP != 15 {
		t.Errorf("persisted XP = %d, want 15", got.XP)
	}
}

func TestMarkTaskComplete(t *testing.T) {
	s := newTestStore(t)
	rec := NewProgressRecord("anna")

	for i, sk := range allSkills[:4] {
		advanced, _, err := s.MarkTaskComplete(rec, sk, quietTime)
		if err != nil {
			t.Fatalf("task %d: %v", i, err)
		}
		if advanced {
			t.Fatalf("day advanced after only %d tasks", i+1)
		}
	}

	// repeating a done task changes nothing
	advanced, _, err := s.MarkTaskComplete(rec, allSkills[0], quietTime)
	if err != nil || advanced {
		t.Fatalf("duplicate task: advanced=%v err=%v", advanced, err)
	}
	if len(rec.DailyTasks) != 4 {
		t.Fatalf("tasks = %v, want 4 entries", rec.DailyTasks)
	}

	xpBefore := rec.XP
	advanced, _, err = s.MarkTaskComplete(rec, allSkills[4], quietTime)
	if err != nil {
		t.Fatal(err)
	}
	if !advanced {
		t.Fatal("fifth skill should advance the day")
	}
	if rec.CurrentDay != 2 {
		t.Errorf("current day = %d, want 2", rec.CurrentDay)
	}
	if rec.XP != xpBefore+dailyBonusXP {
		t.Errorf("XP = %d, want %d", rec.XP, xpBefore+dailyBonusXP)
	}
	if len(rec.DailyTasks) != 0 {
		t.Errorf("tasks not cleared for the new day: %v", rec.DailyTasks)
	}
	if !rec.DailyBonusAwarded {
		t.Error("bonus flag not set")
	}

	// a second full round on the same calendar day must not pay again
	xpBefore = rec.XP
	day := rec.CurrentDay
	for _, sk := range allSkills {
		if _, _, err := s.MarkTaskComplete(rec, sk, quietTime); err != nil {
			t.Fatal(err)
		}
	}
	if rec.XP != xpBefore {
		t.Errorf("bonus paid twice on the same day: XP %d -> %d", xpBefore, rec.XP)
	}
	if rec.CurrentDay != day {
		t.Errorf("day advanced twice on the same calendar day")
	}
}

func TestStoreDeleteAndExport(t *testing.T) {
	s := newTestStore(t)
	rec := NewProgressRecord("anna")
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}

	raw, err := s.Export("anna")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(raw), `"user_name": "anna"`) {
		t.Errorf("export missing username: %s", raw)
	}

	if err := s.Delete("anna"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("anna"); err != ErrNotFound {
		t.Errorf("after delete, err = %v, want ErrNotFound", err)
	}
	// deleting a missing record is not an error
	if err := s.Delete("anna"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}
