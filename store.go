package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned by Load for usernames with no saved record.
var ErrNotFound = errors.New("progress record not found")

const chatHistoryLimit = 50

// Store persists one ProgressRecord per username as a whole JSON file.
// There is no locking; concurrent sessions under the same username race on
// save and the last write wins.
type Store struct {
	dir string
}

func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// path maps a username to its file. The name is sanitized so a crafted
// username cannot escape the data directory.
func (s *Store) path(username string) string {
	return filepath.Join(s.dir, "user_"+sanitizeUsername(username)+".json")
}

func sanitizeUsername(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func (s *Store) Load(username string) (*ProgressRecord, error) {
	raw, err := os.ReadFile(s.path(username))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read progress: %w", err)
	}
	var rec ProgressRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("parse progress: %w", err)
	}
	if rec.SkillScores == nil {
		rec.SkillScores = make(map[string]int, len(allSkills))
	}
	for _, sk := range allSkills {
		if _, ok := rec.SkillScores[sk]; !ok {
			rec.SkillScores[sk] = 0
		}
	}
	return &rec, nil
}

// Save writes the full record, stamping last_login with now and keeping
// only the most recent 50 chat messages.
func (s *Store) Save(rec *ProgressRecord) error {
	return s.saveAt(rec, time.Now())
}

func (s *Store) saveAt(rec *ProgressRecord, now time.Time) error {
	if n := len(rec.ChatHistory); n > chatHistoryLimit {
		rec.ChatHistory = rec.ChatHistory[n-chatHistoryLimit:]
	}
	rec.LastLogin = now
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := os.WriteFile(s.path(rec.UserName), raw, 0o644); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}

// Delete wipes a record (user-initiated reset).
func (s *Store) Delete(username string) error {
	err := os.Remove(s.path(username))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

// Export returns the raw stored JSON document for download.
func (s *Store) Export(username string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(username))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read progress: %w", err)
	}
	return raw, nil
}

// UpdateStreak applies the calendar-day gap between the stored last login
// and now: exactly one day extends the streak, a longer gap resets it to 1,
// the same day leaves it unchanged. A day change also resets the daily
// counters so the completion bonus can fire again.
func UpdateStreak(rec *ProgressRecord, now time.Time) {
	if rec.LastLogin.IsZero() {
		rec.Streak = 1
		return
	}
	prev := dateOf(rec.LastLogin)
	cur := dateOf(now)
	days := int(cur.Sub(prev).Hours() / 24)
	switch {
	case days == 1:
		rec.Streak++
	case days > 1:
		rec.Streak = 1
	default:
		return
	}
	rec.DailyTasks = []string{}
	rec.DailyXP = 0
	rec.DailyBonusAwarded = false
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddXP applies an XP gain, runs the achievement pass and persists.
func (s *Store) AddXP(rec *ProgressRecord, amount int, now time.Time) ([]string, error) {
	rec.XP += amount
	rec.DailyXP += amount
	unlocked := EvaluateAchievements(rec, now)
	return unlocked, s.saveAt(rec, now)
}

const dailyBonusXP = 50

// MarkTaskComplete records a finished daily skill task. Completing all
// five skills grants the daily bonus once, advances the day and clears the
// task set for the new day.
func (s *Store) MarkTaskComplete(rec *ProgressRecord, skill string, now time.Time) (bool, []string, error) {
	for _, t := range rec.DailyTasks {
		if t == skill {
			return false, nil, s.saveAt(rec, now)
		}
	}
	rec.DailyTasks = append(rec.DailyTasks, skill)

	if len(rec.DailyTasks) < len(allSkills) || rec.DailyBonusAwarded {
		return false, nil, s.saveAt(rec, now)
	}

	rec.DailyBonusAwarded = true
	rec.CurrentDay++
	rec.DailyTasks = []string{}
	rec.XP += dailyBonusXP
	rec.DailyXP += dailyBonusXP
	unlocked := EvaluateAchievements(rec, now)
	return true, unlocked, s.saveAt(rec, now)
}
