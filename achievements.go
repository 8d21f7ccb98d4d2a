package main

import "time"

// Achievement is a one-time-grantable milestone. Predicates read only the
// record and the supplied wall clock, never ambient state.
type Achievement struct {
	Name        string
	Description string
	RewardXP    int
	Unlocked    func(r *ProgressRecord, now time.Time) bool
}

// achievementCatalog is evaluated in order; order matters only for the
// "next to unlock" display, not for correctness.
var achievementCatalog = []Achievement{
	{"First Steps", "Complete your first lesson", 10,
		func(r *ProgressRecord, _ time.Time) bool { return len(r.CompletedExercises) >= 1 }},
	{"First Century", "Earn 100 XP", 25,
		func(r *ProgressRecord, _ time.Time) bool { return r.XP >= 100 }},
	{"Week Warrior", "7-day streak", 25,
		func(r *ProgressRecord, _ time.Time) bool { return r.Streak >= 7 }},
	{"Dedicated Learner", "14-day streak", 25,
		func(r *ProgressRecord, _ time.Time) bool { return r.Streak >= 14 }},
	{"Monthly Master", "Complete 30 days", 50,
		func(r *ProgressRecord, _ time.Time) bool { return r.CurrentDay >= 30 }},
	{"Grammar Guru", "Complete 20 grammar lessons", 30,
		func(r *ProgressRecord, _ time.Time) bool { return r.CountExercises(SkillGrammar) >= 20 }},
	{"Conversation Champion", "Complete 50 speaking exercises", 30,
		func(r *ProgressRecord, _ time.Time) bool { return r.CountExercises(SkillSpeaking) >= 50 }},
	{"Writing Wizard", "Submit 30 writing exercises", 30,
		func(r *ProgressRecord, _ time.Time) bool { return r.CountExercises(SkillWriting) >= 30 }},
	{"Listening Legend", "Complete 40 listening exercises", 30,
		func(r *ProgressRecord, _ time.Time) bool { return r.CountExercises(SkillListening) >= 40 }},
	{"Reading Rockstar", "Read 100 texts", 30,
		func(r *ProgressRecord, _ time.Time) bool { return r.CountExercises(SkillReading) >= 100 }},
	{"Halfway Hero", "Reach day 90", 75,
		func(r *ProgressRecord, _ time.Time) bool { return r.CurrentDay >= 90 }},
	{"B2 Boss", "Complete the 180-day journey", 100,
		func(r *ProgressRecord, _ time.Time) bool { return r.CurrentDay >= 180 }},
	// counts attempts, passed or not; taking five exams is the milestone
	{"Exam Master", "Pass 5 exams", 25,
		func(r *ProgressRecord, _ time.Time) bool { return len(r.ExamHistory) >= 5 }},
	// Daily-completion tracking across a full week is not recorded yet,
	// so this stays locked. TODO: track per-day completion history.
	{"Perfectionist", "100% daily completion for a week", 20,
		func(r *ProgressRecord, _ time.Time) bool { return false }},
	{"Night Owl", "Study after 10 PM", 15,
		func(_ *ProgressRecord, now time.Time) bool { return now.Hour() >= 22 }},
	{"Early Bird", "Study before 6 AM", 15,
		func(_ *ProgressRecord, now time.Time) bool { return now.Hour() < 6 }},
	{"Weekend Warrior", "Study on weekend", 15,
		func(_ *ProgressRecord, now time.Time) bool {
			wd := now.Weekday()
			return wd == time.Saturday || wd == time.Sunday
		}},
}

// EvaluateAchievements grants every satisfied, not-yet-unlocked achievement
// and applies its reward XP. Rewards can push the record over another
// threshold (e.g. First Century), so the pass repeats until nothing new
// unlocks; the loop is bounded because each name is recorded before its
// reward is applied.
func EvaluateAchievements(r *ProgressRecord, now time.Time) []string {
	var unlocked []string
	for {
		granted := false
		for _, a := range achievementCatalog {
			if r.HasAchievement(a.Name) || !a.Unlocked(r, now) {
				continue
			}
			r.Achievements = append(r.Achievements, a.Name)
			r.XP += a.RewardXP
			r.DailyXP += a.RewardXP
			unlocked = append(unlocked, a.Name)
			granted = true
		}
		if !granted {
			return unlocked
		}
	}
}
