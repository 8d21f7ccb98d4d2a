package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsResponse struct {
	XP              int            `json:"xp"`
	DailyXP         int            `json:"dailyXp"`
	LevelTitle      string         `json:"levelTitle"`
	Level           string         `json:"level,omitempty"`
	Streak          int            `json:"streak"`
	CurrentDay      int            `json:"currentDay"`
	JourneyPercent  float64        `json:"journeyPercent"` // of the 180-day plan
	TotalExercises  int            `json:"totalExercises"`
	WordsLearned    int            `json:"wordsLearned"`   // rough estimate
	EstimatedHours  int            `json:"estimatedHours"` // ~15 min per exercise
	AvgXPPerDay     int            `json:"avgXpPerDay"`
	SkillScores     map[string]int `json:"skillScores"`
	WeakestSkill    string         `json:"weakestSkill,omitempty"`
	StrongestSkill  string         `json:"strongestSkill,omitempty"`
	TotalExams      int            `json:"totalExams"`
	PassedExams     int            `json:"passedExams"`
	PassRate        *float64       `json:"passRate,omitempty"`
	AverageScore    *float64       `json:"averageScore,omitempty"`
	Achievements    int            `json:"achievements"`
	AchievementsMax int            `json:"achievementsMax"`
}

// Stats derives everything from the progress record; nothing here mutates.
func Stats() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}

		resp := StatsResponse{
			XP:              rec.XP,
			DailyXP:         rec.DailyXP,
			LevelTitle:      TitleForXP(rec.XP),
			Level:           rec.UserLevel,
			Streak:          rec.Streak,
			CurrentDay:      rec.CurrentDay,
			JourneyPercent:  float64(rec.CurrentDay) / 180.0 * 100.0,
			TotalExercises:  len(rec.CompletedExercises),
			WordsLearned:    len(rec.CompletedExercises) * 5,
			EstimatedHours:  len(rec.CompletedExercises) * 15 / 60,
			SkillScores:     rec.SkillScores,
			Achievements:    len(rec.Achievements),
			AchievementsMax: len(achievementCatalog),
		}
		if rec.CurrentDay > 0 {
			resp.AvgXPPerDay = rec.XP / rec.CurrentDay
		}

		// weakest/strongest over the fixed skill set, ties broken by the
		// canonical skill order
		weakest, strongest := "", ""
		for _, s := range allSkills {
			score := rec.SkillScores[s]
			if weakest == "" || score < rec.SkillScores[weakest] {
				weakest = s
			}
			if strongest == "" || score > rec.SkillScores[strongest] {
				strongest = s
			}
		}
		resp.WeakestSkill = weakest
		resp.StrongestSkill = strongest

		totalScore := 0
		for _, e := range rec.ExamHistory {
			resp.TotalExams++
			totalScore += e.Score
			if e.Passed {
				resp.PassedExams++
			}
		}
		if resp.TotalExams > 0 {
			pr := float64(resp.PassedExams) * 100.0 / float64(resp.TotalExams)
			avg := float64(totalScore) / float64(resp.TotalExams)
			resp.PassRate = &pr
			resp.AverageScore = &avg
		}

		c.JSON(http.StatusOK, resp)
	}
}
