package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type MeResponse struct {
	Username           string         `json:"username"`
	Level              string         `json:"level,omitempty"`
	LevelTitle         string         `json:"levelTitle"`
	XP                 int            `json:"xp"`
	DailyXP            int            `json:"dailyXp"`
	Streak             int            `json:"streak"`
	CurrentDay         int            `json:"currentDay"`
	PlacementCompleted bool           `json:"placementCompleted"`
	Achievements       []string       `json:"achievements"`
	DailyTasks         []string       `json:"dailyTasks"`
	SkillScores        map[string]int `json:"skillScores"`
}

func meResponse(rec *ProgressRecord) MeResponse {
	return MeResponse{
		Username:           rec.UserName,
		Level:              rec.UserLevel,
		LevelTitle:         TitleForXP(rec.XP),
		XP:                 rec.XP,
		DailyXP:            rec.DailyXP,
		Streak:             rec.Streak,
		CurrentDay:         rec.CurrentDay,
		PlacementCompleted: rec.PlacementCompleted,
		Achievements:       rec.Achievements,
		DailyTasks:         rec.DailyTasks,
		SkillScores:        rec.SkillScores,
	}
}

// GET /api/v1/me
func GetMe(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		// persist the streak update applied at load time
		if err := store.Save(rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
			return
		}
		c.JSON(http.StatusOK, meResponse(rec))
	}
}

type MeUpdateReq struct {
	Level *string `json:"level"` // manual band override from the profile page
}

// PUT /api/v1/me
func UpdateMe(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}

		var req MeUpdateReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		if req.Level != nil {
			if !isValidLevel(*req.Level) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "level must be one of A1, A2, B1, B2"})
				return
			}
			if !rec.PlacementCompleted {
				c.JSON(http.StatusConflict, gin.H{"error": "complete the placement test first"})
				return
			}
			rec.UserLevel = *req.Level
		}

		if err := store.Save(rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
			return
		}
		c.JSON(http.StatusOK, meResponse(rec))
	}
}

// POST /api/v1/me/reset wipes the record and starts over from defaults.
func ResetProgress(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		if err := store.Delete(rec.UserName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
			return
		}
		fresh := NewProgressRecord(rec.UserName)
		fresh.Streak = 1
		if err := store.Save(fresh); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
			return
		}
		c.JSON(http.StatusOK, meResponse(fresh))
	}
}

// GET /api/v1/me/export returns the stored JSON document as a download.
func ExportProgress(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		// make sure the export reflects this session
		if err := store.Save(rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
			return
		}
		raw, err := store.Export(rec.UserName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		filename := "progress_" + time.Now().Format("20060102") + ".json"
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "application/json", raw)
	}
}
