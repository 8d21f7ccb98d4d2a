package main

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

/*** Login ***/

type LoginReq struct {
	Username string `json:"username"`
}

// Login creates or resumes a progress record for the username and sets the
// identity cookie. First use of a name starts from empty defaults.
func Login(store *Store, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		username := strings.TrimSpace(req.Username)
		if len(username) < 2 || len(username) > 40 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 2..40 chars"})
			return
		}

		rec, err := store.Load(username)
		if err == ErrNotFound {
			rec = NewProgressRecord(username)
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load progress failed"})
			return
		}
		UpdateStreak(rec, time.Now())
		if err := store.Save(rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
			return
		}

		setUserCookie(c, username, secureCookies)
		c.JSON(http.StatusOK, meResponse(rec))
	}
}

/*** Placement ***/

type PlacementReq struct {
	Version string           `json:"version"` // "v1" | "v2" (default)
	Answers PlacementAnswers `json:"answers"`
}

// SubmitPlacement scores the quiz, fixes the user's band and awards the
// placement XP. Re-taking requires an explicit reset.
func SubmitPlacement(store *Store, grammar *GrammarChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		if rec.PlacementCompleted {
			c.JSON(http.StatusConflict, gin.H{"error": "placement already completed"})
			return
		}

		var req PlacementReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		var result PlacementResult
		if req.Version == "v1" {
			result = ScorePlacementV1(req.Answers)
		} else {
			grammarErrors := -1
			if req.Answers.Q9 != "" {
				if gr := grammar.Check(c.Request.Context(), req.Answers.Q9); gr.Checked {
					grammarErrors = gr.ErrorCount
				}
			}
			result = ScorePlacementV2(req.Answers, grammarErrors)
		}

		rec.UserLevel = result.Level
		rec.PlacementCompleted = true
		unlocked, err := store.AddXP(rec, 25, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"level":           result.Level,
			"score":           result.Score,
			"maxScore":        result.MaxScore,
			"feedback":        result.Feedback,
			"newAchievements": unlocked,
		})
	}
}

/*** Lessons & exercises ***/

// GetLesson assembles a lesson for the user's band. Query params: skill
// (required), topic (optional), seed (optional, for reproducibility).
func GetLesson() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		if !rec.PlacementCompleted {
			c.JSON(http.StatusForbidden, gin.H{"error": "complete the placement test first"})
			return
		}

		skill := c.Query("skill")
		if !isValidSkill(skill) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown skill"})
			return
		}

		seed := time.Now().UnixNano()
		if s := c.Query("seed"); s != "" {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				seed = n
			}
		}
		rng := rand.New(rand.NewSource(seed))

		lesson := AssembleLesson(rec.UserLevel, skill, c.Query("topic"), rng)
		c.JSON(http.StatusOK, lesson)
	}
}

type CompleteExerciseReq struct {
	Skill string `json:"skill"`
}

// CompleteExercise logs a finished exercise: appends the tag, bumps the
// skill score, awards XP and ticks off the daily task. Completing all five
// skills advances the day with a bonus.
func CompleteExercise(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		if !rec.PlacementCompleted {
			c.JSON(http.StatusForbidden, gin.H{"error": "complete the placement test first"})
			return
		}

		var req CompleteExerciseReq
		if err := c.BindJSON(&req); err != nil || !isValidSkill(req.Skill) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown skill"})
			return
		}

		now := time.Now()
		tag := "day" + strconv.Itoa(rec.CurrentDay) + "_" + req.Skill
		rec.CompletedExercises = append(rec.CompletedExercises, tag)
		rec.BumpSkillScore(req.Skill, 5)
		rec.XP += 15
		rec.DailyXP += 15
		unlocked := EvaluateAchievements(rec, now)

		dayAdvanced, bonusUnlocked, err := store.MarkTaskComplete(rec, req.Skill, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
			return
		}
		unlocked = append(unlocked, bonusUnlocked...)

		c.JSON(http.StatusOK, gin.H{
			"xp":              rec.XP,
			"dailyXp":         rec.DailyXP,
			"currentDay":      rec.CurrentDay,
			"dayAdvanced":     dayAdvanced,
			"dailyTasks":      rec.DailyTasks,
			"skillScores":     rec.SkillScores,
			"newAchievements": unlocked,
		})
	}
}

/*** Exams ***/

// examAttempt is transient state between start and submit. Attempts do not
// survive a restart; the user just starts the exam again.
type examAttempt struct {
	Username string
	Type     string
	Level    string
	Started  time.Time
}

type ExamAttempts struct {
	mu sync.Mutex
	m  map[string]examAttempt
}

func NewExamAttempts() *ExamAttempts {
	return &ExamAttempts{m: make(map[string]examAttempt)}
}

func (e *ExamAttempts) put(id string, a examAttempt) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.m[id] = a
}

func (e *ExamAttempts) take(id string) (examAttempt, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.m[id]
	if ok {
		delete(e.m, id)
	}
	return a, ok
}

// examQuestions is the fixed 4-question paper, 25 points each, pass at 60.
var examQuestions = []string{
	"1. Der ___ ist groß. (Mann / Frau / Kind / Mädchen)",
	"2. Complete: Ich _____ (haben) ein Auto.",
	"3. Translate to German: 'I am learning German because I want to work in Germany.'",
	"4. Write a short email (50 words) inviting a friend to dinner.",
}

const (
	examPassScore          = 60
	examRequiredExercises  = 20
	examTypeProgression    = "level_progression"
	examTypeGoetheMock     = "goethe_mock"
)

type StartExamReq struct {
	Type  string `json:"type"`  // default level_progression
	Level string `json:"level"` // goethe_mock only; defaults to the user's band
}

func StartExam(attempts *ExamAttempts) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}
		if !rec.PlacementCompleted {
			c.JSON(http.StatusForbidden, gin.H{"error": "complete the placement test first"})
			return
		}

		var req StartExamReq
		_ = c.BindJSON(&req)
		if req.Type == "" {
			req.Type = examTypeProgression
		}
		if req.Type != examTypeProgression && req.Type != examTypeGoetheMock {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown exam type"})
			return
		}

		if req.Type == examTypeProgression && len(rec.CompletedExercises) < examRequiredExercises {
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "not yet eligible for level exam",
				"completed": len(rec.CompletedExercises),
				"required":  examRequiredExercises,
			})
			return
		}

		level := rec.UserLevel
		if req.Type == examTypeGoetheMock && isValidLevel(req.Level) {
			level = req.Level
		}

		examID := uuid.New().String()
		attempts.put(examID, examAttempt{
			Username: rec.UserName,
			Type:     req.Type,
			Level:    level,
			Started:  time.Now(),
		})

		c.JSON(http.StatusOK, gin.H{
			"examId":    examID,
			"type":      req.Type,
			"level":     level,
			"questions": examQuestions,
		})
	}
}

type SubmitExamReq struct {
	Q1 string `json:"q1"`
	Q2 string `json:"q2"`
	Q3 string `json:"q3"`
	Q4 string `json:"q4"`
}

func SubmitExam(store *Store, attempts *ExamAttempts) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}

		attempt, found := attempts.take(c.Param("id"))
		if !found || attempt.Username != rec.UserName {
			c.JSON(http.StatusNotFound, gin.H{"error": "exam not found"})
			return
		}

		var req SubmitExamReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		score := scoreExam(req)
		passed := score >= examPassScore
		now := time.Now()

		result := ExamResult{
			ID:     c.Param("id"),
			Date:   now,
			Type:   attempt.Type,
			Level:  attempt.Level,
			Score:  score,
			Passed: passed,
		}
		if passed {
			result.Feedback = "Great job!"
			result.Certificate = &Certificate{
				Title: attempt.Level + " Level Certificate",
				Date:  now.Format("2006-01-02"),
				Score: strconv.Itoa(score) + "%",
			}
		} else {
			result.Feedback = "Keep practicing!"
		}
		rec.ExamHistory = append(rec.ExamHistory, result)

		var unlocked []string
		leveledUp := false
		if passed && attempt.Type == examTypeProgression {
			if next, ok := nextLevel[rec.UserLevel]; ok {
				rec.UserLevel = next
				leveledUp = true
			}
			u, err := store.AddXP(rec, 100, now)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
				return
			}
			unlocked = u
		} else {
			unlocked = EvaluateAchievements(rec, now)
			if err := store.Save(rec); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"score":           score,
			"passed":          passed,
			"feedback":        result.Feedback,
			"certificate":     result.Certificate,
			"leveledUp":       leveledUp,
			"userLevel":       rec.UserLevel,
			"newAchievements": unlocked,
		})
	}
}

func scoreExam(req SubmitExamReq) int {
	score := 0
	if req.Q1 == "Mann" {
		score += 25
	}
	if strings.Contains(strings.ToLower(req.Q2), "habe") {
		score += 25
	}
	q3 := strings.ToLower(req.Q3)
	for _, w := range []string{"lerne", "deutsch", "arbeiten", "deutschland"} {
		if strings.Contains(q3, w) {
			score += 25
			break
		}
	}
	if len(strings.Fields(req.Q4)) >= 30 {
		score += 25
	}
	return score
}

// ListExams returns the stored exam history with summary figures.
func ListExams() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}

		passed := 0
		total := 0
		for _, e := range rec.ExamHistory {
			total += e.Score
			if e.Passed {
				passed++
			}
		}
		var avg *float64
		if len(rec.ExamHistory) > 0 {
			v := float64(total) / float64(len(rec.ExamHistory))
			avg = &v
		}

		c.JSON(http.StatusOK, gin.H{
			"total":        len(rec.ExamHistory),
			"passed":       passed,
			"averageScore": avg,
			"items":        rec.ExamHistory,
		})
	}
}

/*** Chat ***/

type ChatReq struct {
	Message string `json:"message"`
}

// Chat appends the exchange to the stored history and pays out 5 XP every
// fifth message.
func Chat(store *Store, tutor *Tutor) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}

		var req ChatReq
		if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
			return
		}

		history := rec.ChatHistory
		rec.ChatHistory = append(rec.ChatHistory, ChatMessage{Role: "user", Content: req.Message})
		reply := tutor.Reply(c.Request.Context(), req.Message, rec.UserLevel, history)
		rec.ChatHistory = append(rec.ChatHistory, ChatMessage{Role: "assistant", Content: reply})
		rec.ChatMessages++

		now := time.Now()
		xpAwarded := 0
		var unlocked []string
		var err error
		if rec.ChatMessages%5 == 0 {
			xpAwarded = 5
			unlocked, err = store.AddXP(rec, 5, now)
		} else {
			err = store.Save(rec)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"reply":           reply,
			"xpAwarded":       xpAwarded,
			"newAchievements": unlocked,
		})
	}
}

/*** Adapters ***/

type TranslateReq struct {
	Text   string `json:"text"`
	Source string `json:"source"` // default "en"
	Target string `json:"target"` // default "de"
}

func Translate(store *Store, translator *Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, ok := recordFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no user"})
			return
		}

		var req TranslateReq
		if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
			return
		}
		if req.Source == "" {
			req.Source = "en"
		}
		if req.Target == "" {
			req.Target = "de"
		}

		result := translator.Translate(c.Request.Context(), req.Text, req.Source, req.Target)

		var unlocked []string
		if result.Success {
			u, err := store.AddXP(rec, 2, time.Now())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "save progress failed"})
				return
			}
			unlocked = u
		}

		c.JSON(http.StatusOK, gin.H{
			"result":          result,
			"newAchievements": unlocked,
		})
	}
}

type GrammarReq struct {
	Text string `json:"text"`
}

func CheckGrammar(grammar *GrammarChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GrammarReq
		if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
			return
		}
		c.JSON(http.StatusOK, grammar.Check(c.Request.Context(), req.Text))
	}
}

type SpeechReq struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
	Slow bool   `json:"slow"`
}

func Synthesize(speech *Speech) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SpeechReq
		if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
			return
		}
		c.JSON(http.StatusOK, speech.Synthesize(c.Request.Context(), req.Text, req.Lang, req.Slow))
	}
}

/*** Word analysis, phrase book, tips ***/

// AnalyzeWord applies the suffix heuristics for word type and gender and
// returns example sentences.
func AnalyzeWord() gin.HandlerFunc {
	return func(c *gin.Context) {
		word := strings.TrimSpace(c.Param("word"))
		if word == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "word required"})
			return
		}

		wordType := "Check dictionary for type"
		first := []rune(word)[0]
		switch {
		case first >= 'A' && first <= 'Z' || first == 'Ä' || first == 'Ö' || first == 'Ü':
			wordType = "Noun (Substantiv)"
		case strings.HasSuffix(word, "en"):
			wordType = "Likely a verb (infinitive)"
		case strings.HasSuffix(word, "lich") || strings.HasSuffix(word, "ig"):
			wordType = "Likely an adjective"
		case strings.HasSuffix(word, "ung"):
			wordType = "Noun (feminine)"
		}

		gender := "Check dictionary"
		isUpper := first >= 'A' && first <= 'Z' || first == 'Ä' || first == 'Ö' || first == 'Ü'
		switch {
		case strings.HasSuffix(word, "ung") || strings.HasSuffix(word, "heit") || strings.HasSuffix(word, "keit"):
			gender = "die (feminine)"
		case strings.HasSuffix(word, "chen") || strings.HasSuffix(word, "lein"):
			gender = "das (neuter)"
		case strings.HasSuffix(word, "ismus"):
			gender = "der (masculine)"
		case strings.HasSuffix(word, "er") && isUpper:
			gender = "usually der (masculine)"
		}

		c.JSON(http.StatusOK, gin.H{
			"word":     word,
			"wordType": wordType,
			"gender":   gender,
			"examples": ExamplesForWord(word),
		})
	}
}

func Phrasebook() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"categories":     phraseBook,
			"quickPhrasesEn": quickPhrasesEN,
			"quickPhrasesDe": quickPhrasesDE,
		})
	}
}

func DailyTip() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tip": TipOfTheDay(time.Now().Day())})
	}
}
