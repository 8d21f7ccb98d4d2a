package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded .env")
	}

	// 1) Content
	if err := ValidateContentPools(); err != nil {
		log.Fatalf("content pools: %v", err)
	}
	if path := os.Getenv("VOCAB_OVERRIDES"); path != "" {
		if err := LoadVocabularyOverrides(path); err != nil {
			log.Fatalf("vocab overrides: %v", err)
		}
		log.Printf("Merged vocabulary overrides from %s", path)
	}

	// 2) Store
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "user_data"
	}
	store, err := OpenStore(dataDir)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	// 3) Adapters
	translator := NewTranslator(os.Getenv("MYMEMORY_EMAIL"))
	grammar := NewGrammarChecker()
	speech := NewSpeech(os.Getenv("TTS_API_KEY"))

	model := os.Getenv("OPENROUTER_MODEL")
	if model == "" {
		model = "openai/gpt-4o-mini"
	}
	tutor := NewTutor(os.Getenv("OPENROUTER_API_KEY"), model)

	attempts := NewExamAttempts()

	// 4) Router
	r := gin.Default()

	// --- CORS: allow the deployed frontend + any localhost:port ---
	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if frontendOrigin != "" && origin == frontendOrigin {
				return true
			}
			// allow any http://localhost:PORT during development
			return strings.HasPrefix(origin, "http://localhost:")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-User"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	secureCookies := os.Getenv("SECURE_COOKIES") == "true"

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.POST("/api/v1/login", Login(store, secureCookies))

	// --- API routes (everything below needs an identity) ---
	api := r.Group("/api/v1")
	api.Use(EnsureUser(store))
	{
		// Placement & lessons
		api.POST("/placement", SubmitPlacement(store, grammar))
		api.GET("/lesson", GetLesson())
		api.POST("/exercise/complete", CompleteExercise(store))

		// Exams
		api.POST("/exams", StartExam(attempts))
		api.POST("/exams/:id/submit", SubmitExam(store, attempts))
		api.GET("/exams", ListExams())

		// Tutor chat & tools
		api.POST("/chat", Chat(store, tutor))
		api.POST("/translate", Translate(store, translator))
		api.POST("/grammar", CheckGrammar(grammar))
		api.POST("/speech", Synthesize(speech))
		api.GET("/words/:word", AnalyzeWord())
		api.GET("/phrasebook", Phrasebook())
		api.GET("/tip", DailyTip())

		// Profile & stats
		api.GET("/me", GetMe(store))
		api.PUT("/me", UpdateMe(store))
		api.POST("/me/reset", ResetProgress(store))
		api.GET("/me/export", ExportProgress(store))
		api.GET("/stats", Stats())
	}

	// --- Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Listening on :%s (SecureCookies=%v, DataDir=%s)", port, secureCookies, dataDir)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("run: %v", err)
	}
}
