package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ==== Static content pools ====
//
// All lesson material lives in these tables, keyed by proficiency band.
// ValidateContentPools is called once at startup; after that the pools are
// read-only.

var vocabPools = map[string]map[string][]string{
	LevelA1: {
		"greetings": {"Hallo", "Guten Tag", "Tschüss", "Auf Wiedersehen", "Danke"},
		"numbers":   {"eins", "zwei", "drei", "vier", "fünf"},
		"colors":    {"rot", "blau", "grün", "gelb", "schwarz"},
		"family":    {"Mutter", "Vater", "Bruder", "Schwester", "Kind"},
		"food":      {"Brot", "Wasser", "Milch", "Apfel", "Käse"},
	},
	LevelA2: {
		"daily":     {"aufstehen", "frühstücken", "arbeiten", "einkaufen", "schlafen"},
		"transport": {"Bus", "Zug", "Auto", "Fahrrad", "U-Bahn"},
		"shopping":  {"Supermarkt", "Bäckerei", "Apotheke", "Kleidung", "Preis"},
		"weather":   {"sonnig", "regnerisch", "kalt", "warm", "windig"},
		"hobbies":   {"lesen", "schwimmen", "kochen", "tanzen", "wandern"},
	},
	LevelB1: {
		"emotions":  {"glücklich", "traurig", "aufgeregt", "nervös", "entspannt"},
		"work":      {"Büro", "Kollege", "Besprechung", "Projekt", "Deadline"},
		"health":    {"Gesundheit", "Krankheit", "Arzt", "Medikament", "Termin"},
		"travel":    {"Reise", "Flughafen", "Hotel", "Sehenswürdigkeit", "Gepäck"},
		"education": {"Universität", "Prüfung", "Semester", "Vorlesung", "Abschluss"},
	},
	LevelB2: {
		"abstract":    {"Meinung", "Argument", "Perspektive", "Konzept", "Theorie"},
		"environment": {"Umweltschutz", "Klimawandel", "Nachhaltigkeit", "Energie", "Recycling"},
		"technology":  {"Digitalisierung", "Innovation", "Künstliche Intelligenz", "Datenschutz", "Software"},
		"society":     {"Gesellschaft", "Integration", "Demokratie", "Gleichberechtigung", "Vielfalt"},
		"economy":     {"Wirtschaft", "Globalisierung", "Arbeitsmarkt", "Inflation", "Investition"},
	},
}

var sentencePatterns = map[string][]string{
	LevelA1: {
		"Ich bin [Name].",
		"Das ist [ein/eine] [Noun].",
		"Ich habe [ein/eine] [Noun].",
		"Ich komme aus [Place].",
		"Ich mag [Noun/Verb].",
	},
	LevelA2: {
		"Ich gehe [Time] [Place].",
		"Kannst du mir bitte [Verb]?",
		"Gestern habe ich [Past Participle].",
		"Ich möchte gerne [Infinitive].",
		"Wenn es regnet, [Verb] ich [Object].",
	},
	LevelB1: {
		"Ich denke, dass [Subordinate Clause].",
		"Obwohl [Condition], [Main Clause].",
		"Es ist wichtig, [zu + Infinitive].",
		"Nachdem ich [Past Perfect], [Past].",
		"Je mehr [Comparative], desto [Result].",
	},
	LevelB2: {
		"Meiner Meinung nach [Complex Statement].",
		"Es lässt sich nicht leugnen, dass [Argument].",
		"Einerseits [Point], andererseits [Counterpoint].",
		"Vorausgesetzt, dass [Condition], [Consequence].",
		"Im Hinblick auf [Topic], [Analysis].",
	},
}

type GrammarTopic struct {
	Name    string `json:"name"`
	Rule    string `json:"rule"`
	Example string `json:"example"`
}

var grammarTopics = map[string][]GrammarTopic{
	LevelA1: {
		{"Articles", "der, die, das - Definite articles",
			"Der Mann (the man), Die Frau (the woman), Das Kind (the child)"},
		{"Present Tense", "Regular verb conjugation",
			"ich mache, du machst, er/sie/es macht, wir machen, ihr macht, sie machen"},
		{"Basic Word Order", "Subject-Verb-Object",
			"Ich esse einen Apfel. (I eat an apple.)"},
	},
	LevelA2: {
		{"Perfect Tense", "haben/sein + past participle",
			"Ich habe gegessen. (I have eaten.) Ich bin gegangen. (I have gone.)"},
		{"Modal Verbs", "können, müssen, wollen, sollen, dürfen",
			"Ich kann schwimmen. (I can swim.) Du musst lernen. (You must learn.)"},
		{"Dative Case", "Indirect object case",
			"Ich gebe dem Mann das Buch. (I give the book to the man.)"},
	},
	LevelB1: {
		{"Subjunctive II", "Konjunktiv II for hypothetical situations",
			"Wenn ich reich wäre, würde ich reisen. (If I were rich, I would travel.)"},
		{"Relative Clauses", "der/die/das as relative pronouns",
			"Das ist der Mann, der mir geholfen hat. (That's the man who helped me.)"},
		{"Passive Voice", "werden + past participle",
			"Das Haus wird gebaut. (The house is being built.)"},
	},
	LevelB2: {
		{"Subjunctive I", "Indirect speech",
			"Er sagte, er habe keine Zeit. (He said he had no time.)"},
		{"Nominalization", "Converting verbs/adjectives to nouns",
			"Das Lesen von Büchern (The reading of books)"},
		{"Advanced Conjunctions", "Complex sentence connectors",
			"Insofern als... (Insofar as...), Zumal... (Especially since...)"},
	},
}

var readingTexts = map[string]string{
	LevelA1: `Meine Familie
Ich heiße Max. Ich habe eine kleine Familie. Mein Vater heißt Peter und meine Mutter heißt Anna.
Ich habe eine Schwester. Sie heißt Lisa. Wir wohnen in Berlin.
Unsere Wohnung ist groß und schön. Ich liebe meine Familie.`,
	LevelA2: `Ein Tag im Supermarkt
Gestern bin ich zum Supermarkt gegangen. Ich musste Lebensmittel für die Woche kaufen.
Zuerst habe ich Obst und Gemüse gekauft: Äpfel, Bananen und Tomaten.
Dann habe ich Brot von der Bäckerei geholt. Es war sehr frisch und hat gut gerochen.
An der Kasse musste ich lange warten, aber das macht nichts.
Insgesamt habe ich 45 Euro ausgegeben.`,
	LevelB1: `Die Bedeutung von Fremdsprachen
In unserer globalisierten Welt werden Fremdsprachenkenntnisse immer wichtiger.
Nicht nur für die berufliche Karriere, sondern auch für die persönliche Entwicklung sind sie von großer Bedeutung.
Wer mehrere Sprachen spricht, kann leichter mit Menschen aus verschiedenen Kulturen kommunizieren.
Außerdem zeigen Studien, dass das Erlernen von Sprachen die kognitiven Fähigkeiten verbessert.
Obwohl es manchmal schwierig ist, lohnt sich die Mühe definitiv.`,
	LevelB2: `Digitalisierung im Bildungswesen
Die fortschreitende Digitalisierung hat das Bildungswesen grundlegend verändert.
Einerseits ermöglichen digitale Medien einen flexibleren und individuelleren Zugang zu Bildungsinhalten.
Lernplattformen und Apps erlauben es, jederzeit und überall zu lernen, was besonders für Berufstätige von Vorteil ist.
Andererseits stellt die Digitalisierung Lehrkräfte vor neue Herausforderungen.
Sie müssen nicht nur fachlich kompetent sein, sondern auch digitale Kompetenzen entwickeln.
Kritiker warnen zudem vor einer zunehmenden sozialen Ungleichheit, da nicht alle Schüler gleichen Zugang zu digitalen Endgeräten haben.`,
}

var listeningDialogues = map[string]string{
	LevelA1: "Anna: Guten Tag! Wie heißt du?\nBen: Ich heiße Ben. Und du?\nAnna: Ich bin Anna. Woher kommst du?\nBen: Ich komme aus Berlin.",
	LevelA2: "Lisa: Was machst du am Wochenende?\nTom: Ich gehe ins Kino. Möchtest du mitkommen?\nLisa: Ja, gerne! Um wie viel Uhr?\nTom: Um 19 Uhr.",
	LevelB1: "Marie: Ich überlege, ob ich den Job wechseln sollte.\nPaul: Was sind denn die Vor- und Nachteile?\nMarie: Naja, das Gehalt wäre besser, aber ich müsste umziehen.\nPaul: Das ist wirklich eine schwierige Entscheidung.",
	LevelB2: "Prof: Die Digitalisierung verändert unsere Gesellschaft fundamental.\nStudent: Inwiefern beeinflusst das den Arbeitsmarkt?\nProf: Einerseits entstehen neue Berufe, andererseits werden traditionelle Tätigkeiten automatisiert.\nStudent: Das wirft natürlich Fragen zur Weiterbildung auf.",
}

// ==== XP titles ====

type levelTitle struct {
	MinXP int
	Title string
}

var levelTitles = []levelTitle{
	{0, "Anfänger (Beginner)"},
	{100, "Entdecker (Explorer)"},
	{300, "Lerner (Learner)"},
	{600, "Fortgeschritten (Advanced)"},
	{1000, "Sprachkenner (Language Expert)"},
	{1500, "Meister (Master)"},
	{2000, "Guru"},
}

// TitleForXP returns the highest title whose threshold xp has reached.
func TitleForXP(xp int) string {
	for i := len(levelTitles) - 1; i >= 0; i-- {
		if xp >= levelTitles[i].MinXP {
			return levelTitles[i].Title
		}
	}
	return levelTitles[0].Title
}

// ==== Tips & phrases ====

var dailyTips = []string{
	"Practice speaking in front of a mirror",
	"Learn 5 new words with their articles",
	"Watch a German YouTube video",
	"Write 3 sentences about your day",
	"Practice numbers 1-100",
	"Learn one idiom today",
	"Focus on pronunciation for 10 minutes",
}

// TipOfTheDay indexes the tips list by day of month, same tip for everyone
// on a given day.
func TipOfTheDay(day int) string {
	return dailyTips[day%len(dailyTips)]
}

type PhraseEntry struct {
	English string `json:"english"`
	German  string `json:"german"`
}

type PhraseCategory struct {
	Name    string        `json:"name"`
	Phrases []PhraseEntry `json:"phrases"`
}

var phraseBook = []PhraseCategory{
	{"Greetings", []PhraseEntry{
		{"Good morning", "Guten Morgen"},
		{"Good afternoon", "Guten Tag"},
		{"Good evening", "Guten Abend"},
		{"Good night", "Gute Nacht"},
		{"Hello (informal)", "Hallo"},
		{"Goodbye", "Auf Wiedersehen"},
		{"See you later", "Bis später"},
		{"See you tomorrow", "Bis morgen"},
	}},
	{"Polite Expressions", []PhraseEntry{
		{"Please", "Bitte"},
		{"Thank you", "Danke"},
		{"Thank you very much", "Vielen Dank"},
		{"You're welcome", "Bitte schön"},
		{"Excuse me", "Entschuldigung"},
		{"I'm sorry", "Es tut mir leid"},
		{"Pardon?", "Wie bitte?"},
		{"No problem", "Kein Problem"},
	}},
	{"Essential Questions", []PhraseEntry{
		{"Do you speak English?", "Sprechen Sie Englisch?"},
		{"How much does it cost?", "Wie viel kostet das?"},
		{"Where is...?", "Wo ist...?"},
		{"When?", "Wann?"},
		{"Why?", "Warum?"},
		{"What?", "Was?"},
		{"Who?", "Wer?"},
		{"How?", "Wie?"},
	}},
	{"Shopping", []PhraseEntry{
		{"I would like...", "Ich möchte..."},
		{"Do you have...?", "Haben Sie...?"},
		{"That's too expensive", "Das ist zu teuer"},
		{"Can I pay by card?", "Kann ich mit Karte zahlen?"},
		{"Receipt please", "Die Quittung bitte"},
		{"Where can I find...?", "Wo finde ich...?"},
		{"I'm just looking", "Ich schaue nur"},
	}},
	{"Restaurant", []PhraseEntry{
		{"A table for two please", "Einen Tisch für zwei bitte"},
		{"The menu please", "Die Speisekarte bitte"},
		{"I'll have...", "Ich nehme..."},
		{"The bill please", "Die Rechnung bitte"},
		{"Is it vegetarian?", "Ist es vegetarisch?"},
		{"I'm allergic to...", "Ich bin allergisch gegen..."},
		{"Delicious!", "Lecker!"},
		{"Water please", "Wasser bitte"},
	}},
	{"Emergency", []PhraseEntry{
		{"Help!", "Hilfe!"},
		{"Call the police!", "Rufen Sie die Polizei!"},
		{"Call an ambulance!", "Rufen Sie einen Krankenwagen!"},
		{"I need a doctor", "Ich brauche einen Arzt"},
		{"Where is the hospital?", "Wo ist das Krankenhaus?"},
		{"Fire!", "Feuer!"},
		{"I'm lost", "Ich habe mich verlaufen"},
	}},
}

var quickPhrasesEN = []string{
	"How are you?",
	"Thank you very much",
	"Where is the bathroom?",
	"I don't understand",
	"Can you help me?",
	"How much does it cost?",
}

var quickPhrasesDE = []string{
	"Wie geht es dir?",
	"Vielen Dank",
	"Wo ist die Toilette?",
	"Ich verstehe nicht",
	"Können Sie mir helfen?",
	"Wie viel kostet das?",
}

// ==== Example sentences for word analysis ====

var exampleSentences = map[string][]string{
	"haus": {
		"Das Haus ist groß. (The house is big.)",
		"Ich gehe nach Hause. (I'm going home.)",
		"Unser Haus hat einen Garten. (Our house has a garden.)",
	},
	"arbeiten": {
		"Ich arbeite in einem Büro. (I work in an office.)",
		"Sie arbeitet sehr fleißig. (She works very diligently.)",
		"Wir arbeiten zusammen. (We work together.)",
	},
	"schön": {
		"Das Wetter ist schön. (The weather is nice.)",
		"Sie hat ein schönes Kleid. (She has a beautiful dress.)",
		"Vielen Dank, das ist sehr schön! (Thank you, that's very nice!)",
	},
}

// ExamplesForWord returns curated sentences when the word is known,
// otherwise generic templates built around the word itself.
func ExamplesForWord(word string) []string {
	if ex, ok := exampleSentences[stringsLower(word)]; ok {
		return ex
	}
	return []string{
		fmt.Sprintf("Das ist ein/eine %s. (This is a %s.)", word, word),
		fmt.Sprintf("Ich mag %s. (I like %s.)", word, word),
		fmt.Sprintf("Der/Die/Das %s ist gut. (The %s is good.)", word, word),
	}
}

// stringsLower normalizes lookup keys.
func stringsLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// topicsFor returns the topic keys of a level in sorted order so callers
// can pick deterministically from a seeded random source.
func topicsFor(level string) []string {
	pool, ok := vocabPools[level]
	if !ok {
		pool = vocabPools[LevelA1]
	}
	keys := make([]string, 0, len(pool))
	for k := range pool {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ==== Startup validation & optional overrides ====

// ValidateContentPools checks that every proficiency band has non-empty
// vocabulary, patterns, grammar topics, reading text and dialogue.
func ValidateContentPools() error {
	for _, level := range levelOrder {
		pool, ok := vocabPools[level]
		if !ok || len(pool) == 0 {
			return fmt.Errorf("vocab pool missing for level %s", level)
		}
		for topic, words := range pool {
			if len(words) == 0 {
				return fmt.Errorf("empty word list for %s/%s", level, topic)
			}
		}
		// the assembler indexes up to three patterns per lesson
		if len(sentencePatterns[level]) < 3 {
			return fmt.Errorf("need at least 3 sentence patterns for level %s, have %d",
				level, len(sentencePatterns[level]))
		}
		if len(grammarTopics[level]) == 0 {
			return fmt.Errorf("no grammar topics for level %s", level)
		}
		if readingTexts[level] == "" {
			return fmt.Errorf("no reading text for level %s", level)
		}
		if listeningDialogues[level] == "" {
			return fmt.Errorf("no listening dialogue for level %s", level)
		}
	}
	if len(dailyTips) == 0 {
		return fmt.Errorf("daily tips list is empty")
	}
	return nil
}

// LoadVocabularyOverrides merges extra vocabulary from a JSON file into the
// built-in pools. Accepts {"level": {"topic": ["word", ...]}}. New topics
// are added; existing topics are extended (no dedup needed, the assembler
// samples without replacement from the merged list).
func LoadVocabularyOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var extra map[string]map[string][]string
	if err := json.Unmarshal(raw, &extra); err != nil {
		return fmt.Errorf("json parse: %w", err)
	}
	for level, topics := range extra {
		if !isValidLevel(level) {
			return fmt.Errorf("unknown level %q in overrides", level)
		}
		for topic, words := range topics {
			if len(words) == 0 {
				return fmt.Errorf("empty word list for %s/%s in overrides", level, topic)
			}
			vocabPools[level][topic] = append(vocabPools[level][topic], words...)
		}
	}
	return nil
}
