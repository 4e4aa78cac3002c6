package render

import "strings"

// Catalog holds the user-facing strings for one language.
type Catalog struct {
	Lang             string
	Title            string
	Description      string
	Meta             string // %d questions
	StartLabel       string
	LoadingLabel     string
	QuestionHeader   string // %d of %d
	SubmitLabel      string
	NextLabel        string
	ViewResultsLabel string
	ProgressLabel    string
	ScoreLabel       string // %d/%d
	ResultsTitle     string
	RestartLabel     string
	ReviewTitle      string
	ReviewHeader     string // %d
	CorrectMark      string
	YourAnswerMark   string
	Unanswered       string
	TierMessages     map[Tier]string
	CorrectTitle     string
	CorrectBody      string
	IncorrectTitle   string
	IncorrectBody    string // label, text
	StartedTitle     string
	StartedBody      string
	StartFailedTitle string
	StartFailedBody  string
}

var English = Catalog{
	Lang:             "en",
	Title:            "Programming Quiz - Beginner Level",
	Description:      "Test your knowledge of basic programming concepts! This quiz covers fundamental data structures, JavaScript basics, and logical thinking.",
	Meta:             "%d questions • AI-generated • Immediate feedback",
	StartLabel:       "Start Quiz",
	LoadingLabel:     "Generating Questions...",
	QuestionHeader:   "Question %d of %d",
	SubmitLabel:      "Submit Answer",
	NextLabel:        "Next Question",
	ViewResultsLabel: "View Results",
	ProgressLabel:    "Progress",
	ScoreLabel:       "Score: %d/%d",
	ResultsTitle:     "Quiz Complete!",
	RestartLabel:     "Try Again",
	ReviewTitle:      "Question Review",
	ReviewHeader:     "Question %d",
	CorrectMark:      "✓ Correct",
	YourAnswerMark:   "Your answer",
	Unanswered:       "No answer",
	TierMessages: map[Tier]string{
		TierExcellent: "You're ready for the bootcamp 🎉",
		TierFair:      "Not bad 👍",
		TierPoor:      "Keep studying! 📚",
	},
	CorrectTitle:     "Correct! 🎉",
	CorrectBody:      "Well done! Keep it up!",
	IncorrectTitle:   "Not quite right 🤔",
	IncorrectBody:    "The correct answer is %s: %s",
	StartedTitle:     "Quiz started!",
	StartedBody:      "Answer each question to the best of your ability.",
	StartFailedTitle: "Error generating questions",
	StartFailedBody:  "Please try again in a moment.",
}

var Spanish = Catalog{
	Lang:             "es",
	Title:            "Quiz de Programación - Nivel Principiante",
	Description:      "¡Pon a prueba tus conocimientos de programación! Este quiz cubre estructuras de datos, fundamentos de JavaScript y lógica.",
	Meta:             "%d preguntas • Generadas por IA • Respuesta inmediata",
	StartLabel:       "Comenzar Quiz",
	LoadingLabel:     "Generando preguntas...",
	QuestionHeader:   "Pregunta %d de %d",
	SubmitLabel:      "Enviar Respuesta",
	NextLabel:        "Siguiente Pregunta",
	ViewResultsLabel: "Ver Resultados",
	ProgressLabel:    "Progreso",
	ScoreLabel:       "Puntaje: %d/%d",
	ResultsTitle:     "Quiz Completado!",
	RestartLabel:     "Intentar Denuevo",
	ReviewTitle:      "Revisión de preguntas",
	ReviewHeader:     "Pregunta %d",
	CorrectMark:      "✓ Correcto",
	YourAnswerMark:   "Tu respuesta",
	Unanswered:       "Sin respuesta",
	TierMessages: map[Tier]string{
		TierExcellent: "Ya estas para el bootcamp 🎉",
		TierFair:      "Safa 👍",
		TierPoor:      "A pedazos! 📚",
	},
	CorrectTitle:     "¡Correcto! 🎉",
	CorrectBody:      "¡Bien hecho! ¡Sigue así!",
	IncorrectTitle:   "No del todo 🤔",
	IncorrectBody:    "La respuesta correcta es %s: %s",
	StartedTitle:     "¡Quiz iniciado!",
	StartedBody:      "Responde cada pregunta lo mejor que puedas.",
	StartFailedTitle: "Error generando preguntas",
	StartFailedBody:  "Por favor intenta de nuevo en un momento.",
}

// CatalogFor returns the catalog for lang ("en", "es", or a tag like "es-MX"), defaulting to English.
func CatalogFor(lang string) Catalog {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "es" || strings.HasPrefix(lang, "es-") || strings.HasPrefix(lang, "es_") {
		return Spanish
	}
	return English
}
