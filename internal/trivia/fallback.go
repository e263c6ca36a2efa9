package trivia

import "github.com/ninotmecheast-source/trivia/internal/models"

// fallbackQuestions is served when neither the provider nor the cache has
// anything usable for a category. Unknown categories reuse the "general" set.
var fallbackQuestions = map[string][]models.Question{
	"general": {
		{
			Category:     "general",
			Text:         "How many continents are there on Earth?",
			Options:      []string{"Five", "Six", "Seven", "Eight"},
			CorrectIndex: 2,
			Difficulty:   models.DifficultyEasy,
		},
		{
			Category:     "general",
			Text:         "Which language has the most native speakers worldwide?",
			Options:      []string{"English", "Hindi", "Mandarin Chinese", "Spanish"},
			CorrectIndex: 2,
			Difficulty:   models.DifficultyMedium,
		},
	},
	"film": {
		{
			Category:     "film",
			Text:         "Who directed the 1975 film \"Jaws\"?",
			Options:      []string{"George Lucas", "Steven Spielberg", "Martin Scorsese", "Francis Ford Coppola"},
			CorrectIndex: 1,
			Difficulty:   models.DifficultyEasy,
		},
		{
			Category:     "film",
			Text:         "Which film won the first Academy Award for Best Picture?",
			Options:      []string{"Wings", "Sunrise", "Metropolis", "The Jazz Singer"},
			CorrectIndex: 0,
			Difficulty:   models.DifficultyHard,
		},
	},
	"music": {
		{
			Category:     "music",
			Text:         "How many strings does a standard violin have?",
			Options:      []string{"Four", "Five", "Six", "Seven"},
			CorrectIndex: 0,
			Difficulty:   models.DifficultyEasy,
		},
		{
			Category:     "music",
			Text:         "Which band released the album \"The Dark Side of the Moon\"?",
			Options:      []string{"Led Zeppelin", "The Rolling Stones", "Pink Floyd", "The Who"},
			CorrectIndex: 2,
			Difficulty:   models.DifficultyMedium,
		},
	},
	"science": {
		{
			Category:     "science",
			Text:         "What is the chemical symbol for gold?",
			Options:      []string{"Go", "Gd", "Au", "Ag"},
			CorrectIndex: 2,
			Difficulty:   models.DifficultyEasy,
		},
		{
			Category:     "science",
			Text:         "What is the approximate speed of light in a vacuum?",
			Options:      []string{"300,000 km/s", "150,000 km/s", "1,000,000 km/s", "30,000 km/s"},
			CorrectIndex: 0,
			Difficulty:   models.DifficultyMedium,
		},
	},
	"geography": {
		{
			Category:     "geography",
			Text:         "What is the longest river in the world?",
			Options:      []string{"The Amazon", "The Nile", "The Yangtze", "The Mississippi"},
			CorrectIndex: 1,
			Difficulty:   models.DifficultyMedium,
		},
		{
			Category:     "geography",
			Text:         "Which country has the largest land area?",
			Options:      []string{"Canada", "China", "The United States", "Russia"},
			CorrectIndex: 3,
			Difficulty:   models.DifficultyEasy,
		},
	},
	"history": {
		{
			Category:     "history",
			Text:         "In which year did World War II end?",
			Options:      []string{"1943", "1944", "1945", "1946"},
			CorrectIndex: 2,
			Difficulty:   models.DifficultyEasy,
		},
		{
			Category:     "history",
			Text:         "Who was the first emperor of Rome?",
			Options:      []string{"Julius Caesar", "Augustus", "Nero", "Caligula"},
			CorrectIndex: 1,
			Difficulty:   models.DifficultyMedium,
		},
	},
}

// FallbackQuestions returns a copy of the static fallback set for a category,
// truncated to limit. Unknown categories get the "general" set.
func FallbackQuestions(categoryID string, limit int) []models.Question {
	set, ok := fallbackQuestions[categoryID]
	if !ok {
		set = fallbackQuestions["general"]
	}
	if limit > 0 && limit < len(set) {
		set = set[:limit]
	}
	return append([]models.Question(nil), set...)
}
