package prompts

import (
	"encoding/json"
	"regexp"
	"strings"

	"lingocoach/internal/domain"
)

// ExerciseText is the structured shape the exercise-text prompt asks for.
// Instructions stays nil when the model omits it.
type ExerciseText struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Instructions *string `json:"instructions"`
}

var (
	codeFenceRE   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	headingRE     = regexp.MustCompile(`(?m)^#+\s*(.+)$`)
	boldLineRE    = regexp.MustCompile(`(?m)^\*\*(.+)\*\*$`)
	boilerplateRE = regexp.MustCompile(`(?i)^[^.!?]*(?:here is|here's|voici|voilà)[^.!?]*[.!?]\s*`)
	leadInColonRE = regexp.MustCompile(`(?i)^\s*(?:here is|here's|voici|voilà)[^:\n]*:\s*`)
	jsonArrayRE   = regexp.MustCompile(`(?s)\[.*\]`)
)

// StripCodeFence returns the inner text of the first Markdown code fence, or
// the trimmed input when there is none.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRE.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// ParseExerciseText turns a free-form model response into an ExerciseText.
// Models are asked for plain JSON but routinely wrap it in fences, prepend
// pleasantries, or ignore the format entirely, so recovery is tiered:
// strict parse, then the first {...} substring, then heuristic extraction.
// It never fails; the worst case is an "Untitled" text carrying the cleaned
// response as content.
func ParseExerciseText(response string) ExerciseText {
	cleaned := StripCodeFence(response)

	if et, ok := tryParseExerciseJSON(cleaned); ok {
		return et
	}

	if i, j := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}"); i >= 0 && j > i {
		if et, ok := tryParseExerciseJSON(cleaned[i : j+1]); ok {
			return et
		}
	}

	return extractExerciseHeuristically(response)
}

func tryParseExerciseJSON(s string) (ExerciseText, bool) {
	var raw struct {
		Title        string  `json:"title"`
		Content      string  `json:"content"`
		Instructions *string `json:"instructions"`
	}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return ExerciseText{}, false
	}
	if raw.Title == "" || raw.Content == "" {
		return ExerciseText{}, false
	}
	et := ExerciseText{
		Title:   strings.TrimSpace(raw.Title),
		Content: strings.TrimSpace(raw.Content),
	}
	if raw.Instructions != nil {
		trimmed := strings.TrimSpace(*raw.Instructions)
		if trimmed != "" {
			et.Instructions = &trimmed
		}
	}
	return et, true
}

func extractExerciseHeuristically(response string) ExerciseText {
	title := "Untitled"
	if m := headingRE.FindStringSubmatch(response); m != nil {
		title = strings.TrimSpace(m[1])
	} else if m := boldLineRE.FindStringSubmatch(response); m != nil {
		title = strings.TrimSpace(m[1])
	}

	content := boilerplateRE.ReplaceAllString(response, "")
	content = leadInColonRE.ReplaceAllString(content, "")
	content = headingRE.ReplaceAllString(content, "")
	content = boldLineRE.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	return ExerciseText{Title: title, Content: content}
}

// ParseLessonContent expects strict JSON matching the lesson prompt. A
// response that cannot be parsed becomes a one-grammar-point shell holding
// the raw text, so content generation degrades instead of failing.
func ParseLessonContent(response string) domain.LessonContent {
	cleaned := StripCodeFence(response)
	var content domain.LessonContent
	if err := json.Unmarshal([]byte(cleaned), &content); err == nil && !content.IsEmpty() {
		return normalizeLessonContent(content)
	}
	return domain.LessonContent{
		Vocabulary: []domain.VocabularyItem{},
		Grammar: []domain.GrammarPoint{
			{Title: "Lesson Content", Explanation: strings.TrimSpace(response), Examples: []string{}},
		},
		Conjugations: []domain.ConjugationTable{},
	}
}

func normalizeLessonContent(c domain.LessonContent) domain.LessonContent {
	if c.Vocabulary == nil {
		c.Vocabulary = []domain.VocabularyItem{}
	}
	if c.Grammar == nil {
		c.Grammar = []domain.GrammarPoint{}
	}
	if c.Conjugations == nil {
		c.Conjugations = []domain.ConjugationTable{}
	}
	return c
}

// ParsePronunciationFeedback expects strict JSON. On malformed output the
// fallback is a zero score carrying the raw response as the only suggestion.
func ParsePronunciationFeedback(response string) domain.PronunciationFeedback {
	cleaned := StripCodeFence(response)
	var fb domain.PronunciationFeedback
	if err := json.Unmarshal([]byte(cleaned), &fb); err == nil && strings.HasPrefix(cleaned, "{") {
		if fb.Errors == nil {
			fb.Errors = []domain.PronunciationError{}
		}
		if fb.Suggestions == nil {
			fb.Suggestions = []string{}
		}
		return fb
	}
	return domain.PronunciationFeedback{
		Accuracy:     0,
		Errors:       []domain.PronunciationError{},
		OverallScore: 0,
		Suggestions:  []string{response},
	}
}

// ParseListeningFeedback mirrors ParsePronunciationFeedback with the richer
// listening fallback.
func ParseListeningFeedback(response string) domain.ListeningFeedback {
	cleaned := StripCodeFence(response)
	var fb domain.ListeningFeedback
	if err := json.Unmarshal([]byte(cleaned), &fb); err == nil && strings.HasPrefix(cleaned, "{") {
		if fb.Errors == nil {
			fb.Errors = []domain.ListeningError{}
		}
		if fb.SpellingErrors == nil {
			fb.SpellingErrors = []string{}
		}
		if fb.ComprehensionLevel == "" {
			fb.ComprehensionLevel = domain.ComprehensionNeedsImprovement
		}
		return fb
	}
	return domain.ListeningFeedback{
		Accuracy:           0,
		Errors:             []domain.ListeningError{},
		SpellingErrors:     []string{},
		OverallScore:       0,
		ComprehensionLevel: domain.ComprehensionNeedsImprovement,
	}
}

// ParseSuggestions extracts the JSON string array the suggestion prompt asks
// for, falling back to a single-element slice holding the raw response.
func ParseSuggestions(response string) []string {
	cleaned := StripCodeFence(response)
	var out []string
	if err := json.Unmarshal([]byte(cleaned), &out); err == nil && len(out) > 0 {
		return out
	}
	if m := jsonArrayRE.FindString(cleaned); m != "" {
		if err := json.Unmarshal([]byte(m), &out); err == nil && len(out) > 0 {
			return out
		}
	}
	return []string{response}
}
