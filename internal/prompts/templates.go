// Package prompts is the single source of prompt wording for every provider
// adapter. Adapters must build their requests from these functions so that
// adding a vendor never changes what the model is asked.
package prompts

import (
	"strings"
	"text/template"

	"lingocoach/internal/domain"
)

func render(tpl *template.Template, data any) string {
	var b strings.Builder
	_ = tpl.Execute(&b, data)
	return b.String()
}

var chatSystemTpl = template.Must(template.New("chat_system").Parse(
	`You are a helpful language learning assistant. The user is learning {{.Target}}. Their native language is {{.Native}}. Respond in {{.Target}} to help them practice. Keep responses conversational and educational. Correct any mistakes the user makes politely and explain the correction.`))

func ChatSystemPrompt(targetLanguage, nativeLanguage string) string {
	return render(chatSystemTpl, map[string]string{"Target": targetLanguage, "Native": nativeLanguage})
}

var translationSystemTpl = template.Must(template.New("translation_system").Parse(
	`You are a professional translator. Translate the following text from {{.Source}} to {{.Target}}. Only provide the translation, no explanations or additional text.`))

func TranslationSystemPrompt(sourceLanguage, targetLanguage string) string {
	return render(translationSystemTpl, map[string]string{"Source": sourceLanguage, "Target": targetLanguage})
}

func TranslationUserPrompt(text string) string { return text }

var suggestionSystemTpl = template.Must(template.New("suggestion_system").Parse(
	`You are a language learning assistant. Based on the conversation, suggest 3 possible responses the student could use to continue the conversation in {{.Target}}. The student's native language is {{.Native}}.

Return ONLY a JSON array of 3 strings, no explanations. Example: ["Suggestion 1", "Suggestion 2", "Suggestion 3"]`))

func SuggestionSystemPrompt(targetLanguage, nativeLanguage string) string {
	return render(suggestionSystemTpl, map[string]string{"Target": targetLanguage, "Native": nativeLanguage})
}

// SuggestionUserPrompt flattens the conversation one "role: content" line per
// message.
func SuggestionUserPrompt(history []domain.Message) string {
	return FlattenConversation(history)
}

func FlattenConversation(history []domain.Message) string {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, string(m.Role)+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

var lessonSystemTpl = template.Must(template.New("lesson_system").Parse(
	`You are an expert language teacher creating a {{.Level}} level lesson for learning {{.Target}}. The student's native language is {{.Native}}.

Create a structured lesson and return it as valid JSON with the following format:
{
  "vocabulary": [
    {"term": "word in {{.Target}}", "definition": "definition in {{.Native}}", "example": "example sentence in {{.Target}}"}
  ],
  "grammar": [
    {"title": "Grammar Point Name", "explanation": "explanation in {{.Native}}", "examples": ["example 1 in {{.Target}}", "example 2 in {{.Target}}"]}
  ],
  "conjugations": [
    {"verb": "verb infinitive", "tense": "tense name", "conjugations": {"I": "conjugation", "you": "conjugation", "he/she": "conjugation", "we": "conjugation", "they": "conjugation"}}
  ]
}

Include 5-10 vocabulary items, 2-3 grammar points, and 2-3 verb conjugations relevant to the topic.`))

func LessonSystemPrompt(level domain.Level, targetLanguage, nativeLanguage string) string {
	return render(lessonSystemTpl, map[string]string{
		"Level": string(level), "Target": targetLanguage, "Native": nativeLanguage,
	})
}

func LessonUserPrompt(context string, conversation []domain.Message) string {
	prompt := "Create a lesson about: " + context
	if len(conversation) > 0 {
		prompt += "\n\nBase the lesson on this conversation context:\n" + FlattenConversation(conversation)
	}
	return prompt
}

var exerciseTextSystemTpl = template.Must(template.New("exercise_text_system").Parse(
	`You are a language learning content creator. Create engaging content in {{.Target}} appropriate for {{.Level}} level students.

CRITICAL: You MUST respond with ONLY a valid JSON object, no other text before or after.
Do NOT include any introductory text like "Of course", "Here is", "Sure", etc.
Do NOT include markdown formatting like ### or **.

The JSON format MUST be exactly:
{
  "title": "The title of the text in {{.Target}}",
  "content": "The full learning text content in {{.Target}}. This should be 2-3 paragraphs of interesting, educational content suitable for language practice.",
  "instructions": "Optional instructions or context for the student in their native language, or null if not needed"
}

The "content" field should contain ONLY the text to read/practice, without any titles, headers, or meta-commentary.`))

func ExerciseTextSystemPrompt(targetLanguage string, level domain.Level) string {
	return render(exerciseTextSystemTpl, map[string]string{"Target": targetLanguage, "Level": string(level)})
}

var exerciseTextUserTpl = template.Must(template.New("exercise_text_user").Parse(
	`Complete or expand this text for a {{.Level}} level {{.Target}} exercise: "{{.Partial}}". Return the result as JSON with title, content, and instructions fields.`))

var exerciseTextFreshTpl = template.Must(template.New("exercise_text_fresh").Parse(
	`Generate a {{.Level}} level text in {{.Target}} suitable for a language learning exercise. Choose an interesting topic like travel, culture, daily life, technology, or current events. Return as JSON with title, content, and instructions fields.`))

func ExerciseTextUserPrompt(partialText string, level domain.Level, targetLanguage string) string {
	data := map[string]string{"Partial": partialText, "Level": string(level), "Target": targetLanguage}
	if partialText == "" {
		return render(exerciseTextFreshTpl, data)
	}
	return render(exerciseTextUserTpl, data)
}

var completionSystemTpl = template.Must(template.New("completion_system").Parse(
	`You are helping a language student complete their text. Continue or expand the text naturally in {{.Target}} at {{.Level}} level. Match the tone and style of the existing text.`))

func CompletionSystemPrompt(targetLanguage string, level domain.Level) string {
	return render(completionSystemTpl, map[string]string{"Target": targetLanguage, "Level": string(level)})
}

func CompletionUserPrompt(partialText string) string {
	if partialText == "" {
		return "Generate a topic suggestion for language learning."
	}
	return partialText
}

var pronunciationSystemTpl = template.Must(template.New("pronunciation_system").Parse(
	`You are a pronunciation evaluation expert for {{.Target}}. Compare the original text with what the student said (transcribed speech) and provide detailed, constructive feedback.

Return your evaluation as valid JSON with this format:
{
  "accuracy": <number 0-100>,
  "errors": [
    {"word": "the word with error", "expected": "how it should be pronounced", "actual": "what the student said", "suggestion": "tip to improve"}
  ],
  "overallScore": <number 0-100>,
  "suggestions": ["general suggestion 1", "general suggestion 2"]
}

Be encouraging while providing specific corrections. If the pronunciation is perfect, return an empty errors array and high scores.`))

func PronunciationSystemPrompt(targetLanguage string) string {
	return render(pronunciationSystemTpl, map[string]string{"Target": targetLanguage})
}

var pronunciationUserTpl = template.Must(template.New("pronunciation_user").Parse(
	`Original text (what should have been said): "{{.Original}}"
Transcribed speech (what the student actually said): "{{.Transcribed}}"`))

func PronunciationUserPrompt(originalText, transcribedText string) string {
	return render(pronunciationUserTpl, map[string]string{"Original": originalText, "Transcribed": transcribedText})
}

var listeningSystemTpl = template.Must(template.New("listening_system").Parse(
	`You are a listening comprehension evaluator for {{.Target}}. Compare what the student wrote (their transcription of what they heard) with the original text that was spoken.

Return your evaluation as valid JSON with this format:
{
  "accuracy": <number 0-100>,
  "errors": [
    {"position": <word position number>, "expected": "expected word", "actual": "what was written"}
  ],
  "spellingErrors": ["word1 with spelling mistake", "word2"],
  "overallScore": <number 0-100>,
  "comprehensionLevel": "excellent" | "good" | "fair" | "needs-improvement"
}

Consider both comprehension errors (wrong words) and spelling errors separately. Be constructive in your evaluation.`))

func ListeningSystemPrompt(targetLanguage string) string {
	return render(listeningSystemTpl, map[string]string{"Target": targetLanguage})
}

var listeningUserTpl = template.Must(template.New("listening_user").Parse(
	`Original text (what was spoken): "{{.Original}}"
Student's transcription (what they wrote): "{{.Transcription}}"`))

func ListeningUserPrompt(originalText, userTranscription string) string {
	return render(listeningUserTpl, map[string]string{"Original": originalText, "Transcription": userTranscription})
}
