package exercise_test

import (
	"context"
	"errors"
	"testing"

	audiomock "lingocoach/internal/adapters/audio/mock"
	llmmock "lingocoach/internal/adapters/llm/mock"
	"lingocoach/internal/adapters/storage/memory"
	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
	"lingocoach/internal/usecase/exercise"
)

type fixture struct {
	svc     *exercise.Service
	text    *llmmock.TextProvider
	audio   *audiomock.AudioProvider
	lessons *memory.LessonStore
	cache   *memory.AudioCache
}

func newFixture() *fixture {
	f := &fixture{
		text:    llmmock.NewTextProvider(),
		audio:   audiomock.NewAudioProvider(),
		lessons: memory.NewLessonStore(),
		cache:   memory.NewAudioCache(),
	}
	f.svc = exercise.New(exercise.Deps{
		Speaking:   memory.NewSpeakingExerciseStore(),
		Listening:  memory.NewListeningExerciseStore(),
		Lessons:    f.lessons,
		AudioCache: f.cache,
		BuildText: func(context.Context) (ports.TextProvider, error) {
			return f.text, nil
		},
		BuildAudio: func(context.Context) (ports.AudioProvider, error) {
			return f.audio, nil
		},
	})
	return f
}

func TestCreateSpeakingFromFreshText(t *testing.T) {
	f := newFixture()
	f.text.ExerciseRaw = `{"title":"The Bakery","content":"Every morning the bakery opens at six.","instructions":"Read aloud slowly."}`

	e, err := f.svc.CreateSpeaking(context.Background(), exercise.CreateArgs{
		Level:          domain.LevelC1,
		TargetLanguage: "English",
		NativeLanguage: "Français",
	})
	if err != nil {
		t.Fatalf("CreateSpeaking failed: %v", err)
	}
	if e.Title != "The Bakery" {
		t.Fatalf("title = %q", e.Title)
	}
	if e.OriginalText != "Every morning the bakery opens at six." {
		t.Fatalf("original text wrong: %q", e.OriginalText)
	}
	if e.IsComplete() {
		t.Fatalf("new exercise must not be complete")
	}
	if f.text.Calls[len(f.text.Calls)-1] != "GenerateExerciseText" {
		t.Fatalf("expected GenerateExerciseText without partial text, got %v", f.text.Calls)
	}
}

func TestCreateSpeakingWithPartialTextUsesCompletion(t *testing.T) {
	f := newFixture()
	f.text.CompletionRaw = `{"title":"A Trip","content":"We packed our bags and left at dawn."}`

	_, err := f.svc.CreateSpeaking(context.Background(), exercise.CreateArgs{
		Level:          domain.LevelC2,
		PartialText:    "We packed our bags",
		TargetLanguage: "English",
	})
	if err != nil {
		t.Fatalf("CreateSpeaking failed: %v", err)
	}
	if f.text.Calls[len(f.text.Calls)-1] != "CompleteText" {
		t.Fatalf("expected CompleteText with partial text, got %v", f.text.Calls)
	}
}

func TestCreateListeningSynthesizesAndCaches(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.text.ExerciseRaw = `{"title":"Weather","content":"It rained all afternoon."}`
	f.audio.Audio = []byte("mp3-bytes")

	e, err := f.svc.CreateListening(ctx, exercise.CreateArgs{
		Level:          domain.LevelC1,
		TargetLanguage: "English",
	})
	if err != nil {
		t.Fatalf("CreateListening failed: %v", err)
	}
	if string(e.Audio) != "mp3-bytes" {
		t.Fatalf("audio not attached")
	}
	cached, _ := f.cache.Get(ctx, "listening_"+e.ID)
	if string(cached) != "mp3-bytes" {
		t.Fatalf("audio not cached under listening_<id>")
	}
}

func TestCreateListeningFailsWhenSynthesisFails(t *testing.T) {
	f := newFixture()
	f.text.ExerciseRaw = `{"title":"Weather","content":"It rained."}`
	f.audio.Err = errors.New("tts down")

	_, err := f.svc.CreateListening(context.Background(), exercise.CreateArgs{
		Level:          domain.LevelC1,
		TargetLanguage: "English",
	})
	if err == nil {
		t.Fatalf("expected error when synthesis fails")
	}
	all, _ := f.svc.ListListening(context.Background())
	if len(all) != 0 {
		t.Fatalf("nothing must be stored after a failed creation, got %d", len(all))
	}
}

func TestCreateLinksExerciseToLesson(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.text.ExerciseRaw = `{"title":"t","content":"c"}`

	l := domain.NewLesson("les", domain.LevelC1, "", "English", "Français", "")
	if err := f.lessons.Save(ctx, l); err != nil {
		t.Fatal(err)
	}

	e, err := f.svc.CreateSpeaking(ctx, exercise.CreateArgs{
		Level:          domain.LevelC1,
		TargetLanguage: "English",
		LessonID:       l.ID,
	})
	if err != nil {
		t.Fatalf("CreateSpeaking failed: %v", err)
	}
	stored, _ := f.lessons.Get(ctx, l.ID)
	if len(stored.SpeakingExerciseIDs) != 1 || stored.SpeakingExerciseIDs[0] != e.ID {
		t.Fatalf("lesson not linked: %+v", stored.SpeakingExerciseIDs)
	}
}

func TestGenerateListeningAudioUsesCacheOnRepeat(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.text.ExerciseRaw = `{"title":"t","content":"c"}`

	e, _ := f.svc.CreateListening(ctx, exercise.CreateArgs{Level: domain.LevelC1, TargetLanguage: "English"})
	callsAfterCreate := f.audio.TTSCalls

	if _, err := f.svc.GenerateListeningAudio(ctx, e.ID); err != nil {
		t.Fatalf("GenerateListeningAudio failed: %v", err)
	}
	if f.audio.TTSCalls != callsAfterCreate {
		t.Fatalf("repeat audio request must hit cache, TTS called %d extra times", f.audio.TTSCalls-callsAfterCreate)
	}
}

func TestEvaluateSpeakingCompletesExercise(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.text.ExerciseRaw = `{"title":"t","content":"The quick brown fox."}`
	f.audio.Transcription = "The quick brown fox"
	f.text.PronunRaw = `{"accuracy":92,"errors":[],"overallScore":90,"suggestions":["Slow down on vowels"]}`

	e, _ := f.svc.CreateSpeaking(ctx, exercise.CreateArgs{Level: domain.LevelC1, TargetLanguage: "English"})
	updated, err := f.svc.EvaluateSpeaking(ctx, e.ID, []byte("webm"))
	if err != nil {
		t.Fatalf("EvaluateSpeaking failed: %v", err)
	}
	if !updated.IsComplete() {
		t.Fatalf("exercise not completed")
	}
	if updated.Feedback == nil || updated.Feedback.OverallScore != 90 {
		t.Fatalf("feedback not parsed: %+v", updated.Feedback)
	}
	if updated.Transcription != "The quick brown fox" {
		t.Fatalf("transcription not stored: %q", updated.Transcription)
	}
}

func TestEvaluateSpeakingDegradesOnUnparsableFeedback(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.text.ExerciseRaw = `{"title":"t","content":"c"}`
	f.text.PronunRaw = "Great job!"

	e, _ := f.svc.CreateSpeaking(ctx, exercise.CreateArgs{Level: domain.LevelC1, TargetLanguage: "English"})
	updated, err := f.svc.EvaluateSpeaking(ctx, e.ID, []byte("webm"))
	if err != nil {
		t.Fatalf("EvaluateSpeaking must not fail on prose feedback: %v", err)
	}
	fb := updated.Feedback
	if fb == nil || fb.OverallScore != 0 || fb.Accuracy != 0 {
		t.Fatalf("expected zero scores, got %+v", fb)
	}
	if len(fb.Suggestions) != 1 || fb.Suggestions[0] != "Great job!" {
		t.Fatalf("raw text must survive as the only suggestion: %+v", fb.Suggestions)
	}
}

func TestEvaluateListeningDefaultsComprehension(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.text.ExerciseRaw = `{"title":"t","content":"It rained all afternoon."}`
	f.text.ListeningRaw = "not json at all"

	e, _ := f.svc.CreateListening(ctx, exercise.CreateArgs{Level: domain.LevelC1, TargetLanguage: "English"})
	updated, err := f.svc.EvaluateListening(ctx, e.ID, "it rained all afternoon")
	if err != nil {
		t.Fatalf("EvaluateListening failed: %v", err)
	}
	if updated.Feedback == nil || updated.Feedback.ComprehensionLevel != domain.ComprehensionNeedsImprovement {
		t.Fatalf("expected needs-improvement fallback, got %+v", updated.Feedback)
	}
	if updated.UserTranscription != "it rained all afternoon" {
		t.Fatalf("user transcription not stored")
	}
}

func TestEvaluateUnknownExercise(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.EvaluateSpeaking(context.Background(), "missing", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.svc.EvaluateListening(context.Background(), "missing", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type failingListeningStore struct{}

func (failingListeningStore) Save(context.Context, domain.ListeningExercise) error {
	return errors.New("disk full")
}
func (failingListeningStore) Get(context.Context, string) (*domain.ListeningExercise, error) {
	return nil, nil
}
func (failingListeningStore) List(context.Context) ([]domain.ListeningExercise, error) {
	return nil, nil
}
func (failingListeningStore) Delete(context.Context, string) error { return nil }

type countingAudioCache struct {
	ports.AudioCacheRepository
	puts int
}

func (c *countingAudioCache) Put(ctx context.Context, key string, audio []byte) error {
	c.puts++
	return c.AudioCacheRepository.Put(ctx, key, audio)
}

func TestCreateListeningSaveFailureWritesNoCacheEntry(t *testing.T) {
	text := llmmock.NewTextProvider()
	text.ExerciseRaw = `{"title":"Weather","content":"It rained."}`
	audio := audiomock.NewAudioProvider()
	audio.Audio = []byte("mp3-bytes")
	cache := &countingAudioCache{AudioCacheRepository: memory.NewAudioCache()}
	svc := exercise.New(exercise.Deps{
		Speaking:   memory.NewSpeakingExerciseStore(),
		Listening:  failingListeningStore{},
		Lessons:    memory.NewLessonStore(),
		AudioCache: cache,
		BuildText: func(context.Context) (ports.TextProvider, error) {
			return text, nil
		},
		BuildAudio: func(context.Context) (ports.AudioProvider, error) {
			return audio, nil
		},
	})

	_, err := svc.CreateListening(context.Background(), exercise.CreateArgs{
		Level:          domain.LevelC1,
		TargetLanguage: "English",
	})
	if err == nil {
		t.Fatalf("expected error when save fails")
	}
	if cache.puts != 0 {
		t.Fatalf("cache written for an exercise that was never stored (%d puts)", cache.puts)
	}
}

func TestDeleteListeningEvictsCachedAudio(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.text.ExerciseRaw = `{"title":"Weather","content":"It rained."}`
	f.audio.Audio = []byte("mp3-bytes")

	e, err := f.svc.CreateListening(ctx, exercise.CreateArgs{
		Level:          domain.LevelC1,
		TargetLanguage: "English",
	})
	if err != nil {
		t.Fatalf("CreateListening failed: %v", err)
	}
	if cached, _ := f.cache.Get(ctx, "listening_"+e.ID); cached == nil {
		t.Fatalf("audio not cached at creation")
	}

	if err := f.svc.DeleteListening(ctx, e.ID); err != nil {
		t.Fatalf("DeleteListening failed: %v", err)
	}
	if cached, _ := f.cache.Get(ctx, "listening_"+e.ID); cached != nil {
		t.Fatalf("cached audio survived exercise deletion")
	}
}
