package domain_test

import (
	"errors"
	"testing"

	"lingocoach/internal/domain"
)

func TestChatAddMessageDoesNotMutateOriginal(t *testing.T) {
	c := domain.NewChat("English", "Français", "t")
	c2 := c.AddMessage(domain.NewMessage(domain.RoleUser, "hi"))

	if len(c.Messages) != 0 {
		t.Fatalf("original chat mutated: %d messages", len(c.Messages))
	}
	if len(c2.Messages) != 1 {
		t.Fatalf("copy missing message")
	}
}

func TestChatMessageOrderIsInsertionOrder(t *testing.T) {
	c := domain.NewChat("English", "Français", "t")
	for _, content := range []string{"a", "b", "c"} {
		c = c.AddMessage(domain.NewMessage(domain.RoleUser, content))
	}
	for i, want := range []string{"a", "b", "c"} {
		if c.Messages[i].Content != want {
			t.Fatalf("order broken at %d: %v", i, c.Messages)
		}
	}
}

func TestChatUpdateMessageOnlyTouchesTarget(t *testing.T) {
	c := domain.NewChat("English", "Français", "t")
	m1 := domain.NewMessage(domain.RoleUser, "one")
	m2 := domain.NewMessage(domain.RoleAssistant, "two")
	c = c.AddMessage(m1).AddMessage(m2)

	c2 := c.UpdateMessage(m2.ID, func(m domain.Message) domain.Message {
		m.Translation = "deux"
		return m
	})
	got, _ := c2.FindMessage(m2.ID)
	if got.Translation != "deux" {
		t.Fatalf("translation not set")
	}
	other, _ := c2.FindMessage(m1.ID)
	if other.Translation != "" {
		t.Fatalf("untargeted message changed: %+v", other)
	}
}

func TestCoursePublishAfterArchive(t *testing.T) {
	c := domain.NewCourse("t", "", domain.LevelC1, "English", "Français", "a")
	c = c.Archive()
	if _, err := c.Publish(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if c.Status != domain.StatusArchived {
		t.Fatalf("status changed by rejected transition: %q", c.Status)
	}
}

func TestCoursePublishStampsTime(t *testing.T) {
	c := domain.NewCourse("t", "", domain.LevelC1, "English", "Français", "a")
	published, err := c.Publish()
	if err != nil {
		t.Fatal(err)
	}
	if published.Status != domain.StatusPublished || published.PublishedAt == nil {
		t.Fatalf("publish incomplete: %+v", published)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"French for Travellers", "french-for-travellers"},
		{"Écoute & Répète!", "coute-rpte"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"already-slugged", "already-slugged"},
	}
	for _, tc := range cases {
		if got := domain.Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCourseDurationRoundsUp(t *testing.T) {
	d := domain.CalculateCourseDuration([]domain.LessonEstimate{
		{EstimatedMinutes: 61, ActivitiesCount: 1},
	})
	if d.EstimatedHours != 2 {
		t.Fatalf("61 minutes must round up to 2 hours, got %d", d.EstimatedHours)
	}
	if d.LessonsCount != 1 || d.ActivitiesCount != 1 {
		t.Fatalf("counts wrong: %+v", d)
	}
}

func TestProgrammeDurationWeeks(t *testing.T) {
	d := domain.CalculateProgrammeDuration([]int{7, 4})
	if d.EstimatedHours != 11 {
		t.Fatalf("hours = %d", d.EstimatedHours)
	}
	if d.WeeksRecommended != 3 {
		t.Fatalf("11 hours at 5/week must recommend 3 weeks, got %d", d.WeeksRecommended)
	}
}

func TestExerciseComplete(t *testing.T) {
	e := domain.NewSpeakingExercise("t", domain.LevelC1, "text", "", "English", "Français", "")
	if e.IsComplete() {
		t.Fatalf("new exercise must be incomplete")
	}
	done := e.Complete("transcript", domain.PronunciationFeedback{OverallScore: 75}, []byte("rec"))
	if !done.IsComplete() || done.Feedback.OverallScore != 75 {
		t.Fatalf("completion lost data: %+v", done)
	}
	if e.IsComplete() {
		t.Fatalf("original mutated")
	}
}

func TestDefaultSettings(t *testing.T) {
	st := domain.DefaultSettings()
	if st.DefaultLevel != domain.LevelC1 {
		t.Fatalf("level = %q", st.DefaultLevel)
	}
	if st.NativeLanguage != "Français" || st.TargetLanguage != "English" {
		t.Fatalf("default languages wrong: %+v", st)
	}
	if st.TextProvider.Provider != domain.TextVendorOpenAI || st.AudioProvider.Provider != domain.AudioVendorOpenAI {
		t.Fatalf("default vendors wrong")
	}
}
