package catalog_test

import (
	"context"
	"errors"
	"testing"

	"lingocoach/internal/adapters/storage/memory"
	"lingocoach/internal/domain"
	"lingocoach/internal/usecase/catalog"
)

func newService() *catalog.Service {
	return catalog.New(catalog.Deps{
		Courses:    memory.NewCourseStore(),
		Programmes: memory.NewProgrammeStore(),
	})
}

func create(t *testing.T, svc *catalog.Service) domain.Course {
	t.Helper()
	c, err := svc.CreateCourse(context.Background(), catalog.CreateArgs{
		Title:          "French for Travellers",
		Description:    "Survival French",
		Level:          domain.LevelC1,
		TargetLanguage: "Français",
		NativeLanguage: "English",
		AuthorID:       "author-1",
	})
	if err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}
	return c
}

func TestCreateCourseSlugAndStatus(t *testing.T) {
	svc := newService()
	c := create(t, svc)

	if c.Status != domain.StatusDraft {
		t.Fatalf("new course status = %q, want draft", c.Status)
	}
	if c.Slug != "french-for-travellers" {
		t.Fatalf("slug = %q", c.Slug)
	}
}

func TestPublishThenArchiveIsForwardOnly(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	c := create(t, svc)

	published, err := svc.PublishCourse(ctx, c.ID)
	if err != nil {
		t.Fatalf("PublishCourse failed: %v", err)
	}
	if published.Status != domain.StatusPublished || published.PublishedAt == nil {
		t.Fatalf("publish state wrong: %+v", published)
	}

	archived, err := svc.ArchiveCourse(ctx, c.ID)
	if err != nil {
		t.Fatalf("ArchiveCourse failed: %v", err)
	}
	if archived.Status != domain.StatusArchived {
		t.Fatalf("archive state wrong: %+v", archived)
	}

	if _, err := svc.PublishCourse(ctx, c.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("publishing an archived course must fail, got %v", err)
	}
	got, _ := svc.GetCourse(ctx, c.ID)
	if got.Status != domain.StatusArchived {
		t.Fatalf("failed publish must not change status, got %q", got.Status)
	}
}

func TestLessonMembershipMaintainsCount(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	c := create(t, svc)

	c2, _ := svc.AddLessonToCourse(ctx, c.ID, "l1")
	c2, _ = svc.AddLessonToCourse(ctx, c.ID, "l2")
	if c2.Duration.LessonsCount != 2 {
		t.Fatalf("lessons count = %d, want 2", c2.Duration.LessonsCount)
	}

	c3, _ := svc.RemoveLessonFromCourse(ctx, c.ID, "l1")
	if c3.Duration.LessonsCount != 1 || len(c3.LessonIDs) != 1 || c3.LessonIDs[0] != "l2" {
		t.Fatalf("removal wrong: %+v", c3)
	}
}

func TestReorderCourseLessons(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	c := create(t, svc)

	svc.AddLessonToCourse(ctx, c.ID, "l1")
	svc.AddLessonToCourse(ctx, c.ID, "l2")
	svc.AddLessonToCourse(ctx, c.ID, "l3")

	got, err := svc.ReorderCourseLessons(ctx, c.ID, []string{"l3", "l1", "l2"})
	if err != nil {
		t.Fatalf("ReorderCourseLessons failed: %v", err)
	}
	want := []string{"l3", "l1", "l2"}
	for i, id := range want {
		if got.LessonIDs[i] != id {
			t.Fatalf("order wrong at %d: %v", i, got.LessonIDs)
		}
	}
}

func TestRecalculateCourseDurationRoundsUp(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	c := create(t, svc)

	got, err := svc.RecalculateCourseDuration(ctx, c.ID, []domain.LessonEstimate{
		{EstimatedMinutes: 50, ActivitiesCount: 3},
		{EstimatedMinutes: 40, ActivitiesCount: 2},
	})
	if err != nil {
		t.Fatalf("RecalculateCourseDuration failed: %v", err)
	}
	if got.Duration.EstimatedHours != 2 {
		t.Fatalf("90 minutes must round up to 2 hours, got %d", got.Duration.EstimatedHours)
	}
	if got.Duration.ActivitiesCount != 5 || got.Duration.LessonsCount != 2 {
		t.Fatalf("rollup wrong: %+v", got.Duration)
	}
}

func TestProgrammeDurationFollowsCourses(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	c := create(t, svc)
	if _, err := svc.RecalculateCourseDuration(ctx, c.ID, []domain.LessonEstimate{{EstimatedMinutes: 600}}); err != nil {
		t.Fatal(err)
	}

	p, err := svc.CreateProgramme(ctx, catalog.CreateArgs{
		Title:          "Beginner Track",
		Level:          domain.LevelC1,
		TargetLanguage: "Français",
		NativeLanguage: "English",
	})
	if err != nil {
		t.Fatalf("CreateProgramme failed: %v", err)
	}

	p2, err := svc.AddCourseToProgramme(ctx, p.ID, c.ID)
	if err != nil {
		t.Fatalf("AddCourseToProgramme failed: %v", err)
	}
	if p2.Duration.EstimatedHours != 10 {
		t.Fatalf("estimated hours = %d, want 10", p2.Duration.EstimatedHours)
	}
	if p2.Duration.WeeksRecommended != 2 {
		t.Fatalf("weeks = %d, want 2 at five hours per week", p2.Duration.WeeksRecommended)
	}
}

func TestAddUnknownCourseToProgramme(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	p, _ := svc.CreateProgramme(ctx, catalog.CreateArgs{Title: "t", Level: domain.LevelC1})

	if _, err := svc.AddCourseToProgramme(ctx, p.ID, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProgrammePublishAfterArchiveRejected(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	p, _ := svc.CreateProgramme(ctx, catalog.CreateArgs{Title: "t", Level: domain.LevelC1})

	if _, err := svc.ArchiveProgramme(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.PublishProgramme(ctx, p.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
