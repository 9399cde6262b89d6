package domain

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

type CourseDuration struct {
	EstimatedHours  int `json:"estimated_hours"`
	LessonsCount    int `json:"lessons_count"`
	ActivitiesCount int `json:"activities_count"`
}

type Course struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Slug           string         `json:"slug"`
	Level          Level          `json:"level"`
	TargetLanguage string         `json:"target_language"`
	NativeLanguage string         `json:"native_language"`
	Status         Status         `json:"status"`
	Objectives     []string       `json:"objectives"`
	Prerequisites  []string       `json:"prerequisites"`
	Tags           []string       `json:"tags"`
	AuthorID       string         `json:"author_id"`
	LessonIDs      []string       `json:"lesson_ids"`
	Duration       CourseDuration `json:"duration"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
}

func NewCourse(title, description string, level Level, targetLanguage, nativeLanguage, authorID string) Course {
	now := time.Now().UTC()
	return Course{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    description,
		Slug:           Slugify(title),
		Level:          level,
		TargetLanguage: targetLanguage,
		NativeLanguage: nativeLanguage,
		Status:         StatusDraft,
		AuthorID:       authorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Publish moves draft -> published. Transitions are forward-only; an archived
// course stays archived.
func (c Course) Publish() (Course, error) {
	if c.Status == StatusArchived {
		return c, ErrInvalidTransition
	}
	now := time.Now().UTC()
	c.Status = StatusPublished
	c.PublishedAt = &now
	c.UpdatedAt = now
	return c, nil
}

func (c Course) Archive() Course {
	c.Status = StatusArchived
	c.UpdatedAt = time.Now().UTC()
	return c
}

func (c Course) AddLesson(lessonID string) Course {
	ids := make([]string, 0, len(c.LessonIDs)+1)
	ids = append(ids, c.LessonIDs...)
	ids = append(ids, lessonID)
	c.LessonIDs = ids
	c.Duration.LessonsCount = len(ids)
	c.UpdatedAt = time.Now().UTC()
	return c
}

func (c Course) RemoveLesson(lessonID string) Course {
	ids := make([]string, 0, len(c.LessonIDs))
	for _, id := range c.LessonIDs {
		if id != lessonID {
			ids = append(ids, id)
		}
	}
	c.LessonIDs = ids
	c.Duration.LessonsCount = len(ids)
	c.UpdatedAt = time.Now().UTC()
	return c
}

func (c Course) ReorderLessons(lessonIDs []string) Course {
	ids := make([]string, len(lessonIDs))
	copy(ids, lessonIDs)
	c.LessonIDs = ids
	c.UpdatedAt = time.Now().UTC()
	return c
}

func (c Course) AddObjective(objective string) Course {
	objs := make([]string, 0, len(c.Objectives)+1)
	objs = append(objs, c.Objectives...)
	objs = append(objs, objective)
	c.Objectives = objs
	c.UpdatedAt = time.Now().UTC()
	return c
}

func (c Course) WithTags(tags []string) Course {
	t := make([]string, len(tags))
	copy(t, tags)
	c.Tags = t
	c.UpdatedAt = time.Now().UTC()
	return c
}

type LessonEstimate struct {
	EstimatedMinutes int
	ActivitiesCount  int
}

func CalculateCourseDuration(lessons []LessonEstimate) CourseDuration {
	totalMinutes, totalActivities := 0, 0
	for _, l := range lessons {
		totalMinutes += l.EstimatedMinutes
		totalActivities += l.ActivitiesCount
	}
	return CourseDuration{
		EstimatedHours:  int(math.Ceil(float64(totalMinutes) / 60)),
		LessonsCount:    len(lessons),
		ActivitiesCount: totalActivities,
	}
}

var nonSlugRE = regexp.MustCompile(`[^a-z0-9\s-]`)
var spaceRE = regexp.MustCompile(`\s+`)
var dashRE = regexp.MustCompile(`-+`)

func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonSlugRE.ReplaceAllString(s, "")
	s = spaceRE.ReplaceAllString(s, "-")
	s = dashRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
