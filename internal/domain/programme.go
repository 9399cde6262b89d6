package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type ProgrammeDuration struct {
	EstimatedHours   int `json:"estimated_hours"`
	WeeksRecommended int `json:"weeks_recommended"`
}

// Programme is an ordered container of courses, the top of the catalog
// hierarchy: programme -> course -> lesson -> exercise.
type Programme struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Slug           string            `json:"slug"`
	Level          Level             `json:"level"`
	TargetLanguage string            `json:"target_language"`
	NativeLanguage string            `json:"native_language"`
	Status         Status            `json:"status"`
	Duration       ProgrammeDuration `json:"duration"`
	Tags           []string          `json:"tags"`
	AuthorID       string            `json:"author_id"`
	CourseIDs      []string          `json:"course_ids"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	PublishedAt    *time.Time        `json:"published_at,omitempty"`
}

func NewProgramme(title, description string, level Level, targetLanguage, nativeLanguage, authorID string) Programme {
	now := time.Now().UTC()
	return Programme{
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

func (p Programme) Publish() (Programme, error) {
	if p.Status == StatusArchived {
		return p, ErrInvalidTransition
	}
	now := time.Now().UTC()
	p.Status = StatusPublished
	p.PublishedAt = &now
	p.UpdatedAt = now
	return p, nil
}

func (p Programme) Archive() Programme {
	p.Status = StatusArchived
	p.UpdatedAt = time.Now().UTC()
	return p
}

func (p Programme) AddCourse(courseID string) Programme {
	ids := make([]string, 0, len(p.CourseIDs)+1)
	ids = append(ids, p.CourseIDs...)
	ids = append(ids, courseID)
	p.CourseIDs = ids
	p.UpdatedAt = time.Now().UTC()
	return p
}

func (p Programme) RemoveCourse(courseID string) Programme {
	ids := make([]string, 0, len(p.CourseIDs))
	for _, id := range p.CourseIDs {
		if id != courseID {
			ids = append(ids, id)
		}
	}
	p.CourseIDs = ids
	p.UpdatedAt = time.Now().UTC()
	return p
}

func (p Programme) ReorderCourses(courseIDs []string) Programme {
	ids := make([]string, len(courseIDs))
	copy(ids, courseIDs)
	p.CourseIDs = ids
	p.UpdatedAt = time.Now().UTC()
	return p
}

// CalculateProgrammeDuration sums course hours and recommends weeks at a pace
// of five study hours per week.
func CalculateProgrammeDuration(courseHours []int) ProgrammeDuration {
	total := 0
	for _, h := range courseHours {
		total += h
	}
	return ProgrammeDuration{
		EstimatedHours:   total,
		WeeksRecommended: int(math.Ceil(float64(total) / 5)),
	}
}
