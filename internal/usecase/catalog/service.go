// Package catalog manages the course/programme hierarchy: creation,
// publication lifecycle, child ordering, and duration rollups.
package catalog

import (
	"context"
	"fmt"

	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
)

type Deps struct {
	Courses    ports.CourseRepository
	Programmes ports.ProgrammeRepository
}

type Service struct{ d Deps }

func New(d Deps) *Service { return &Service{d: d} }

type CreateArgs struct {
	Title          string
	Description    string
	Level          domain.Level
	TargetLanguage string
	NativeLanguage string
	AuthorID       string
}

func (s *Service) CreateCourse(ctx context.Context, a CreateArgs) (domain.Course, error) {
	c := domain.NewCourse(a.Title, a.Description, a.Level, a.TargetLanguage, a.NativeLanguage, a.AuthorID)
	if err := s.d.Courses.Save(ctx, c); err != nil {
		return domain.Course{}, fmt.Errorf("save course: %w", err)
	}
	return c, nil
}

func (s *Service) GetCourse(ctx context.Context, id string) (domain.Course, error) {
	c, err := s.d.Courses.Get(ctx, id)
	if err != nil {
		return domain.Course{}, err
	}
	if c == nil {
		return domain.Course{}, domain.ErrNotFound
	}
	return *c, nil
}

func (s *Service) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return s.d.Courses.List(ctx)
}

func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	return s.d.Courses.Delete(ctx, id)
}

func (s *Service) PublishCourse(ctx context.Context, id string) (domain.Course, error) {
	c, err := s.GetCourse(ctx, id)
	if err != nil {
		return domain.Course{}, err
	}
	published, err := c.Publish()
	if err != nil {
		return domain.Course{}, err
	}
	if err := s.d.Courses.Save(ctx, published); err != nil {
		return domain.Course{}, fmt.Errorf("save course: %w", err)
	}
	return published, nil
}

func (s *Service) ArchiveCourse(ctx context.Context, id string) (domain.Course, error) {
	c, err := s.GetCourse(ctx, id)
	if err != nil {
		return domain.Course{}, err
	}
	archived := c.Archive()
	if err := s.d.Courses.Save(ctx, archived); err != nil {
		return domain.Course{}, fmt.Errorf("save course: %w", err)
	}
	return archived, nil
}

func (s *Service) AddLessonToCourse(ctx context.Context, courseID, lessonID string) (domain.Course, error) {
	return s.updateCourse(ctx, courseID, func(c domain.Course) domain.Course {
		return c.AddLesson(lessonID)
	})
}

func (s *Service) RemoveLessonFromCourse(ctx context.Context, courseID, lessonID string) (domain.Course, error) {
	return s.updateCourse(ctx, courseID, func(c domain.Course) domain.Course {
		return c.RemoveLesson(lessonID)
	})
}

func (s *Service) ReorderCourseLessons(ctx context.Context, courseID string, lessonIDs []string) (domain.Course, error) {
	return s.updateCourse(ctx, courseID, func(c domain.Course) domain.Course {
		return c.ReorderLessons(lessonIDs)
	})
}

func (s *Service) AddCourseObjective(ctx context.Context, courseID, objective string) (domain.Course, error) {
	return s.updateCourse(ctx, courseID, func(c domain.Course) domain.Course {
		return c.AddObjective(objective)
	})
}

func (s *Service) TagCourse(ctx context.Context, courseID string, tags []string) (domain.Course, error) {
	return s.updateCourse(ctx, courseID, func(c domain.Course) domain.Course {
		return c.WithTags(tags)
	})
}

// RecalculateCourseDuration refreshes the duration rollup from per-lesson
// estimates supplied by the caller.
func (s *Service) RecalculateCourseDuration(ctx context.Context, courseID string, lessons []domain.LessonEstimate) (domain.Course, error) {
	return s.updateCourse(ctx, courseID, func(c domain.Course) domain.Course {
		c.Duration = domain.CalculateCourseDuration(lessons)
		return c
	})
}

func (s *Service) updateCourse(ctx context.Context, id string, fn func(domain.Course) domain.Course) (domain.Course, error) {
	c, err := s.GetCourse(ctx, id)
	if err != nil {
		return domain.Course{}, err
	}
	updated := fn(c)
	if err := s.d.Courses.Save(ctx, updated); err != nil {
		return domain.Course{}, fmt.Errorf("save course: %w", err)
	}
	return updated, nil
}

func (s *Service) CreateProgramme(ctx context.Context, a CreateArgs) (domain.Programme, error) {
	p := domain.NewProgramme(a.Title, a.Description, a.Level, a.TargetLanguage, a.NativeLanguage, a.AuthorID)
	if err := s.d.Programmes.Save(ctx, p); err != nil {
		return domain.Programme{}, fmt.Errorf("save programme: %w", err)
	}
	return p, nil
}

func (s *Service) GetProgramme(ctx context.Context, id string) (domain.Programme, error) {
	p, err := s.d.Programmes.Get(ctx, id)
	if err != nil {
		return domain.Programme{}, err
	}
	if p == nil {
		return domain.Programme{}, domain.ErrNotFound
	}
	return *p, nil
}

func (s *Service) ListProgrammes(ctx context.Context) ([]domain.Programme, error) {
	return s.d.Programmes.List(ctx)
}

func (s *Service) DeleteProgramme(ctx context.Context, id string) error {
	return s.d.Programmes.Delete(ctx, id)
}

func (s *Service) PublishProgramme(ctx context.Context, id string) (domain.Programme, error) {
	p, err := s.GetProgramme(ctx, id)
	if err != nil {
		return domain.Programme{}, err
	}
	published, err := p.Publish()
	if err != nil {
		return domain.Programme{}, err
	}
	if err := s.d.Programmes.Save(ctx, published); err != nil {
		return domain.Programme{}, fmt.Errorf("save programme: %w", err)
	}
	return published, nil
}

func (s *Service) ArchiveProgramme(ctx context.Context, id string) (domain.Programme, error) {
	p, err := s.GetProgramme(ctx, id)
	if err != nil {
		return domain.Programme{}, err
	}
	archived := p.Archive()
	if err := s.d.Programmes.Save(ctx, archived); err != nil {
		return domain.Programme{}, fmt.Errorf("save programme: %w", err)
	}
	return archived, nil
}

// AddCourseToProgramme appends the course and refreshes the programme's
// duration rollup from the hours of all member courses.
func (s *Service) AddCourseToProgramme(ctx context.Context, programmeID, courseID string) (domain.Programme, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return domain.Programme{}, err
	}
	return s.updateProgramme(ctx, programmeID, func(p domain.Programme) domain.Programme {
		return p.AddCourse(courseID)
	})
}

func (s *Service) RemoveCourseFromProgramme(ctx context.Context, programmeID, courseID string) (domain.Programme, error) {
	return s.updateProgramme(ctx, programmeID, func(p domain.Programme) domain.Programme {
		return p.RemoveCourse(courseID)
	})
}

func (s *Service) ReorderProgrammeCourses(ctx context.Context, programmeID string, courseIDs []string) (domain.Programme, error) {
	return s.updateProgramme(ctx, programmeID, func(p domain.Programme) domain.Programme {
		return p.ReorderCourses(courseIDs)
	})
}

func (s *Service) updateProgramme(ctx context.Context, id string, fn func(domain.Programme) domain.Programme) (domain.Programme, error) {
	p, err := s.GetProgramme(ctx, id)
	if err != nil {
		return domain.Programme{}, err
	}
	updated := fn(p)
	updated, err = s.withProgrammeDuration(ctx, updated)
	if err != nil {
		return domain.Programme{}, err
	}
	if err := s.d.Programmes.Save(ctx, updated); err != nil {
		return domain.Programme{}, fmt.Errorf("save programme: %w", err)
	}
	return updated, nil
}

func (s *Service) withProgrammeDuration(ctx context.Context, p domain.Programme) (domain.Programme, error) {
	hours := make([]int, 0, len(p.CourseIDs))
	for _, id := range p.CourseIDs {
		c, err := s.d.Courses.Get(ctx, id)
		if err != nil {
			return domain.Programme{}, err
		}
		if c == nil {
			continue
		}
		hours = append(hours, c.Duration.EstimatedHours)
	}
	p.Duration = domain.CalculateProgrammeDuration(hours)
	return p, nil
}
