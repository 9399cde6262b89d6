// Package memory provides map-backed repositories guarded by RWMutex.
// They back the "memory" storage mode and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"lingocoach/internal/domain"
)

type ChatStore struct {
	mu    sync.RWMutex
	chats map[string]domain.Chat
}

func NewChatStore() *ChatStore {
	return &ChatStore{chats: make(map[string]domain.Chat)}
}

func (s *ChatStore) Save(_ context.Context, c domain.Chat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[c.ID] = c
	return nil
}

func (s *ChatStore) Get(_ context.Context, id string) (*domain.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chats[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *ChatStore) List(_ context.Context) ([]domain.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *ChatStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, id)
	return nil
}

type LessonStore struct {
	mu      sync.RWMutex
	lessons map[string]domain.Lesson
}

func NewLessonStore() *LessonStore {
	return &LessonStore{lessons: make(map[string]domain.Lesson)}
}

func (s *LessonStore) Save(_ context.Context, l domain.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessons[l.ID] = l
	return nil
}

func (s *LessonStore) Get(_ context.Context, id string) (*domain.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lessons[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s *LessonStore) List(_ context.Context) ([]domain.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Lesson, 0, len(s.lessons))
	for _, l := range s.lessons {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *LessonStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lessons, id)
	return nil
}

type SpeakingExerciseStore struct {
	mu        sync.RWMutex
	exercises map[string]domain.SpeakingExercise
}

func NewSpeakingExerciseStore() *SpeakingExerciseStore {
	return &SpeakingExerciseStore{exercises: make(map[string]domain.SpeakingExercise)}
}

func (s *SpeakingExerciseStore) Save(_ context.Context, e domain.SpeakingExercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exercises[e.ID] = e
	return nil
}

func (s *SpeakingExerciseStore) Get(_ context.Context, id string) (*domain.SpeakingExercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exercises[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *SpeakingExerciseStore) List(_ context.Context) ([]domain.SpeakingExercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SpeakingExercise, 0, len(s.exercises))
	for _, e := range s.exercises {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *SpeakingExerciseStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.exercises, id)
	return nil
}

type ListeningExerciseStore struct {
	mu        sync.RWMutex
	exercises map[string]domain.ListeningExercise
}

func NewListeningExerciseStore() *ListeningExerciseStore {
	return &ListeningExerciseStore{exercises: make(map[string]domain.ListeningExercise)}
}

func (s *ListeningExerciseStore) Save(_ context.Context, e domain.ListeningExercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exercises[e.ID] = e
	return nil
}

func (s *ListeningExerciseStore) Get(_ context.Context, id string) (*domain.ListeningExercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exercises[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *ListeningExerciseStore) List(_ context.Context) ([]domain.ListeningExercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ListeningExercise, 0, len(s.exercises))
	for _, e := range s.exercises {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *ListeningExerciseStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.exercises, id)
	return nil
}

type CourseStore struct {
	mu      sync.RWMutex
	courses map[string]domain.Course
}

func NewCourseStore() *CourseStore {
	return &CourseStore{courses: make(map[string]domain.Course)}
}

func (s *CourseStore) Save(_ context.Context, c domain.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[c.ID] = c
	return nil
}

func (s *CourseStore) Get(_ context.Context, id string) (*domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *CourseStore) List(_ context.Context) ([]domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *CourseStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courses, id)
	return nil
}

type ProgrammeStore struct {
	mu         sync.RWMutex
	programmes map[string]domain.Programme
}

func NewProgrammeStore() *ProgrammeStore {
	return &ProgrammeStore{programmes: make(map[string]domain.Programme)}
}

func (s *ProgrammeStore) Save(_ context.Context, p domain.Programme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programmes[p.ID] = p
	return nil
}

func (s *ProgrammeStore) Get(_ context.Context, id string) (*domain.Programme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.programmes[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *ProgrammeStore) List(_ context.Context) ([]domain.Programme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Programme, 0, len(s.programmes))
	for _, p := range s.programmes {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *ProgrammeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.programmes, id)
	return nil
}

type SettingsStore struct {
	mu       sync.RWMutex
	settings *domain.Settings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

func (s *SettingsStore) Save(_ context.Context, st domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &st
	return nil
}

func (s *SettingsStore) Get(_ context.Context) (*domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil, nil
	}
	cp := *s.settings
	return &cp, nil
}

type AudioCache struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewAudioCache() *AudioCache {
	return &AudioCache{blobs: make(map[string][]byte)}
}

func (c *AudioCache) Put(_ context.Context, key string, audio []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.blobs[key]; ok {
		return nil
	}
	cp := make([]byte, len(audio))
	copy(cp, audio)
	c.blobs[key] = cp
	return nil
}

func (c *AudioCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	audio, ok := c.blobs[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(audio))
	copy(cp, audio)
	return cp, nil
}

func (c *AudioCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.blobs, key)
	return nil
}

type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

func NewTranslationCache() *TranslationCache {
	return &TranslationCache{translations: make(map[string]string)}
}

func (c *TranslationCache) Put(_ context.Context, key, translation string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.translations[key]; ok {
		return nil
	}
	c.translations[key] = translation
	return nil
}

func (c *TranslationCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.translations[key]
	return t, ok, nil
}
