package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	ID          string      `json:"id"`
	Role        MessageRole `json:"role"`
	Content     string      `json:"content"`
	Translation string      `json:"translation,omitempty"`
	Audio       []byte      `json:"audio,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

type Chat struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Messages       []Message `json:"messages"`
	TargetLanguage string    `json:"target_language"`
	NativeLanguage string    `json:"native_language"`
	LessonIDs      []string  `json:"lesson_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewChat(targetLanguage, nativeLanguage, title string) Chat {
	now := time.Now().UTC()
	if title == "" {
		title = fmt.Sprintf("Conversation %s", now.Format("2006-01-02"))
	}
	return Chat{
		ID:             uuid.NewString(),
		Title:          title,
		TargetLanguage: targetLanguage,
		NativeLanguage: nativeLanguage,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func NewMessage(role MessageRole, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// AddMessage returns a copy of the chat with the message appended.
// Messages keep insertion order; nothing ever reorders them.
func (c Chat) AddMessage(m Message) Chat {
	msgs := make([]Message, 0, len(c.Messages)+1)
	msgs = append(msgs, c.Messages...)
	msgs = append(msgs, m)
	c.Messages = msgs
	c.UpdatedAt = time.Now().UTC()
	return c
}

// UpdateMessage applies fn to the matching message and returns the updated
// chat. Role and content are set at creation and never touched here; only
// translation and audio are filled in later.
func (c Chat) UpdateMessage(messageID string, fn func(Message) Message) Chat {
	msgs := make([]Message, len(c.Messages))
	for i, m := range c.Messages {
		if m.ID == messageID {
			m = fn(m)
		}
		msgs[i] = m
	}
	c.Messages = msgs
	c.UpdatedAt = time.Now().UTC()
	return c
}

func (c Chat) FindMessage(messageID string) (Message, bool) {
	for _, m := range c.Messages {
		if m.ID == messageID {
			return m, true
		}
	}
	return Message{}, false
}

func (c Chat) LinkLesson(lessonID string) Chat {
	ids := make([]string, 0, len(c.LessonIDs)+1)
	ids = append(ids, c.LessonIDs...)
	ids = append(ids, lessonID)
	c.LessonIDs = ids
	c.UpdatedAt = time.Now().UTC()
	return c
}
