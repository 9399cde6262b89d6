package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
	"lingocoach/internal/prompts"
)

type Deps struct {
	Chats        ports.ChatRepository
	AudioCache   ports.AudioCacheRepository
	Translations ports.TranslationCacheRepository
	// BuildText and BuildAudio return providers configured from the current
	// settings; they are called per operation so a settings change takes
	// effect without restarting anything.
	BuildText  func(ctx context.Context) (ports.TextProvider, error)
	BuildAudio func(ctx context.Context) (ports.AudioProvider, error)
}

type Service struct {
	d Deps

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(d Deps) *Service {
	return &Service{d: d, locks: make(map[string]*sync.Mutex)}
}

// chatLock serializes read-modify-write cycles per chat so concurrent sends
// against the same chat cannot drop each other's messages.
func (s *Service) chatLock(chatID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	return l
}

func (s *Service) Create(ctx context.Context, targetLanguage, nativeLanguage, title string) (domain.Chat, error) {
	c := domain.NewChat(targetLanguage, nativeLanguage, title)
	if err := s.d.Chats.Save(ctx, c); err != nil {
		return domain.Chat{}, fmt.Errorf("save chat: %w", err)
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Chat, error) {
	c, err := s.d.Chats.Get(ctx, id)
	if err != nil {
		return domain.Chat{}, err
	}
	if c == nil {
		return domain.Chat{}, domain.ErrNotFound
	}
	return *c, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Chat, error) {
	return s.d.Chats.List(ctx)
}

// Delete removes the chat and evicts the cached audio of its messages, so
// the cache does not accumulate blobs for ids that can never be asked for
// again.
func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.d.Chats.Get(ctx, id)
	if err != nil {
		return err
	}
	if c != nil {
		for _, m := range c.Messages {
			if err := s.d.AudioCache.Delete(ctx, "audio_"+m.ID); err != nil {
				return err
			}
		}
	}
	return s.d.Chats.Delete(ctx, id)
}

func (s *Service) Rename(ctx context.Context, id, title string) (domain.Chat, error) {
	l := s.chatLock(id)
	l.Lock()
	defer l.Unlock()

	c, err := s.d.Chats.Get(ctx, id)
	if err != nil {
		return domain.Chat{}, err
	}
	if c == nil {
		return domain.Chat{}, domain.ErrNotFound
	}
	updated := *c
	updated.Title = title
	updated.UpdatedAt = time.Now().UTC()
	if err := s.d.Chats.Save(ctx, updated); err != nil {
		return domain.Chat{}, fmt.Errorf("save chat: %w", err)
	}
	return updated, nil
}

// SendMessage appends the user message, sends the full history plus the
// tutoring system prompt to the text provider, appends the assistant reply,
// and persists the chat once. Both messages survive even if persistence of
// intermediate state is interrupted, because the chat is saved as a whole.
func (s *Service) SendMessage(ctx context.Context, chatID, content string) (domain.Chat, domain.Message, error) {
	l := s.chatLock(chatID)
	l.Lock()
	defer l.Unlock()

	c, err := s.d.Chats.Get(ctx, chatID)
	if err != nil {
		return domain.Chat{}, domain.Message{}, err
	}
	if c == nil {
		return domain.Chat{}, domain.Message{}, domain.ErrNotFound
	}

	chat := c.AddMessage(domain.NewMessage(domain.RoleUser, content))

	provider, err := s.d.BuildText(ctx)
	if err != nil {
		return domain.Chat{}, domain.Message{}, err
	}

	turns := make([]ports.ChatTurn, 0, len(chat.Messages)+1)
	turns = append(turns, ports.ChatTurn{
		Role:    "system",
		Content: prompts.ChatSystemPrompt(chat.TargetLanguage, chat.NativeLanguage),
	})
	for _, m := range chat.Messages {
		turns = append(turns, ports.ChatTurn{Role: string(m.Role), Content: m.Content})
	}

	reply, err := provider.GenerateResponse(ctx, ports.TextGenerationRequest{
		Messages:       turns,
		TargetLanguage: chat.TargetLanguage,
		NativeLanguage: chat.NativeLanguage,
	})
	if err != nil {
		return domain.Chat{}, domain.Message{}, fmt.Errorf("generate response: %w: %v", domain.ErrProviderFailure, err)
	}

	assistant := domain.NewMessage(domain.RoleAssistant, reply)
	chat = chat.AddMessage(assistant)
	if err := s.d.Chats.Save(ctx, chat); err != nil {
		return domain.Chat{}, domain.Message{}, fmt.Errorf("save chat: %w", err)
	}
	return chat, assistant, nil
}

// GenerateMessageAudio synthesizes audio for a message, caching the result
// under a key derived from the message id and storing the bytes on the
// message itself. Repeat calls for the same message return the cached bytes
// without touching the provider.
func (s *Service) GenerateMessageAudio(ctx context.Context, chatID, messageID string) ([]byte, error) {
	c, err := s.d.Chats.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	msg, ok := c.FindMessage(messageID)
	if !ok {
		return nil, domain.ErrMessageNotFound
	}

	key := "audio_" + messageID
	if cached, err := s.d.AudioCache.Get(ctx, key); err != nil {
		return nil, err
	} else if cached != nil {
		return cached, nil
	}

	provider, err := s.d.BuildAudio(ctx)
	if err != nil {
		return nil, err
	}
	audio, err := provider.TextToSpeech(ctx, ports.TextToSpeechRequest{
		Text:     msg.Content,
		Language: c.TargetLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize audio: %w: %v", domain.ErrProviderFailure, err)
	}
	if err := s.d.AudioCache.Put(ctx, key, audio); err != nil {
		return nil, err
	}

	l := s.chatLock(chatID)
	l.Lock()
	defer l.Unlock()
	fresh, err := s.d.Chats.Get(ctx, chatID)
	if err != nil || fresh == nil {
		return audio, nil
	}
	updated := fresh.UpdateMessage(messageID, func(m domain.Message) domain.Message {
		m.Audio = audio
		return m
	})
	if err := s.d.Chats.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("save chat: %w", err)
	}
	return audio, nil
}

// TranslateMessage translates a message into the chat's native language,
// caching by message id: a message's content never changes after creation,
// so the cached translation never goes stale.
func (s *Service) TranslateMessage(ctx context.Context, chatID, messageID string) (string, error) {
	c, err := s.d.Chats.Get(ctx, chatID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", domain.ErrNotFound
	}
	msg, ok := c.FindMessage(messageID)
	if !ok {
		return "", domain.ErrMessageNotFound
	}

	key := "translation_" + messageID
	if cached, ok, err := s.d.Translations.Get(ctx, key); err != nil {
		return "", err
	} else if ok {
		return cached, nil
	}

	provider, err := s.d.BuildText(ctx)
	if err != nil {
		return "", err
	}
	translation, err := provider.Translate(ctx, ports.TranslationRequest{
		Text:           msg.Content,
		SourceLanguage: c.TargetLanguage,
		TargetLanguage: c.NativeLanguage,
	})
	if err != nil {
		return "", fmt.Errorf("translate message: %w: %v", domain.ErrProviderFailure, err)
	}
	if err := s.d.Translations.Put(ctx, key, translation); err != nil {
		return "", err
	}

	l := s.chatLock(chatID)
	l.Lock()
	defer l.Unlock()
	fresh, err := s.d.Chats.Get(ctx, chatID)
	if err != nil || fresh == nil {
		return translation, nil
	}
	updated := fresh.UpdateMessage(messageID, func(m domain.Message) domain.Message {
		m.Translation = translation
		return m
	})
	if err := s.d.Chats.Save(ctx, updated); err != nil {
		return "", fmt.Errorf("save chat: %w", err)
	}
	return translation, nil
}

// SuggestResponses proposes replies the learner could send next, based on
// the whole conversation so far.
func (s *Service) SuggestResponses(ctx context.Context, chatID string) ([]string, error) {
	c, err := s.d.Chats.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	provider, err := s.d.BuildText(ctx)
	if err != nil {
		return nil, err
	}
	return provider.SuggestResponses(ctx, ports.SuggestionRequest{
		History:        c.Messages,
		TargetLanguage: c.TargetLanguage,
		NativeLanguage: c.NativeLanguage,
	})
}

// LinkLesson records that a lesson was generated from this chat.
func (s *Service) LinkLesson(ctx context.Context, chatID, lessonID string) (domain.Chat, error) {
	l := s.chatLock(chatID)
	l.Lock()
	defer l.Unlock()

	c, err := s.d.Chats.Get(ctx, chatID)
	if err != nil {
		return domain.Chat{}, err
	}
	if c == nil {
		return domain.Chat{}, domain.ErrNotFound
	}
	updated := c.LinkLesson(lessonID)
	if err := s.d.Chats.Save(ctx, updated); err != nil {
		return domain.Chat{}, fmt.Errorf("save chat: %w", err)
	}
	return updated, nil
}
