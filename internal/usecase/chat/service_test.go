package chat_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	audiomock "lingocoach/internal/adapters/audio/mock"
	llmmock "lingocoach/internal/adapters/llm/mock"
	"lingocoach/internal/adapters/storage/memory"
	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
	"lingocoach/internal/usecase/chat"
)

func newService(text *llmmock.TextProvider, audio *audiomock.AudioProvider) (*chat.Service, *memory.ChatStore) {
	chats := memory.NewChatStore()
	svc := chat.New(chat.Deps{
		Chats:        chats,
		AudioCache:   memory.NewAudioCache(),
		Translations: memory.NewTranslationCache(),
		BuildText: func(context.Context) (ports.TextProvider, error) {
			return text, nil
		},
		BuildAudio: func(context.Context) (ports.AudioProvider, error) {
			return audio, nil
		},
	})
	return svc, chats
}

func TestCreateDefaultsTitle(t *testing.T) {
	svc, _ := newService(llmmock.NewTextProvider(), audiomock.NewAudioProvider())

	c, err := svc.Create(context.Background(), "English", "Français", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.Title == "" {
		t.Fatalf("expected generated title, got empty")
	}
	if c.TargetLanguage != "English" || c.NativeLanguage != "Français" {
		t.Fatalf("languages not recorded: %+v", c)
	}
}

func TestSendMessageAppendsBothMessages(t *testing.T) {
	ctx := context.Background()
	text := llmmock.NewTextProvider()
	text.Response = "Bonjour!"
	svc, _ := newService(text, audiomock.NewAudioProvider())

	c, _ := svc.Create(ctx, "English", "Français", "t")
	updated, reply, err := svc.SendMessage(ctx, c.ID, "Hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if len(updated.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(updated.Messages))
	}
	if updated.Messages[0].Role != domain.RoleUser || updated.Messages[0].Content != "Hello" {
		t.Fatalf("first message wrong: %+v", updated.Messages[0])
	}
	if reply.Role != domain.RoleAssistant || reply.Content != "Bonjour!" {
		t.Fatalf("assistant reply wrong: %+v", reply)
	}

	got, err := svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("persisted chat has %d messages, want 2", len(got.Messages))
	}
}

func TestSendMessageUnknownChat(t *testing.T) {
	svc, _ := newService(llmmock.NewTextProvider(), audiomock.NewAudioProvider())

	_, _, err := svc.SendMessage(context.Background(), "missing", "hi")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendMessageProviderFailureLeavesChatUntouched(t *testing.T) {
	ctx := context.Background()
	text := llmmock.NewTextProvider()
	text.Err = errors.New("provider down")
	svc, _ := newService(text, audiomock.NewAudioProvider())

	c, _ := svc.Create(ctx, "English", "Français", "t")
	if _, _, err := svc.SendMessage(ctx, c.ID, "Hello"); err == nil {
		t.Fatalf("expected error")
	}
	got, _ := svc.Get(ctx, c.ID)
	if len(got.Messages) != 0 {
		t.Fatalf("failed send must not persist messages, got %d", len(got.Messages))
	}
}

func TestConcurrentSendsPreserveAllMessages(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(llmmock.NewTextProvider(), audiomock.NewAudioProvider())

	c, _ := svc.Create(ctx, "English", "Français", "t")

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := svc.SendMessage(ctx, c.ID, "msg"); err != nil {
				t.Errorf("SendMessage failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := svc.Get(ctx, c.ID)
	if len(got.Messages) != 2*n {
		t.Fatalf("expected %d messages after %d concurrent sends, got %d", 2*n, n, len(got.Messages))
	}
}

func TestGenerateMessageAudioCaches(t *testing.T) {
	ctx := context.Background()
	text := llmmock.NewTextProvider()
	audio := audiomock.NewAudioProvider()
	svc, _ := newService(text, audio)

	c, _ := svc.Create(ctx, "English", "Français", "t")
	_, reply, _ := svc.SendMessage(ctx, c.ID, "Hello")

	first, err := svc.GenerateMessageAudio(ctx, c.ID, reply.ID)
	if err != nil {
		t.Fatalf("GenerateMessageAudio failed: %v", err)
	}
	second, err := svc.GenerateMessageAudio(ctx, c.ID, reply.ID)
	if err != nil {
		t.Fatalf("second GenerateMessageAudio failed: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("cached audio differs")
	}
	if audio.TTSCalls != 1 {
		t.Fatalf("expected exactly 1 synthesis call, got %d", audio.TTSCalls)
	}
}

func TestGenerateMessageAudioStoresAudioOnMessage(t *testing.T) {
	ctx := context.Background()
	audio := audiomock.NewAudioProvider()
	audio.Audio = []byte("mp3-bytes")
	svc, _ := newService(llmmock.NewTextProvider(), audio)

	c, _ := svc.Create(ctx, "English", "Français", "t")
	_, reply, _ := svc.SendMessage(ctx, c.ID, "Hello")

	if _, err := svc.GenerateMessageAudio(ctx, c.ID, reply.ID); err != nil {
		t.Fatalf("GenerateMessageAudio failed: %v", err)
	}

	got, err := svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	msg, ok := got.FindMessage(reply.ID)
	if !ok {
		t.Fatalf("message missing from persisted chat")
	}
	if string(msg.Audio) != "mp3-bytes" {
		t.Fatalf("audio not stored on persisted message: %q", msg.Audio)
	}
}

func TestDeleteChatEvictsMessageAudio(t *testing.T) {
	ctx := context.Background()
	audio := audiomock.NewAudioProvider()
	audio.Audio = []byte("mp3-bytes")
	cache := memory.NewAudioCache()
	svc := chat.New(chat.Deps{
		Chats:        memory.NewChatStore(),
		AudioCache:   cache,
		Translations: memory.NewTranslationCache(),
		BuildText: func(context.Context) (ports.TextProvider, error) {
			return llmmock.NewTextProvider(), nil
		},
		BuildAudio: func(context.Context) (ports.AudioProvider, error) {
			return audio, nil
		},
	})

	c, _ := svc.Create(ctx, "English", "Français", "t")
	_, reply, _ := svc.SendMessage(ctx, c.ID, "Hello")
	if _, err := svc.GenerateMessageAudio(ctx, c.ID, reply.ID); err != nil {
		t.Fatalf("GenerateMessageAudio failed: %v", err)
	}

	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if cached, _ := cache.Get(ctx, "audio_"+reply.ID); cached != nil {
		t.Fatalf("cached audio survived chat deletion")
	}
}

func TestGenerateMessageAudioUnknownMessage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(llmmock.NewTextProvider(), audiomock.NewAudioProvider())

	c, _ := svc.Create(ctx, "English", "Français", "t")
	if _, err := svc.GenerateMessageAudio(ctx, c.ID, "missing"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestTranslateMessageCachesAndStoresOnMessage(t *testing.T) {
	ctx := context.Background()
	text := llmmock.NewTextProvider()
	text.Translation = "Bonjour"
	svc, _ := newService(text, audiomock.NewAudioProvider())

	c, _ := svc.Create(ctx, "English", "Français", "t")
	_, reply, _ := svc.SendMessage(ctx, c.ID, "Hello")

	got, err := svc.TranslateMessage(ctx, c.ID, reply.ID)
	if err != nil {
		t.Fatalf("TranslateMessage failed: %v", err)
	}
	if got != "Bonjour" {
		t.Fatalf("translation = %q, want Bonjour", got)
	}

	if _, err := svc.TranslateMessage(ctx, c.ID, reply.ID); err != nil {
		t.Fatalf("second TranslateMessage failed: %v", err)
	}
	translateCalls := 0
	for _, call := range text.Calls {
		if call == "Translate" {
			translateCalls++
		}
	}
	if translateCalls != 1 {
		t.Fatalf("expected 1 Translate call across both requests, got %d", translateCalls)
	}

	chat2, _ := svc.Get(ctx, c.ID)
	msg, ok := chat2.FindMessage(reply.ID)
	if !ok || msg.Translation != "Bonjour" {
		t.Fatalf("translation not stored on message: %+v", msg)
	}
}

func TestLinkLesson(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(llmmock.NewTextProvider(), audiomock.NewAudioProvider())

	c, _ := svc.Create(ctx, "English", "Français", "t")
	updated, err := svc.LinkLesson(ctx, c.ID, "lesson-1")
	if err != nil {
		t.Fatalf("LinkLesson failed: %v", err)
	}
	if len(updated.LessonIDs) != 1 || updated.LessonIDs[0] != "lesson-1" {
		t.Fatalf("lesson not linked: %+v", updated.LessonIDs)
	}
}
