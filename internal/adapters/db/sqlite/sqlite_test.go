package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"lingocoach/internal/adapters/db/sqlite"
	"lingocoach/internal/domain"
)

func testDB(t *testing.T) *sqlitedb {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &sqlitedb{
		chats:        sqlite.NewChatRepo(db),
		settings:     sqlite.NewSettingsRepo(db),
		audioCache:   sqlite.NewAudioCacheRepo(db),
		translations: sqlite.NewTranslationCacheRepo(db),
	}
}

type sqlitedb struct {
	chats        *sqlite.ChatRepo
	settings     *sqlite.SettingsRepo
	audioCache   *sqlite.AudioCacheRepo
	translations *sqlite.TranslationCacheRepo
}

func TestChatRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	c := domain.NewChat("English", "Français", "Test chat")
	c = c.AddMessage(domain.NewMessage(domain.RoleUser, "Hello"))
	if err := db.chats.Save(ctx, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.chats.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("chat not found after save")
	}
	if got.Title != "Test chat" || len(got.Messages) != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Messages[0].Content != "Hello" {
		t.Fatalf("message content lost: %+v", got.Messages[0])
	}
}

func TestChatSaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	c := domain.NewChat("English", "Français", "v1")
	if err := db.chats.Save(ctx, c); err != nil {
		t.Fatal(err)
	}
	c.Title = "v2"
	if err := db.chats.Save(ctx, c); err != nil {
		t.Fatal(err)
	}

	got, _ := db.chats.Get(ctx, c.ID)
	if got.Title != "v2" {
		t.Fatalf("second save must win, got %q", got.Title)
	}
	all, _ := db.chats.List(ctx)
	if len(all) != 1 {
		t.Fatalf("upsert must not duplicate rows, got %d", len(all))
	}
}

func TestGetMissingReturnsNilNil(t *testing.T) {
	db := testDB(t)
	got, err := db.chats.Get(context.Background(), "missing")
	if err != nil || got != nil {
		t.Fatalf("absence must be (nil, nil), got (%v, %v)", got, err)
	}
}

func TestDeleteChat(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	c := domain.NewChat("English", "Français", "t")
	db.chats.Save(ctx, c)
	if err := db.chats.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := db.chats.Get(ctx, c.ID)
	if got != nil {
		t.Fatalf("chat still present after delete")
	}
}

func TestSettingsSingleton(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	got, err := db.settings.Get(ctx)
	if err != nil || got != nil {
		t.Fatalf("empty settings must be (nil, nil), got (%v, %v)", got, err)
	}

	st := domain.DefaultSettings()
	st.TargetLanguage = "Deutsch"
	if err := db.settings.Save(ctx, st); err != nil {
		t.Fatal(err)
	}
	st.TargetLanguage = "Español"
	if err := db.settings.Save(ctx, st); err != nil {
		t.Fatal(err)
	}

	got, err = db.settings.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.TargetLanguage != "Español" {
		t.Fatalf("latest save must win, got %q", got.TargetLanguage)
	}
}

func TestAudioCacheWriteOnce(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	if err := db.audioCache.Put(ctx, "audio_m1", []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := db.audioCache.Put(ctx, "audio_m1", []byte("second")); err != nil {
		t.Fatal(err)
	}
	got, err := db.audioCache.Get(ctx, "audio_m1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "first" {
		t.Fatalf("cached audio must be immutable, got %q", got)
	}

	missing, err := db.audioCache.Get(ctx, "audio_nope")
	if err != nil || missing != nil {
		t.Fatalf("miss must be (nil, nil), got (%v, %v)", missing, err)
	}
}

func TestTranslationCache(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	if _, ok, err := db.translations.Get(ctx, "translation_m1"); err != nil || ok {
		t.Fatalf("miss must report ok=false")
	}
	if err := db.translations.Put(ctx, "translation_m1", "Bonjour"); err != nil {
		t.Fatal(err)
	}
	got, ok, err := db.translations.Get(ctx, "translation_m1")
	if err != nil || !ok || got != "Bonjour" {
		t.Fatalf("round trip failed: %q %v %v", got, ok, err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sqlite.Init(path)
	if err != nil {
		t.Fatalf("first init: %v", err)
	}
	c := domain.NewChat("English", "Français", "t")
	if err := sqlite.NewChatRepo(db).Save(ctx, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = db.Close()

	reopened, err := sqlite.Init(path)
	if err != nil {
		t.Fatalf("reopening must not re-apply migrations: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := sqlite.NewChatRepo(reopened).Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got == nil || got.Title != "t" {
		t.Fatalf("data lost across reopen: %+v", got)
	}
}
