package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	dbsqlite "lingocoach/internal/adapters/db/sqlite"
	"lingocoach/internal/adapters/providers"
	"lingocoach/internal/adapters/storage/memory"
	"lingocoach/internal/adapters/validator"
	apiapp "lingocoach/internal/api/app"
	"lingocoach/internal/config"
	"lingocoach/internal/observability"
	"lingocoach/internal/ports"
	catalogusecase "lingocoach/internal/usecase/catalog"
	chatusecase "lingocoach/internal/usecase/chat"
	exerciseusecase "lingocoach/internal/usecase/exercise"
	lessonusecase "lingocoach/internal/usecase/lesson"
	settingsusecase "lingocoach/internal/usecase/settings"
)

type repositories struct {
	chats        ports.ChatRepository
	lessons      ports.LessonRepository
	speaking     ports.SpeakingExerciseRepository
	listening    ports.ListeningExerciseRepository
	courses      ports.CourseRepository
	programmes   ports.ProgrammeRepository
	settings     ports.SettingsRepository
	audioCache   ports.AudioCacheRepository
	translations ports.TranslationCacheRepository
}

func buildRepositories(cfg *config.Config) (repositories, error) {
	if cfg.StorageBackend == "memory" {
		return repositories{
			chats:        memory.NewChatStore(),
			lessons:      memory.NewLessonStore(),
			speaking:     memory.NewSpeakingExerciseStore(),
			listening:    memory.NewListeningExerciseStore(),
			courses:      memory.NewCourseStore(),
			programmes:   memory.NewProgrammeStore(),
			settings:     memory.NewSettingsStore(),
			audioCache:   memory.NewAudioCache(),
			translations: memory.NewTranslationCache(),
		}, nil
	}
	db, err := dbsqlite.Init(cfg.DBPath)
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		chats:        dbsqlite.NewChatRepo(db),
		lessons:      dbsqlite.NewLessonRepo(db),
		speaking:     dbsqlite.NewSpeakingExerciseRepo(db),
		listening:    dbsqlite.NewListeningExerciseRepo(db),
		courses:      dbsqlite.NewCourseRepo(db),
		programmes:   dbsqlite.NewProgrammeRepo(db),
		settings:     dbsqlite.NewSettingsRepo(db),
		audioCache:   dbsqlite.NewAudioCacheRepo(db),
		translations: dbsqlite.NewTranslationCacheRepo(db),
	}, nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		observability.Logger().Error("load config", "error", err.Error())
		os.Exit(1)
	}
	observability.SetLevel(cfg.LogLevel)
	log := observability.Logger()

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Error("init storage", "error", err.Error())
		os.Exit(1)
	}

	src := providers.NewSource(repos.settings)

	chatSvc := chatusecase.New(chatusecase.Deps{
		Chats:        repos.chats,
		AudioCache:   repos.audioCache,
		Translations: repos.translations,
		BuildText:    src.Text,
		BuildAudio:   src.Audio,
	})
	lessonSvc := lessonusecase.New(lessonusecase.Deps{
		Lessons:   repos.lessons,
		Chats:     repos.chats,
		BuildText: src.Text,
	})
	exerciseSvc := exerciseusecase.New(exerciseusecase.Deps{
		Speaking:   repos.speaking,
		Listening:  repos.listening,
		Lessons:    repos.lessons,
		AudioCache: repos.audioCache,
		BuildText:  src.Text,
		BuildAudio: src.Audio,
	})
	settingsSvc := settingsusecase.New(settingsusecase.Deps{
		Settings:  repos.settings,
		Validator: validator.New(),
	})
	catalogSvc := catalogusecase.New(catalogusecase.Deps{
		Courses:    repos.courses,
		Programmes: repos.programmes,
	})

	server := &apiapp.Server{
		Chat:     chatSvc,
		Lesson:   lessonSvc,
		Exercise: exerciseSvc,
		Settings: settingsSvc,
		Catalog:  catalogSvc,
	}

	log.Info("listening", "addr", cfg.ListenAddr, "storage", cfg.StorageBackend)
	if err := http.ListenAndServe(cfg.ListenAddr, server.Router()); err != nil {
		log.Error("serve", "error", err.Error())
		os.Exit(1)
	}
}
