package domain

type TextVendor string

const (
	TextVendorOpenAI TextVendor = "openai"
	TextVendorGemini TextVendor = "gemini"
	TextVendorLocal  TextVendor = "local"
)

type AudioVendor string

const (
	AudioVendorOpenAI AudioVendor = "openai"
	AudioVendorGoogle AudioVendor = "google"
)

type LocalDialect string

const (
	DialectLMStudio LocalDialect = "lmstudio"
	DialectOllama   LocalDialect = "ollama"
)

type TextProviderConfig struct {
	Provider        TextVendor   `json:"provider"`
	APIKey          string       `json:"api_key"`
	IsValid         bool         `json:"is_valid"`
	SelectedModel   string       `json:"selected_model"`
	AvailableModels []string     `json:"available_models"`
	LocalDialect    LocalDialect `json:"local_dialect,omitempty"`
	LocalEndpoint   string       `json:"local_endpoint,omitempty"`
}

type AudioProviderConfig struct {
	Provider        AudioVendor `json:"provider"`
	APIKey          string      `json:"api_key"`
	IsValid         bool        `json:"is_valid"`
	SelectedModel   string      `json:"selected_model"`
	AvailableModels []string    `json:"available_models"`
	SelectedVoice   string      `json:"selected_voice"`
	AvailableVoices []string    `json:"available_voices"`
}

type Settings struct {
	DefaultLevel   Level               `json:"default_level"`
	NativeLanguage string              `json:"native_language"`
	TargetLanguage string              `json:"target_language"`
	TextProvider   TextProviderConfig  `json:"text_provider"`
	AudioProvider  AudioProviderConfig `json:"audio_provider"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultLevel:   LevelC1,
		NativeLanguage: "Français",
		TargetLanguage: "English",
		TextProvider: TextProviderConfig{
			Provider:        TextVendorOpenAI,
			AvailableModels: []string{},
		},
		AudioProvider: AudioProviderConfig{
			Provider:        AudioVendorOpenAI,
			AvailableModels: []string{},
			AvailableVoices: []string{},
		},
	}
}

// SupportedLanguages is the set of display names the UI offers; audio adapters
// map them to vendor language codes.
var SupportedLanguages = []string{
	"English", "Français", "Español", "Deutsch", "Italiano", "Português",
	"日本語", "中文", "한국어", "العربية", "Русский", "Nederlands",
	"Polski", "Türkçe", "Svenska",
}
