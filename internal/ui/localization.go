package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyPlaylistTitle     = "playlist_title"
	KeyStream            = "stream"
	KeyDownload          = "download"
	KeyPlay              = "play"
	KeyPause             = "pause"
	KeyStop              = "stop"
	KeyNext              = "next"
	KeyPrevious          = "previous"
	KeyOpen              = "open"
	KeyAddFile           = "add_file"
	KeyAddURL            = "add_url"
	KeyOpenPlaylist      = "open_playlist"
	KeySavePlaylist      = "save_playlist"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyAudioFormat       = "audio_format"
	KeyMaxParallel       = "max_parallel"
	KeyAutoPlay          = "auto_play"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeySettingsSaved     = "settings_saved"
	KeyDownloadStarted   = "download_started"
	KeyDownloadCompleted = "download_completed"
	KeyResolvingStream   = "resolving_stream"
	KeyExpandingPlaylist = "expanding_playlist"
	KeyPlaylistEmpty     = "playlist_empty"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyInvalidURL        = "invalid_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyAlreadyInQueue    = "already_in_queue"
	KeyReady             = "ready"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "TuneTap",
		KeyPlaylistTitle:     "TuneTap Playlist",
		KeyStream:            "Stream",
		KeyDownload:          "Download",
		KeyPlay:              "Play",
		KeyPause:             "Pause",
		KeyStop:              "Stop",
		KeyNext:              "Next",
		KeyPrevious:          "Previous",
		KeyOpen:              "Open",
		KeyAddFile:           "Add File",
		KeyAddURL:            "Add URL",
		KeyOpenPlaylist:      "Open Playlist",
		KeySavePlaylist:      "Save Playlist",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyAudioFormat:       "Audio Format",
		KeyMaxParallel:       "Max Parallel Downloads",
		KeyAutoPlay:          "Play tracks when added",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "Enter video URL (https://youtube.com/watch?v=...)",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyDownloadStarted:   "Download started",
		KeyDownloadCompleted: "Download completed",
		KeyResolvingStream:   "Resolving audio stream...",
		KeyExpandingPlaylist: "Loading playlist entries...",
		KeyPlaylistEmpty:     "Playlist is empty",
		KeyErrorOpeningFile:  "Error opening file",
		KeyInvalidURL:        "Invalid URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyAlreadyInQueue:    "Already in queue",
		KeyReady:             "Ready",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "TuneTap",
		KeyPlaylistTitle:     "Плейлист TuneTap",
		KeyStream:            "Поток",
		KeyDownload:          "Скачать",
		KeyPlay:              "Играть",
		KeyPause:             "Пауза",
		KeyStop:              "Стоп",
		KeyNext:              "Следующий",
		KeyPrevious:          "Предыдущий",
		KeyOpen:              "Открыть",
		KeyAddFile:           "Добавить файл",
		KeyAddURL:            "Добавить URL",
		KeyOpenPlaylist:      "Открыть плейлист",
		KeySavePlaylist:      "Сохранить плейлист",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузок",
		KeyAudioFormat:       "Формат аудио",
		KeyMaxParallel:       "Макс. параллельных загрузок",
		KeyAutoPlay:          "Играть при добавлении",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "Введите URL видео (https://youtube.com/watch?v=...)",
		KeySettingsSaved:     "Настройки сохранены!",
		KeyDownloadStarted:   "Загрузка началась",
		KeyDownloadCompleted: "Загрузка завершена",
		KeyResolvingStream:   "Получение аудиопотока...",
		KeyExpandingPlaylist: "Загрузка элементов плейлиста...",
		KeyPlaylistEmpty:     "Плейлист пуст",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyInvalidURL:        "Неверный URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyAlreadyInQueue:    "Уже в очереди",
		KeyReady:             "Готово",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "TuneTap",
		KeyPlaylistTitle:     "Playlist TuneTap",
		KeyStream:            "Stream",
		KeyDownload:          "Baixar",
		KeyPlay:              "Tocar",
		KeyPause:             "Pausar",
		KeyStop:              "Parar",
		KeyNext:              "Próxima",
		KeyPrevious:          "Anterior",
		KeyOpen:              "Abrir",
		KeyAddFile:           "Adicionar arquivo",
		KeyAddURL:            "Adicionar URL",
		KeyOpenPlaylist:      "Abrir playlist",
		KeySavePlaylist:      "Salvar playlist",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Pasta de downloads",
		KeyAudioFormat:       "Formato de áudio",
		KeyMaxParallel:       "Downloads paralelos máx.",
		KeyAutoPlay:          "Tocar ao adicionar",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Procurar",
		KeyEnterURL:          "Digite a URL do vídeo (https://youtube.com/watch?v=...)",
		KeySettingsSaved:     "Configurações salvas!",
		KeyDownloadStarted:   "Download iniciado",
		KeyDownloadCompleted: "Download concluído",
		KeyResolvingStream:   "Resolvendo stream de áudio...",
		KeyExpandingPlaylist: "Carregando itens da playlist...",
		KeyPlaylistEmpty:     "A playlist está vazia",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyInvalidURL:        "URL inválida",
		KeyPleaseEnterURL:    "Por favor, insira uma URL",
		KeyAlreadyInQueue:    "Já está na fila",
		KeyReady:             "Pronto",
	}
}
