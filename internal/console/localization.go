package console

import (
	"fmt"
	"strings"

	"github.com/jeandeaual/go-locale"
)

// Localization manages console text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
	systemLanguage  func() (string, error)
}

// Text keys for localization
const (
	KeyPromptURL     = "prompt_url"
	KeyPromptFolder  = "prompt_folder"
	KeyPromptChoice  = "prompt_choice"
	KeyFetching      = "fetching"
	KeyResolutions   = "resolutions"
	KeyDownloadingIn = "downloading_in"
	KeyFinishedMerge = "finished_merge"
	KeySavedTo       = "saved_to"
	KeySavedFile     = "saved_file"
	KeyLowSpace      = "low_space"
	KeyInstalling    = "installing"
	KeyRevealFailed  = "reveal_failed"
	KeyConfigSaved   = "config_saved"
	KeyErrFFmpeg     = "err_ffmpeg"
	KeyErrYTDLP      = "err_ytdlp"
	KeyErrNoURL      = "err_no_url"
	KeyErrFolder     = "err_folder"
	KeyErrFetch      = "err_fetch"
	KeyErrNoFormats  = "err_no_formats"
	KeyErrSelection  = "err_selection"
	KeyErrDownload   = "err_download"
	KeyErrCanceled   = "err_canceled"
	KeyErrUnexpected = "err_unexpected"
	KeyErrInstall    = "err_install"
	KeyErrConfig     = "err_config"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEnglish,
		texts:           make(map[string]map[string]string),
		systemLanguage:  locale.GetLanguage,
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" resolves the OS language
// and unknown languages keep the current one.
func (l *Localization) SetLanguage(lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == LangSystem {
		sys, err := l.systemLanguage()
		if err != nil {
			return
		}
		lang = normalizeLanguage(sys)
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// normalizeLanguage reduces "pt_BR", "ru-RU" and the like to the base code.
func normalizeLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_."); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if text, found := l.texts[l.currentLanguage][key]; found {
		return text
	}
	if text, found := l.texts[LangEnglish][key]; found {
		return text
	}
	return key
}

// Textf formats the localized text for key with args.
func (l *Localization) Textf(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEnglish: "English",
		LangRussian: "Русский",
		LangPortug:  "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts[LangEnglish] = map[string]string{
		KeyPromptURL:     "Enter the YouTube URL: ",
		KeyPromptFolder:  "Enter folder to save the video (leave blank for Downloads folder): ",
		KeyPromptChoice:  "Choose resolution number: ",
		KeyFetching:      "Fetching video info...",
		KeyResolutions:   "Available Resolutions:",
		KeyDownloadingIn: "Downloading in %s...",
		KeyFinishedMerge: "Finished downloading. Merging...",
		KeySavedTo:       "Video saved to: %s",
		KeySavedFile:     "File: %s",
		KeyLowSpace:      "Only %s free in %s",
		KeyInstalling:    "Installing yt-dlp...",
		KeyRevealFailed:  "Could not open the file manager",
		KeyConfigSaved:   "Settings saved to %s",
		KeyErrFFmpeg:     "FFmpeg not found. Install it and add to PATH: %s",
		KeyErrYTDLP:      "yt-dlp not found. Install it and add to PATH, or run with -install",
		KeyErrNoURL:      "No URL provided.",
		KeyErrFolder:     "Error creating folder",
		KeyErrFetch:      "Failed to fetch video info",
		KeyErrNoFormats:  "No MP4 video formats found.",
		KeyErrSelection:  "Invalid selection.",
		KeyErrDownload:   "Download failed",
		KeyErrCanceled:   "Canceled",
		KeyErrUnexpected: "Unexpected error",
		KeyErrInstall:    "Failed to install yt-dlp",
		KeyErrConfig:     "Invalid settings",
	}

	l.texts[LangRussian] = map[string]string{
		KeyPromptURL:     "Введите URL YouTube: ",
		KeyPromptFolder:  "Введите папку для сохранения видео (пусто для папки Загрузки): ",
		KeyPromptChoice:  "Выберите номер разрешения: ",
		KeyFetching:      "Получение информации о видео...",
		KeyResolutions:   "Доступные разрешения:",
		KeyDownloadingIn: "Загрузка в %s...",
		KeyFinishedMerge: "Загрузка завершена. Объединение...",
		KeySavedTo:       "Видео сохранено в: %s",
		KeySavedFile:     "Файл: %s",
		KeyLowSpace:      "Свободно только %s в %s",
		KeyInstalling:    "Установка yt-dlp...",
		KeyRevealFailed:  "Не удалось открыть файловый менеджер",
		KeyConfigSaved:   "Настройки сохранены в %s",
		KeyErrFFmpeg:     "FFmpeg не найден. Установите его и добавьте в PATH: %s",
		KeyErrYTDLP:      "yt-dlp не найден. Установите его и добавьте в PATH или запустите с -install",
		KeyErrNoURL:      "URL не указан.",
		KeyErrFolder:     "Ошибка создания папки",
		KeyErrFetch:      "Не удалось получить информацию о видео",
		KeyErrNoFormats:  "Видеоформаты MP4 не найдены.",
		KeyErrSelection:  "Неверный выбор.",
		KeyErrDownload:   "Ошибка загрузки",
		KeyErrCanceled:   "Отменено",
		KeyErrUnexpected: "Непредвиденная ошибка",
		KeyErrInstall:    "Не удалось установить yt-dlp",
		KeyErrConfig:     "Неверные настройки",
	}

	l.texts[LangPortug] = map[string]string{
		KeyPromptURL:     "Digite a URL do YouTube: ",
		KeyPromptFolder:  "Digite a pasta para salvar o vídeo (em branco para a pasta Downloads): ",
		KeyPromptChoice:  "Escolha o número da resolução: ",
		KeyFetching:      "Obtendo informações do vídeo...",
		KeyResolutions:   "Resoluções disponíveis:",
		KeyDownloadingIn: "Baixando em %s...",
		KeyFinishedMerge: "Download concluído. Mesclando...",
		KeySavedTo:       "Vídeo salvo em: %s",
		KeySavedFile:     "Arquivo: %s",
		KeyLowSpace:      "Apenas %s livres em %s",
		KeyInstalling:    "Instalando yt-dlp...",
		KeyRevealFailed:  "Não foi possível abrir o gerenciador de arquivos",
		KeyConfigSaved:   "Configurações salvas em %s",
		KeyErrFFmpeg:     "FFmpeg não encontrado. Instale-o e adicione ao PATH: %s",
		KeyErrYTDLP:      "yt-dlp não encontrado. Instale-o e adicione ao PATH, ou execute com -install",
		KeyErrNoURL:      "Nenhuma URL fornecida.",
		KeyErrFolder:     "Erro ao criar a pasta",
		KeyErrFetch:      "Falha ao obter informações do vídeo",
		KeyErrNoFormats:  "Nenhum formato de vídeo MP4 encontrado.",
		KeyErrSelection:  "Seleção inválida.",
		KeyErrDownload:   "Falha no download",
		KeyErrCanceled:   "Cancelado",
		KeyErrUnexpected: "Erro inesperado",
		KeyErrInstall:    "Falha ao instalar o yt-dlp",
		KeyErrConfig:     "Configurações inválidas",
	}
}
