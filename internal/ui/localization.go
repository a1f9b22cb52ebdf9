package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyTabAsk            = "tab_ask"
	KeyTabImage          = "tab_image"
	KeyEnterQuestion     = "enter_question"
	KeyAsk               = "ask"
	KeyVoice             = "voice"
	KeySpeak             = "speak"
	KeyCopy              = "copy"
	KeyClear             = "clear"
	KeySelectImage       = "select_image"
	KeyAnalyze           = "analyze"
	KeyDownloadReport    = "download_report"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyOpen              = "open"
	KeyReveal            = "reveal"
	KeyThinking          = "thinking"
	KeyListening         = "listening"
	KeyAnalyzing         = "analyzing"
	KeyGeneratingSpeech  = "generating_speech"
	KeyCheckingBackend   = "checking_backend"
	KeyBackendOnline     = "backend_online"
	KeyBackendOffline    = "backend_offline"
	KeyPleaseEnterQuery  = "please_enter_query"
	KeyPleaseSelectImage = "please_select_image"
	KeyNoAnswerToSpeak   = "no_answer_to_speak"
	KeyNothingToCopy     = "nothing_to_copy"
	KeyCopied            = "copied"
	KeyClipboardMissing  = "clipboard_missing"
	KeyReportSaved       = "report_saved"
	KeyNothingToDownload = "nothing_to_download"
	KeyAnalysisComplete  = "analysis_complete"
	KeyImageRejected     = "image_rejected"
	KeyMicUnavailable    = "mic_unavailable"
	KeyMicPermission     = "mic_permission"
	KeyNoSpeechHeard     = "no_speech_heard"
	KeyVoiceTimeout      = "voice_timeout"
	KeyDropImageHint     = "drop_image_hint"
	KeyExtractedText     = "extracted_text"
	KeyAnswer            = "answer"
	KeyCheckConnection   = "check_connection"
	KeyBusy              = "busy"
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
		"es": "Español",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "RAG Desk",
		KeyTabAsk:            "Ask",
		KeyTabImage:          "Image",
		KeyEnterQuestion:     "Ask a question about the knowledge base...",
		KeyAsk:               "Ask",
		KeyVoice:             "Voice",
		KeySpeak:             "Speak",
		KeyCopy:              "Copy",
		KeyClear:             "Clear",
		KeySelectImage:       "Select Image",
		KeyAnalyze:           "Analyze",
		KeyDownloadReport:    "Download Report",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyOpen:              "Open",
		KeyReveal:            "Reveal",
		KeyThinking:          "Thinking...",
		KeyListening:         "Listening...",
		KeyAnalyzing:         "Analyzing image...",
		KeyGeneratingSpeech:  "Generating speech...",
		KeyCheckingBackend:   "Checking backend...",
		KeyBackendOnline:     "Backend online",
		KeyBackendOffline:    "Backend unreachable",
		KeyPleaseEnterQuery:  "Please enter a question",
		KeyPleaseSelectImage: "Please select an image first",
		KeyNoAnswerToSpeak:   "No answer to speak yet",
		KeyNothingToCopy:     "Nothing to copy yet",
		KeyCopied:            "Copied to clipboard",
		KeyClipboardMissing:  "Clipboard is not available",
		KeyReportSaved:       "Report saved",
		KeyNothingToDownload: "No analysis to download yet",
		KeyAnalysisComplete:  "Image analysis complete",
		KeyImageRejected:     "Image rejected",
		KeyMicUnavailable:    "Microphone is not available",
		KeyMicPermission:     "Microphone access was denied",
		KeyNoSpeechHeard:     "No speech detected, please try again",
		KeyVoiceTimeout:      "Voice input timed out",
		KeyDropImageHint:     "Drop an image here or click Select Image",
		KeyExtractedText:     "Extracted text",
		KeyAnswer:            "Answer",
		KeyCheckConnection:   "Check Connection",
		KeyBusy:              "Another request is in progress",
	}

	// Spanish texts
	l.texts["es"] = map[string]string{
		KeyAppTitle:          "RAG Desk",
		KeyTabAsk:            "Preguntar",
		KeyTabImage:          "Imagen",
		KeyEnterQuestion:     "Haz una pregunta sobre la base de conocimiento...",
		KeyAsk:               "Preguntar",
		KeyVoice:             "Voz",
		KeySpeak:             "Hablar",
		KeyCopy:              "Copiar",
		KeyClear:             "Limpiar",
		KeySelectImage:       "Seleccionar imagen",
		KeyAnalyze:           "Analizar",
		KeyDownloadReport:    "Descargar informe",
		KeySettings:          "Configuración",
		KeyFile:              "Archivo",
		KeyLanguage:          "Idioma",
		KeyOpen:              "Abrir",
		KeyReveal:            "Mostrar",
		KeyThinking:          "Pensando...",
		KeyListening:         "Escuchando...",
		KeyAnalyzing:         "Analizando imagen...",
		KeyGeneratingSpeech:  "Generando voz...",
		KeyCheckingBackend:   "Comprobando servidor...",
		KeyBackendOnline:     "Servidor en línea",
		KeyBackendOffline:    "Servidor inaccesible",
		KeyPleaseEnterQuery:  "Introduce una pregunta",
		KeyPleaseSelectImage: "Selecciona una imagen primero",
		KeyNoAnswerToSpeak:   "Aún no hay respuesta que hablar",
		KeyNothingToCopy:     "Nada que copiar todavía",
		KeyCopied:            "Copiado al portapapeles",
		KeyClipboardMissing:  "El portapapeles no está disponible",
		KeyReportSaved:       "Informe guardado",
		KeyNothingToDownload: "Aún no hay análisis que descargar",
		KeyAnalysisComplete:  "Análisis de imagen completado",
		KeyImageRejected:     "Imagen rechazada",
		KeyMicUnavailable:    "El micrófono no está disponible",
		KeyMicPermission:     "Se denegó el acceso al micrófono",
		KeyNoSpeechHeard:     "No se detectó voz, inténtalo de nuevo",
		KeyVoiceTimeout:      "La entrada de voz expiró",
		KeyDropImageHint:     "Arrastra una imagen aquí o pulsa Seleccionar imagen",
		KeyExtractedText:     "Texto extraído",
		KeyAnswer:            "Respuesta",
		KeyCheckConnection:   "Comprobar conexión",
		KeyBusy:              "Otra petición está en curso",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "RAG Desk",
		KeyTabAsk:            "Вопрос",
		KeyTabImage:          "Изображение",
		KeyEnterQuestion:     "Задайте вопрос по базе знаний...",
		KeyAsk:               "Спросить",
		KeyVoice:             "Голос",
		KeySpeak:             "Озвучить",
		KeyCopy:              "Копировать",
		KeyClear:             "Очистить",
		KeySelectImage:       "Выбрать изображение",
		KeyAnalyze:           "Анализировать",
		KeyDownloadReport:    "Скачать отчёт",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyOpen:              "Открыть",
		KeyReveal:            "Показать",
		KeyThinking:          "Думаю...",
		KeyListening:         "Слушаю...",
		KeyAnalyzing:         "Анализ изображения...",
		KeyGeneratingSpeech:  "Генерация речи...",
		KeyCheckingBackend:   "Проверка сервера...",
		KeyBackendOnline:     "Сервер доступен",
		KeyBackendOffline:    "Сервер недоступен",
		KeyPleaseEnterQuery:  "Введите вопрос",
		KeyPleaseSelectImage: "Сначала выберите изображение",
		KeyNoAnswerToSpeak:   "Пока нечего озвучивать",
		KeyNothingToCopy:     "Пока нечего копировать",
		KeyCopied:            "Скопировано в буфер обмена",
		KeyClipboardMissing:  "Буфер обмена недоступен",
		KeyReportSaved:       "Отчёт сохранён",
		KeyNothingToDownload: "Пока нет анализа для скачивания",
		KeyAnalysisComplete:  "Анализ изображения завершён",
		KeyImageRejected:     "Изображение отклонено",
		KeyMicUnavailable:    "Микрофон недоступен",
		KeyMicPermission:     "Доступ к микрофону запрещён",
		KeyNoSpeechHeard:     "Речь не распознана, попробуйте ещё раз",
		KeyVoiceTimeout:      "Время голосового ввода истекло",
		KeyDropImageHint:     "Перетащите изображение сюда или нажмите «Выбрать изображение»",
		KeyExtractedText:     "Извлечённый текст",
		KeyAnswer:            "Ответ",
		KeyCheckConnection:   "Проверить соединение",
		KeyBusy:              "Другой запрос уже выполняется",
	}
}
