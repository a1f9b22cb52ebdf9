package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/videorag/rag-desk/internal/api"
	"github.com/videorag/rag-desk/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	client       *api.Client
	window       fyne.Window
	localization *Localization
	onSaved      func()
	dialog       *dialog.ConfirmDialog

	// UI components
	baseURLEntry    *widget.Entry
	topKEntry       *widget.Entry
	sttEntry        *widget.Entry
	listenEntry     *widget.Entry
	reportsDirEntry *widget.Entry
	languageSelect  *widget.Select
	autoSpeakCheck  *widget.Check
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(window fyne.Window, settings *config.Settings, client *api.Client,
	localization *Localization, onSaved func()) *SettingsDialog {

	sd := &SettingsDialog{
		settings:     settings,
		client:       client,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Backend base URL
	sd.baseURLEntry = widget.NewEntry()
	sd.baseURLEntry.SetPlaceHolder(config.DefaultBaseURL)

	// Retrieval depth
	sd.topKEntry = widget.NewEntry()
	sd.topKEntry.SetPlaceHolder(strconv.Itoa(config.MinTopK) + "-" + strconv.Itoa(config.MaxTopK))

	// Speech-to-text endpoint
	sd.sttEntry = widget.NewEntry()
	sd.sttEntry.SetPlaceHolder(config.DefaultSTTEndpoint)

	// Microphone capture window
	sd.listenEntry = widget.NewEntry()
	sd.listenEntry.SetPlaceHolder("1-" + strconv.Itoa(config.MaxListenSeconds))

	// Reports directory with browse button
	sd.reportsDirEntry = widget.NewEntry()
	sd.reportsDirEntry.SetPlaceHolder("Reports directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	reportsDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.reportsDirEntry)

	// Language selection
	languageOptions := []string{}
	languageLabels := sd.settings.GetLanguageOptions()
	for code := range languageLabels {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	// Auto-speak answers
	sd.autoSpeakCheck = widget.NewCheck("Speak answers automatically", nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Backend Settings"),
		widget.NewSeparator(),

		widget.NewLabel("API Base URL:"),
		sd.baseURLEntry,

		widget.NewLabel("Knowledge Base Chunks (top_k):"),
		sd.topKEntry,

		widget.NewSeparator(),
		widget.NewLabel("Voice Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Speech-to-Text Endpoint:"),
		sd.sttEntry,

		widget.NewLabel("Listen Window (seconds):"),
		sd.listenEntry,

		sd.autoSpeakCheck,

		widget.NewSeparator(),
		widget.NewLabel("Interface Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Reports Directory:"),
		reportsDirRow,

		widget.NewLabel("Language:"),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		"Save",
		"Cancel",
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 500))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.baseURLEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.topKEntry.SetText(strconv.Itoa(sd.settings.GetTopK()))
	sd.sttEntry.SetText(sd.settings.GetSTTEndpoint())
	sd.listenEntry.SetText(strconv.Itoa(sd.settings.GetListenSeconds()))
	sd.reportsDirEntry.SetText(sd.settings.GetReportsDirectory())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.autoSpeakCheck.SetChecked(sd.settings.GetAutoSpeakAnswers())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.reportsDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Validate, persist, and apply the base URL through the client so the
	// running session switches backends immediately
	if sd.baseURLEntry.Text != "" {
		if err := sd.client.SetBaseURL(sd.baseURLEntry.Text); err != nil {
			dialog.ShowError(err, sd.window)
			return
		}
	}

	// Retrieval depth, clamped by the settings layer
	if topKStr := sd.topKEntry.Text; topKStr != "" {
		if topK, err := strconv.Atoi(topKStr); err == nil {
			sd.settings.SetTopK(topK)
		}
	}

	if sd.sttEntry.Text != "" {
		sd.settings.SetSTTEndpoint(sd.sttEntry.Text)
	}

	if listenStr := sd.listenEntry.Text; listenStr != "" {
		if seconds, err := strconv.Atoi(listenStr); err == nil {
			sd.settings.SetListenSeconds(seconds)
		}
	}

	if sd.reportsDirEntry.Text != "" {
		sd.settings.SetReportsDirectory(sd.reportsDirEntry.Text)
	}

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	sd.settings.SetAutoSpeakAnswers(sd.autoSpeakCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
