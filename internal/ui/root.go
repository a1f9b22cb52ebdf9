package ui

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/videorag/rag-desk/internal/api"
	"github.com/videorag/rag-desk/internal/config"
	"github.com/videorag/rag-desk/internal/platform"
	"github.com/videorag/rag-desk/internal/speech"
)

// Health probe timeout for connection checks
const healthCheckTimeout = 5 * time.Second

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	client       *api.Client
	speech       *speech.Service
	player       *platform.AudioPlayer
	localization *Localization

	tabs     *container.AppTabs
	askTab   *AskTab
	imageTab *ImageTab

	statusLabel *widget.Label

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// ttsBusy guards against overlapping speech generation. Mutated only on
	// the UI thread.
	ttsBusy bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings,
	client *api.Client, speechSvc *speech.Service, player *platform.AudioPlayer) *RootUI {

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		client:       client,
		speech:       speechSvc,
		player:       player,
		localization: localization,
	}

	log.Printf("RootUI initialized with backend %s", client.BaseURL())

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.checkBackend()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Backend status indicator in the header
	ui.statusLabel = widget.NewLabel(IconOffline + " " + ui.localization.GetText(KeyCheckingBackend))

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, settingsBtn, ui.statusLabel)

	// Notification panel under the header (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Truncation = fyne.TextTruncateEllipsis
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	top := container.NewVBox(header, ui.notificationContainer)

	// Tabs
	ui.askTab = NewAskTab(ui)
	ui.imageTab = NewImageTab(ui)

	ui.tabs = container.NewAppTabs(
		container.NewTabItem(ui.localization.GetText(KeyTabAsk), ui.askTab.Content()),
		container.NewTabItem(ui.localization.GetText(KeyTabImage), ui.imageTab.Content()),
	)

	content := container.NewBorder(
		top, // top
		nil, // bottom
		nil, // left
		nil, // right
		ui.tabs,
	)

	ui.window.SetContent(content)

	// Dropping an image anywhere selects it in the image tab
	ui.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if len(uris) == 0 {
			return
		}
		path := uris[0].Path()
		log.Printf("Image dropped: %s", path)
		ui.tabs.SelectIndex(1)
		ui.imageTab.SetImage(path)
	})

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	checkItem := fyne.NewMenuItem(ui.localization.GetText(KeyCheckConnection), ui.checkBackend)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, checkItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.tabs.Items[0].Text = ui.localization.GetText(KeyTabAsk)
	ui.tabs.Items[1].Text = ui.localization.GetText(KeyTabImage)
	ui.tabs.Refresh()

	ui.askTab.refreshTexts()
	ui.imageTab.refreshTexts()
}

// showNotification displays a message in the notification panel under the
// header. When spinning is true, a spinner indicates background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.window, ui.settings, ui.client, ui.localization, func() {
		// The backend may have moved; re-probe it
		ui.checkBackend()
	}).Show()
}

// checkBackend probes the backend health endpoint in the background and
// updates the status indicator.
func (ui *RootUI) checkBackend() {
	ui.showNotification(ui.localization.GetText(KeyCheckingBackend), true)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()

		online := ui.client.IsOnline(ctx)

		fyne.Do(func() {
			ui.hideNotification()
			if online {
				ui.statusLabel.SetText(IconOnline + " " + ui.localization.GetText(KeyBackendOnline))
			} else {
				ui.statusLabel.SetText(IconOffline + " " + ui.localization.GetText(KeyBackendOffline))
				ui.showNotification(ui.localization.GetText(KeyBackendOffline), false)
			}
			log.Printf("Backend check: online=%v", online)
		})
	}()
}

// speakText generates speech for the text and plays it. At most one speech
// generation runs at a time.
func (ui *RootUI) speakText(text string) {
	if ui.ttsBusy {
		ui.showNotification(ui.localization.GetText(KeyBusy), false)
		return
	}

	ui.ttsBusy = true
	ui.showNotification(ui.localization.GetText(KeyGeneratingSpeech), true)

	go func() {
		audio, err := ui.client.TextToSpeech(context.Background(), text)

		fyne.Do(func() {
			ui.ttsBusy = false
			ui.hideNotification()
			if err != nil {
				log.Printf("Speech generation failed: %v", err)
				ui.showNotification(err.Error(), false)
			}
		})

		if err != nil {
			return
		}

		// Playback blocks until the clip ends; keep it off the UI thread
		if err := ui.player.Play(audio); err != nil {
			log.Printf("Audio playback failed: %v", err)
			ui.showNotification(err.Error(), false)
		}
	}()
}

// speechErrorText maps a recognition failure to a user-facing message.
func (ui *RootUI) speechErrorText(err error) string {
	loc := ui.localization
	switch speech.KindOf(err) {
	case speech.KindUnsupported, speech.KindNoMicrophone:
		return loc.GetText(KeyMicUnavailable)
	case speech.KindPermissionDenied:
		return loc.GetText(KeyMicPermission)
	case speech.KindNoSpeech:
		return loc.GetText(KeyNoSpeechHeard)
	case speech.KindTimeout:
		return loc.GetText(KeyVoiceTimeout)
	case speech.KindAlreadyListening:
		return loc.GetText(KeyBusy)
	default:
		return err.Error()
	}
}

// showSavedToast shows a toast with Open and Reveal actions for a saved file,
// plus a system notification.
func (ui *RootUI) showSavedToast(title, message, path string) {
	ui.app.SendNotification(&fyne.Notification{
		Title:   title,
		Content: message,
	})

	titleLabel := widget.NewLabel(title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(message)
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
		if err := platform.OpenFileWithDefaultApp(path); err != nil {
			log.Printf("Error opening file %s: %v", path, err)
			ui.showNotification(err.Error(), false)
		}
	})
	openBtn.Importance = widget.HighImportance

	revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() {
		if err := platform.OpenFileInManager(path); err != nil {
			log.Printf("Error revealing file %s: %v", path, err)
			ui.showNotification(err.Error(), false)
		}
	})
	revealBtn.Importance = widget.MediumImportance

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	actions := container.NewHBox(openBtn, revealBtn)
	content := container.NewVBox(
		header,
		messageLabel,
		actions,
	)

	toastPopup = widget.NewModalPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

	toastPopup.Resize(toastSize)
	toastPopup.Move(toastPos)
	toastPopup.Show()

	// Auto-hide after configured time
	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(func() {
			if toastPopup != nil {
				toastPopup.Hide()
			}
		})
	}()
}
