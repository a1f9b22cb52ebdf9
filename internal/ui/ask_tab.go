package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AskTab is the text and voice question tab: a query entry, action buttons,
// and a rich text answer area.
type AskTab struct {
	ui *RootUI

	queryEntry  *widget.Entry
	askBtn      *widget.Button
	voiceBtn    *widget.Button
	speakBtn    *widget.Button
	copyBtn     *widget.Button
	clearBtn    *widget.Button
	answerText  *widget.RichText
	chunksLabel *widget.Label

	// lastAnswer holds the raw answer text for Speak and Copy. Mutated only
	// on the UI thread.
	lastAnswer string
	busy       bool
}

// NewAskTab creates the question tab bound to the root UI services.
func NewAskTab(ui *RootUI) *AskTab {
	tab := &AskTab{ui: ui}
	tab.buildUI()
	return tab
}

// buildUI creates and arranges the tab's widgets.
func (t *AskTab) buildUI() {
	loc := t.ui.localization

	t.queryEntry = widget.NewEntry()
	t.queryEntry.SetPlaceHolder(loc.GetText(KeyEnterQuestion))
	// Trigger the query when the user presses Enter in the field
	t.queryEntry.OnSubmitted = func(string) {
		t.onAsk()
	}

	t.askBtn = widget.NewButton(loc.GetText(KeyAsk), t.onAsk)
	t.askBtn.Importance = widget.HighImportance
	t.voiceBtn = widget.NewButton(IconMic+" "+loc.GetText(KeyVoice), t.onVoice)
	t.speakBtn = widget.NewButton(IconSpeak+" "+loc.GetText(KeySpeak), t.onSpeak)
	t.copyBtn = widget.NewButton(IconCopy+" "+loc.GetText(KeyCopy), t.onCopy)
	t.clearBtn = widget.NewButton(loc.GetText(KeyClear), t.onClear)
	t.clearBtn.Importance = widget.LowImportance

	t.answerText = widget.NewRichTextFromMarkdown("")
	t.answerText.Wrapping = fyne.TextWrapWord

	t.chunksLabel = widget.NewLabel("")
	t.chunksLabel.TextStyle = fyne.TextStyle{Italic: true}
	t.chunksLabel.Hide()
}

// Content returns the tab's canvas object.
func (t *AskTab) Content() fyne.CanvasObject {
	queryRow := container.NewBorder(nil, nil, nil, container.NewHBox(t.voiceBtn, t.askBtn), t.queryEntry)
	actionRow := container.NewHBox(t.speakBtn, t.copyBtn, t.clearBtn)

	return container.NewBorder(
		container.NewVBox(queryRow, actionRow), // top
		t.chunksLabel,                          // bottom
		nil,
		nil,
		container.NewScroll(t.answerText), // center
	)
}

// refreshTexts updates widget texts after a language change.
func (t *AskTab) refreshTexts() {
	loc := t.ui.localization
	t.queryEntry.SetPlaceHolder(loc.GetText(KeyEnterQuestion))
	t.askBtn.SetText(loc.GetText(KeyAsk))
	t.voiceBtn.SetText(IconMic + " " + loc.GetText(KeyVoice))
	t.speakBtn.SetText(IconSpeak + " " + loc.GetText(KeySpeak))
	t.copyBtn.SetText(IconCopy + " " + loc.GetText(KeyCopy))
	t.clearBtn.SetText(loc.GetText(KeyClear))
}

// onAsk sends the typed question to the backend.
func (t *AskTab) onAsk() {
	query := strings.TrimSpace(t.queryEntry.Text)
	if query == "" {
		t.ui.showNotification(t.ui.localization.GetText(KeyPleaseEnterQuery), false)
		return
	}
	if t.busy {
		t.ui.showNotification(t.ui.localization.GetText(KeyBusy), false)
		return
	}

	t.busy = true
	t.ui.showNotification(t.ui.localization.GetText(KeyThinking), true)
	log.Printf("Sending text query: %d chars", len(query))

	go func() {
		result, err := t.ui.client.QueryText(context.Background(), query, t.ui.settings.GetTopK())

		fyne.Do(func() {
			t.busy = false
			t.ui.hideNotification()

			if err != nil {
				log.Printf("Text query failed: %v", err)
				t.ui.showNotification(err.Error(), false)
				return
			}

			t.setAnswer(result.Answer, result.ChunksUsed)

			if t.ui.settings.GetAutoSpeakAnswers() {
				t.onSpeak()
			}
		})
	}()
}

// onVoice captures a spoken question, fills the entry, and submits it.
func (t *AskTab) onVoice() {
	loc := t.ui.localization

	if !t.ui.speech.MicrophoneAvailable() {
		t.ui.showNotification(loc.GetText(KeyMicUnavailable), false)
		return
	}
	if t.busy {
		t.ui.showNotification(loc.GetText(KeyBusy), false)
		return
	}

	t.busy = true
	t.ui.showNotification(loc.GetText(KeyListening), true)

	// The timeout covers the capture window plus transcription round trip
	timeout := time.Duration(t.ui.settings.GetListenSeconds())*time.Second + VoiceTimeoutGrace

	go func() {
		transcript, err := t.ui.speech.RecognizeWithTimeout(context.Background(), timeout)

		fyne.Do(func() {
			t.busy = false
			t.ui.hideNotification()

			if err != nil {
				log.Printf("Voice input failed: %v", err)
				t.ui.showNotification(t.ui.speechErrorText(err), false)
				return
			}

			t.queryEntry.SetText(transcript)
			t.onAsk()
		})
	}()
}

// onSpeak converts the last answer to speech and plays it.
func (t *AskTab) onSpeak() {
	loc := t.ui.localization

	if strings.TrimSpace(t.lastAnswer) == "" {
		t.ui.showNotification(loc.GetText(KeyNoAnswerToSpeak), false)
		return
	}

	text := AnswerPlainText(t.lastAnswer)
	t.ui.speakText(text)
}

// onCopy copies the last answer to the clipboard as plain text.
func (t *AskTab) onCopy() {
	loc := t.ui.localization

	if strings.TrimSpace(t.lastAnswer) == "" {
		t.ui.showNotification(loc.GetText(KeyNothingToCopy), false)
		return
	}

	clipboard := fyne.CurrentApp().Clipboard()
	if clipboard == nil {
		t.ui.showNotification(loc.GetText(KeyClipboardMissing), false)
		return
	}

	clipboard.SetContent(AnswerPlainText(t.lastAnswer))
	t.ui.showNotification(loc.GetText(KeyCopied), false)
}

// onClear resets the tab to its initial state.
func (t *AskTab) onClear() {
	t.queryEntry.SetText("")
	t.setAnswer("", 0)
	t.ui.hideNotification()
}

// setAnswer renders the answer markdown and remembers the raw text for
// Speak and Copy.
func (t *AskTab) setAnswer(answer string, chunksUsed int) {
	t.lastAnswer = answer
	t.answerText.ParseMarkdown(FormatAnswerMarkdown(answer))

	if chunksUsed > 0 {
		t.chunksLabel.SetText(chunkCountText(chunksUsed))
		t.chunksLabel.Show()
	} else {
		t.chunksLabel.SetText("")
		t.chunksLabel.Hide()
	}
}
