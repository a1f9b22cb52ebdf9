package ui

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/videorag/rag-desk/internal/model"
	"github.com/videorag/rag-desk/internal/platform"
)

// ImageTab is the image analysis tab: image selection with preview, an
// optional question, and the combined OCR plus answer result.
type ImageTab struct {
	ui *RootUI

	selectBtn     *widget.Button
	analyzeBtn    *widget.Button
	downloadBtn   *widget.Button
	clearBtn      *widget.Button
	questionEntry *widget.Entry
	imageLabel    *widget.Label
	preview       *canvas.Image
	previewStack  *fyne.Container
	resultText    *widget.RichText

	// selectedImage is the validated path of the current image, empty when
	// none is selected. Mutated only on the UI thread.
	selectedImage string
	lastAnalysis  *model.ImageAnalysis
	busy          bool
}

// NewImageTab creates the image tab bound to the root UI services.
func NewImageTab(ui *RootUI) *ImageTab {
	tab := &ImageTab{ui: ui}
	tab.buildUI()
	return tab
}

// buildUI creates and arranges the tab's widgets.
func (t *ImageTab) buildUI() {
	loc := t.ui.localization

	t.selectBtn = widget.NewButton(IconImage+" "+loc.GetText(KeySelectImage), t.onSelectImage)
	t.analyzeBtn = widget.NewButton(loc.GetText(KeyAnalyze), t.onAnalyze)
	t.analyzeBtn.Importance = widget.HighImportance
	t.downloadBtn = widget.NewButton(loc.GetText(KeyDownloadReport), t.onDownloadReport)
	t.clearBtn = widget.NewButton(loc.GetText(KeyClear), t.onClear)
	t.clearBtn.Importance = widget.LowImportance

	t.questionEntry = widget.NewEntry()
	t.questionEntry.SetPlaceHolder(loc.GetText(KeyEnterQuestion))
	t.questionEntry.OnSubmitted = func(string) {
		t.onAnalyze()
	}

	t.imageLabel = widget.NewLabel(loc.GetText(KeyDropImageHint))
	t.imageLabel.Truncation = fyne.TextTruncateEllipsis

	t.preview = canvas.NewImageFromResource(nil)
	t.preview.FillMode = canvas.ImageFillContain
	t.preview.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))
	t.preview.Hide()
	t.previewStack = container.NewStack(t.preview)

	t.resultText = widget.NewRichTextFromMarkdown("")
	t.resultText.Wrapping = fyne.TextWrapWord
}

// Content returns the tab's canvas object.
func (t *ImageTab) Content() fyne.CanvasObject {
	selectRow := container.NewBorder(nil, nil, t.selectBtn, nil, t.imageLabel)
	questionRow := container.NewBorder(nil, nil, nil, t.analyzeBtn, t.questionEntry)
	actionRow := container.NewHBox(t.downloadBtn, t.clearBtn)

	top := container.NewVBox(selectRow, t.previewStack, questionRow, actionRow)

	return container.NewBorder(
		top,
		nil,
		nil,
		nil,
		container.NewScroll(t.resultText),
	)
}

// refreshTexts updates widget texts after a language change.
func (t *ImageTab) refreshTexts() {
	loc := t.ui.localization
	t.selectBtn.SetText(IconImage + " " + loc.GetText(KeySelectImage))
	t.analyzeBtn.SetText(loc.GetText(KeyAnalyze))
	t.downloadBtn.SetText(loc.GetText(KeyDownloadReport))
	t.clearBtn.SetText(loc.GetText(KeyClear))
	t.questionEntry.SetPlaceHolder(loc.GetText(KeyEnterQuestion))
	if t.selectedImage == "" {
		t.imageLabel.SetText(loc.GetText(KeyDropImageHint))
	}
}

// onSelectImage opens a file picker restricted to supported image types.
func (t *ImageTab) onSelectImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		t.SetImage(path)
	}, t.ui.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(platform.AllowedImageExtensions))
	fileDialog.Show()
}

// SetImage validates and selects an image for analysis. A rejected file
// leaves the current selection unchanged.
func (t *ImageTab) SetImage(path string) {
	if err := platform.ValidateImageFile(path); err != nil {
		log.Printf("Image rejected: %v", err)
		t.ui.showNotification(t.ui.localization.GetText(KeyImageRejected)+": "+err.Error(), false)
		return
	}

	t.selectedImage = path
	t.lastAnalysis = nil

	t.preview.File = path
	t.preview.Show()
	t.preview.Refresh()

	label := filepath.Base(path)
	if info, err := os.Stat(path); err == nil {
		label = fmt.Sprintf("%s (%s)", label, platform.FormatFileSize(info.Size()))
	}
	t.imageLabel.SetText(label)

	log.Printf("Image selected: %s", path)
}

// SelectedImage returns the path of the currently selected image, or "".
func (t *ImageTab) SelectedImage() string {
	return t.selectedImage
}

// onAnalyze uploads the selected image with the optional question.
func (t *ImageTab) onAnalyze() {
	loc := t.ui.localization

	if t.selectedImage == "" {
		t.ui.showNotification(loc.GetText(KeyPleaseSelectImage), false)
		return
	}
	if t.busy {
		t.ui.showNotification(loc.GetText(KeyBusy), false)
		return
	}

	question := strings.TrimSpace(t.questionEntry.Text)
	imagePath := t.selectedImage

	t.busy = true
	t.ui.showNotification(loc.GetText(KeyAnalyzing), true)
	log.Printf("Analyzing image: %s (question: %d chars)", filepath.Base(imagePath), len(question))

	go func() {
		analysis, err := t.ui.client.ImageQuery(context.Background(), imagePath, question, t.ui.settings.GetTopK())

		fyne.Do(func() {
			t.busy = false
			t.ui.hideNotification()

			if err != nil {
				log.Printf("Image analysis failed: %v", err)
				t.ui.showNotification(err.Error(), false)
				return
			}

			t.lastAnalysis = analysis
			t.renderAnalysis(analysis)
			t.ui.showNotification(loc.GetText(KeyAnalysisComplete), false)
			t.ui.app.SendNotification(&fyne.Notification{
				Title:   loc.GetText(KeyAppTitle),
				Content: loc.GetText(KeyAnalysisComplete),
			})

			if t.ui.settings.GetAutoSpeakAnswers() && strings.TrimSpace(analysis.Answer) != "" {
				t.ui.speakText(AnswerPlainText(analysis.Answer))
			}
		})
	}()
}

// renderAnalysis shows the extracted text and answer sections.
func (t *ImageTab) renderAnalysis(analysis *model.ImageAnalysis) {
	loc := t.ui.localization

	var b strings.Builder
	b.WriteString("## " + loc.GetText(KeyExtractedText) + "\n\n")
	if analysis.HasText() {
		b.WriteString(strings.TrimSpace(analysis.ExtractedText) + "\n\n")
	} else {
		b.WriteString(model.NoTextFound + "\n\n")
	}

	if strings.TrimSpace(analysis.Answer) != "" {
		b.WriteString("## " + loc.GetText(KeyAnswer) + "\n\n")
		b.WriteString(FormatAnswerMarkdown(analysis.Answer) + "\n")
		if analysis.ChunksUsed > 0 {
			b.WriteString("\n*" + chunkCountText(analysis.ChunksUsed) + "*\n")
		}
	}

	t.resultText.ParseMarkdown(b.String())
}

// onDownloadReport saves the last analysis as a plain text report.
func (t *ImageTab) onDownloadReport() {
	loc := t.ui.localization

	if t.lastAnalysis == nil {
		t.ui.showNotification(loc.GetText(KeyNothingToDownload), false)
		return
	}

	report := model.NewReport(filepath.Base(t.selectedImage), *t.lastAnalysis)
	path, err := platform.SaveReportFile(t.ui.settings.GetReportsDirectory(), report.SuggestedFilename(), report.Render())
	if err != nil {
		log.Printf("Failed to save report: %v", err)
		t.ui.showNotification(err.Error(), false)
		return
	}

	log.Printf("Report saved: %s", path)
	t.ui.showSavedToast(loc.GetText(KeyReportSaved), filepath.Base(path), path)
}

// onClear resets the tab to its initial state.
func (t *ImageTab) onClear() {
	t.selectedImage = ""
	t.lastAnalysis = nil
	t.questionEntry.SetText("")
	t.preview.File = ""
	t.preview.Hide()
	t.imageLabel.SetText(t.ui.localization.GetText(KeyDropImageHint))
	t.resultText.ParseMarkdown("")
	t.ui.hideNotification()
}
