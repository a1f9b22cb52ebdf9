package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"

	"github.com/videorag/rag-desk/internal/api"
	"github.com/videorag/rag-desk/internal/config"
	"github.com/videorag/rag-desk/internal/platform"
	"github.com/videorag/rag-desk/internal/speech"
	"github.com/videorag/rag-desk/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.videorag.rag-desk"
	AppName = "RAG Desk"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Load optional .env so RAG_DESK_API_URL and friends work in development
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	reportsDir := settings.GetReportsDirectory()
	if err := platform.CreateDirectoryIfNotExists(reportsDir); err != nil {
		log.Printf("Failed to ensure reports dir: %v", err)
	}

	client := api.NewClient(settings.GetAPIBaseURL(), settings)

	recorder := speech.NewRecorder("")
	transcriber := speech.NewHTTPTranscriber(settings.GetSTTEndpoint())
	window := time.Duration(settings.GetListenSeconds()) * time.Second
	recognizer := speech.NewMicRecognizer(recorder, transcriber, window)
	speechSvc := speech.NewService(recognizer)

	player := platform.NewAudioPlayer()
	defer player.Release()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, settings, client, speechSvc, player)

	// Show and run
	myWindow.ShowAndRun()
}
