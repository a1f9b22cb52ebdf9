package model

// Package model defines domain data structures shared across the app: backend
// query results, OCR extractions, image analyses, health snapshots, and the
// downloadable analysis report. Structures are designed for direct rendering
// in the UI without further mapping.
