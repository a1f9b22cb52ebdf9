package api

// Package api implements the HTTP bindings to the RAG backend: health check,
// text query, OCR extraction, image query, and text-to-speech. Every call is
// a single attempt with no retries; failures are normalized into *Error with
// the server-provided message when one is available.
