// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package loader reads submitted files from disk and turns them into plain
// text documents for ingestion.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"getgsa/internal/ingest"
	"getgsa/internal/model"
	"getgsa/internal/observability"
)

// DefaultMaxFileSize bounds how much of a single file is read
const DefaultMaxFileSize = 20 * 1024 * 1024

// Extractor returns the text content of one file
type Extractor func(ctx context.Context, path string) (string, error)

// Loader dispatches files to an extractor by extension
type Loader struct {
	MaxFileSize int64
	extractors  map[string]Extractor
	observer    *observability.StandardObserver
}

// New returns a loader with text, PDF and XLSX support. A nil observer
// discards timing logs.
func New(observer *observability.StandardObserver) *Loader {
	if observer == nil {
		observer = observability.NewStandardObserver(nil)
	}
	l := &Loader{
		MaxFileSize: DefaultMaxFileSize,
		extractors:  make(map[string]Extractor),
		observer:    observer,
	}
	for _, ext := range []string{".txt", ".text", ".md", ".csv"} {
		l.Register(ext, readText)
	}
	l.Register(".pdf", readPDF)
	l.Register(".xlsx", readXLSX)
	return l
}

// Register sets the extractor for a file extension
func (l *Loader) Register(ext string, fn Extractor) {
	l.extractors[strings.ToLower(ext)] = fn
}

// SupportedExtensions lists the registered extensions, sorted
func (l *Loader) SupportedExtensions() []string {
	exts := make([]string, 0, len(l.extractors))
	for ext := range l.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load reads path into a Document named after the file's base name
func (l *Loader) Load(ctx context.Context, path, hint string) (ingest.Document, error) {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	fn, ok := l.extractors[ext]
	if !ok {
		return ingest.Document{}, fmt.Errorf("%s: unsupported file type %q (supported: %s)",
			name, ext, strings.Join(l.SupportedExtensions(), ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		return ingest.Document{}, fmt.Errorf("%s: %w", name, err)
	}
	if info.IsDir() {
		return ingest.Document{}, fmt.Errorf("%s: is a directory", name)
	}
	if l.MaxFileSize > 0 && info.Size() > l.MaxFileSize {
		return ingest.Document{}, fmt.Errorf("%s: file size %d exceeds limit %d", name, info.Size(), l.MaxFileSize)
	}

	done := l.observer.StartTiming(ctx, "loader", "load", name)
	text, err := fn(ctx, path)
	if err != nil {
		done(false, map[string]interface{}{"extension": ext})
		return ingest.Document{}, fmt.Errorf("%s: %w", name, err)
	}
	done(true, map[string]interface{}{"extension": ext, "chars": len(text)})

	return ingest.Document{Name: name, TypeHint: hint, Text: text}, nil
}

// LoadAll loads every path into a batch. hints maps a file's base name to
// its asserted document type.
func (l *Loader) LoadAll(ctx context.Context, paths []string, hints map[string]string) (ingest.Batch, error) {
	batch := ingest.Batch{Documents: make([]ingest.Document, 0, len(paths))}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return ingest.Batch{}, err
		}
		doc, err := l.Load(ctx, path, hints[filepath.Base(path)])
		if err != nil {
			return ingest.Batch{}, err
		}
		batch.Documents = append(batch.Documents, doc)
	}
	return batch, nil
}

// ParseHints parses name=type pairs. Only profile, past_performance and
// pricing are accepted as types.
func ParseHints(pairs []string) (map[string]string, error) {
	hints := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, docType, ok := strings.Cut(pair, "=")
		name, docType = strings.TrimSpace(name), strings.TrimSpace(docType)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid hint %q, expected name=type", pair)
		}
		if _, valid := model.ParseDocType(docType); !valid {
			return nil, fmt.Errorf("invalid document type %q in hint %q", docType, pair)
		}
		hints[filepath.Base(name)] = docType
	}
	return hints, nil
}

func readText(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
