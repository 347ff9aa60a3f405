// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bufio"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/olegiv/portfolio-go/internal/imaging"
	"github.com/olegiv/portfolio-go/internal/model"
)

// multipartOverhead allows for boundaries and headers around the file part.
const multipartOverhead = 64 << 10

// UploadHandler stores project cover images on local disk.
type UploadHandler struct {
	processor *imaging.Processor
	maxBytes  int64
	logger    *slog.Logger
}

// NewUploadHandler creates a new UploadHandler. A nil processor disables uploads.
func NewUploadHandler(processor *imaging.Processor, maxBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{processor: processor, maxBytes: maxBytes, logger: logger}
}

// Upload handles POST /admin/uploads.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.processor == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Image upload is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
			return
		}
		writeJSONError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxBytes {
		writeJSONError(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
		return
	}

	br := bufio.NewReaderSize(file, 512)
	head, _ := br.Peek(512)
	if mimeType := imaging.DetectMimeType(head); !model.IsSupportedImageType(mimeType) {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Unsupported image type")
		return
	}

	result, err := h.processor.ProcessUpload(br)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Unsupported image type")
			return
		}
		h.logger.Error("failed to process upload", "category", "upload", "filename", header.Filename, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	h.logger.Info("image uploaded", "category", "upload", "uuid", result.UUID, "size", header.Size)
	writeJSONSuccess(w, map[string]any{
		"uuid":        result.UUID,
		"url":         result.URL,
		"originalUrl": result.OriginalURL,
		"width":       result.Width,
		"height":      result.Height,
	})
}

func (h *UploadHandler) tooLargeMessage() string {
	return "File exceeds the " + strconv.FormatInt(h.maxBytes>>20, 10) + " MB limit"
}
