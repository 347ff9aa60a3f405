// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// User-facing messages.
const (
	MsgSlugTaken       = "A project with this title already exists"
	MsgProjectNotFound = "Project not found"
	MsgCreateFailed    = "Failed to create project. Check database connection."
	MsgUpdateFailed    = "Failed to update project. Check database connection."
	MsgDeleteFailed    = "Failed to delete project"
)

var (
	// ErrSlugTaken means the derived slug belongs to another project.
	ErrSlugTaken = errors.New("project slug already taken")
	// ErrProjectNotFound means the project being updated does not exist.
	ErrProjectNotFound = errors.New("project not found")
)

// Mutation operations, used in PersistenceError and metrics.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ValidationError carries every invalid field with its messages.
type ValidationError struct {
	FieldErrors map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string][]string)
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], msg)
}

func (e *ValidationError) empty() bool {
	return len(e.FieldErrors) == 0
}

// PersistenceError wraps a store failure. The cause is for logs only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s project: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// UserMessage returns the generic message shown to the submitter.
func (e *PersistenceError) UserMessage() string {
	switch e.Op {
	case OpCreate:
		return MsgCreateFailed
	case OpUpdate:
		return MsgUpdateFailed
	default:
		return MsgDeleteFailed
	}
}

// UserMessage maps a service error to the single message shown to users.
// Validation errors are rendered per field instead and return "".
func UserMessage(err error) string {
	var pe *PersistenceError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSlugTaken):
		return MsgSlugTaken
	case errors.Is(err, ErrProjectNotFound):
		return MsgProjectNotFound
	case errors.As(err, &pe):
		return pe.UserMessage()
	default:
		return ""
	}
}
