// Package uidfield implements the controller behind a unique-identifier
// (slug) form field: debounced availability checks, auto-generation from a
// source field while a record is new, and the suggestion lifecycle.
//
// The controller is driven from a bubbletea update loop. Every operation
// mutates the controller synchronously and returns a tea.Cmd for the async
// follow-up (remote calls, timers); results come back through Update.
package uidfield

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record is a read-only snapshot of the host form's field values.
type Record map[string]any

func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the field as text. Missing and nil values are "".
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Snapshot carries the record as it was when editing began and as it is now.
type Snapshot struct {
	Initial  Record
	Modified Record
}

// Event is what the controller reports to the host for every accepted value change.
type Event struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// ChangeFunc receives value changes. adoptAsInitial is true only for a value
// generated at mount for a required empty field.
type ChangeFunc func(ev Event, adoptAsInitial bool)

type Availability struct {
	IsAvailable bool   `json:"isAvailable"`
	Suggestion  string `json:"suggestion,omitempty"`
}

func (a *Availability) HasSuggestion() bool {
	return a != nil && a.Suggestion != ""
}

type GenerateRequest struct {
	ContentTypeUID string `json:"contentTypeUID"`
	Field          string `json:"field"`
	Data           Record `json:"data"`
}

type CheckRequest struct {
	ContentTypeUID string  `json:"contentTypeUID"`
	Field          string  `json:"field"`
	Value          *string `json:"value"`
}

// Service is the remote side: the generate and check-availability endpoints.
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	CheckAvailability(ctx context.Context, req CheckRequest) (Availability, error)
}
