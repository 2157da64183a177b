package domain

import (
	"encoding/json"
	"time"
)

type NoteKind string

const (
	NoteKindText    NoteKind = "text"
	NoteKindDrawing NoteKind = "drawing"
)

// RecurrenceYearly is the only recurrence value in use.
const RecurrenceYearly = "yearly"

// PlaceholderTitle is the sentinel title of auto-created daily notes. A note
// counts as a placeholder only when the title matches AND the flag is set.
const PlaceholderTitle = "daily tasks"

// DateLayout is the calendar anchor format. Fixed-width and zero-padded, so
// string range comparison over it is equivalent to date comparison.
const DateLayout = "2006-01-02"

type Attachment struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data,omitempty"`
}

// Note is the sole entity. A nil CalendarDate means a dashboard note ordered
// by pinned/custom_order; a non-nil one anchors the note to that day.
// UpdatedAt is set on create and refreshed on every edit; there is no separate
// creation timestamp.
type Note struct {
	ID     string   `json:"id"`
	Kind   NoteKind `json:"kind"`
	Title  string   `json:"title"`
	Body   string   `json:"body,omitempty"`
	Labels []string `json:"labels,omitempty"`

	Attachment *Attachment     `json:"attachment,omitempty"`
	Strokes    json.RawMessage `json:"strokes,omitempty"`
	Image      []byte          `json:"image,omitempty"`

	UpdatedAt   time.Time `json:"updated_at"`
	Deleted     bool      `json:"deleted"`
	Pinned      bool      `json:"pinned"`
	CustomOrder int       `json:"custom_order"`

	CalendarDate *string `json:"calendar_date"`
	Recurrence   string  `json:"recurrence,omitempty"`
	RecurMonth   int     `json:"recur_month,omitempty"`
	RecurDay     int     `json:"recur_day,omitempty"`
	RecurEndYear *int    `json:"recur_end_year,omitempty"`

	IsDefaultPlaceholder bool `json:"is_default_placeholder,omitempty"`
}

// IsCalendar reports whether the note is anchored to a day.
func (n *Note) IsCalendar() bool {
	return n.CalendarDate != nil && *n.CalendarDate != ""
}

// IsPlaceholder requires both the sentinel title and the flag.
func (n *Note) IsPlaceholder() bool {
	return n.IsDefaultPlaceholder && n.Title == PlaceholderTitle
}

type CreateNoteRequest struct {
	Kind   NoteKind `json:"kind" validate:"required,oneof=text drawing"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`

	Attachment *Attachment     `json:"attachment"`
	Strokes    json.RawMessage `json:"strokes"`
	Image      []byte          `json:"image"`

	CalendarDate *string `json:"calendar_date" validate:"omitempty,datetime=2006-01-02"`
	Recurring    bool    `json:"recurring"`
	RecurEndYear *int    `json:"recur_end_year"`
}

// UpdateNoteRequest carries only the fields to overwrite; nil means "leave
// as stored". CalendarDate moves the note to another day without touching
// recur_month/recur_day, so a moved recurring origin still fires on its
// original month/day.
type UpdateNoteRequest struct {
	Title  *string  `json:"title"`
	Body   *string  `json:"body"`
	Labels []string `json:"labels"`

	Attachment *Attachment     `json:"attachment"`
	Strokes    json.RawMessage `json:"strokes"`
	Image      []byte          `json:"image"`

	Pinned       *bool   `json:"pinned"`
	CalendarDate *string `json:"calendar_date" validate:"omitempty,datetime=2006-01-02"`
	RecurEndYear *int    `json:"recur_end_year"`
}

type CopyToDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// MonthView maps each date string of a (year, month) to the notes shown on
// that day, already sorted by custom_order.
type MonthView struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Days  map[string][]*Note `json:"days"`
}
