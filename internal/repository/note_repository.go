package repository

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"diario-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteRepository interface {
	Insert(note *domain.Note) error
	FindByID(id string) (*domain.Note, error)
	ListDashboard(search string) ([]*domain.Note, error)
	ListCalendarRange(from, to, search string) ([]*domain.Note, error)
	ListRecurring(month, year int, search string) ([]*domain.Note, error)
	ListTrash(calendarScope bool) ([]*domain.Note, error)
	ListAll() ([]*domain.Note, error)
	ListOrderedAtLeast(minOrder int) ([]*domain.Note, error)
	AnyMissingOrder() (bool, error)
	UpdateFields(id string, fields map[string]interface{}) error
	DeleteByID(id string) error
	EmptyTrash(calendarScope bool) (int, error)
	DeleteTrashedBefore(cutoff time.Time) (int, error)
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

// noteScope restricts a selector to note documents; the settings document
// shares the database and has no kind field.
func noteScope() map[string]interface{} {
	return map[string]interface{}{
		"kind": map[string]interface{}{"$exists": true},
	}
}

// searchClause matches the query case-insensitively against title, body or
// any label. Combined with the scoping selector via $and.
func searchClause(q string) map[string]interface{} {
	pattern := "(?i)" + regexp.QuoteMeta(q)
	re := map[string]interface{}{"$regex": pattern}
	return map[string]interface{}{
		"$or": []map[string]interface{}{
			{"title": re},
			{"body": re},
			{"labels": map[string]interface{}{"$elemMatch": re}},
		},
	}
}

func (r *noteRepository) find(selector map[string]interface{}, search string) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	var query map[string]interface{}
	if search != "" {
		query = map[string]interface{}{
			"selector": map[string]interface{}{
				"$and": []map[string]interface{}{selector, searchClause(search)},
			},
		}
	} else {
		query = map[string]interface{}{"selector": selector}
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			continue
		}
		notes = append(notes, &note)
	}

	return notes, nil
}

func (r *noteRepository) Insert(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", note.ID)
	_, err := db.Put(context.Background(), docID, note)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(id string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", id)
	row := db.Get(context.Background(), docID)

	var note domain.Note
	if err := row.ScanDoc(&note); err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

// ListDashboard returns active notes with no calendar anchor, pinned first,
// then by custom_order ascending.
func (r *noteRepository) ListDashboard(search string) ([]*domain.Note, error) {
	selector := noteScope()
	selector["deleted"] = map[string]interface{}{"$ne": true}
	selector["calendar_date"] = nil

	notes, err := r.find(selector, search)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		return notes[i].CustomOrder < notes[j].CustomOrder
	})

	return notes, nil
}

// ListCalendarRange returns active notes whose calendar_date lies in
// [from, to]. The range is a plain string comparison, valid because the
// date format is fixed-width and zero-padded.
func (r *noteRepository) ListCalendarRange(from, to, search string) ([]*domain.Note, error) {
	selector := noteScope()
	selector["deleted"] = map[string]interface{}{"$ne": true}
	selector["calendar_date"] = map[string]interface{}{
		"$gte": from,
		"$lte": to,
	}

	return r.find(selector, search)
}

// ListRecurring returns active yearly-recurring notes firing in the given
// month, excluding those whose recurrence ended before the given year.
func (r *noteRepository) ListRecurring(month, year int, search string) ([]*domain.Note, error) {
	selector := noteScope()
	selector["deleted"] = map[string]interface{}{"$ne": true}
	selector["recurrence"] = domain.RecurrenceYearly
	selector["recur_month"] = month
	selector["$or"] = []map[string]interface{}{
		{"recur_end_year": map[string]interface{}{"$exists": false}},
		{"recur_end_year": nil},
		{"recur_end_year": map[string]interface{}{"$gt": year}},
	}

	return r.find(selector, search)
}

// ListTrash returns soft-deleted notes for one scope, most recently touched
// first.
func (r *noteRepository) ListTrash(calendarScope bool) ([]*domain.Note, error) {
	selector := noteScope()
	selector["deleted"] = true
	if calendarScope {
		selector["calendar_date"] = map[string]interface{}{"$ne": nil}
	} else {
		selector["calendar_date"] = nil
	}

	notes, err := r.find(selector, "")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	return notes, nil
}

func (r *noteRepository) ListAll() ([]*domain.Note, error) {
	return r.find(noteScope(), "")
}

// ListOrderedAtLeast returns non-calendar notes, trashed included, whose
// custom_order is at least minOrder.
func (r *noteRepository) ListOrderedAtLeast(minOrder int) ([]*domain.Note, error) {
	selector := noteScope()
	selector["calendar_date"] = nil
	selector["custom_order"] = map[string]interface{}{"$gte": minOrder}

	return r.find(selector, "")
}

// AnyMissingOrder reports whether any note document predates the
// custom_order field.
func (r *noteRepository) AnyMissingOrder() (bool, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"kind":         map[string]interface{}{"$exists": true},
			"custom_order": map[string]interface{}{"$exists": false},
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("failed to check for unordered notes: %w", err)
	}
	defer rows.Close()

	return rows.Next(), nil
}

// UpdateFields overwrites only the given fields, refetching the current
// revision first.
func (r *noteRepository) UpdateFields(id string, fields map[string]interface{}) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		return fmt.Errorf("failed to fetch note for update: %w", err)
	}

	for k, v := range fields {
		existingDoc[k] = v
	}

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

func (r *noteRepository) DeleteByID(id string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", id)

	row := db.Get(context.Background(), docID)
	var doc map[string]interface{}
	if err := row.ScanDoc(&doc); err != nil {
		return fmt.Errorf("failed to fetch note for delete: %w", err)
	}

	rev, _ := doc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

// EmptyTrash permanently removes every trashed note in one scope and
// returns how many were removed.
func (r *noteRepository) EmptyTrash(calendarScope bool) (int, error) {
	notes, err := r.ListTrash(calendarScope)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, n := range notes {
		if err := r.DeleteByID(n.ID); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}

// DeleteTrashedBefore permanently removes trashed notes last touched before
// the cutoff, both scopes.
func (r *noteRepository) DeleteTrashedBefore(cutoff time.Time) (int, error) {
	selector := noteScope()
	selector["deleted"] = true

	notes, err := r.find(selector, "")
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, n := range notes {
		if !n.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := r.DeleteByID(n.ID); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}
