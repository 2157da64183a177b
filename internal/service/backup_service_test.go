package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"diario-server/internal/domain"
)

func TestBackupService_ExportOmitsBinaryPayloads(t *testing.T) {
	repo := newMockNoteRepo()
	backup := NewBackupService(repo)

	date := "2026-05-01"
	repo.Insert(&domain.Note{
		ID:           "n1",
		Kind:         domain.NoteKindDrawing,
		Title:        "sketch",
		Attachment:   &domain.Attachment{Filename: "scan.pdf", Data: []byte{1, 2, 3}},
		Strokes:      json.RawMessage(`[{"x":1}]`),
		Image:        []byte{0x89, 0x50},
		UpdatedAt:    time.Date(2026, 5, 1, 9, 30, 0, 0, time.Local),
		CalendarDate: &date,
		CustomOrder:  4,
	})

	records, err := backup.Export()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.UpdatedAt != "2026-05-01 09:30:00" {
		t.Errorf("expected formatted timestamp, got %q", rec.UpdatedAt)
	}
	if rec.AttachmentFilename != "scan.pdf" {
		t.Errorf("expected attachment filename kept, got %q", rec.AttachmentFilename)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("expected record to marshal, got %v", err)
	}
	for _, field := range []string{"strokes", "image", `"data"`} {
		if strings.Contains(string(raw), field) {
			t.Errorf("expected binary field %s omitted from dump, got %s", field, raw)
		}
	}
}

func TestBackupService_ImportAssignsFreshIDs(t *testing.T) {
	repo := newMockNoteRepo()
	backup := NewBackupService(repo)

	records := []domain.BackupRecord{
		{ID: "stale-id", Kind: domain.NoteKindText, Title: "restored", UpdatedAt: "2025-12-24 18:00:00"},
	}

	inserted, err := backup.Import(records)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", inserted)
	}
	if _, exists := repo.notes["stale-id"]; exists {
		t.Error("expected the dump's id to be discarded")
	}

	for _, n := range repo.notes {
		want := time.Date(2025, 12, 24, 18, 0, 0, 0, time.Local)
		if !n.UpdatedAt.Equal(want) {
			t.Errorf("expected parsed timestamp %v, got %v", want, n.UpdatedAt)
		}
	}
}

func TestBackupService_ImportBadTimestampFallsBackToNow(t *testing.T) {
	repo := newMockNoteRepo()
	backup := NewBackupService(repo)

	before := time.Now()
	inserted, err := backup.Import([]domain.BackupRecord{
		{Kind: domain.NoteKindText, Title: "broken clock", UpdatedAt: "not-a-timestamp"},
	})
	if err != nil {
		t.Fatalf("expected the record to degrade gracefully, got %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", inserted)
	}

	for _, n := range repo.notes {
		if n.UpdatedAt.Before(before) {
			t.Errorf("expected fallback to now, got %v", n.UpdatedAt)
		}
	}
}

func TestBackupService_RoundTrip(t *testing.T) {
	repo := newMockNoteRepo()
	backup := NewBackupService(repo)

	date := "2026-01-15"
	end := 2030
	repo.Insert(&domain.Note{
		ID:           "orig",
		Kind:         domain.NoteKindText,
		Title:        "anniversary",
		Labels:       []string{"family"},
		UpdatedAt:    time.Date(2026, 1, 15, 8, 0, 0, 0, time.Local),
		CalendarDate: &date,
		Recurrence:   domain.RecurrenceYearly,
		RecurMonth:   1,
		RecurDay:     15,
		RecurEndYear: &end,
	})

	records, err := backup.Export()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	target := newMockNoteRepo()
	if _, err := NewBackupService(target).Import(records); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, n := range target.notes {
		if n.Title != "anniversary" || n.Recurrence != domain.RecurrenceYearly ||
			n.RecurMonth != 1 || n.RecurDay != 15 ||
			n.RecurEndYear == nil || *n.RecurEndYear != 2030 ||
			n.CalendarDate == nil || *n.CalendarDate != date {
			t.Errorf("expected recurrence metadata to survive the round trip, got %+v", n)
		}
	}
}
