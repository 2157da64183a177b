package service

import (
	"testing"
	"time"

	"diario-server/internal/domain"
)

func seedRecurring(repo *mockNoteRepo, id, date string, endYear *int) {
	d := date
	repo.Insert(&domain.Note{
		ID:           id,
		Kind:         domain.NoteKindText,
		Title:        "anniversary",
		CalendarDate: &d,
		Recurrence:   domain.RecurrenceYearly,
		RecurMonth:   int(mustParseDate(date).Month()),
		RecurDay:     mustParseDate(date).Day(),
		RecurEndYear: endYear,
		UpdatedAt:    time.Now(),
	})
}

func mustParseDate(date string) time.Time {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return t
}

func countByID(notes []*domain.Note, id string) int {
	count := 0
	for _, n := range notes {
		if n.ID == id {
			count++
		}
	}
	return count
}

func TestCalendarService_RecurringShownOnceInOriginYear(t *testing.T) {
	repo := newMockNoteRepo()
	calendar := NewCalendarService(repo)

	seedRecurring(repo, "rec", "2025-03-10", nil)

	view, err := calendar.ResolveMonth(2025, 3, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := countByID(view.Days["2025-03-10"], "rec"); got != 1 {
		t.Errorf("expected the origin-year instance exactly once, got %d", got)
	}
}

func TestCalendarService_RecurringProjectedToLaterYears(t *testing.T) {
	repo := newMockNoteRepo()
	calendar := NewCalendarService(repo)

	seedRecurring(repo, "rec", "2025-03-10", nil)

	view, err := calendar.ResolveMonth(2026, 3, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := countByID(view.Days["2026-03-10"], "rec"); got != 1 {
		t.Errorf("expected one projected instance on 2026-03-10, got %d", got)
	}
	for day, notes := range view.Days {
		if day == "2026-03-10" {
			continue
		}
		if countByID(notes, "rec") != 0 {
			t.Errorf("unexpected recurring instance on %s", day)
		}
	}
}

func TestCalendarService_RecurrenceEndYearCutoff(t *testing.T) {
	repo := newMockNoteRepo()
	calendar := NewCalendarService(repo)

	end := 2028
	seedRecurring(repo, "rec", "2025-03-10", &end)

	view, err := calendar.ResolveMonth(2030, 3, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for day, notes := range view.Days {
		if countByID(notes, "rec") != 0 {
			t.Errorf("expected no instance after end year, found one on %s", day)
		}
	}
}

func TestCalendarService_PlaceholderPerDayWithoutDuplicates(t *testing.T) {
	repo := newMockNoteRepo()
	calendar := NewCalendarService(repo)

	view, err := calendar.ResolveMonth(2026, 4, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(view.Days) != 30 {
		t.Fatalf("expected 30 days for April, got %d", len(view.Days))
	}
	for day, notes := range view.Days {
		if len(notes) != 1 {
			t.Errorf("expected exactly one placeholder on %s, got %d notes", day, len(notes))
			continue
		}
		ph := notes[0]
		if !ph.IsPlaceholder() {
			t.Errorf("expected a placeholder on %s, got %q", day, ph.Title)
		}
		if ph.CustomOrder != -1 {
			t.Errorf("expected placeholder order -1 on %s, got %d", day, ph.CustomOrder)
		}
	}
	if len(repo.notes) != 30 {
		t.Fatalf("expected 30 placeholders persisted, got %d", len(repo.notes))
	}

	// A second resolution reuses the stored placeholders.
	view, err = calendar.ResolveMonth(2026, 4, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.notes) != 30 {
		t.Errorf("expected no new placeholders on second resolution, store has %d notes", len(repo.notes))
	}
	for day, notes := range view.Days {
		if len(notes) != 1 {
			t.Errorf("expected one note on %s after second resolution, got %d", day, len(notes))
		}
	}
}

func TestCalendarService_SearchSkipsPlaceholderSynthesis(t *testing.T) {
	repo := newMockNoteRepo()
	calendar := NewCalendarService(repo)

	date := "2026-04-12"
	repo.Insert(&domain.Note{ID: "hit", Kind: domain.NoteKindText, Title: "dentist", CalendarDate: &date, CustomOrder: 3})

	view, err := calendar.ResolveMonth(2026, 4, "dentist")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(repo.notes) != 1 {
		t.Errorf("expected no placeholders written during search, store has %d notes", len(repo.notes))
	}
	if len(view.Days) != 1 || countByID(view.Days["2026-04-12"], "hit") != 1 {
		t.Errorf("expected only the matching day in the view, got %v", view.Days)
	}
}

func TestCalendarService_UserNoteDayStillGetsPlaceholder(t *testing.T) {
	repo := newMockNoteRepo()
	calendar := NewCalendarService(repo)

	date := "2026-04-12"
	repo.Insert(&domain.Note{ID: "user", Kind: domain.NoteKindText, Title: "dentist", CalendarDate: &date, CustomOrder: 3})

	view, err := calendar.ResolveMonth(2026, 4, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	day := view.Days["2026-04-12"]
	if len(day) != 2 {
		t.Fatalf("expected user note plus placeholder, got %d notes", len(day))
	}
	// The placeholder's -1 order sorts it first.
	if !day[0].IsPlaceholder() || day[1].ID != "user" {
		t.Errorf("expected placeholder first then user note, got %q then %q", day[0].Title, day[1].Title)
	}
}

func TestCalendarService_LeapDayRecurrenceIsNotClamped(t *testing.T) {
	repo := newMockNoteRepo()
	calendar := NewCalendarService(repo)

	seedRecurring(repo, "leap", "2024-02-29", nil)

	view, err := calendar.ResolveMonth(2025, 2, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// The effective date is built from recur_day without checking the month
	// length, so the instance lands on a date string February never reaches.
	if got := countByID(view.Days["2025-02-29"], "leap"); got != 1 {
		t.Errorf("expected the instance under the literal 2025-02-29 key, got %d", got)
	}
}

func TestCalendarService_DaySortedByCustomOrder(t *testing.T) {
	repo := newMockNoteRepo()
	calendar := NewCalendarService(repo)

	date := "2026-04-12"
	repo.Insert(&domain.Note{ID: "late", Kind: domain.NoteKindText, Title: "late", CalendarDate: &date, CustomOrder: 9})
	repo.Insert(&domain.Note{ID: "early", Kind: domain.NoteKindText, Title: "early", CalendarDate: &date, CustomOrder: 4})

	view, err := calendar.ResolveMonth(2026, 4, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	day := view.Days["2026-04-12"]
	if len(day) != 3 {
		t.Fatalf("expected placeholder plus two notes, got %d", len(day))
	}
	if day[0].CustomOrder != -1 || day[1].ID != "early" || day[2].ID != "late" {
		t.Errorf("expected order placeholder/early/late, got %s/%s/%s", day[0].ID, day[1].ID, day[2].ID)
	}
}
