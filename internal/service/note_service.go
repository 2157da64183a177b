package service

import (
	"strconv"
	"strings"
	"time"

	"diario-server/internal/domain"
	"diario-server/internal/repository"
	"diario-server/pkg/sanitize"

	"github.com/google/uuid"
)

// Render modes for reading a note body back out.
const (
	RenderModeRaw     = ""        // stored body verbatim (safe-mode editing)
	RenderModeDisplay = "display" // read-mode HTML transforms
	RenderModeEdit    = "edit"    // formulas flattened before editor reload
)

// CopyTitlePrefix marks a copied placeholder as genuine user content.
const CopyTitlePrefix = "Copy of "

type NoteService struct {
	repo   repository.NoteRepository
	orders *OrderService
}

func NewNoteService(repo repository.NoteRepository, orders *OrderService) *NoteService {
	return &NoteService{repo: repo, orders: orders}
}

// Create inserts a new note. A note with no title, no body, no attachment
// and no ink is rejected with ErrEmptyNote and nothing is written. Every
// note, calendar ones included, takes the next custom_order value.
func (s *NoteService) Create(req *domain.CreateNoteRequest) (*domain.Note, error) {
	if strings.TrimSpace(req.Title) == "" &&
		strings.TrimSpace(req.Body) == "" &&
		req.Attachment == nil &&
		len(req.Strokes) == 0 {
		return nil, ErrEmptyNote
	}

	order, err := s.orders.NextOrder()
	if err != nil {
		return nil, err
	}

	note := &domain.Note{
		ID:           uuid.New().String(),
		Kind:         req.Kind,
		Title:        req.Title,
		Body:         req.Body,
		Labels:       normalizeLabels(req.Labels),
		Attachment:   req.Attachment,
		Strokes:      req.Strokes,
		Image:        req.Image,
		UpdatedAt:    time.Now(),
		CustomOrder:  order,
		CalendarDate: req.CalendarDate,
	}

	if req.Recurring && req.CalendarDate != nil {
		month, day, ok := monthDayOf(*req.CalendarDate)
		if ok {
			note.Recurrence = domain.RecurrenceYearly
			note.RecurMonth = month
			note.RecurDay = day
			note.RecurEndYear = req.RecurEndYear
		}
	}

	if err := s.repo.Insert(note); err != nil {
		return nil, err
	}

	return note, nil
}

// Get returns a note, with its body transformed for the requested render
// mode.
func (s *NoteService) Get(id, mode string) (*domain.Note, error) {
	note, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	switch mode {
	case RenderModeDisplay:
		note.Body = sanitize.RenderForDisplay(note.Body)
	case RenderModeEdit:
		note.Body = sanitize.FlattenFormulas(note.Body)
	}

	return note, nil
}

// Update overwrites the provided fields and refreshes the timestamp. A date
// change re-anchors calendar_date only; recur_month/recur_day stay at their
// creation values, so moving a recurring origin does not move the day the
// recurrence fires on.
func (s *NoteService) Update(id string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	if _, err := s.repo.FindByID(id); err != nil {
		return nil, ErrNotFound
	}

	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}
	if req.Labels != nil {
		fields["labels"] = normalizeLabels(req.Labels)
	}
	if req.Attachment != nil {
		fields["attachment"] = req.Attachment
	}
	if len(req.Strokes) > 0 {
		fields["strokes"] = req.Strokes
	}
	if len(req.Image) > 0 {
		fields["image"] = req.Image
	}
	if req.Pinned != nil {
		fields["pinned"] = *req.Pinned
	}
	if req.CalendarDate != nil {
		fields["calendar_date"] = *req.CalendarDate
	}
	if req.RecurEndYear != nil {
		fields["recur_end_year"] = *req.RecurEndYear
	}

	if err := s.repo.UpdateFields(id, fields); err != nil {
		return nil, err
	}

	return s.repo.FindByID(id)
}

// SoftDelete moves a note to the trash. Field state other than the deleted
// flag is untouched, so a later restore brings the note back exactly as it
// was.
func (s *NoteService) SoftDelete(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return ErrNotFound
	}
	return s.repo.UpdateFields(id, map[string]interface{}{"deleted": true})
}

func (s *NoteService) Restore(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return ErrNotFound
	}
	return s.repo.UpdateFields(id, map[string]interface{}{"deleted": false})
}

func (s *NoteService) PermanentDelete(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return ErrNotFound
	}
	return s.repo.DeleteByID(id)
}

func (s *NoteService) ListDashboard(search string) ([]*domain.Note, error) {
	return s.repo.ListDashboard(search)
}

func (s *NoteService) ListTrash(calendarScope bool) ([]*domain.Note, error) {
	return s.repo.ListTrash(calendarScope)
}

func (s *NoteService) EmptyTrash(calendarScope bool) (int, error) {
	return s.repo.EmptyTrash(calendarScope)
}

// AutoClean permanently removes trashed notes untouched for longer than the
// retention window.
func (s *NoteService) AutoClean(retentionDays int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.repo.DeleteTrashedBefore(cutoff)
}

// CopyToDate duplicates a note's content onto another day as a fresh note.
// A copied placeholder loses its flag and gains a title prefix, turning it
// into genuine user content.
func (s *NoteService) CopyToDate(id, date string) (*domain.Note, error) {
	src, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	order, err := s.orders.NextOrder()
	if err != nil {
		return nil, err
	}

	title := src.Title
	if src.IsPlaceholder() {
		title = CopyTitlePrefix + title
	}

	target := date
	copied := &domain.Note{
		ID:           uuid.New().String(),
		Kind:         src.Kind,
		Title:        title,
		Body:         src.Body,
		Labels:       append([]string(nil), src.Labels...),
		Attachment:   src.Attachment,
		Strokes:      src.Strokes,
		Image:        src.Image,
		UpdatedAt:    time.Now(),
		CustomOrder:  order,
		CalendarDate: &target,
	}

	if err := s.repo.Insert(copied); err != nil {
		return nil, err
	}

	return copied, nil
}

// normalizeLabels trims each label, drops empties and duplicates, and keeps
// first-seen order for display.
func normalizeLabels(labels []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// monthDayOf extracts the month and day components of a YYYY-MM-DD string.
func monthDayOf(date string) (month, day int, ok bool) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	return m, d, true
}
