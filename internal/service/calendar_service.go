package service

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"diario-server/internal/domain"
	"diario-server/internal/repository"

	"github.com/google/uuid"
)

// CalendarService resolves which notes are visible on each day of a month.
// Stateless; every call recomputes from the store.
type CalendarService struct {
	repo repository.NoteRepository
}

func NewCalendarService(repo repository.NoteRepository) *CalendarService {
	return &CalendarService{repo: repo}
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateKey(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// ResolveMonth merges dated notes with annually-recurring ones and makes sure
// every day carries a default placeholder. Recurring notes viewed after their
// origin year are shown at (year, month, recur_day); in the origin year the
// dated original already covers them. The effective date is built without
// clamping recur_day to the month length, so a Feb 29 recurrence yields a
// nonexistent date string in non-leap years; kept as-is rather than inventing
// a rounding rule.
//
// Placeholder synthesis writes through to the store and is skipped entirely
// while a search query is active, so search results stay free of empty days.
func (s *CalendarService) ResolveMonth(year, month int, search string) (*domain.MonthView, error) {
	days := daysInMonth(year, month)
	from := dateKey(year, month, 1)
	to := dateKey(year, month, days)

	regular, err := s.repo.ListCalendarRange(from, to, search)
	if err != nil {
		return nil, err
	}

	recurring, err := s.repo.ListRecurring(month, year, search)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]*domain.Note)
	seen := make(map[string]bool)
	for _, n := range regular {
		byDay[*n.CalendarDate] = append(byDay[*n.CalendarDate], n)
		seen[n.ID] = true
	}

	for _, n := range recurring {
		origYear := originYear(n)
		if year > origYear {
			effective := dateKey(year, month, n.RecurDay)
			instance := *n
			instance.CalendarDate = &effective
			byDay[effective] = append(byDay[effective], &instance)
		} else if !seen[n.ID] {
			byDay[*n.CalendarDate] = append(byDay[*n.CalendarDate], n)
		}
	}

	if search == "" {
		now := time.Now()
		for d := 1; d <= days; d++ {
			key := dateKey(year, month, d)
			if hasPlaceholder(byDay[key]) {
				continue
			}

			date := key
			placeholder := &domain.Note{
				ID:                   uuid.New().String(),
				Kind:                 domain.NoteKindText,
				Title:                domain.PlaceholderTitle,
				UpdatedAt:            now,
				CustomOrder:          -1,
				CalendarDate:         &date,
				IsDefaultPlaceholder: true,
			}
			if err := s.repo.Insert(placeholder); err != nil {
				return nil, err
			}
			byDay[key] = append(byDay[key], placeholder)
		}
	}

	for _, notes := range byDay {
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CustomOrder < notes[j].CustomOrder
		})
	}

	return &domain.MonthView{Year: year, Month: month, Days: byDay}, nil
}

func hasPlaceholder(notes []*domain.Note) bool {
	for _, n := range notes {
		if n.IsPlaceholder() {
			return true
		}
	}
	return false
}

// originYear reads the year the recurring note was anchored to. The stored
// calendar_date never changes meaning for recurrence, so the leading four
// digits are authoritative.
func originYear(n *domain.Note) int {
	if n.CalendarDate == nil || len(*n.CalendarDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi((*n.CalendarDate)[:4])
	if err != nil {
		return 0
	}
	return y
}
