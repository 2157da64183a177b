package service

import (
	"sort"

	"diario-server/internal/repository"
)

// OrderService maintains the dense custom_order key of dashboard notes.
// Calendar notes consume order values on creation too (shared counter), but
// only use them as a within-day tiebreak.
type OrderService struct {
	repo repository.NoteRepository
}

func NewOrderService(repo repository.NoteRepository) *OrderService {
	return &OrderService{repo: repo}
}

// Backfill assigns sequential order values, oldest note first, when any note
// document predates the custom_order field. Idempotent: once every note has
// the field this is a no-op.
func (s *OrderService) Backfill() error {
	missing, err := s.repo.AnyMissingOrder()
	if err != nil {
		return err
	}
	if !missing {
		return nil
	}

	notes, err := s.repo.ListAll()
	if err != nil {
		return err
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.Before(notes[j].UpdatedAt)
	})

	for i, n := range notes {
		if err := s.repo.UpdateFields(n.ID, map[string]interface{}{"custom_order": i}); err != nil {
			return err
		}
	}

	return nil
}

// NextOrder returns max(custom_order)+1 across all notes, calendar included.
func (s *OrderService) NextOrder() (int, error) {
	notes, err := s.repo.ListAll()
	if err != nil {
		return 0, err
	}

	max := -1
	for _, n := range notes {
		if n.CustomOrder > max {
			max = n.CustomOrder
		}
	}

	return max + 1, nil
}

// Swap exchanges custom_order and pinned between two notes. Both fields move
// together: swapping with a pinned note transfers the pin in one gesture.
func (s *OrderService) Swap(idA, idB string) error {
	a, err := s.repo.FindByID(idA)
	if err != nil {
		return ErrTargetNotFound
	}
	b, err := s.repo.FindByID(idB)
	if err != nil {
		return ErrTargetNotFound
	}

	if err := s.repo.UpdateFields(a.ID, map[string]interface{}{
		"custom_order": b.CustomOrder,
		"pinned":       b.Pinned,
	}); err != nil {
		return err
	}

	return s.repo.UpdateFields(b.ID, map[string]interface{}{
		"custom_order": a.CustomOrder,
		"pinned":       a.Pinned,
	})
}

// InsertBefore moves a note into the slot of target, shifting target and
// everything at or above it up by one. The target's order is read before any
// write so the moved note cannot collide with itself during the shift.
func (s *OrderService) InsertBefore(movingID, targetID string) error {
	if _, err := s.repo.FindByID(movingID); err != nil {
		return ErrTargetNotFound
	}
	target, err := s.repo.FindByID(targetID)
	if err != nil {
		return ErrTargetNotFound
	}

	anchor := target.CustomOrder

	if err := s.repo.UpdateFields(movingID, map[string]interface{}{
		"custom_order": anchor,
		"pinned":       target.Pinned,
	}); err != nil {
		return err
	}

	others, err := s.repo.ListOrderedAtLeast(anchor)
	if err != nil {
		return err
	}

	for _, n := range others {
		if n.ID == movingID {
			continue
		}
		if err := s.repo.UpdateFields(n.ID, map[string]interface{}{
			"custom_order": n.CustomOrder + 1,
		}); err != nil {
			return err
		}
	}

	return nil
}
