package service

import (
	"time"

	"diario-server/internal/domain"
	"diario-server/internal/repository"

	"github.com/google/uuid"
)

// BackupService dumps and restores the whole collection as a JSON array.
// Binary payloads stay out of dumps; only the attachment filename survives.
type BackupService struct {
	repo repository.NoteRepository
}

func NewBackupService(repo repository.NoteRepository) *BackupService {
	return &BackupService{repo: repo}
}

func (s *BackupService) Export() ([]domain.BackupRecord, error) {
	notes, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	records := make([]domain.BackupRecord, 0, len(notes))
	for _, n := range notes {
		rec := domain.BackupRecord{
			ID:                   n.ID,
			Kind:                 n.Kind,
			Title:                n.Title,
			Body:                 n.Body,
			Labels:               n.Labels,
			UpdatedAt:            n.UpdatedAt.Format(domain.BackupTimeLayout),
			Deleted:              n.Deleted,
			Pinned:               n.Pinned,
			CustomOrder:          n.CustomOrder,
			CalendarDate:         n.CalendarDate,
			Recurrence:           n.Recurrence,
			RecurMonth:           n.RecurMonth,
			RecurDay:             n.RecurDay,
			RecurEndYear:         n.RecurEndYear,
			IsDefaultPlaceholder: n.IsDefaultPlaceholder,
		}
		if n.Attachment != nil {
			rec.AttachmentFilename = n.Attachment.Filename
		}
		records = append(records, rec)
	}

	return records, nil
}

// Import bulk-inserts the records with fresh ids; whatever id a record
// carries is discarded. A timestamp that does not parse falls back to now
// instead of failing the record. Returns how many notes were inserted.
func (s *BackupService) Import(records []domain.BackupRecord) (int, error) {
	inserted := 0
	for _, rec := range records {
		updatedAt, err := time.ParseInLocation(domain.BackupTimeLayout, rec.UpdatedAt, time.Local)
		if err != nil {
			updatedAt = time.Now()
		}

		note := &domain.Note{
			ID:                   uuid.New().String(),
			Kind:                 rec.Kind,
			Title:                rec.Title,
			Body:                 rec.Body,
			Labels:               rec.Labels,
			UpdatedAt:            updatedAt,
			Deleted:              rec.Deleted,
			Pinned:               rec.Pinned,
			CustomOrder:          rec.CustomOrder,
			CalendarDate:         rec.CalendarDate,
			Recurrence:           rec.Recurrence,
			RecurMonth:           rec.RecurMonth,
			RecurDay:             rec.RecurDay,
			RecurEndYear:         rec.RecurEndYear,
			IsDefaultPlaceholder: rec.IsDefaultPlaceholder,
		}
		if rec.AttachmentFilename != "" {
			note.Attachment = &domain.Attachment{Filename: rec.AttachmentFilename}
		}

		if err := s.repo.Insert(note); err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, nil
}
