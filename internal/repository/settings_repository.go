package repository

import (
	"context"
	"fmt"

	"diario-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

const settingsDocID = "settings"

type SettingsRepository interface {
	Get() (*domain.Settings, error)
	Save(settings *domain.Settings) error
}

type settingsRepository struct {
	client *kivik.Client
	dbName string
}

func NewSettingsRepository(client *kivik.Client, dbName string) SettingsRepository {
	return &settingsRepository{
		client: client,
		dbName: dbName,
	}
}

// Get returns the stored settings, or defaults when the document does not
// exist yet.
func (r *settingsRepository) Get() (*domain.Settings, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), settingsDocID)

	var settings domain.Settings
	if err := row.ScanDoc(&settings); err != nil {
		if kivik.HTTPStatus(err) == 404 {
			return domain.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &settings, nil
}

func (r *settingsRepository) Save(settings *domain.Settings) error {
	db := r.client.DB(r.dbName)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), settingsDocID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if kivik.HTTPStatus(err) != 404 {
			return fmt.Errorf("failed to fetch settings for update: %w", err)
		}
		existingDoc = map[string]interface{}{}
	}

	existingDoc["retention_days"] = settings.RetentionDays
	existingDoc["auto_clean_enabled"] = settings.AutoCleanEnabled
	existingDoc["theme"] = settings.Theme

	if _, err := db.Put(context.Background(), settingsDocID, existingDoc); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
