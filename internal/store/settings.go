package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shalliecode/volydog/internal/models"
)

// GetSiteSettings returns the singleton settings row, or nil if the admin
// has never saved settings.
func (s *Store) GetSiteSettings() (*models.SiteSettings, error) {
	query := `SELECT id, location, phone, whatsapp, contact_email, business_hours, social_links, updated_at FROM site_settings ORDER BY id LIMIT 1`
	row := s.DB.QueryRow(query)

	var settings models.SiteSettings
	var socialJSON string
	err := row.Scan(&settings.ID, &settings.Location, &settings.Phone, &settings.WhatsApp,
		&settings.ContactEmail, &settings.BusinessHours, &socialJSON, &settings.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(socialJSON), &settings.SocialLinks); err != nil {
		return nil, fmt.Errorf("failed to decode social links: %w", err)
	}
	return &settings, nil
}

// UpsertSiteSettings creates the settings row on first save and updates it
// in place afterwards, keeping at most one row.
func (s *Store) UpsertSiteSettings(settings *models.SiteSettings) error {
	links := settings.SocialLinks
	if links == nil {
		links = map[string]string{}
	}
	socialBytes, err := json.Marshal(links)
	if err != nil {
		return err
	}

	existing, err := s.GetSiteSettings()
	if err != nil {
		return err
	}

	if existing == nil {
		res, err := s.DB.Exec(`
			INSERT INTO site_settings (location, phone, whatsapp, contact_email, business_hours, social_links, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		`, settings.Location, settings.Phone, settings.WhatsApp, settings.ContactEmail, settings.BusinessHours, string(socialBytes))
		if err != nil {
			return err
		}
		settings.ID, _ = res.LastInsertId()
		return nil
	}

	settings.ID = existing.ID
	_, err = s.DB.Exec(`
		UPDATE site_settings
		SET location = ?, phone = ?, whatsapp = ?, contact_email = ?, business_hours = ?, social_links = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, settings.Location, settings.Phone, settings.WhatsApp, settings.ContactEmail, settings.BusinessHours, string(socialBytes), settings.ID)
	return err
}
