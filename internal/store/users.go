package store

import (
	"database/sql"
	"fmt"

	"github.com/shalliecode/volydog/internal/models"
)

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	query := `SELECT id, username, email, password, phone, address, is_admin, created_at FROM users WHERE username = ?`
	row := s.DB.QueryRow(query, username)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Phone, &user.Address, &user.IsAdmin, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(id int64) (*models.User, error) {
	query := `SELECT id, username, email, password, phone, address, is_admin, created_at FROM users WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Phone, &user.Address, &user.IsAdmin, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user. The password must already be hashed.
// Username and email are checked for uniqueness up front so registration
// can tell the caller which field conflicted.
func (s *Store) CreateUser(user *models.User) error {
	var exists int
	if err := s.DB.QueryRow(`SELECT 1 FROM users WHERE username = ?`, user.Username).Scan(&exists); err == nil {
		return ErrUsernameTaken
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if err := s.DB.QueryRow(`SELECT 1 FROM users WHERE email = ?`, user.Email).Scan(&exists); err == nil {
		return ErrEmailTaken
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check email: %w", err)
	}

	query := `
		INSERT INTO users (username, email, password, phone, address, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, user.Username, user.Email, user.Password, user.Phone, user.Address, user.IsAdmin)
	if err != nil {
		return err
	}
	user.ID, _ = res.LastInsertId()
	return nil
}

func (s *Store) CountUsers() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
