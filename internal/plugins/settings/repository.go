package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
)

// ProfileRepository defines the data access contract for profile and WiFi
// columns of the users table.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, profile *Profile) error
	UpdateWiFi(ctx context.Context, userID int64, ssid string, encryptedPassword []byte) error
	UpdateWiFiSSID(ctx context.Context, userID int64, ssid string) error
	ClearWiFi(ctx context.Context, userID int64) error
}

// profileRepository implements ProfileRepository with MariaDB queries.
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetProfile loads the profile and WiFi columns for a user.
func (r *profileRepository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	query := `SELECT id, username, display_name, first_name, last_name, birthday,
	                 email, phone, avatar, theme, wifi_ssid, wifi_password_encrypted,
	                 updated_at
	          FROM users WHERE id = ?`

	var (
		p        Profile
		birthday sql.NullTime
		ssid     sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.Username,
		&p.DisplayName,
		&p.FirstName,
		&p.LastName,
		&birthday,
		&p.Email,
		&p.Phone,
		&p.Avatar,
		&p.Theme,
		&ssid,
		&p.WiFiPasswordEncrypted,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	if birthday.Valid {
		b := birthday.Time
		p.Birthday = &b
	}
	p.WiFiSSID = ssid.String

	return &p, nil
}

// UpdateProfile writes every editable profile column. MariaDB reports zero
// affected rows for a no-op update, so the row count is not checked.
func (r *profileRepository) UpdateProfile(ctx context.Context, p *Profile) error {
	query := `UPDATE users SET display_name = ?, first_name = ?, last_name = ?,
	                 birthday = ?, email = ?, phone = ?, avatar = ?, theme = ?
	          WHERE id = ?`

	var birthday any
	if p.Birthday != nil {
		birthday = p.Birthday.Format(birthdayLayout)
	}

	_, err := r.db.ExecContext(ctx, query,
		p.DisplayName, p.FirstName, p.LastName,
		birthday, p.Email, p.Phone, p.Avatar, p.Theme,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateWiFi stores a network name together with a new encrypted password.
func (r *profileRepository) UpdateWiFi(ctx context.Context, userID int64, ssid string, encryptedPassword []byte) error {
	query := `UPDATE users SET wifi_ssid = ?, wifi_password_encrypted = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, ssid, encryptedPassword, userID); err != nil {
		return fmt.Errorf("updating wifi: %w", err)
	}
	return nil
}

// UpdateWiFiSSID changes the network name and leaves the password as is.
func (r *profileRepository) UpdateWiFiSSID(ctx context.Context, userID int64, ssid string) error {
	query := `UPDATE users SET wifi_ssid = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, ssid, userID); err != nil {
		return fmt.Errorf("updating wifi ssid: %w", err)
	}
	return nil
}

// ClearWiFi forgets the saved network.
func (r *profileRepository) ClearWiFi(ctx context.Context, userID int64) error {
	query := `UPDATE users SET wifi_ssid = NULL, wifi_password_encrypted = NULL WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("clearing wifi: %w", err)
	}
	return nil
}
