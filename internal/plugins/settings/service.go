package settings

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
	"github.com/AmarTuli/Fred-AI/internal/sanitize"
)

// Field limits, matching the users table column sizes.
const (
	maxDisplayNameLen = 100
	maxNameLen        = 100
	maxEmailLen       = 255
	maxAvatarRunes    = 8
	maxSSIDBytes      = 32
	maxWiFiPassword   = 63
)

// SettingsService handles profile and WiFi business logic for the session
// user.
type SettingsService interface {
	// GetProfile returns the user's profile with the WiFi password redacted.
	GetProfile(ctx context.Context, userID int64) (*Profile, error)

	// UpdateProfile validates and stores every editable profile field.
	UpdateProfile(ctx context.Context, userID int64, input ProfileInput) (*Profile, error)

	// UpdateWiFi stores the network name and, if given, a new password.
	UpdateWiFi(ctx context.Context, userID int64, input WiFiInput) error
}

// settingsService implements SettingsService.
type settingsService struct {
	repo ProfileRepository
	box  *secretBox
}

// NewSettingsService creates a new settings service. secret is the
// application SECRET_KEY used to derive the WiFi encryption key.
func NewSettingsService(repo ProfileRepository, secret string) (SettingsService, error) {
	box, err := newSecretBox(secret)
	if err != nil {
		return nil, fmt.Errorf("initializing wifi encryption: %w", err)
	}
	return &settingsService{repo: repo, box: box}, nil
}

// GetProfile loads the profile. A stored password that no longer decrypts
// (e.g. after a SECRET_KEY change) is reported as not set.
func (s *settingsService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if apperror.Is(err, apperror.TypeNotFound) {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("loading profile: %w", err))
	}

	if len(p.WiFiPasswordEncrypted) > 0 {
		if _, err := s.box.open(p.WiFiPasswordEncrypted); err != nil {
			slog.Warn("stored wifi password cannot be decrypted",
				slog.Int64("user_id", userID),
				slog.Any("error", err),
			)
		} else {
			p.HasWiFiPassword = true
		}
	}
	p.WiFiPasswordEncrypted = nil

	return p, nil
}

// UpdateProfile validates input, sanitizes free text, and persists it.
func (s *settingsService) UpdateProfile(ctx context.Context, userID int64, input ProfileInput) (*Profile, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := applyProfileInput(p, input); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("updating profile: %w", err))
	}

	slog.Info("profile updated", slog.Int64("user_id", userID))
	return p, nil
}

// UpdateWiFi validates the SSID and encrypts a new password before storing.
func (s *settingsService) UpdateWiFi(ctx context.Context, userID int64, input WiFiInput) error {
	ssid := strings.TrimSpace(input.SSID)
	if len(ssid) > maxSSIDBytes {
		return apperror.NewValidation("network name must be at most 32 bytes")
	}
	if utf8.RuneCountInString(input.Password) > maxWiFiPassword {
		return apperror.NewValidation("wifi password must be at most 63 characters")
	}

	var err error
	switch {
	case ssid == "" && input.Password == "":
		err = s.repo.ClearWiFi(ctx, userID)
	case ssid == "":
		return apperror.NewValidation("network name is required")
	case input.Password == "":
		err = s.repo.UpdateWiFiSSID(ctx, userID, ssid)
	default:
		var sealed []byte
		sealed, err = s.box.seal([]byte(input.Password))
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("encrypting wifi password: %w", err))
		}
		err = s.repo.UpdateWiFi(ctx, userID, ssid, sealed)
	}
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("updating wifi: %w", err))
	}

	slog.Info("wifi settings updated",
		slog.Int64("user_id", userID),
		slog.Bool("password_changed", input.Password != ""),
	)
	return nil
}

// applyProfileInput validates input and copies it onto p.
func applyProfileInput(p *Profile, input ProfileInput) error {
	displayName := sanitize.Text(input.DisplayName)
	if displayName == "" {
		displayName = p.Username
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLen {
		return apperror.NewValidation("display name must be at most 100 characters")
	}

	firstName := sanitize.Text(input.FirstName)
	lastName := sanitize.Text(input.LastName)
	if utf8.RuneCountInString(firstName) > maxNameLen || utf8.RuneCountInString(lastName) > maxNameLen {
		return apperror.NewValidation("names must be at most 100 characters")
	}

	birthday, err := sanitize.PastDate(input.Birthday, time.Now())
	if err != nil {
		return apperror.NewValidation("birthday: " + err.Error())
	}

	email, ok := sanitize.Email(input.Email)
	if !ok || len(email) > maxEmailLen {
		return apperror.NewValidation("email address is not valid")
	}

	phone, ok := sanitize.Phone(input.Phone)
	if !ok {
		return apperror.NewValidation("phone number may contain digits, spaces and + - ( ) only")
	}

	avatar := sanitize.Text(input.Avatar)
	if utf8.RuneCountInString(avatar) > maxAvatarRunes {
		return apperror.NewValidation("avatar must be at most 8 characters")
	}

	theme := strings.ToLower(strings.TrimSpace(input.Theme))
	if theme == "" {
		theme = DefaultTheme
	}
	if !slices.Contains(Themes, theme) {
		return apperror.NewValidation("unknown theme")
	}

	p.DisplayName = displayName
	p.FirstName = firstName
	p.LastName = lastName
	p.Birthday = birthday
	p.Email = email
	p.Phone = phone
	p.Avatar = avatar
	p.Theme = theme
	return nil
}
