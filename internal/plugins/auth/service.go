package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/argon2"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
	"github.com/AmarTuli/Fred-AI/internal/sanitize"
)

// sessionKeyPrefix is the Redis key prefix for session data.
const sessionKeyPrefix = "session:"

// sessionTokenBytes is the number of random bytes in a session token.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
const sessionTokenBytes = 32

// argon2id parameters: memory=64MB, iterations=3, parallelism=4.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // 64 MB in KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Registration limits.
const (
	minPasswordLen    = 8
	maxPasswordLen    = 128
	maxDisplayNameLen = 100
	maxNameLen        = 100
	maxAvatarRunes    = 8
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,50}$`)

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, input LoginInput) (token string, user *User, err error)
	ValidateSession(ctx context.Context, token string) (*Session, error)
	DestroySession(ctx context.Context, token string) error
	RefreshProfile(ctx context.Context, token string, profile SessionProfile) error
}

// authService implements AuthService with argon2id hashing and Redis sessions.
type authService struct {
	repo       UserRepository
	redis      *redis.Client
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, rdb *redis.Client, sessionTTL time.Duration) AuthService {
	return &authService{
		repo:       repo,
		redis:      rdb,
		sessionTTL: sessionTTL,
	}
}

// Register validates the input, rejects taken usernames, hashes the password
// with argon2id, and persists the user.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	user, err := newUserFromInput(input)
	if err != nil {
		return nil, err
	}

	// Check before doing expensive hashing. The unique index still has the
	// final say if two registrations race.
	exists, err := s.repo.UsernameExists(ctx, user.Username)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking username: %w", err))
	}
	if exists {
		return nil, apperror.NewDuplicateUsername()
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}
	user.PasswordHash = hash

	if err := s.repo.Create(ctx, user); err != nil {
		if apperror.Is(err, apperror.TypeDuplicateUsername) {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Authenticate checks a username/password pair. Unknown usernames and wrong
// passwords both return InvalidCredentials, and both pay for one argon2id
// derivation so response time doesn't reveal which it was.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.NewInvalidCredentials()
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if apperror.Is(err, apperror.TypeNotFound) {
			verifyPassword(password, dummyHash())
			return nil, apperror.NewInvalidCredentials()
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !verifyPassword(password, user.PasswordHash) {
		return nil, apperror.NewInvalidCredentials()
	}

	return user, nil
}

// Login authenticates the user and creates a new session in Redis. It
// returns the session token for the cookie.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, *User, error) {
	user, err := s.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.createSession(ctx, user)
	if err != nil {
		return "", nil, apperror.NewInternal(fmt.Errorf("creating session: %w", err))
	}

	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return token, user, nil
}

// ValidateSession looks up a session token in Redis and returns the session
// data if it exists and hasn't expired.
func (s *authService) ValidateSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperror.NewUnauthenticated("Not authenticated")
	}

	data, err := s.redis.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.NewUnauthenticated("session expired or invalid")
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading session from Redis: %w", err))
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("unmarshaling session: %w", err))
	}

	return &session, nil
}

// DestroySession removes a session from Redis, effectively logging the user out.
func (s *authService) DestroySession(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting session from Redis: %w", err))
	}
	return nil
}

// RefreshProfile rewrites the cached display name, avatar and theme of a
// live session after a profile update. The session keeps its remaining TTL.
func (s *authService) RefreshProfile(ctx context.Context, token string, profile SessionProfile) error {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return err
	}

	session.DisplayName = profile.DisplayName
	session.Avatar = profile.Avatar
	session.Theme = profile.Theme

	data, err := json.Marshal(session)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("marshaling session: %w", err))
	}

	err = s.redis.SetArgs(ctx, sessionKeyPrefix+token, data, redis.SetArgs{KeepTTL: true}).Err()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("updating session in Redis: %w", err))
	}

	return nil
}

// createSession generates a random session token, stores the session data in
// Redis with the configured TTL, and returns the token.
func (s *authService) createSession(ctx context.Context, user *User) (string, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	session := Session{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Theme:       user.Theme,
		CreatedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("marshaling session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKeyPrefix+token, data, s.sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("storing session in Redis: %w", err)
	}

	return token, nil
}

// --- Validation ---

// newUserFromInput validates registration input and builds the user row
// (without a password hash). Free-text fields are stripped of markup.
func newUserFromInput(input RegisterInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperror.NewValidation("username is required")
	}
	if !usernamePattern.MatchString(username) {
		return nil, apperror.NewValidation("username must be 3-50 characters: letters, digits, '_', '.' or '-'")
	}

	if input.Password == "" {
		return nil, apperror.NewValidation("password is required")
	}
	if n := utf8.RuneCountInString(input.Password); n < minPasswordLen {
		return nil, apperror.NewValidation("password must be at least 8 characters")
	} else if n > maxPasswordLen {
		return nil, apperror.NewValidation("password must be at most 128 characters")
	}
	if input.Confirm != input.Password {
		return nil, apperror.NewValidation("passwords do not match")
	}

	displayName := sanitize.Text(input.DisplayName)
	if displayName == "" {
		displayName = username
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLen {
		return nil, apperror.NewValidation("display name must be at most 100 characters")
	}

	firstName := sanitize.Text(input.FirstName)
	lastName := sanitize.Text(input.LastName)
	if utf8.RuneCountInString(firstName) > maxNameLen || utf8.RuneCountInString(lastName) > maxNameLen {
		return nil, apperror.NewValidation("names must be at most 100 characters")
	}

	now := time.Now().UTC()
	birthday, err := sanitize.PastDate(input.Birthday, now)
	if err != nil {
		return nil, apperror.NewValidation("birthday: " + err.Error())
	}

	email, ok := sanitize.Email(input.Email)
	if !ok {
		return nil, apperror.NewValidation("email address is not valid")
	}

	phone, ok := sanitize.Phone(input.Phone)
	if !ok {
		return nil, apperror.NewValidation("phone number may contain digits, spaces and + - ( ) only")
	}

	avatar := sanitize.Text(input.Avatar)
	if utf8.RuneCountInString(avatar) > maxAvatarRunes {
		return nil, apperror.NewValidation("avatar must be at most 8 characters")
	}

	return &User{
		Username:    username,
		DisplayName: displayName,
		FirstName:   firstName,
		LastName:    lastName,
		Birthday:    birthday,
		Email:       email,
		Phone:       phone,
		Avatar:      avatar,
		Theme:       "light",
		CreatedAt:   now,
	}, nil
}

// --- Password Hashing (argon2id) ---

// hashPassword creates an argon2id hash of the given password. The output
// format is: $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, b64Salt, b64Hash)

	return encoded, nil
}

// verifyPassword checks a plaintext password against an argon2id hash string.
func verifyPassword(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	return subtle.ConstantTimeCompare(expectedHash, computedHash) == 1
}

var (
	dummyHashValue string
	dummyHashOnce  sync.Once
)

// dummyHash is a valid hash of a random password, verified against when the
// username doesn't exist.
func dummyHash() string {
	dummyHashOnce.Do(func() {
		pw := make([]byte, 16)
		_, _ = rand.Read(pw)
		dummyHashValue, _ = hashPassword(hex.EncodeToString(pw))
	})
	return dummyHashValue
}

// --- Helpers ---

// generateSessionToken creates a cryptographically random hex-encoded token.
func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
