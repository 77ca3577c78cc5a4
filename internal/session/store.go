// Package session persists which storefront tokens belong to a signed
// in administrator. The browser only carries the raw bearer token in
// the admin_token cookie; each row maps the token's hash to a snapshot
// of the admin user so most page loads skip the /users/me round trip.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Marat1506/apple-admin/internal/api"
)

// TTL matches the admin_token cookie lifetime.
const TTL = 7 * 24 * time.Hour

var ErrNotFound = errors.New("session: not found")

type Session struct {
	ID          string    `gorm:"primaryKey;type:char(36)"`
	TokenHash   string    `gorm:"type:char(64);not null;uniqueIndex:ux_admin_sessions_token_hash"`
	UserID      string    `gorm:"type:varchar(64);not null;index:ix_admin_sessions_user_id"`
	UserName    string    `gorm:"type:varchar(255);not null"`
	UserEmail   string    `gorm:"type:varchar(255);not null"`
	UserRole    string    `gorm:"type:varchar(32);not null"`
	ExpiresAt   time.Time `gorm:"not null"`
	RefreshedAt time.Time `gorm:"not null"`
	LastSeenAt  time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "admin_sessions" }

// User rebuilds the snapshot taken at login / last refresh.
func (s *Session) User() api.User {
	return api.User{ID: s.UserID, Name: s.UserName, Email: s.UserEmail, Role: s.UserRole}
}

// StaleAfter reports whether the snapshot is older than maxAge and
// should be re-verified against /users/me.
func (s *Session) StaleAfter(maxAge time.Duration) bool {
	return time.Since(s.RefreshedAt) > maxAge
}

type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, ttl: TTL}
}

// Migrate creates the admin_sessions table when missing.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Session{})
}

// Create records a fresh login. An existing row for the same token is
// replaced, so re-submitting a login form never trips the unique
// index.
func (s *Store) Create(ctx context.Context, token string, u api.User) (*Session, error) {
	h := hashToken(token)
	now := time.Now()
	sess := &Session{
		ID:          uuid.New().String(),
		TokenHash:   h,
		UserID:      u.ID,
		UserName:    u.Name,
		UserEmail:   u.Email,
		UserRole:    u.Role,
		ExpiresAt:   now.Add(s.ttl),
		RefreshedAt: now,
		LastSeenAt:  now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("token_hash = ?", h).Delete(&Session{}).Error; err != nil {
			return err
		}
		return tx.Create(sess).Error
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Lookup resolves a token to its session. Expired rows count as
// missing. LastSeenAt is bumped best-effort.
func (s *Store) Lookup(ctx context.Context, token string) (*Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", hashToken(token), time.Now()).
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", sess.ID).
		Update("last_seen_at", time.Now())
	return &sess, nil
}

// Refresh overwrites the user snapshot after a successful /users/me
// check.
func (s *Store) Refresh(ctx context.Context, token string, u api.User) error {
	return s.db.WithContext(ctx).Model(&Session{}).
		Where("token_hash = ?", hashToken(token)).
		Updates(map[string]any{
			"user_id":      u.ID,
			"user_name":    u.Name,
			"user_email":   u.Email,
			"user_role":    u.Role,
			"refreshed_at": time.Now(),
		}).Error
}

// Delete removes the session for a token. Missing rows are fine; the
// point is that the token no longer resolves.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).
		Where("token_hash = ?", hashToken(token)).
		Delete(&Session{}).Error
}

// DeleteExpired clears rows past their expiry and returns how many
// went away. Run from the sessiongc tool.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&Session{})
	return res.RowsAffected, res.Error
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
