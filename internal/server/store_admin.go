package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AdminAccount is a stored admin login.
type AdminAccount struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

type adminSessionDoc struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"adminId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminDocStore implements AdminStore on the admins and admin_sessions tables.
type AdminDocStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewAdminDocStore(db *sql.DB) *AdminDocStore {
	return &AdminDocStore{db: db, now: time.Now}
}

// queryDoc scans the single json(data) column of query into dest.
func queryDoc(ctx context.Context, db *sql.DB, dest any, query string, args ...any) error {
	var data string
	err := db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// EnsureAdmin creates the first admin account. It reports false and changes
// nothing once any admin exists, so a changed ADMIN_PASSWORD does not
// overwrite a password set later.
func (s *AdminDocStore) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	acct := AdminAccount{ID: newID(), Email: email, PasswordHash: string(hash)}
	data, err := json.Marshal(acct)
	if err != nil {
		return false, err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO admins (id, email, data) VALUES (?, ?, jsonb(?))`,
		acct.ID, acct.Email, string(data),
	); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AdminDocStore) AdminByEmail(ctx context.Context, email string) (AdminAccount, error) {
	var acct AdminAccount
	err := queryDoc(ctx, s.db, &acct, `SELECT json(data) FROM admins WHERE email = ?`, email)
	return acct, err
}

// CreateAdminSession opens a session for acct that expires after adminSessionTTL.
func (s *AdminDocStore) CreateAdminSession(ctx context.Context, acct AdminAccount) (string, error) {
	now := s.now().UTC()
	sess := adminSessionDoc{
		ID:        newID(),
		AdminID:   acct.ID,
		Email:     acct.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(adminSessionTTL),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (id, data) VALUES (?, jsonb(?))`,
		sess.ID, string(data),
	)
	return sess.ID, err
}

func (s *AdminDocStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

// AdminFromSession resolves a live session. Expired sessions are removed.
func (s *AdminDocStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSessionDoc
	err := queryDoc(ctx, s.db, &sess, `SELECT json(data) FROM admin_sessions WHERE id = ?`, sessionID)
	if errors.Is(err, ErrNotFound) {
		return adminSession{}, errNoAdminSession
	}
	if err != nil {
		return adminSession{}, err
	}

	if !s.now().Before(sess.ExpiresAt) {
		if err := s.DeleteAdminSession(ctx, sess.ID); err != nil {
			return adminSession{}, err
		}
		return adminSession{}, errNoAdminSession
	}
	return adminSession{AdminID: sess.AdminID, Email: sess.Email}, nil
}
