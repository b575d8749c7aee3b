// Package testutil provides in-memory fakes shared across unit tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// FakeUserRepository is an in-memory UserRepository
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
	roles map[uuid.UUID][]models.Role
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{
		users: make(map[uuid.UUID]*models.User),
		roles: make(map[uuid.UUID][]models.Role),
	}
}

func (r *FakeUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrEmailExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *FakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *FakeUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *FakeUserRepository) List(_ context.Context, filter repository.UserFilter) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if filter.Email != nil && !strings.EqualFold(u.Email, *filter.Email) {
			continue
		}
		if filter.Active != nil && u.Active != *filter.Active {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *FakeUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *FakeUserRepository) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (r *FakeUserRepository) AssignRoles(_ context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	roles := make([]models.Role, 0, len(roleIDs))
	for _, id := range roleIDs {
		roles = append(roles, models.Role{ID: id})
	}
	r.roles[userID] = roles
	return nil
}

func (r *FakeUserRepository) GetRoles(_ context.Context, userID uuid.UUID) ([]models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roles[userID], nil
}

// SetRoles seeds the role set returned by GetRoles
func (r *FakeUserRepository) SetRoles(userID uuid.UUID, roles []models.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[userID] = roles
}

// FakeRefreshTokenRepository is an in-memory RefreshTokenRepository
type FakeRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func NewFakeRefreshTokenRepository() *FakeRefreshTokenRepository {
	return &FakeRefreshTokenRepository{tokens: make(map[string]models.RefreshToken)}
}

func (r *FakeRefreshTokenRepository) Create(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *FakeRefreshTokenRepository) GetByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	if time.Now().After(t.ExpiresAt) {
		return nil, repository.ErrTokenExpired
	}
	return &t, nil
}

func (r *FakeRefreshTokenRepository) DeleteByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *FakeRefreshTokenRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

func (r *FakeRefreshTokenRepository) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for token, t := range r.tokens {
		if now.After(t.ExpiresAt) {
			delete(r.tokens, token)
			n++
		}
	}
	return n, nil
}

// CountForUser returns the number of live tokens held by a user
func (r *FakeRefreshTokenRepository) CountForUser(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

// FakeLoginHistoryRepository is an in-memory LoginHistoryRepository. Created
// signals each write so tests can wait for the asynchronous recorder.
type FakeLoginHistoryRepository struct {
	mu        sync.Mutex
	records   []models.LoginHistory
	createErr error
	Created   chan models.LoginHistory
}

func NewFakeLoginHistoryRepository() *FakeLoginHistoryRepository {
	return &FakeLoginHistoryRepository{Created: make(chan models.LoginHistory, 16)}
}

// SetCreateErr makes Create fail with err until cleared with nil
func (r *FakeLoginHistoryRepository) SetCreateErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createErr = err
}

func (r *FakeLoginHistoryRepository) Create(_ context.Context, record *models.LoginHistory) error {
	r.mu.Lock()
	if r.createErr != nil {
		err := r.createErr
		r.mu.Unlock()
		return err
	}
	record.ID = uuid.New()
	r.records = append(r.records, *record)
	r.mu.Unlock()
	select {
	case r.Created <- *record:
	default:
	}
	return nil
}

func (r *FakeLoginHistoryRepository) List(_ context.Context, filter repository.LoginHistoryFilter) ([]models.LoginHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.LoginHistory
	for _, rec := range r.records {
		if filter.UserID != nil && rec.UserID != *filter.UserID {
			continue
		}
		if filter.DeviceType != nil && rec.DeviceType != *filter.DeviceType {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// FakeOTPCodeRepository is an in-memory OTPCodeRepository
type FakeOTPCodeRepository struct {
	mu    sync.Mutex
	codes []*models.OTPCode
}

func NewFakeOTPCodeRepository() *FakeOTPCodeRepository {
	return &FakeOTPCodeRepository{}
}

func (r *FakeOTPCodeRepository) Create(_ context.Context, code *models.OTPCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	code.ID = uuid.New()
	code.CreatedAt = time.Now()
	cp := *code
	r.codes = append(r.codes, &cp)
	return nil
}

func (r *FakeOTPCodeRepository) GetActiveByKey(_ context.Context, key string) (*models.OTPCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for i := len(r.codes) - 1; i >= 0; i-- {
		c := r.codes[i]
		if c.Key == key && c.ConsumedAt == nil && c.ExpiresAt.After(now) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrCodeNotFound
}

func (r *FakeOTPCodeRepository) MarkConsumed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.ID == id {
			now := time.Now()
			c.ConsumedAt = &now
			return nil
		}
	}
	return repository.ErrCodeNotFound
}

func (r *FakeOTPCodeRepository) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	kept := r.codes[:0]
	var n int64
	for _, c := range r.codes {
		if now.After(c.ExpiresAt) {
			n++
			continue
		}
		kept = append(kept, c)
	}
	r.codes = kept
	return n, nil
}

// FakeRoleRepository is an in-memory RoleRepository covering the subset the
// permission gate and handlers exercise.
type FakeRoleRepository struct {
	mu              sync.Mutex
	roles           map[uuid.UUID]*models.Role
	permissions     map[uuid.UUID][]models.Permission
	userPermissions map[uuid.UUID][]string
}

func NewFakeRoleRepository() *FakeRoleRepository {
	return &FakeRoleRepository{
		roles:           make(map[uuid.UUID]*models.Role),
		permissions:     make(map[uuid.UUID][]models.Permission),
		userPermissions: make(map[uuid.UUID][]string),
	}
}

func (r *FakeRoleRepository) Create(_ context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return repository.ErrRoleExists
		}
	}
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	role.CreatedAt = time.Now()
	role.UpdatedAt = role.CreatedAt
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r *FakeRoleRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}
	cp := *role
	return &cp, nil
}

func (r *FakeRoleRepository) GetByName(_ context.Context, name string) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.Name == name {
			cp := *role
			return &cp, nil
		}
	}
	return nil, repository.ErrRoleNotFound
}

func (r *FakeRoleRepository) List(_ context.Context) ([]models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Role
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *FakeRoleRepository) Update(_ context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.roles[role.ID]
	if !ok {
		return repository.ErrRoleNotFound
	}
	if existing.IsProtected {
		return repository.ErrRoleProtected
	}
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r *FakeRoleRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok {
		return repository.ErrRoleNotFound
	}
	if role.IsProtected {
		return repository.ErrRoleProtected
	}
	delete(r.roles, id)
	return nil
}

func (r *FakeRoleRepository) GetPermissions(_ context.Context, roleID uuid.UUID) ([]models.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.permissions[roleID], nil
}

func (r *FakeRoleRepository) SetPermissions(_ context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[roleID]; !ok {
		return repository.ErrRoleNotFound
	}
	perms := make([]models.Permission, 0, len(permissionIDs))
	for _, id := range permissionIDs {
		perms = append(perms, models.Permission{ID: id})
	}
	r.permissions[roleID] = perms
	return nil
}

func (r *FakeRoleRepository) ListPermissions(_ context.Context) ([]models.Permission, error) {
	return nil, nil
}

func (r *FakeRoleRepository) GetPermissionNamesForUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.userPermissions[userID], nil
}

// GrantPermissions seeds the permission names GetPermissionNamesForUser returns
func (r *FakeRoleRepository) GrantPermissions(userID uuid.UUID, names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userPermissions[userID] = append(r.userPermissions[userID], names...)
}

// FakeEmailSender records sent messages instead of delivering them
type FakeEmailSender struct {
	mu      sync.Mutex
	sendErr error
	Sent    chan SentEmail
}

// SentEmail is one captured outbound message
type SentEmail struct {
	To            string
	Name          string
	Code          string
	ExpiryMinutes int
}

func NewFakeEmailSender() *FakeEmailSender {
	return &FakeEmailSender{Sent: make(chan SentEmail, 16)}
}

// SetSendErr makes SendOTPEmail fail with err until cleared with nil
func (s *FakeEmailSender) SetSendErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErr = err
}

func (s *FakeEmailSender) SendOTPEmail(to, name, code string, expiryMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	select {
	case s.Sent <- SentEmail{To: to, Name: name, Code: code, ExpiryMinutes: expiryMinutes}:
	default:
	}
	return nil
}
