// Package identity keeps the user directory: accounts, bcrypt password hashes,
// opaque bearer tokens, roles and plans. The directory is a single JSON
// document in the storage backend.
package identity

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lg/wellness-go-api/internal/storage"
	"lg/wellness-go-api/internal/wellness"
)

// UsersKey is the storage key of the directory document.
const UsersKey = "hm_users"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	PlanFree = "Free"
	PlanPro  = "Pro"

	minPasswordLen = 6
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// dummyHash is compared against when a login email isn't found so the response
// time does not reveal which emails are registered.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// User is the public view of an account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	BirthDate string    `json:"birthDate"`
	Role      string    `json:"role"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether u may edit shared content and manage users.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// account is the persisted form of a user, secrets included.
type account struct {
	User
	PasswordHash string `json:"passwordHash"`
	AuthToken    string `json:"authToken"`
}

// Directory is the user store.
type Directory struct {
	backend storage.Backend
	cost    int

	mu sync.Mutex
}

// NewDirectory uses bcrypt.DefaultCost when cost is 0.
func NewDirectory(backend storage.Backend, cost int) *Directory {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Directory{backend: backend, cost: cost}
}

func (d *Directory) load(ctx context.Context) ([]account, error) {
	return wellness.LoadRecord(ctx, d.backend, UsersKey, []account{})
}

func (d *Directory) save(ctx context.Context, accounts []account) error {
	return wellness.SaveRecord(ctx, d.backend, UsersKey, accounts)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalid(field, reason string) error {
	return &wellness.ValidationError{Field: field, Reason: reason}
}

// validateIdentity checks gender and birth date; a birth date may not be in
// the future.
func validateIdentity(gender, birthDate string) error {
	if err := (wellness.Profile{Gender: gender, BirthDate: birthDate}).Validate(); err != nil {
		return err
	}
	if birthDate != "" && birthDate > time.Now().Format(wellness.DateLayout) {
		return invalid("birthDate", "must not be in the future")
	}
	return nil
}

/* ─── Registration and login ──────────────────────────────────────────── */

// NewUser is the input to Create.
type NewUser struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birthDate"`
	Role      string `json:"role"`
}

// Create registers an account and returns it with a fresh auth token. Role
// defaults to user; every new account starts on the Free plan.
func (d *Directory) Create(ctx context.Context, in NewUser) (User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if in.Name == "" {
		return User{}, "", invalid("name", "is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return User{}, "", invalid("email", "must be a valid email address")
	}
	if len(in.Password) < minPasswordLen {
		return User{}, "", invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	if in.Role == "" {
		in.Role = RoleUser
	}
	if in.Role != RoleUser && in.Role != RoleAdmin {
		return User{}, "", invalid("role", "must be user or admin")
	}
	if err := validateIdentity(in.Gender, in.BirthDate); err != nil {
		return User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), d.cost)
	if err != nil {
		return User{}, "", fmt.Errorf("hash password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	accounts, err := d.load(ctx)
	if err != nil {
		return User{}, "", err
	}
	for _, a := range accounts {
		if a.Email == in.Email {
			return User{}, "", ErrEmailTaken
		}
	}

	a := account{
		User: User{
			ID:        uuid.NewString(),
			Name:      in.Name,
			Email:     in.Email,
			Gender:    in.Gender,
			BirthDate: in.BirthDate,
			Role:      in.Role,
			Plan:      PlanFree,
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: string(hash),
		AuthToken:    uuid.NewString(),
	}
	if err := d.save(ctx, append(accounts, a)); err != nil {
		return User{}, "", err
	}
	return a.User, a.AuthToken, nil
}

// Authenticate checks email/password and returns the user and auth token.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (User, string, error) {
	accounts, err := d.load(ctx)
	if err != nil {
		return User{}, "", err
	}
	email = normalizeEmail(email)
	idx := slices.IndexFunc(accounts, func(a account) bool { return a.Email == email })

	// Always run bcrypt so unknown emails cost the same as wrong passwords.
	hashToCheck := string(dummyHash)
	if idx >= 0 {
		hashToCheck = accounts[idx].PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(password))

	if idx < 0 || compareErr != nil {
		return User{}, "", ErrInvalidCredentials
	}
	return accounts[idx].User, accounts[idx].AuthToken, nil
}

// ByToken resolves a bearer token.
func (d *Directory) ByToken(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrUserNotFound
	}
	accounts, err := d.load(ctx)
	if err != nil {
		return User{}, err
	}
	for _, a := range accounts {
		if a.AuthToken == token {
			return a.User, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (d *Directory) ByID(ctx context.Context, id string) (User, error) {
	accounts, err := d.load(ctx)
	if err != nil {
		return User{}, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a.User, nil
		}
	}
	return User{}, ErrUserNotFound
}

// List returns every user in registration order.
func (d *Directory) List(ctx context.Context) ([]User, error) {
	accounts, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]User, len(accounts))
	for i, a := range accounts {
		users[i] = a.User
	}
	return users, nil
}

/* ─── Mutations ───────────────────────────────────────────────────────── */

// update applies fn to the account with id under the directory lock and saves.
func (d *Directory) update(ctx context.Context, id string, fn func(a *account) error) (account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	accounts, err := d.load(ctx)
	if err != nil {
		return account{}, err
	}
	idx := slices.IndexFunc(accounts, func(a account) bool { return a.ID == id })
	if idx < 0 {
		return account{}, ErrUserNotFound
	}
	if err := fn(&accounts[idx]); err != nil {
		return account{}, err
	}
	if err := d.save(ctx, accounts); err != nil {
		return account{}, err
	}
	return accounts[idx], nil
}

// ProfileUpdate holds the identity fields a user may edit. Nil fields are left as-is.
type ProfileUpdate struct {
	Name      *string `json:"name"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birthDate"`
}

func (d *Directory) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (User, error) {
	a, err := d.update(ctx, id, func(a *account) error {
		next := a.User
		if in.Name != nil {
			next.Name = strings.TrimSpace(*in.Name)
			if next.Name == "" {
				return invalid("name", "is required")
			}
		}
		if in.Gender != nil {
			next.Gender = *in.Gender
		}
		if in.BirthDate != nil {
			next.BirthDate = *in.BirthDate
		}
		if err := validateIdentity(next.Gender, next.BirthDate); err != nil {
			return err
		}
		a.User = next
		return nil
	})
	return a.User, err
}

// ChangePassword requires the current password.
func (d *Directory) ChangePassword(ctx context.Context, id, current, next string) error {
	if len(next) < minPasswordLen {
		return invalid("newPassword", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), d.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = d.update(ctx, id, func(a *account) error {
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(current)) != nil {
			return ErrInvalidCredentials
		}
		a.PasswordHash = string(hash)
		return nil
	})
	return err
}

// RotateToken replaces the user's auth token, invalidating the old one.
func (d *Directory) RotateToken(ctx context.Context, id string) (string, error) {
	a, err := d.update(ctx, id, func(a *account) error {
		a.AuthToken = uuid.NewString()
		return nil
	})
	return a.AuthToken, err
}

func (d *Directory) SetPlan(ctx context.Context, id, plan string) (User, error) {
	if plan != PlanFree && plan != PlanPro {
		return User{}, invalid("plan", "must be Free or Pro")
	}
	a, err := d.update(ctx, id, func(a *account) error {
		a.Plan = plan
		return nil
	})
	return a.User, err
}

// Delete removes the account. The caller clears the user's partition.
func (d *Directory) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	accounts, err := d.load(ctx)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(accounts, func(a account) bool { return a.ID == id })
	if idx < 0 {
		return ErrUserNotFound
	}
	return d.save(ctx, slices.Delete(accounts, idx, idx+1))
}
