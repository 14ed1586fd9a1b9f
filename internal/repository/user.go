package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/atrium/api/internal/database"
	"github.com/forgo/atrium/api/internal/model"
)

// UserRepository persists user accounts in SurrealDB
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and fills in the generated ID and timestamps.
// The email unique index maps onto database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	role := user.Role
	if role == "" {
		role = model.UserRoleUser
	}

	result, err := r.db.Query(ctx, `
		CREATE user CONTENT {
			email: $email,
			name: $name,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			role: $role,
			created_on: time::now(),
			updated_on: time::now()
		}
	`, map[string]interface{}{
		"email": user.Email,
		"name":  user.Name,
		"hash":  ptrToNone(user.Hash),
		"role":  role,
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.Role = role
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID fetches a user by record ID, returning (nil, nil) when absent
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.fetchOne(ctx, `SELECT * FROM type::record($id)`,
		map[string]interface{}{"id": id})
}

// GetByEmail fetches a user by email, returning (nil, nil) when absent
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.fetchOne(ctx, `SELECT * FROM user WHERE email = $email LIMIT 1`,
		map[string]interface{}{"email": email})
}

// fetchOne runs a single-user query. Absence is not an error here; the
// auth service needs to distinguish "no such user" from a failed lookup.
func (r *UserRepository) fetchOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := userFromRow(result)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// SetLoginOn stamps the time of a successful login
func (r *UserRepository) SetLoginOn(ctx context.Context, userID string) error {
	return r.db.Execute(ctx,
		`UPDATE type::record($id) SET login_on = time::now()`,
		map[string]interface{}{"id": userID},
	)
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	return r.db.Execute(ctx,
		`UPDATE type::record($id) SET hash = $hash, updated_on = time::now()`,
		map[string]interface{}{"id": userID, "hash": hash},
	)
}

// SetRole changes a user's role
func (r *UserRepository) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	return r.db.Execute(ctx,
		`UPDATE type::record($id) SET role = $role, updated_on = time::now()`,
		map[string]interface{}{"id": userID, "role": role},
	)
}

// Delete removes a user record
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.Execute(ctx, `DELETE type::record($id)`,
		map[string]interface{}{"id": id})
}

func userFromRow(result interface{}) (*model.User, error) {
	data, err := unwrapRow(result)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:    convertSurrealID(data["id"]),
		Email: getString(data, "email"),
		Name:  getString(data, "name"),
		Hash:  getStringPtr(data, "hash"),
		Role:  model.UserRole(getString(data, "role")),
	}
	if t := getTime(data, "created_on"); t != nil {
		user.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		user.UpdatedOn = *t
	}
	user.LoginOn = getTime(data, "login_on")

	return user, nil
}
