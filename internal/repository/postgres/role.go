package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

type roleRepository struct {
	repository.BaseRepository
}

// NewRoleRepository creates a new PostgreSQL role repository
func NewRoleRepository(db *sql.DB) repository.RoleRepository {
	return &roleRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now

	query := `
		INSERT INTO roles (id, name, is_protected, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB().ExecContext(ctx, query,
		role.ID, role.Name, role.IsProtected, role.CreatedAt, role.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return repository.ErrRoleExists
	}
	return err
}

func (r *roleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	query := `SELECT id, name, is_protected, created_at, updated_at FROM roles WHERE id = $1`
	return r.scanRole(ctx, r.DB().QueryRowContext(ctx, query, id))
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	query := `SELECT id, name, is_protected, created_at, updated_at FROM roles WHERE name = $1`
	return r.scanRole(ctx, r.DB().QueryRowContext(ctx, query, name))
}

func (r *roleRepository) List(ctx context.Context) ([]models.Role, error) {
	query := `SELECT id, name, is_protected, created_at, updated_at FROM roles ORDER BY name`

	rows, err := r.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.IsProtected, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *roleRepository) Update(ctx context.Context, role *models.Role) error {
	existing, err := r.GetByID(ctx, role.ID)
	if err != nil {
		return err
	}
	if existing.IsProtected {
		return repository.ErrRoleProtected
	}

	role.UpdatedAt = time.Now()
	query := `UPDATE roles SET name = $1, updated_at = $2 WHERE id = $3`
	_, err = r.DB().ExecContext(ctx, query, role.Name, role.UpdatedAt, role.ID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return repository.ErrRoleExists
	}
	return err
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsProtected {
		return repository.ErrRoleProtected
	}

	var inUse bool
	err = r.DB().QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_roles WHERE role_id = $1)`, id,
	).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return repository.ErrRoleInUse
	}

	_, err = r.DB().ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	return err
}

func (r *roleRepository) GetPermissions(ctx context.Context, roleID uuid.UUID) ([]models.Permission, error) {
	query := `
		SELECT p.id, p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.name`

	return r.queryPermissions(ctx, query, roleID)
}

func (r *roleRepository) SetPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	return r.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		for _, permissionID := range permissionIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
				roleID, permissionID,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *roleRepository) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	return r.queryPermissions(ctx, `SELECT id, name FROM permissions ORDER BY name`)
}

func (r *roleRepository) GetPermissionNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN user_roles ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = $1`

	rows, err := r.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *roleRepository) queryPermissions(ctx context.Context, query string, args ...interface{}) ([]models.Permission, error) {
	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []models.Permission
	for rows.Next() {
		var p models.Permission
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}

func (r *roleRepository) scanRole(ctx context.Context, row *sql.Row) (*models.Role, error) {
	var role models.Role
	err := row.Scan(&role.ID, &role.Name, &role.IsProtected, &role.CreatedAt, &role.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}

	permissions, err := r.GetPermissions(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	role.Permissions = permissions
	return &role, nil
}
