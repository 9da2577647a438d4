package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

func (c *caller) profile(ctx context.Context, q Querier, principal string) (*entity.UserProfile, error) {
	var p entity.UserProfile
	err := q.QueryRow(ctx,
		`SELECT name, email, department, app_role FROM user_profiles WHERE principal = $1`, principal,
	).Scan(&p.Name, &p.Email, &p.Department, &p.AppRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (c *caller) approvalStatus(ctx context.Context, q Querier) (string, error) {
	var st string
	err := q.QueryRow(ctx, `SELECT status FROM approvals WHERE principal = $1`, c.principal).Scan(&st)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get approval: %w", err)
	}
	return st, nil
}

func (c *caller) isAdmin(ctx context.Context) (bool, error) {
	p, err := c.profile(ctx, c.s.pool, c.principal)
	if err != nil {
		return false, err
	}
	return p != nil && p.AppRole == entity.RoleAdmin, nil
}

func (c *caller) requireAdmin(ctx context.Context) error {
	ok, err := c.isAdmin(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.RemoteError{Code: domain.CodeUnauthorized, Message: "Unauthorized: only admins can perform this action"}
	}
	return nil
}

func (c *caller) GetCallerUserProfile(ctx context.Context) (*entity.UserProfile, error) {
	return c.profile(ctx, c.s.pool, c.principal)
}

// SaveCallerUserProfile el primer perfil del sistema queda como admin y aprobado; el rol
// de un perfil existente sólo lo cambia AssignAppRole.
func (c *caller) SaveCallerUserProfile(ctx context.Context, profile entity.UserProfile) error {
	if profile.Name == "" {
		return invalid("name is required")
	}
	return c.s.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE user_profiles IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock profiles: %w", err)
		}
		var total int64
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM user_profiles`).Scan(&total); err != nil {
			return fmt.Errorf("count profiles: %w", err)
		}
		existing, err := c.profile(ctx, tx, c.principal)
		if err != nil {
			return err
		}
		switch {
		case total == 0:
			profile.AppRole = entity.RoleAdmin
			if _, err := tx.Exec(ctx,
				`INSERT INTO approvals (principal, status, updated_at) VALUES ($1, $2, now())
				 ON CONFLICT (principal) DO UPDATE SET status = EXCLUDED.status, updated_at = now()`,
				c.principal, entity.ApprovalApproved); err != nil {
				return fmt.Errorf("approve first admin: %w", err)
			}
		case existing != nil:
			profile.AppRole = existing.AppRole
		default:
			profile.AppRole = entity.RoleUser
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO user_profiles (principal, name, email, department, app_role)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (principal) DO UPDATE
			 SET name = EXCLUDED.name, email = EXCLUDED.email, department = EXCLUDED.department, app_role = EXCLUDED.app_role`,
			c.principal, profile.Name, profile.Email, profile.Department, profile.AppRole)
		if err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return nil
	})
}

func (c *caller) GetBootstrapState(ctx context.Context) (*entity.BootstrapState, error) {
	p, err := c.profile(ctx, c.s.pool, c.principal)
	if err != nil {
		return nil, err
	}
	st, err := c.approvalStatus(ctx, c.s.pool)
	if err != nil {
		return nil, err
	}
	return &entity.BootstrapState{
		Profile:        p,
		IsAdmin:        p != nil && p.AppRole == entity.RoleAdmin,
		IsApproved:     st == entity.ApprovalApproved,
		ApprovalStatus: st,
	}, nil
}

func (c *caller) IsCallerAdmin(ctx context.Context) (bool, error) {
	return c.isAdmin(ctx)
}

func (c *caller) IsCallerApproved(ctx context.Context) (bool, error) {
	st, err := c.approvalStatus(ctx, c.s.pool)
	return st == entity.ApprovalApproved, err
}

// RequestApproval no pisa una decisión ya tomada.
func (c *caller) RequestApproval(ctx context.Context) error {
	_, err := c.s.pool.Exec(ctx,
		`INSERT INTO approvals (principal, status, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (principal) DO NOTHING`,
		c.principal, entity.ApprovalPending)
	if err != nil {
		return fmt.Errorf("request approval: %w", err)
	}
	return nil
}

func (c *caller) ListApprovals(ctx context.Context) ([]entity.UserApprovalInfo, error) {
	if err := c.requireAdmin(ctx); err != nil {
		return nil, err
	}
	rows, err := c.s.pool.Query(ctx, `SELECT principal, status FROM approvals ORDER BY principal`)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()
	list := make([]entity.UserApprovalInfo, 0)
	for rows.Next() {
		var a entity.UserApprovalInfo
		if err := rows.Scan(&a.Principal, &a.Status); err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (c *caller) SetApproval(ctx context.Context, principal, status string) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	if !entity.ValidApprovalStatus(status) {
		return invalid("invalid approval status " + status)
	}
	_, err := c.s.pool.Exec(ctx,
		`INSERT INTO approvals (principal, status, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (principal) DO UPDATE SET status = EXCLUDED.status, updated_at = now()`,
		principal, status)
	if err != nil {
		return fmt.Errorf("set approval: %w", err)
	}
	return nil
}

func (c *caller) ListUserProfiles(ctx context.Context) ([]entity.UserProfileEntry, error) {
	if err := c.requireAdmin(ctx); err != nil {
		return nil, err
	}
	rows, err := c.s.pool.Query(ctx,
		`SELECT principal, name, email, department, app_role FROM user_profiles ORDER BY principal`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	list := make([]entity.UserProfileEntry, 0)
	for rows.Next() {
		var e entity.UserProfileEntry
		if err := rows.Scan(&e.Principal, &e.Profile.Name, &e.Profile.Email, &e.Profile.Department, &e.Profile.AppRole); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (c *caller) AssignAppRole(ctx context.Context, principal, role string) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	if !entity.ValidRole(role) {
		return invalid("invalid role " + role)
	}
	cmd, err := c.s.pool.Exec(ctx, `UPDATE user_profiles SET app_role = $2 WHERE principal = $1`, principal, role)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("user", principal)
	}
	return nil
}
