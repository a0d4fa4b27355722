package impl

import (
	"context"
	"database/sql"
	"slices"

	"github.com/sidereusnuntius/gopress/internal/domain"
)

const userColumns = "id, blog_id, login, name, email, password_hash"

func (d *dbImpl) LoadUser(ctx context.Context, blogID, login string) (domain.User, error) {
	var u domain.User
	err := d.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE blog_id = ? AND login = ?", blogID, login).
		Scan(&u.ID, &u.BlogID, &u.Login, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		return domain.User{}, d.HandleError(err)
	}
	u.Permissions, err = d.permissions(ctx, u.ID)
	return u, d.HandleError(err)
}

func (d *dbImpl) permissions(ctx context.Context, userID int64) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT permission FROM user_permissions WHERE user_id = ? ORDER BY permission", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perms := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (d *dbImpl) ListUsers(ctx context.Context, blogID string) ([]domain.User, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users WHERE blog_id = ? ORDER BY login", blogID)
	if err != nil {
		return nil, d.HandleError(err)
	}

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.BlogID, &u.Login, &u.Name, &u.Email, &u.PasswordHash); err != nil {
			rows.Close()
			return nil, d.HandleError(err)
		}
		users = append(users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, d.HandleError(err)
	}

	for i := range users {
		if users[i].Permissions, err = d.permissions(ctx, users[i].ID); err != nil {
			return nil, d.HandleError(err)
		}
	}
	return users, nil
}

func (d *dbImpl) SaveUser(ctx context.Context, u *domain.User) error {
	return d.WithTx(func(tx *sql.Tx) error {
		if u.ID == 0 {
			res, err := tx.ExecContext(ctx,
				"INSERT INTO users(blog_id, login, name, email, password_hash) VALUES (?,?,?,?,?)",
				u.BlogID, u.Login, u.Name, u.Email, u.PasswordHash)
			if err != nil {
				return err
			}
			if u.ID, err = res.LastInsertId(); err != nil {
				return err
			}
		} else {
			err := mustAffect(tx.ExecContext(ctx,
				"UPDATE users SET login = ?, name = ?, email = ?, password_hash = ? WHERE blog_id = ? AND id = ?",
				u.Login, u.Name, u.Email, u.PasswordHash, u.BlogID, u.ID))
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, "DELETE FROM user_permissions WHERE user_id = ?", u.ID); err != nil {
				return err
			}
		}

		slices.Sort(u.Permissions)
		u.Permissions = slices.Compact(u.Permissions)
		for _, p := range u.Permissions {
			_, err := tx.ExecContext(ctx, "INSERT INTO user_permissions(user_id, permission) VALUES (?,?)", u.ID, p)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *dbImpl) DeleteUser(ctx context.Context, blogID, login string) error {
	return d.WithTx(func(tx *sql.Tx) error {
		return mustAffect(tx.ExecContext(ctx, "DELETE FROM users WHERE blog_id = ? AND login = ?", blogID, login))
	})
}

func (d *dbImpl) SetPermission(ctx context.Context, blogID, login, permission string, granted bool) error {
	return d.WithTx(func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM users WHERE blog_id = ? AND login = ?", blogID, login).Scan(&id)
		if err != nil {
			return err
		}
		if granted {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO user_permissions(user_id, permission) VALUES (?,?) ON CONFLICT DO NOTHING", id, permission)
		} else {
			_, err = tx.ExecContext(ctx,
				"DELETE FROM user_permissions WHERE user_id = ? AND permission = ?", id, permission)
		}
		return err
	})
}
