package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/muhammadheryan/user-dashboard/constant"
	"github.com/muhammadheryan/user-dashboard/model"
	"github.com/muhammadheryan/user-dashboard/repository/database"
)

// ErrNotFound is returned by writes addressing an id that does not exist.
var ErrNotFound = errors.New("repository: user not found")

type SQL struct {
	gateway database.Gateway
}

type UserRepository interface {
	List(ctx context.Context) ([]model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	Exists(ctx context.Context, column, value string) (bool, error)
	Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error)
	Update(ctx context.Context, data *model.UserEntity) error
	Delete(ctx context.Context, id string) error
}

func NewUserRepository(gateway database.Gateway) UserRepository {
	return &SQL{gateway: gateway}
}

const (
	listUsersQuery  = `SELECT id, name, email, phone, password FROM users ORDER BY name`
	getUserBase     = `SELECT id, name, email, phone, password FROM users WHERE true`
	insertUserQuery = `INSERT INTO users (id, name, email, phone, password) VALUES (?, ?, ?, ?, ?)`
	updateUserQuery = `UPDATE users SET name = ?, email = ?, phone = ?, password = ? WHERE id = ?`
	deleteUserQuery = `DELETE FROM users WHERE id = ?`
)

// column names cannot be bound as parameters, so only these are accepted
var existsQueries = map[string]string{
	constant.FieldName:  `SELECT EXISTS(SELECT 1 FROM users WHERE name = ?)`,
	constant.FieldEmail: `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`,
	constant.FieldPhone: `SELECT EXISTS(SELECT 1 FROM users WHERE phone = ?)`,
}

func (s *SQL) List(ctx context.Context) ([]model.UserEntity, error) {
	conn, err := s.gateway.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	users := make([]model.UserEntity, 0)
	if err := conn.SelectContext(ctx, &users, listUsersQuery); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 4)

	if filter.ID != "" {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Name != "" {
		query += " AND name = ?"
		args = append(args, filter.Name)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	if filter.Phone != "" {
		query += " AND phone = ?"
		args = append(args, filter.Phone)
	}
	query += " LIMIT 1"

	conn, err := s.gateway.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var entity model.UserEntity
	if err := conn.GetContext(ctx, &entity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Exists(ctx context.Context, column, value string) (bool, error) {
	query, ok := existsQueries[column]
	if !ok {
		return false, fmt.Errorf("%w: column %q is not unique", database.ErrQuery, column)
	}

	conn, err := s.gateway.Open(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	var exists bool
	if err := conn.GetContext(ctx, &exists, query, value); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	conn, err := s.gateway.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, insertUserQuery, data.ID, data.Name, data.Email, data.Phone, data.Password); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SQL) Update(ctx context.Context, data *model.UserEntity) error {
	conn, err := s.gateway.Open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, updateUserQuery, data.Name, data.Email, data.Phone, data.Password, data.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", database.ErrQuery, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, id string) error {
	conn, err := s.gateway.Open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx, deleteUserQuery, id)
	return err
}
