package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/starwars-api/internal/model"
)

const (
	usersTable  = "users"
	userColumns = "id, email, password, is_active"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list users query: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	stmt := `
		INSERT INTO
			users (email, password, is_active)
		VALUES
			(@email, @password, @is_active)
		RETURNING ` + userColumns

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{
		"email":     params.Email,
		"password":  params.PasswordHash,
		"is_active": params.IsActive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create user query: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get user query: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, notFound("get user", usersTable, id, err)
	}

	return user, nil
}

// UpdateUser applies the present fields and returns the row after the change.
// A request with no mutable field present just re-reads the row.
func (r *UserRepository) UpdateUser(ctx context.Context, id int64, params model.UpdateUserParams) (*model.User, error) {
	stmt, args, ok := buildUpdate(usersTable, userColumns, id, []assignment{
		{column: "email", value: params.Email},
	})
	if !ok {
		return r.GetUserByID(ctx, id)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute update user query: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, notFound("update user", usersTable, id, err)
	}

	return user, nil
}

// DeleteUser removes the row and returns it as it was before deletion.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) (*model.User, error) {
	rows, err := r.db.Query(ctx, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute delete user query: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, notFound("delete user", usersTable, id, err)
	}

	return user, nil
}
