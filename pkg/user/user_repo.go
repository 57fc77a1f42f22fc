package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	UpdateDisplayName(ctx context.Context, userId int, displayName string) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO user (uid, username, display_name, password_hash) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, user.Uid, user.Username, user.DisplayName, user.PasswordHash)
	if err != nil {
		err := fmt.Errorf("could not store user: %w", err)
		log.Error(err)
		return 0, err
	}
	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (r *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	return r.getUserWhere(ctx, "id = ?", id)
}

func (r *RepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return r.getUserWhere(ctx, "uid = ?", uid)
}

func (r *RepoImpl) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return r.getUserWhere(ctx, "username = ?", username)
}

func (r *RepoImpl) getUserWhere(ctx context.Context, condition string, arg any) (User, error) {
	query := "SELECT id, uid, username, display_name, password_hash FROM user WHERE " + condition
	row := r.db.QueryRowContext(ctx, query, arg)

	var user User
	if err := row.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		err := fmt.Errorf("could not scan user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *RepoImpl) UpdateDisplayName(ctx context.Context, userId int, displayName string) (bool, error) {
	query := "UPDATE user SET display_name = ? WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, displayName, userId)
	if err != nil {
		err := fmt.Errorf("could not update user: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
