package repository

import (
	"TaskManager_API/internal"
	"TaskManager_API/internal/apperror"
	"TaskManager_API/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

type UserRepository struct {
	*internal.Database
}

func NewUserRepository(database *internal.Database) *UserRepository {
	return &UserRepository{database}
}

// Create вставляет пользователя и заполняет его временные метки.
// Конфликт по уникальному email определяется по коду ошибки Postgres,
// а не отдельным SELECT: так регистрация не подвержена гонке проверка-вставка
func (repository *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (uuid, name, email, password)
			  VALUES ($1, $2, $3, $4)
			  RETURNING created_at, updated_at`

	err := repository.DB.QueryRowxContext(ctx, query, user.UUID, user.Name, user.Email, user.Password).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return apperror.ErrDuplicateAccount
		}
		return fmt.Errorf("ошибка вставки пользователя: %w", err)
	}

	return nil
}

func (repository *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	query := `SELECT * FROM users WHERE email = $1`
	if err := repository.DB.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return &user, nil
}

func (repository *UserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	var user model.User

	query := `SELECT * FROM users WHERE uuid = $1`
	if err := repository.DB.GetContext(ctx, &user, query, uuid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return &user, nil
}

func (repository *UserRepository) UpdateRefreshToken(ctx context.Context, userUUID string, refreshToken string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = now() WHERE uuid = $1`

	result, err := repository.DB.ExecContext(ctx, query, userUUID, refreshToken)
	if err != nil {
		return fmt.Errorf("не удалось сохранить refresh токен: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось проверить, сохранен ли токен: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.ErrNotFound
	}

	return nil
}

// ClearRefreshToken отзывает текущую сессию: NULL в refresh_token делает
// любой ранее выданный refresh токен непригодным до его естественного истечения
func (repository *UserRepository) ClearRefreshToken(ctx context.Context, userUUID string) error {
	query := `UPDATE users SET refresh_token = NULL, updated_at = now() WHERE uuid = $1`

	if _, err := repository.DB.ExecContext(ctx, query, userUUID); err != nil {
		return fmt.Errorf("не удалось очистить refresh токен: %w", err)
	}

	return nil
}
