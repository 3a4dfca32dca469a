package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
	"github.com/ridloal/retail-pos-backend/internal/user/domain"
)

// isUniqueViolation mengenali pelanggaran unique constraint dari driver pgx.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already exists")

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (username, password_hash, name, address, contact, avatar)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var avatar sql.NullString
	if user.Avatar != nil {
		avatar = sql.NullString{String: *user.Avatar, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.Name, user.Address, user.Contact, avatar).
		Scan(&user.ID)
	if err != nil {
		// Kode error '23505' adalah unique_violation (username sudah dipakai)
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		logger.Error("CreateUser: failed to insert user", err)
		return err
	}
	return nil
}

func (r *postgresUserRepository) getUserBy(ctx context.Context, field, value string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, name, address, contact, avatar FROM users WHERE ` + field + ` = $1`
	user := &domain.User{}
	var avatar sql.NullString

	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Name, &user.Address, &user.Contact, &avatar,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Error("getUserBy "+field+": query failed", err)
		return nil, err
	}
	if avatar.Valid {
		user.Avatar = &avatar.String
	}
	return user, nil
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUserBy(ctx, "username", username)
}

func (r *postgresUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUserBy(ctx, "id", id)
}
