package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/thingful/internal/common"
	"github.com/dmitrijs2005/thingful/internal/dbx"
	"github.com/dmitrijs2005/thingful/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (user_name, full_name, nickname, password)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, date_created
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.FullName, nullString(user.Nickname), user.PasswordHash).Scan(&user.ID, &user.DateCreated)

	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, common.ErrUsernameTaken
		}
		return nil, dbError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, user_name, full_name, nickname, password, date_created FROM users
		 WHERE user_name = $1
		 `

	return r.getOne(ctx, query, userName)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, user_name, full_name, nickname, password, date_created FROM users
		 WHERE id = $1
		 `

	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbError(err)
	}
	return user, nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
