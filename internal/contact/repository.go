package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/transfer-booking-backend/internal/lifecycle"
)

type Repository = lifecycle.Repository[Message, Status]

func NewMemoryRepository() Repository {
	return lifecycle.NewMemoryRepository(Schema)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var messageColumns = []string{
	"id", "name", "email", "phone", "service_interest", "message", "status", "created_at",
}

func scanMessage(row pgx.Row) (Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.ServiceInterest, &m.Message, &m.Status, &m.CreatedAt)
	return m, err
}

func (r *pgxRepository) Insert(ctx context.Context, m Message) error {
	query, args, err := psql.Insert("public.contact_messages").
		Columns(messageColumns...).
		Values(m.ID, m.Name, m.Email, m.Phone, m.ServiceInterest, m.Message, m.Status, m.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert contact message query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return lifecycle.ErrDuplicateID
		}
		return fmt.Errorf("insert contact message failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (Message, error) {
	query, args, err := psql.Select(messageColumns...).
		From("public.contact_messages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return Message{}, fmt.Errorf("build get contact message query failed: %w", err)
	}

	m, err := scanMessage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Message{}, ErrNotFound
		}
		return Message{}, fmt.Errorf("get contact message failed: %w", err)
	}
	return m, nil
}

func listQuery() (string, []any, error) {
	return psql.Select(messageColumns...).
		From("public.contact_messages").
		OrderBy("seq ASC").
		ToSql()
}

func (r *pgxRepository) List(ctx context.Context) ([]Message, error) {
	query, args, err := listQuery()
	if err != nil {
		return nil, fmt.Errorf("build list contact messages query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact messages failed: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact message failed: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact messages failed: %w", err)
	}
	return messages, nil
}

func lockStatusQuery(id string) (string, []any, error) {
	return psql.Select("status").
		From("public.contact_messages").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
}

func updateStatusQuery(id string, status Status) (string, []any, error) {
	return psql.Update("public.contact_messages").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(messageColumns, ", ")).
		ToSql()
}

// UpdateStatus runs in a transaction so the guard sees the row it is about to change.
func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status, _ time.Time, guard lifecycle.Guard[Status]) (Message, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Message{}, fmt.Errorf("begin update contact message status failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if guard != nil {
		query, args, err := lockStatusQuery(id)
		if err != nil {
			return Message{}, fmt.Errorf("build lock contact message query failed: %w", err)
		}

		var current Status
		if err := tx.QueryRow(ctx, query, args...).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Message{}, ErrNotFound
			}
			return Message{}, fmt.Errorf("lock contact message failed: %w", err)
		}
		if err := guard(current); err != nil {
			return Message{}, err
		}
	}

	query, args, err := updateStatusQuery(id, status)
	if err != nil {
		return Message{}, fmt.Errorf("build update contact message status query failed: %w", err)
	}

	m, err := scanMessage(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Message{}, ErrNotFound
		}
		return Message{}, fmt.Errorf("update contact message status failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Message{}, fmt.Errorf("commit contact message status failed: %w", err)
	}
	return m, nil
}
