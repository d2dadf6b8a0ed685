package booking

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

// Repository is the storage capability the booking store runs on.
type Repository = lifecycle.Repository[Booking, Status]

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

var bookingColumns = []string{
	"id", "customer_name", "customer_email", "customer_phone",
	"origin", "destination", "pickup_date", "return_date",
	"passengers", "vehicle_type", "service_type", "estimated_price",
	"special_requests", "status", "created_at", "updated_at",
}

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.Origin, &b.Destination, &b.PickupDate, &b.ReturnDate,
		&b.Passengers, &b.VehicleType, &b.ServiceType, &b.EstimatedPrice,
		&b.SpecialRequests, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func insertQuery(b Booking) (string, []any, error) {
	return psql.Insert("public.bookings").
		Columns(bookingColumns...).
		Values(
			b.ID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
			b.Origin, b.Destination, b.PickupDate, b.ReturnDate,
			b.Passengers, b.VehicleType, b.ServiceType, b.EstimatedPrice,
			b.SpecialRequests, b.Status, b.CreatedAt, b.UpdatedAt,
		).
		ToSql()
}

func (r *pgxRepository) Insert(ctx context.Context, b Booking) error {
	query, args, err := insertQuery(b)
	if err != nil {
		return fmt.Errorf("build insert booking query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return lifecycle.ErrDuplicateID
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (Booking, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return Booking{}, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func listQuery() (string, []any, error) {
	return psql.Select(bookingColumns...).
		From("public.bookings").
		OrderBy("seq ASC").
		ToSql()
}

func (r *pgxRepository) List(ctx context.Context) ([]Booking, error) {
	query, args, err := listQuery()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	bookings := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings failed: %w", err)
	}
	return bookings, nil
}

func lockStatusQuery(id string) (string, []any, error) {
	return psql.Select("status").
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
}

func updateStatusQuery(id string, status Status, at time.Time) (string, []any, error) {
	return psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
}

// UpdateStatus runs in a transaction so the guard sees the row it is about to change.
func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status, at time.Time, guard lifecycle.Guard[Status]) (Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Booking{}, fmt.Errorf("begin update booking status failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if guard != nil {
		query, args, err := lockStatusQuery(id)
		if err != nil {
			return Booking{}, fmt.Errorf("build lock booking query failed: %w", err)
		}

		var current Status
		if err := tx.QueryRow(ctx, query, args...).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Booking{}, ErrNotFound
			}
			return Booking{}, fmt.Errorf("lock booking failed: %w", err)
		}
		if err := guard(current); err != nil {
			return Booking{}, err
		}
	}

	query, args, err := updateStatusQuery(id, status, at)
	if err != nil {
		return Booking{}, fmt.Errorf("build update booking status query failed: %w", err)
	}

	b, err := scanBooking(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, fmt.Errorf("update booking status failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Booking{}, fmt.Errorf("commit booking status failed: %w", err)
	}
	return b, nil
}
