package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/booking/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/logger"
	gRepo "agenda/shared/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrSlotTaken is returned when the overlap re-check inside the write transaction fails.
	ErrSlotTaken = errors.New("slot was taken by a concurrent booking")
	// ErrNotScheduled is returned when a conditional update finds the booking no longer scheduled.
	ErrNotScheduled = errors.New("booking is no longer scheduled")
)

const lockProfessionalQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ListScheduled(ctx context.Context, professionalID string, from, to time.Time) ([]model.Booking, error)
	InsertExclusive(ctx context.Context, booking model.Booking) error
	Cancel(ctx context.Context, id string, now time.Time, fields map[string]any) error
	Reschedule(ctx context.Context, booking model.Booking, now time.Time, fields map[string]any) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ListScheduled returns the scheduled bookings of a professional that intersect [from, to).
func (r *repositoryImpl) ListScheduled(ctx context.Context, professionalID string, from, to time.Time) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListScheduled")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldStartTime, SortDir: gDto.SortDirAsc}

	bookings, err := r.GetAll(ctx, params, OverlapFilter(professionalID, from, to, constant.Empty))
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled bookings: %w", err)
	}

	return bookings, nil
}

// InsertExclusive inserts the booking only if no scheduled booking of the same professional
// overlaps it. Writers for one professional are serialized by a transaction scoped advisory lock.
func (r *repositoryImpl) InsertExclusive(ctx context.Context, booking model.Booking) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertExclusive")
	defer scope.End()

	err := r.withProfessionalLock(ctx, booking.ProfessionalID, func(tx *sqlx.Tx) error {
		if err := r.ensureFree(ctx, tx, booking, constant.Empty); err != nil {
			return err
		}

		return r.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceIfError(err)

		return err
	}

	return nil
}

// Cancel applies fields to a booking that is still scheduled and has not started at now.
// ErrNotScheduled means the stored row no longer qualifies.
func (r *repositoryImpl) Cancel(ctx context.Context, id string, now time.Time, fields map[string]any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Cancel")
	defer scope.End()

	if err := r.conditionalUpdate(ctx, r.db.Write, fields, MutableFilter(id, now)); err != nil {
		scope.TraceIfError(err)

		return err
	}

	return nil
}

// Reschedule moves a scheduled booking after re-checking overlap while ignoring the booking itself.
// The stored start must still be at or after now.
func (r *repositoryImpl) Reschedule(ctx context.Context, booking model.Booking, now time.Time, fields map[string]any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reschedule")
	defer scope.End()

	err := r.withProfessionalLock(ctx, booking.ProfessionalID, func(tx *sqlx.Tx) error {
		if err := r.ensureFree(ctx, tx, booking, booking.ID); err != nil {
			return err
		}

		return r.conditionalUpdate(ctx, tx, fields, MutableFilter(booking.ID, now))
	})
	if err != nil {
		scope.TraceIfError(err)

		return err
	}

	return nil
}

// withProfessionalLock runs fn in a transaction holding the professional's advisory lock.
func (r *repositoryImpl) withProfessionalLock(ctx context.Context, professionalID string, fn func(tx *sqlx.Tx) error) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error { //nolint:wrapcheck
		if _, err := tx.ExecContext(ctx, lockProfessionalQuery, professionalID); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock professional calendar: %w", err)
		}

		return fn(tx)
	})
}

func (r *repositoryImpl) ensureFree(ctx context.Context, tx *sqlx.Tx, booking model.Booking, excludeID string) error {
	taken, err := r.ExistTx(ctx, tx, OverlapFilter(booking.ProfessionalID, booking.StartTime, booking.EndTime, excludeID))
	if err != nil {
		return fmt.Errorf("failed to check overlap: %w", err)
	}

	if taken {
		return ErrSlotTaken
	}

	return nil
}

func (r *repositoryImpl) conditionalUpdate(ctx context.Context, exec sqlx.ExtContext, fields map[string]any, filter gDto.FilterGroup) error {
	err := r.UpdateWhere(ctx, exec, fields, filter)
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return ErrNotScheduled
	}

	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// MutableFilter matches the booking only while it is scheduled and has not started.
func MutableFilter(id string, now time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq},
			gDto.Filter{ArgName: "current_status", Field: model.FieldStatus, Value: model.StatusScheduled, Operator: gDto.FilterOperatorEq},
			gDto.Filter{ArgName: "not_started_at", Field: model.FieldStartTime, Value: now, Operator: gDto.FilterOperatorGreaterEq},
		},
	}
}

// OverlapFilter selects scheduled bookings of professionalID intersecting [start, end).
func OverlapFilter(professionalID string, start, end time.Time, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldProfessionalID, Value: professionalID, Operator: gDto.FilterOperatorEq, Table: model.ServiceTableName},
		gDto.Filter{Field: model.FieldStatus, Value: model.StatusScheduled, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{ArgName: "window_end", Field: model.FieldStartTime, Value: end, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{ArgName: "window_start", Field: model.FieldEndTime, Value: start, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{ArgName: "exclude_id", Field: model.FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}
