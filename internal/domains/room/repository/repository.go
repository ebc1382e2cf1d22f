package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"roombook/infras/database"
	"roombook/infras/otel"
	"roombook/internal/domains/room/model"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	gRepo "roombook/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type TimeSlot interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.TimeSlot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.TimeSlot, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.TimeSlot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TimeSlot, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TimeSlot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	LockTx(ctx context.Context, sqltx *sqlx.Tx, slotID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *database.Connection
	otel otel.Otel
}

func New(db *database.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type timeSlotRepositoryImpl struct {
	gRepo.Repository[model.TimeSlot]
	db   *database.Connection
	otel otel.Otel
}

func NewTimeSlot(db *database.Connection, otel otel.Otel) TimeSlot {
	return &timeSlotRepositoryImpl{
		Repository: gRepo.NewRepository[model.TimeSlot](model.SlotEntityName, model.SlotTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// LockTx holds the slot row until sqltx ends, serialising every booking write on the slot.
// SQLite transactions already start with the database write lock, so there is nothing to take.
func (repo *timeSlotRepositoryImpl) LockTx(ctx context.Context, sqltx *sqlx.Tx, slotID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.LockTx", constant.OtelRepositoryScopeName, model.SlotEntityName))
	defer scope.End()
	defer scope.TraceIfError(err)

	if repo.db.Driver == constant.DBDriverSQLite {
		return nil
	}

	query := sqltx.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? FOR UPDATE", model.FieldID, model.SlotTableName, model.FieldID))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var id string

	err = sqltx.GetContext(ctx, &id, query, slotID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to lock time slot: %w", err)
	}

	return nil
}
