package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roombook/infras/database"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/model"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	gRepo "roombook/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	slotsTable      = "time_slots"
	slotsEndTimeCol = "end_time"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type BookingDetail interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingDetail, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetExpired(ctx context.Context, today gModel.Date, now gModel.Clock) ([]model.BookingDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *database.Connection
	otel otel.Otel
}

func New(db *database.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.BookingDetail]
	db   *database.Connection
	otel otel.Otel
}

func NewDetail(db *database.Connection, otel otel.Otel) BookingDetail {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookingDetail](model.DetailEntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetExpired returns bookings dated before today, plus today's bookings whose slot ended at or before now.
func (repo *detailRepositoryImpl) GetExpired(ctx context.Context, today gModel.Date, now gModel.Clock) (res []model.BookingDetail, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetExpired", constant.OtelRepositoryScopeName, model.DetailEntityName))
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				ArgName:  "before_today",
				Field:    model.FieldBookingDate,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorLess,
				Value:    today,
			},
			gDto.FilterGroup{
				Filters: []any{
					gDto.Filter{
						ArgName:  "today",
						Field:    model.FieldBookingDate,
						Table:    model.TableName,
						Operator: gDto.FilterOperatorEq,
						Value:    today,
					},
					gDto.Filter{
						ArgName:  "ended_by",
						Field:    slotsEndTimeCol,
						Table:    slotsTable,
						Operator: gDto.FilterOperatorLessEq,
						Value:    now,
					},
				},
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldBookingDate,
		SortDir: gDto.SortDirAsc,
	}

	return repo.GetAll(ctx, params, filter)
}
