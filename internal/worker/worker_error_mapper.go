package worker

import (
	"errors"

	workererrors "go-bossboard/internal/worker/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workererrors.ErrWorkerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return workererrors.ErrWorkerAlreadyExists
		case "23503":
			return workererrors.ErrDepartmentNotInCompany
		}
	}
	return err
}
