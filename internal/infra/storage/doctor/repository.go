package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Repository репозиторий врачей, специальностей и окон приема
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// doctorsSelect SELECT врачей вместе со списком их специальностей
func doctorsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"d.id",
		"d.first_name",
		"d.last_name",
		"d.active",
		"COALESCE(array_agg(ds.specialty_id ORDER BY ds.specialty_id) FILTER (WHERE ds.specialty_id IS NOT NULL), '{}')",
	).
		From("doctors d").
		LeftJoin("doctor_specialties ds ON ds.doctor_id = d.id").
		GroupBy("d.id")
}

// GetByID получает врача по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := doctorsSelect().
		Where(squirrel.Eq{"d.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	doc, err := scanDoctor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan doctor: %v", ErrScanRow, err)
	}

	return doc, nil
}

// ListActiveBySpecialty получает активных врачей специальности
func (r *Repository) ListActiveBySpecialty(ctx context.Context, specialtyID int64) ([]*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := doctorsSelect().
		Where(squirrel.Eq{"d.active": true}).
		Where("EXISTS (SELECT 1 FROM doctor_specialties x WHERE x.doctor_id = d.id AND x.specialty_id = ?)", specialtyID).
		OrderBy("d.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySpecialty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySpecialty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	doctors := make([]*domain.Doctor, 0)
	for rows.Next() {
		doc, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveBySpecialty - scan doctor: %v", ErrScanRow, err)
		}
		doctors = append(doctors, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySpecialty - rows error: %v", ErrScanRow, err)
	}

	return doctors, nil
}

// GetSpecialty получает специальность по ID
func (r *Repository) GetSpecialty(ctx context.Context, id int64) (*domain.Specialty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "active").
		From("specialties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialty - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Specialty
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, &s.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpecialtyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialty - scan specialty: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListWindows получает активные окна приема врачей на день недели (0=понедельник)
func (r *Repository) ListWindows(ctx context.Context, doctorIDs []int64, weekday int) ([]*domain.AvailabilityWindow, error) {
	if len(doctorIDs) == 0 {
		return []*domain.AvailabilityWindow{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"doctor_id",
		"weekday",
		"start_time",
		"end_time",
		"active",
		"created_at",
		"updated_at",
	).
		From("availability_windows").
		Where(squirrel.Eq{"doctor_id": doctorIDs, "weekday": weekday, "active": true}).
		OrderBy("start_time ASC", "doctor_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&w.ID,
			&w.DoctorID,
			&w.Weekday,
			&w.Start,
			&w.End,
			&w.Active,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListWindows - scan window: %v", ErrScanRow, err)
		}

		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// UpsertWindow создает окно приема или обновляет существующее с тем же (doctor_id, weekday, start_time)
func (r *Repository) UpsertWindow(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns("doctor_id", "weekday", "start_time", "end_time", "active").
		Values(w.DoctorID, w.Weekday, w.Start, w.End, w.Active).
		Suffix(`ON CONFLICT (doctor_id, weekday, start_time) DO UPDATE
			SET end_time = EXCLUDED.end_time, active = EXCLUDED.active, updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWindow - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == codeForeignKeyViolation || pqErr.Code == codeCheckViolation) {
			return nil, fmt.Errorf("%w: UpsertWindow - %s", ErrInvalidWindow, pqErr.Message)
		}
		return nil, fmt.Errorf("%w: UpsertWindow - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return w, nil
}

// DeleteWindow удаляет окно приема врача
func (r *Repository) DeleteWindow(ctx context.Context, doctorID, windowID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"id": windowID, "doctor_id": doctorID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteWindow - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner) (*domain.Doctor, error) {
	var doc domain.Doctor
	var specialtyIDs pq.Int64Array

	if err := row.Scan(&doc.ID, &doc.FirstName, &doc.LastName, &doc.Active, &specialtyIDs); err != nil {
		return nil, err
	}

	doc.SpecialtyIDs = []int64(specialtyIDs)
	return &doc, nil
}
