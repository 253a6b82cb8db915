package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// codeUniqueViolation нарушение уникального индекса (appointments_holding_slot_uniq)
	codeUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"patient_id",
	"doctor_id",
	"specialty_id",
	"date",
	"time",
	"state",
	"reason",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если слот уже удерживается записью в статусе active/en_atencion,
// частичный уникальный индекс отклонит вставку и вернется ErrSlotTaken
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"patient_id",
			"doctor_id",
			"specialty_id",
			"date",
			"time",
			"state",
			"reason",
			"notes",
		).
		Values(
			appt.PatientID,
			appt.DoctorID,
			appt.SpecialtyID,
			appt.Date.Format(domain.DateFormat),
			appt.Time,
			appt.State,
			appt.Reason,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, classifyExecError("Create - execute insert", err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, classifyScanError("GetByID - scan appointment", err)
	}

	return appt, nil
}

// Find получает записи по фильтру
// Если filter.ForUpdate и код выполняется в транзакции, найденные строки блокируются
//
// Примеры:
//
// 1. Записи слота, блокирующие бронирование:
//    filter := domain.SlotFilter(key, []domain.AppointmentState{domain.StateActive, domain.StateInProgress})
//
// 2. Агенда врача на день:
//    filter := domain.AppointmentsFilter{DoctorID: &doctorID, DateFrom: &day, DateTo: &day}
//
// 3. История пациента:
//    filter := domain.AppointmentsFilter{PatientID: &patientID}
func (r *Repository) Find(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if filter.PatientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"patient_id": *filter.PatientID})
	}
	if filter.DoctorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": *filter.DoctorID})
	}
	if filter.SpecialtyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"specialty_id": *filter.SpecialtyID})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": filter.DateTo.Format(domain.DateFormat)})
	}
	if filter.Time != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time": *filter.Time})
	}
	if len(filter.States) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": stateStrings(filter.States)})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	selectBuilder = selectBuilder.OrderBy("date ASC", "time ASC", "doctor_id ASC", "id ASC")

	if filter.ForUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyExecError("Find - execute query", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update сохраняет все изменяемые поля записи (редактирование персоналом)
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("patient_id", appt.PatientID).
		Set("doctor_id", appt.DoctorID).
		Set("specialty_id", appt.SpecialtyID).
		Set("date", appt.Date.Format(domain.DateFormat)).
		Set("time", appt.Time).
		Set("state", appt.State).
		Set("reason", appt.Reason).
		Set("notes", appt.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, classifyExecError("Update - execute update", err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// UpdateState меняет статус записи только если текущий статус равен from
// Если строка не обновлена (статус уже другой или запись удалена), возвращается ErrStateChanged
// notes == nil оставляет заметки врача без изменений
func (r *Repository) UpdateState(
	ctx context.Context,
	id int64,
	from domain.AppointmentState,
	to domain.AppointmentState,
	notes *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		Set("state", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "state": from})

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyExecError("UpdateState - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStateChanged
	}

	return nil
}

// RejectPendingSiblings переводит остальные pending заявки слота в rechazado
// Возвращает ID отклоненных записей
func (r *Repository) RejectPendingSiblings(ctx context.Context, key domain.SlotKey, exceptID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("state", domain.StateRejected).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"doctor_id": key.DoctorID,
			"date":      key.Date.Format(domain.DateFormat),
			"time":      key.Time,
			"state":     domain.StatePending,
		}).
		Where(squirrel.NotEq{"id": exceptID}).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RejectPendingSiblings - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyExecError("RejectPendingSiblings - execute update", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: RejectPendingSiblings - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, classifyScanError("RejectPendingSiblings - rows error", err)
	}

	return ids, nil
}

// Delete физически удаляет запись (административная операция персонала)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyExecError("Delete - execute delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime
	var date time.Time

	err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.SpecialtyID,
		&date,
		&appt.Time,
		&appt.State,
		&appt.Reason,
		&appt.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE приходит как полночь UTC, оставляем только календарную дату
	appt.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, classifyScanError("scanAppointments - rows error", err)
	}

	return appointments, nil
}

func stateStrings(states []domain.AppointmentState) []string {
	result := make([]string, len(states))
	for i, s := range states {
		result[i] = string(s)
	}
	return result
}

// classifyExecError переводит ошибки PostgreSQL в ошибки репозитория
// Исходная *pq.Error остается в цепочке, чтобы менеджер транзакций мог распознать serialization_failure
func classifyExecError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
		return fmt.Errorf("%w: %s: constraint %s", ErrSlotTaken, op, pqErr.Constraint)
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}

func classifyScanError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyExecError(op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrScanRow, op, err)
}
