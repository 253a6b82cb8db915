package doctor

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("doctor.repository: doctor not found")

	// ErrSpecialtyNotFound возвращается, когда специальность не найдена
	ErrSpecialtyNotFound = errors.New("doctor.repository: specialty not found")

	// ErrWindowNotFound возвращается, когда окно приема не найдено
	ErrWindowNotFound = errors.New("doctor.repository: availability window not found")

	// ErrInvalidWindow возвращается, когда БД отклонила окно (check start < end, неизвестный врач)
	ErrInvalidWindow = errors.New("doctor.repository: availability window rejected by constraints")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("doctor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("doctor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("doctor.repository: failed to scan row")
)
