package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrAlreadyCancelled возвращается при попытке отменить уже отмененное бронирование
	ErrAlreadyCancelled = errors.New("booking.repository: booking is already cancelled")

	// ErrRequesterConflict возвращается, когда у requester уже есть активное бронирование
	// (нарушение частичного уникального индекса по user_id/team_id)
	ErrRequesterConflict = errors.New("booking.repository: requester already has an active booking")

	// ErrSerialization возвращается, когда сериализуемая транзакция не смогла закоммититься
	ErrSerialization = errors.New("booking.repository: transaction serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
