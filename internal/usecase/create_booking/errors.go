package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных:
	// неправильная форма слота, не указан или указан двойной requester,
	// не указана ни комната, ни тип комнаты
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("create_booking: team not found")

	// ErrIneligible возвращается при несовместимости типа комнаты и requester
	// (команда в private, пользователь в conference, команда меньше трех взрослых)
	ErrIneligible = errors.New("create_booking: requester is not eligible for this room")

	// ErrRequesterConflict возвращается, когда у requester уже есть активное
	// бронирование - глобально по всем комнатам и датам
	ErrRequesterConflict = errors.New("create_booking: requester already has an active booking")

	// ErrNoRoomAvailable возвращается, когда ни одна подходящая комната
	// не имеет свободных мест на слот - ожидаемый бизнес-результат, не сбой
	ErrNoRoomAvailable = errors.New("create_booking: no available room for the selected slot and type")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
