package get_available_rooms

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// MsgNoRoomAvailable сообщение для пустого результата подбора
const MsgNoRoomAvailable = "No available room for the selected slot and type."

// Request модель запроса доступных комнат на слот
type Request struct {
	Date     time.Time // Дата (zero value - сегодня)
	Slot     string    // Слот в формате "HH-HH", например "10-11"
	RoomType *string   // Фильтр по типу комнаты (опционально)
}

// AvailableRoom комната со свободными местами на запрошенный слот
type AvailableRoom struct {
	ID             int64           // ID комнаты
	Name           string          // Название комнаты
	RoomType       domain.RoomType // Тип комнаты
	Capacity       int             // Вместимость
	AvailableSeats int             // Свободные места на слот
}

// Response модель ответа со списком доступных комнат
// Message заполняется вместо списка, когда ни одна комната не свободна -
// это ожидаемый результат, а не ошибка
type Response struct {
	Date    time.Time       // Дата подбора
	Slot    string          // Слот в формате "HH-HH"
	Rooms   []AvailableRoom // Доступные комнаты
	Message string          // Сообщение при пустом результате
}
