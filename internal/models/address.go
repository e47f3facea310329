package models

// Address — непрозрачный адресоподобный идентификатор участника.
// Используется как ключ для всего состояния, привязанного к пользователю.
type Address string

// ZeroAddress — нулевое значение адреса (участник не назначен).
const ZeroAddress Address = ""

// IsZero сообщает, задан ли адрес.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}
