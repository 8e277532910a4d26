package catalogservice

import "errors"

var (
	// ErrPractitionerNotFound возвращается, когда практикующий не найден в каталоге
	ErrPractitionerNotFound = errors.New("catalogservice client: practitioner not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalogservice client: service offering not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
