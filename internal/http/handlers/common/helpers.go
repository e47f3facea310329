package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-escrow/internal/dto"
	"github.com/ignatzorin/freelance-escrow/internal/http/middleware"
	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
)

var (
	// ErrAddressNotFound возвращается, когда адрес отсутствует в контексте.
	ErrAddressNotFound = errors.New("адрес не найден в контексте")

	// ErrInvalidID возвращается при ошибке разбора числового идентификатора.
	ErrInvalidID = errors.New("неверный формат идентификатора")
)

// CurrentAddress извлекает адрес участника из контекста Gin.
func CurrentAddress(c *gin.Context) (models.Address, error) {
	raw, exists := c.Get(middleware.ContextAddressKey)
	if !exists {
		return models.ZeroAddress, ErrAddressNotFound
	}

	address, ok := raw.(models.Address)
	if !ok {
		return models.ZeroAddress, ErrAddressNotFound
	}

	return address, nil
}

// ParseIDParam разбирает числовой идентификатор из URL параметра.
func ParseIDParam(c *gin.Context, paramName string) (uint64, error) {
	param := c.Param(paramName)
	if param == "" {
		return 0, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := strconv.ParseUint(param, 10, 64)
	if err != nil || parsed == 0 {
		return 0, ErrInvalidID
	}

	return parsed, nil
}

// MaxBatchIDs ограничивает размер пакетного запроса идентификаторов.
const MaxBatchIDs = 100

// ParseIDList разбирает список идентификаторов через запятую из query
// параметра. Пустой список и нулевые идентификаторы отклоняются.
func ParseIDList(raw string) ([]uint64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("список идентификаторов пуст")
	}

	parts := strings.Split(raw, ",")
	if len(parts) > MaxBatchIDs {
		return nil, fmt.Errorf("не более %d идентификаторов за запрос", MaxBatchIDs)
	}

	ids := make([]uint64, 0, len(parts))
	for _, part := range parts {
		parsed, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || parsed == 0 {
			return nil, ErrInvalidID
		}
		ids = append(ids, parsed)
	}
	return ids, nil
}

// BindAndValidate привязывает JSON запрос и возвращает понятную ошибку.
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("ошибка валидации запроса: %w", err)
	}
	return nil
}

// Fail отправляет ошибку клиенту: доменные ошибки получают свой статус,
// всё остальное уходит в централизованный обработчик.
func Fail(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}
	_ = c.Error(err)
}

// RespondError отправляет стандартизированный ответ с ошибкой.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondSuccess отправляет стандартизированный успешный ответ.
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, dto.SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// RespondJSON отправляет JSON ответ с указанным статусом.
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondUnauthorized отправляет 401 Unauthorized.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondBadRequest отправляет 400 Bad Request.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}

// ParseIntQuery безопасно читает целочисленный query параметр с дефолтом.
func ParseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

// GetPagination извлекает limit и offset из query параметров с дефолтами.
func GetPagination(c *gin.Context) (limit, offset int) {
	limit = ParseIntQuery(c, "limit", 20)
	offset = ParseIntQuery(c, "offset", 0)
	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return
}
