package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

// Классы ошибок ядра: валидация входа, авторизация, конфликт состояния,
// отсутствие сущности и нарушение инварианта леджера (fail-closed).
const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeInvariant    ErrorCode = "INVARIANT_VIOLATION"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeForbidden
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeConflict
}

func IsInvariant(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeInvariant
}

// Сообщения повторяют формулировки контрактной версии движка,
// чтобы внешние потребители видели привычные тексты.
var (
	// Реестр участников.
	ErrAlreadyRegistered = New(ErrCodeConflict, "User already registered")
	ErrEmptyProfile      = New(ErrCodeValidation, "Profile hash cannot be empty")
	ErrNotRegistered     = New(ErrCodeForbidden, "User not registered or inactive")
	ErrUserNotFound      = New(ErrCodeNotFound, "User not found")

	// Доска заказов.
	ErrEmptyTitle        = New(ErrCodeValidation, "Title cannot be empty")
	ErrZeroBudget        = New(ErrCodeValidation, "Budget must be greater than 0")
	ErrDeadlineInPast    = New(ErrCodeValidation, "Deadline must be in the future")
	ErrJobNotFound       = New(ErrCodeNotFound, "Job does not exist")
	ErrNotJobClient      = New(ErrCodeForbidden, "Not the job client")
	ErrJobNotCancellable = New(ErrCodeConflict, "Job can only be cancelled while open")

	// Отклики.
	ErrProposalNotFound   = New(ErrCodeNotFound, "Proposal does not exist")
	ErrOwnJobProposal     = New(ErrCodeForbidden, "Cannot propose on own job")
	ErrJobNotOpen         = New(ErrCodeConflict, "Job is not open for proposals")
	ErrNotProposalOwner   = New(ErrCodeForbidden, "Not proposal owner")
	ErrProposalNotPending = New(ErrCodeConflict, "Proposal is not pending")

	// Милстоуны и эскроу.
	ErrMilestoneNotFound     = New(ErrCodeNotFound, "Milestone does not exist")
	ErrValueMismatch         = New(ErrCodeValidation, "Sent value must equal milestone amount")
	ErrZeroAmount            = New(ErrCodeValidation, "Amount must be greater than 0")
	ErrNotAssignedFreelancer = New(ErrCodeForbidden, "Not the assigned freelancer")
	ErrNotSubmittable        = New(ErrCodeConflict, "Milestone cannot be submitted")
	ErrNotSubmitted          = New(ErrCodeConflict, "Milestone is not submitted")
	ErrAlreadyPaid           = New(ErrCodeConflict, "Milestone already paid")
	ErrInvalidRating         = New(ErrCodeValidation, "Rating must be between 1 and 10")
	ErrMilestonesPending     = New(ErrCodeConflict, "All milestones must be approved")
	ErrJobNotInProgress      = New(ErrCodeConflict, "Job is not in progress")

	// Споры.
	ErrDisputeNotFound = New(ErrCodeNotFound, "Dispute does not exist")
	ErrNotParticipant  = New(ErrCodeForbidden, "Only job participants can raise disputes")
	ErrNotDisputable   = New(ErrCodeConflict, "Only submitted milestones can be disputed")
	ErrDisputeNotOpen  = New(ErrCodeConflict, "Dispute is not open")

	// Администрирование.
	ErrNotOwner         = New(ErrCodeForbidden, "Ownable: caller is not the owner")
	ErrFeeTooHigh       = New(ErrCodeValidation, "Fee too high")
	ErrPaused           = New(ErrCodeConflict, "Pausable: paused")
	ErrInsufficientFree = New(ErrCodeConflict, "Amount exceeds unencumbered balance")

	// Нарушение инварианта эскроу: операция прерывается до любых переводов.
	ErrEscrowMismatch = New(ErrCodeInvariant, "escrow ledger does not match held balance")

	ErrUnauthorized = New(ErrCodeUnauthorized, "authorization required")
)
