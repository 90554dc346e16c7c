package domain

import "errors"

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInternalError      = errors.New("internal error")
	ErrUserNotFound       = errors.New("user not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrRecurringNotFound  = errors.New("recurring template not found")
	ErrBudgetNotFound     = errors.New("budget not found")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidCategory    = errors.New("unknown category")
	ErrInvalidDayOfMonth  = errors.New("day of month must be between 1 and 28")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
	ErrInvalidYear        = errors.New("invalid year")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
)

// Validation constants
const (
	MaxDescriptionLength = 500
)
