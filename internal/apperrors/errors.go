package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrForbidden indicates that the resource exists but does not belong to the
// requesting user.
var ErrForbidden = errors.New("access denied")

// ErrUnauthorized indicates that the request carries no valid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation would violate a referential or
// state invariant (e.g. deleting a category that still has transactions).
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrInsufficientFunds indicates that an expense or transfer exceeds the
// source account balance at creation time.
var ErrInsufficientFunds = errors.New("insufficient funds in account")

// ErrRefreshTokenExpired indicates that the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
