package exception

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode int

const (
	ErrCodeNoError                 ErrorCode = iota // 0
	ErrorCodeEntityNotFound                         // 1
	ErrorCodeFailedBindingData                      // 2
	ErrorCodeValidationFailed                       // 3
	ErrorCodeInvalidVerifyCode                      // 4
	ErrorCodeUnauthorized                           // 5
	ErrorCodeRateLimitExceeded                      // 6
	ErrorCodeInvalidCredentials                     // 7
	ErrorCodeInvalidParameter                       // 8
	ErrorCodeMissingUserContext                     // 9
	ErrorCodeDuplicateIdentity                      // 10
	ErrorCodeTokenExpired                           // 11
	ErrorCodeInvalidToken                           // 12
	ErrorCodeInternalServer                         // 13
	ErrorCodeWeakPassword                           // 14
)

var (
	ErrUnauthorized         = errors.New("request is unauthorized")
	ErrEntityNotFound       = errors.New("entity not found")
	ErrFailedBindingData    = errors.New("failed to bind data")
	ErrValidationFailed     = errors.New("validation failed")
	ErrInvalidVerifyCode    = errors.New("invalid verification code")
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrMissingUserContext   = errors.New("missing user context")
	ErrDuplicateIdentity    = errors.New("username or phone number already registered")
	ErrTokenExpired         = errors.New("token expired")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInternalServer       = errors.New("internal server error")
	ErrUserNotFound         = errors.New("user not found")
	ErrWeakPassword         = errors.New("password does not meet the strength policy")
	ErrPasswordConfirmation = errors.New("password confirmation does not match")
	ErrAccountDisabled      = errors.New("account is not active")
)

var errorsMap = map[ErrorCode]error{
	ErrorCodeUnauthorized:       ErrUnauthorized,
	ErrorCodeEntityNotFound:     ErrEntityNotFound,
	ErrorCodeFailedBindingData:  ErrFailedBindingData,
	ErrorCodeValidationFailed:   ErrValidationFailed,
	ErrorCodeInvalidVerifyCode:  ErrInvalidVerifyCode,
	ErrorCodeRateLimitExceeded:  ErrRateLimitExceeded,
	ErrorCodeInvalidCredentials: ErrInvalidCredentials,
	ErrorCodeInvalidParameter:   ErrInvalidParameter,
	ErrorCodeMissingUserContext: ErrMissingUserContext,
	ErrorCodeDuplicateIdentity:  ErrDuplicateIdentity,
	ErrorCodeTokenExpired:       ErrTokenExpired,
	ErrorCodeInvalidToken:       ErrInvalidToken,
	ErrorCodeInternalServer:     ErrInternalServer,
	ErrorCodeWeakPassword:       ErrWeakPassword,
}

func GetErrorByCode(code ErrorCode) error {
	return errorsMap[code]
}

// ErrorWithContext attaches additional context to an error as key-value
// pairs, e.g. ErrorWithContext(err, "userID", id).
func ErrorWithContext(err error, errorContext ...any) error {
	if ctx := formatKeyValuePairs(errorContext); ctx != "" {
		err = fmt.Errorf("%s: %w", ctx, err)
	} else {
		err = fmt.Errorf("%w", err)
	}
	return err
}

// JoinErrors combines two errors into one, optionally attaching context to
// the new error.
func JoinErrors(errs error, newErr error, errorContext ...any) error {
	newErr = ErrorWithContext(newErr, errorContext...)
	return errors.Join(errs, newErr)
}

func formatKeyValuePairs(errorContext []any) string {
	if len(errorContext)%2 != 0 {
		errorContext = append(errorContext, "missing ctx")
	}
	pairs := make([]string, 0, len(errorContext)/2)
	for i := 0; i < len(errorContext); i += 2 {
		key := errorContext[i]
		value := errorContext[i+1]
		pairs = append(pairs, fmt.Sprintf("%v = %v", key, value))
	}
	return strings.Join(pairs, " , ")
}
