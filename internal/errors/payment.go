package errors

var (
	ErrMissingUserID = &DomainError{
		Code:    "MISSING_USER_ID",
		Message: "user_id is required",
	}
	ErrInvalidPackage = &DomainError{
		Code:    "INVALID_PACKAGE",
		Message: "Invalid package",
	}
	ErrInvalidCurrency = &DomainError{
		Code:    "INVALID_CURRENCY",
		Message: "currency must be KHR or USD",
	}
	ErrMissingHash = &DomainError{
		Code:    "MISSING_HASH",
		Message: "md5_hash is required",
	}
)
