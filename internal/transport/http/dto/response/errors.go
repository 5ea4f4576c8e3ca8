package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status:  "error",
		Error:   "invalid_credentials",
		Details: "Email or password is incorrect",
	}

	ErrAccountBlocked = ErrorResponse{
		Status:  "error",
		Error:   "account_blocked",
		Details: "This account has been blocked. Contact an administrator.",
	}

	ErrEmailTaken = ErrorResponse{
		Status:  "error",
		Error:   "email_taken",
		Details: "A user with this email already exists",
	}

	ErrNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "Record not found",
	}

	ErrSessionRequired = ErrorResponse{
		Status:  "error",
		Error:   "session_required",
		Details: "Authentication required",
	}

	ErrAdminRequired = ErrorResponse{
		Status:  "error",
		Error:   "admin_required",
		Details: "Admin access required",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Something went wrong",
	}
)
