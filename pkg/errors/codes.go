package errors

// ============================================================================
// Validation Errors (Category: 01)
// ============================================================================

var (
	// ErrValidation indicates local validation failed; Fields carries the
	// per-field messages and submission must be aborted.
	ErrValidation = Register(&Errno{
		Code:      MakeCode(CategoryValidation, 0),
		MessageEN: "Validation failed",
		MessageAR: "فشل التحقق من البيانات",
	})
)

// ============================================================================
// Authentication Errors (Category: 02)
// ============================================================================

var (
	// ErrNotAuthenticated indicates no token is stored locally.
	ErrNotAuthenticated = Register(&Errno{
		Code:      MakeCode(CategoryAuthentication, 0),
		MessageEN: "Authentication required. Please log in.",
		MessageAR: "يجب تسجيل الدخول أولاً",
	})

	// ErrTokenExpired indicates the stored token has expired.
	ErrTokenExpired = Register(&Errno{
		Code:      MakeCode(CategoryAuthentication, 1),
		MessageEN: "Your session has expired. Please log in again.",
		MessageAR: "انتهت الجلسة، يرجى تسجيل الدخول مرة أخرى",
	})
)

// ============================================================================
// Business Errors (Category: 03)
// ============================================================================

var (
	// ErrBusiness is the fallback when the backend rejects a request
	// without a message of its own.
	ErrBusiness = Register(&Errno{
		Code:      MakeCode(CategoryBusiness, 0),
		MessageEN: "An error occurred",
		MessageAR: "حدث خطأ",
	})

	// ErrNotFound indicates the backend reported a missing record.
	ErrNotFound = Register(&Errno{
		Code:      MakeCode(CategoryBusiness, 1),
		MessageEN: "Record not found",
		MessageAR: "السجل غير موجود",
	})
)

// ============================================================================
// Network Errors (Category: 04)
// ============================================================================

var (
	// ErrNetwork covers transport failures and unparseable responses.
	// Raw exception text never reaches the user; this message does.
	ErrNetwork = Register(&Errno{
		Code:      MakeCode(CategoryNetwork, 0),
		MessageEN: "Network error. Please check your connection and try again.",
		MessageAR: "خطأ في الاتصال، يرجى التحقق من الشبكة والمحاولة مرة أخرى",
	})
)

// ============================================================================
// Permission Errors (Category: 05)
// ============================================================================

var (
	// ErrLocationPermission indicates location access was denied.
	ErrLocationPermission = Register(&Errno{
		Code:      MakeCode(CategoryPermission, 0),
		MessageEN: "Location permission is required to use this feature",
		MessageAR: "يتطلب هذا الإجراء إذن الوصول إلى الموقع",
	})

	// ErrMediaPermission indicates camera or media library access was denied.
	ErrMediaPermission = Register(&Errno{
		Code:      MakeCode(CategoryPermission, 1),
		MessageEN: "Camera or media library permission is required",
		MessageAR: "يتطلب هذا الإجراء إذن الوصول إلى الكاميرا أو الصور",
	})

	// ErrCancelled indicates the user dismissed a device capability
	// prompt. Controllers treat it as a no-op, not an alert.
	ErrCancelled = Register(&Errno{
		Code:      MakeCode(CategoryPermission, 2),
		MessageEN: "Cancelled",
		MessageAR: "تم الإلغاء",
	})
)
