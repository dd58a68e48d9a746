package locale

// Message keys used across the validation engine and controllers.
const (
	KeyRequired          = "validation.required"
	KeyInvalidEmail      = "validation.email"
	KeyInvalidPhone      = "validation.phone"
	KeyInvalidNationalID = "validation.national_id"
	KeyPasswordTooShort  = "validation.password_min_length"
	KeyPasswordMismatch  = "validation.password_mismatch"
	KeyTooShort          = "validation.min_length"
	KeyTooLong           = "validation.max_length"
	KeyInvalidNumber     = "validation.numeric"
	KeyNotPositive       = "validation.positive"
	KeyInvalidDate       = "validation.date"
	KeyDateNotPast       = "validation.past_date"
	KeyInvalidRole       = "validation.role"

	KeyPasswordNeedUpper   = "password.need_upper"
	KeyPasswordNeedLower   = "password.need_lower"
	KeyPasswordNeedNumber  = "password.need_number"
	KeyPasswordNeedSpecial = "password.need_special"
	KeyPasswordNeedLength  = "password.need_length"

	KeyConnectionError = "error.connection"
	KeyAuthRequired    = "error.auth_required"
	KeySessionExpired  = "error.session_expired"
	KeyGenericError    = "error.generic"

	KeySaved   = "status.saved"
	KeyDeleted = "status.deleted"
)

func (p *Provider) loadCatalog() {
	p.catalog[LangEN] = map[string]string{
		KeyRequired:          "This field is required",
		KeyInvalidEmail:      "Please enter a valid email address",
		KeyInvalidPhone:      "Please enter a valid phone number",
		KeyInvalidNationalID: "National ID must be exactly 10 digits",
		KeyPasswordTooShort:  "Password must be at least 6 characters",
		KeyPasswordMismatch:  "Passwords do not match",
		KeyTooShort:          "Value is too short",
		KeyTooLong:           "Value is too long",
		KeyInvalidNumber:     "Please enter a valid number",
		KeyNotPositive:       "Value must be greater than zero",
		KeyInvalidDate:       "Please enter a valid date",
		KeyDateNotPast:       "Date must be in the past",
		KeyInvalidRole:       "Please select a valid role",

		KeyPasswordNeedUpper:   "Add an uppercase letter",
		KeyPasswordNeedLower:   "Add a lowercase letter",
		KeyPasswordNeedNumber:  "Add a number",
		KeyPasswordNeedSpecial: "Add a special character",
		KeyPasswordNeedLength:  "Use at least 6 characters",

		KeyConnectionError: "Network error. Please check your connection and try again.",
		KeyAuthRequired:    "Authentication required. Please log in.",
		KeySessionExpired:  "Your session has expired. Please log in again.",
		KeyGenericError:    "An error occurred",

		KeySaved:   "Saved successfully",
		KeyDeleted: "Deleted successfully",
	}

	p.catalog[LangAR] = map[string]string{
		KeyRequired:          "هذا الحقل مطلوب",
		KeyInvalidEmail:      "يرجى إدخال بريد إلكتروني صحيح",
		KeyInvalidPhone:      "يرجى إدخال رقم هاتف صحيح",
		KeyInvalidNationalID: "رقم الهوية يجب أن يتكون من 10 أرقام",
		KeyPasswordTooShort:  "كلمة المرور يجب أن تتكون من 6 أحرف على الأقل",
		KeyPasswordMismatch:  "كلمتا المرور غير متطابقتين",
		KeyTooShort:          "القيمة قصيرة جداً",
		KeyTooLong:           "القيمة طويلة جداً",
		KeyInvalidNumber:     "يرجى إدخال رقم صحيح",
		KeyNotPositive:       "القيمة يجب أن تكون أكبر من صفر",
		KeyInvalidDate:       "يرجى إدخال تاريخ صحيح",
		KeyDateNotPast:       "التاريخ يجب أن يكون في الماضي",
		KeyInvalidRole:       "يرجى اختيار صلاحية صحيحة",

		KeyPasswordNeedUpper:   "أضف حرفاً كبيراً",
		KeyPasswordNeedLower:   "أضف حرفاً صغيراً",
		KeyPasswordNeedNumber:  "أضف رقماً",
		KeyPasswordNeedSpecial: "أضف رمزاً خاصاً",
		KeyPasswordNeedLength:  "استخدم 6 أحرف على الأقل",

		KeyConnectionError: "خطأ في الاتصال، يرجى التحقق من الشبكة والمحاولة مرة أخرى",
		KeyAuthRequired:    "يجب تسجيل الدخول أولاً",
		KeySessionExpired:  "انتهت الجلسة، يرجى تسجيل الدخول مرة أخرى",
		KeyGenericError:    "حدث خطأ",

		KeySaved:   "تم الحفظ بنجاح",
		KeyDeleted: "تم الحذف بنجاح",
	}
}
