package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

const (
	msgValidation     = "يرجى تصحيح الأخطاء في النموذج"
	msgInternal       = "حدث خطأ في الخادم، يرجى المحاولة لاحقاً"
	msgBadRequest     = "طلب غير صالح"
	msgUnauthorized   = "يجب تسجيل الدخول أولاً"
	msgUploadTimeout  = "انتهت مهلة رفع الصورة، يرجى المحاولة مرة أخرى"
	msgRequestTooBig  = "حجم الطلب كبير جداً"
	msgInvalidID      = "المعرف غير صالح"
	msgMissingFile    = "يرجى اختيار ملف"
	msgMissingPublic  = "معرف الصورة مطلوب"
	msgDeleted        = "تم الحذف بنجاح"
	msgSubmitted      = "تم إرسال طلبك بنجاح! سيتواصل معك فريقنا قريباً"
	msgUploaded       = "تم رفع الصورة بنجاح"
	msgStatusRequired = "الحالة مطلوبة"
)

// errorMapping pairs a domain error with its HTTP status and Arabic message.
type errorMapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrDraftNotFound, http.StatusNotFound, "المسودة غير موجودة أو انتهت صلاحيتها"},
	{domain.ErrImageNotFound, http.StatusNotFound, "الصورة غير موجودة"},
	{domain.ErrNotFound, http.StatusNotFound, "العنصر المطلوب غير موجود"},
	{domain.ErrUnknownContentSection, http.StatusNotFound, "القسم المطلوب غير موجود"},
	{domain.ErrStepOutOfRange, http.StatusBadRequest, "الخطوة المطلوبة غير صالحة"},
	{domain.ErrSubmitRequired, http.StatusConflict, "يجب إرسال الطلب للوصول إلى خطوة التأكيد"},
	{domain.ErrDraftSubmitted, http.StatusConflict, "تم إرسال هذا الطلب بالفعل"},
	{domain.ErrTooManyImages, http.StatusBadRequest, "تم تجاوز الحد الأقصى لعدد الصور"},
	{domain.ErrDuplicateImage, http.StatusConflict, "هذه الصورة مضافة بالفعل"},
	{domain.ErrUnsupportedImageType, http.StatusUnsupportedMediaType, "نوع الملف غير مدعوم، يرجى رفع صورة JPG أو PNG أو WEBP"},
	{domain.ErrImageTooLarge, http.StatusRequestEntityTooLarge, "حجم الصورة كبير جداً"},
	{domain.ErrUnknownUploadType, http.StatusBadRequest, "نوع الرفع غير صالح"},
	{domain.ErrInvalidStatus, http.StatusBadRequest, "الحالة المطلوبة غير صالحة"},
	{domain.ErrInvalidTransition, http.StatusConflict, "لا يمكن الانتقال إلى هذه الحالة"},
	{domain.ErrInsufficientStock, http.StatusConflict, "الكمية المطلوبة غير متوفرة"},
	{domain.ErrProductInactive, http.StatusConflict, "المنتج غير متاح حالياً"},
	{domain.ErrAlreadyExists, http.StatusConflict, "العنصر موجود بالفعل"},
	{domain.ErrEmptyMessage, http.StatusBadRequest, "يرجى كتابة رسالة"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "البريد الإلكتروني أو كلمة المرور غير صحيحة"},
	{domain.ErrTokenExpired, http.StatusUnauthorized, "انتهت صلاحية الجلسة، يرجى تسجيل الدخول مرة أخرى"},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, msgUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden, "ليس لديك صلاحية للقيام بهذا الإجراء"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, msgUploadTimeout},
}

// WriteJSONError sends the failure envelope.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, errorResponse{Success: false, Message: message})
}

// RespondWithJSON sends payload as JSON.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

func respondData(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, dataResponse{Success: true, Data: data})
}

// statusFor maps err to a status code and a user-facing message.
func statusFor(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, msgRequestTooBig
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, msgInternal
}

// writeUseCaseError renders err returned by a use case. Validation errors
// carry the per-field messages.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var v *domain.ValidationError
	if errors.As(err, &v) {
		RespondWithJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Success: false,
			Message: msgValidation,
			Errors:  v.FieldErrors,
		})
		return
	}

	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", err, port.Fields{"status_code": status})
	} else {
		logger.Warn("Request rejected", port.Fields{"status_code": status, "reason": err.Error()})
	}
	WriteJSONError(w, status, message)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// GetLimitOrDefault parses ?limit; the use cases clamp the value.
func GetLimitOrDefault(r *http.Request) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return domain.DefaultPageLimit, nil
	}
	return strconv.Atoi(limitStr)
}

func GetOffsetOrDefault(r *http.Request) (int, error) {
	offsetStr := r.URL.Query().Get("offset")
	if offsetStr == "" {
		return 0, nil
	}
	return strconv.Atoi(offsetStr)
}
