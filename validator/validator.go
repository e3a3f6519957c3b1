package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "hotelcore/errors"
	"hotelcore/models"

	playground "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// Register thêm các rule riêng của hệ thống vào validator của gin
func Register(v *playground.Validate) error {
	if err := v.RegisterValidation("isodate", isISODate); err != nil {
		return err
	}
	return v.RegisterValidation("roomtype", isRoomType)
}

// isodate: "YYYY-MM-DD"
func isISODate(fl playground.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

func isRoomType(fl playground.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s != "" && len(s) <= 60
}

// ValidateStruct chạy validator và đổi lỗi đầu tiên thành AppError
func ValidateStruct(s any) error {
	return FromBindingError(validate.Struct(s))
}

// FromBindingError converts a gin binding or validator error to VALIDATION_ERROR.
func FromBindingError(err error) error {
	if err == nil {
		return nil
	}
	var verrs playground.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.Validation(fieldMessage(fe)).WithDetail("field", fe.Field())
	}
	return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Dữ liệu không hợp lệ", err)
}

func fieldMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s không được để trống", fe.Field())
	case "isodate":
		return fmt.Sprintf("%s phải có dạng YYYY-MM-DD", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s phải lớn hơn hoặc bằng %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s phải nhỏ hơn hoặc bằng %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s không phải email hợp lệ", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s phải là một trong: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s không hợp lệ (%s)", fe.Field(), fe.Tag())
	}
}
