// Package validation 基于validator/v10的请求校验
//
// 所有写操作在触碰存储之前调用Struct，失败返回ErrCodeInvalidParams。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator 返回共享的校验器（字段名取json标签）
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		// 金额字段按数值校验，支持gt=0、gte=0等规则
		validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	})
	return validate
}

func decimalValue(v reflect.Value) interface{} {
	switch d := v.Interface().(type) {
	case decimal.Decimal:
		f, _ := d.Float64()
		return f
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		f, _ := d.Decimal.Float64()
		return f
	}
	return nil
}

// Struct 校验结构体，返回第一个不合法字段的AppError
func Struct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeInvalidParams,
			Message: message(fe),
			Err:     err,
		}
	}
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeInvalidParams,
		Message: apperrors.ErrInvalidParams.Message,
		Err:     err,
	}
}

func message(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s不能为空", field)
	case "email":
		return fmt.Sprintf("%s格式不正确", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s长度不能少于%s", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s至少包含%s项", field, fe.Param())
		}
		return fmt.Sprintf("%s不能小于%s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s长度不能超过%s", field, fe.Param())
		}
		return fmt.Sprintf("%s不能大于%s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s不能小于%s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s不能大于%s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s必须是以下之一: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s必须大于%s", field, fe.Param())
	default:
		return fmt.Sprintf("%s不合法", field)
	}
}
