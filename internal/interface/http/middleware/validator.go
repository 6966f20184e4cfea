package middleware

import (
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators 注册金额相关的binding规则
//   - money：>= 0 且最多两位小数
//   - gtdecimal0：> 0 且最多两位小数
//
// decimal.Decimal先转换为字符串再交给规则校验
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, ok := parseMoney(fl.Field())
		return ok && !d.IsNegative()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("gtdecimal0", func(fl validator.FieldLevel) bool {
		d, ok := parseMoney(fl.Field())
		return ok && d.IsPositive()
	})
}

func parseMoney(field reflect.Value) (decimal.Decimal, bool) {
	if field.Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(field.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, d.Equal(d.Round(2))
}
