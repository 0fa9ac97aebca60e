package handler

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator.
// Field errors are reported with their JSON names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("fueltype", validateFuelType)
	})
}

func validateFuelType(fl validator.FieldLevel) bool {
	_, err := enum.ParseFuelType(fl.Field().String())
	return err == nil
}
