package validation

import (
	"regexp"
	"unicode"

	"go-jobmatch-bot/pkg/citynorm"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters, digits, spaces and . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	settingKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{1,63}$`)
)

// New returns a validator with the project's custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("city", City)
	_ = v.RegisterValidation("setting_key", SettingKey)
}

func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

// NoEmoji rejects supplementary-plane runes and symbol categories.
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// City accepts anything that survives normalization.
func City(fl validator.FieldLevel) bool {
	return citynorm.Normalize(fl.Field().String()) != ""
}

func SettingKey(fl validator.FieldLevel) bool {
	return settingKeyRegex.MatchString(fl.Field().String())
}
