package validation

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern   = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	httpURLPattern = regexp.MustCompile(`(?i)^https?://.+`)
	pdfNamePattern = regexp.MustCompile(`(?i)\.pdf$`)

	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the form rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		mustRegister(v, "trimmed_required", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		mustRegister(v, "loose_email", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "amount", func(fl validator.FieldLevel) bool {
			_, ok := ParseAmount(fl.Field().String())
			return ok
		})
		mustRegister(v, "http_url", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			return s == "" || httpURLPattern.MatchString(s)
		})
		// pdf reads the sibling ContentType field when the struct has one.
		mustRegister(v, "pdf", func(fl validator.FieldLevel) bool {
			contentType := ""
			if parent := fl.Parent(); parent.Kind() == reflect.Struct {
				if ct := parent.FieldByName("ContentType"); ct.IsValid() && ct.Kind() == reflect.String {
					contentType = ct.String()
				}
			}
			return IsPDF(fl.Field().String(), contentType)
		})

		v.RegisterStructValidation(registerStructLevel, RegisterForm{})
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// IsPDF accepts a file whose MIME type is application/pdf or whose name ends
// in .pdf, case-insensitively.
func IsPDF(fileName, contentType string) bool {
	if strings.EqualFold(strings.TrimSpace(contentType), "application/pdf") {
		return true
	}
	return pdfNamePattern.MatchString(fileName)
}

// NormalizeAmount turns a user-typed amount into the form sent to the backend.
// Only the first comma becomes a period.
func NormalizeAmount(s string) string {
	return strings.TrimSpace(strings.Replace(s, ",", ".", 1))
}

// ParseAmount reports the numeric amount and whether it is finite and positive.
// Unsigned 0x, 0o and 0b integer literals are read in their base.
func ParseAmount(s string) (float64, bool) {
	n, err := parseNumber(NormalizeAmount(s))
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) || n <= 0 {
		return 0, false
	}
	return n, true
}

func parseNumber(s string) (float64, error) {
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(s[2:], base, 64)
			return float64(u), err
		}
	}
	return strconv.ParseFloat(s, 64)
}

// check runs the validator on form and maps every failure to its message.
// messages is keyed by "field.tag", falling back to "field".
func check(form any, messages map[string]string) Errors {
	errs := Errors{}
	err := Validator().Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg, ok = messages[field]
		}
		if !ok {
			msg = "Champ invalide."
		}
		errs[field] = msg
	}
	return errs
}
