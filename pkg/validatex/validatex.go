package validatex

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/errx"
	"github.com/go-playground/validator/v10"
)

// Violation is a single failed rule
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result is the outcome of validating a value.
// Violations are grouped by top-level field ("title", "city", ...).
type Result struct {
	Groups map[string][]Violation
}

// Valid reports whether no rule failed
func (r Result) Valid() bool {
	return len(r.Groups) == 0
}

// Fields lists the failing groups in a stable order
func (r Result) Fields() []string {
	fields := make([]string, 0, len(r.Groups))
	for f := range r.Groups {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Merge combines two results
func (r Result) Merge(other Result) Result {
	if other.Valid() {
		return r
	}
	out := Result{Groups: make(map[string][]Violation, len(r.Groups)+len(other.Groups))}
	for k, v := range r.Groups {
		out.Groups[k] = append(out.Groups[k], v...)
	}
	for k, v := range other.Groups {
		out.Groups[k] = append(out.Groups[k], v...)
	}
	return out
}

// Add records a violation computed outside of struct tags
func (r *Result) Add(field, rule, message string) {
	if r.Groups == nil {
		r.Groups = make(map[string][]Violation)
	}
	group := strings.SplitN(field, ".", 2)[0]
	r.Groups[group] = append(r.Groups[group], Violation{Field: field, Rule: rule, Message: message})
}

// Err attaches the violations to base, or returns nil when valid
func (r Result) Err(base *errx.Error) error {
	if r.Valid() {
		return nil
	}
	details := make(map[string]any, len(r.Groups))
	for field, vs := range r.Groups {
		details[field] = vs
	}
	return base.WithDetails(details)
}

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("isodate", isISODate)
		instance = v
	})
	return instance
}

// Validate checks v against its `validate` tags
func Validate(v any) Result {
	var res Result

	err := engine().Struct(v)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Add("_", "invalid", err.Error())
		return res
	}

	for _, fe := range verrs {
		field := trimRoot(fe.Namespace())
		res.Add(field, fe.Tag(), message(fe))
	}
	return res
}

// trimRoot drops the struct name from "CreateRequest.title.fr"
func trimRoot(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "isodate":
		return "must be an ISO-8601 date"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4":
		return "must be a valid identifier"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// IsISODate accepts the date and date-time forms browsers send
func IsISODate(s string) bool {
	_, err := ParseISODate(s)
	return err == nil
}

// ParseISODate parses s with the first matching ISO-8601 layout.
// Values without a zone are read as UTC.
func ParseISODate(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("validatex: %q is not an ISO-8601 date", s)
}

func isISODate(fl validator.FieldLevel) bool {
	return IsISODate(fl.Field().String())
}
