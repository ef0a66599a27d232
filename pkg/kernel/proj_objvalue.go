package kernel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Locale is one of the three languages the platform is published in
type Locale string

const (
	LocaleFr Locale = "fr"
	LocaleEn Locale = "en"
	LocaleAr Locale = "ar"
)

// LocalizedText holds the fr/en/ar renditions of a label.
// It is stored as a JSONB object.
type LocalizedText struct {
	Fr string `json:"fr"`
	En string `json:"en"`
	Ar string `json:"ar"`
}

// IsZero reports whether no locale is filled
func (t LocalizedText) IsZero() bool {
	return t.Fr == "" && t.En == "" && t.Ar == ""
}

// In returns the text for a locale, falling back to French then English
func (t LocalizedText) In(l Locale) string {
	var v string
	switch l {
	case LocaleEn:
		v = t.En
	case LocaleAr:
		v = t.Ar
	default:
		v = t.Fr
	}
	if v != "" {
		return v
	}
	if t.Fr != "" {
		return t.Fr
	}
	return t.En
}

// Joined concatenates every locale, lower-cased, for substring matching
func (t LocalizedText) Joined() string {
	return strings.ToLower(t.En + " " + t.Fr + " " + t.Ar)
}

// Value implements driver.Valuer
func (t LocalizedText) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements sql.Scanner
func (t *LocalizedText) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = LocalizedText{}
		return nil
	case []byte:
		return t.unmarshal(v)
	case string:
		return t.unmarshal([]byte(v))
	default:
		return fmt.Errorf("kernel: cannot scan %T into LocalizedText", src)
	}
}

func (t *LocalizedText) unmarshal(b []byte) error {
	if len(b) == 0 {
		*t = LocalizedText{}
		return nil
	}
	return json.Unmarshal(b, t)
}

// OptionalLocalizedText is a nullable LocalizedText column
type OptionalLocalizedText struct {
	LocalizedText
	Valid bool
}

func NewOptionalLocalizedText(t *LocalizedText) OptionalLocalizedText {
	if t == nil {
		return OptionalLocalizedText{}
	}
	return OptionalLocalizedText{LocalizedText: *t, Valid: true}
}

// Ptr returns nil when the value is absent
func (o OptionalLocalizedText) Ptr() *LocalizedText {
	if !o.Valid {
		return nil
	}
	t := o.LocalizedText
	return &t
}

func (o OptionalLocalizedText) Value() (driver.Value, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.LocalizedText.Value()
}

func (o *OptionalLocalizedText) Scan(src any) error {
	if src == nil {
		*o = OptionalLocalizedText{}
		return nil
	}
	if err := o.LocalizedText.Scan(src); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return strings.TrimSpace(string(e)) == "" }

// Normalize lower-cases and trims the address
func (e Email) Normalize() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}
