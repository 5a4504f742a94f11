package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JaimeStill/tour-desk/pkg/query"
)

// normalizer converts loosely typed input (JSON, form values) into stored
// field values and applies per-type rules.
type normalizer struct {
	validate *validator.Validate
}

func newNormalizer() *normalizer {
	return &normalizer{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// normalize checks fields against kind. With partial set, only supplied
// fields are checked and required fields may be absent.
func (n *normalizer) normalize(kind Kind, fields map[string]any, partial bool) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	var problems []string

	for name := range fields {
		if _, ok := kind.Field(name); !ok {
			problems = append(problems, fmt.Sprintf("%s is not a field of %s", name, kind.Name))
		}
	}

	for _, f := range kind.Fields {
		raw, supplied := fields[f.Name]
		if !supplied {
			if f.Required && !partial {
				problems = append(problems, f.Name+" is required")
			}
			continue
		}

		value, err := n.field(f, raw)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		out[f.Name] = value
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return out, nil
}

func (n *normalizer) field(f Field, raw any) (any, error) {
	switch f.Type {
	case Decimal:
		return n.decimal(f, raw)
	case Timestamp:
		return n.timestamp(f, raw)
	}

	s, ok := raw.(string)
	if !ok {
		if raw != nil {
			return nil, fmt.Errorf("%s must be a string", f.Name)
		}
		s = ""
	}
	s = strings.TrimSpace(s)

	tag := rule(f)
	if tag != "" {
		if err := n.validate.Var(s, tag); err != nil {
			return nil, describe(f, err)
		}
	}
	return s, nil
}

func (n *normalizer) decimal(f Field, raw any) (any, error) {
	var v float64

	switch t := raw.(type) {
	case nil:
		if f.Required {
			return nil, fmt.Errorf("%s is required", f.Name)
		}
		return nil, nil
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			if f.Required {
				return nil, fmt.Errorf("%s is required", f.Name)
			}
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.Name)
		}
		v = parsed
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.Name)
		}
		v = parsed
	default:
		parsed, ok := query.AsFloat(raw)
		if !ok {
			return nil, fmt.Errorf("%s must be a number", f.Name)
		}
		v = parsed
	}

	if err := n.validate.Var(v, "gte=0"); err != nil {
		return nil, fmt.Errorf("%s must be greater than or equal to 0", f.Name)
	}
	return v, nil
}

func (n *normalizer) timestamp(f Field, raw any) (any, error) {
	if s, ok := raw.(string); (ok && strings.TrimSpace(s) == "") || raw == nil {
		if f.Required {
			return nil, fmt.Errorf("%s is required", f.Name)
		}
		return nil, nil
	}

	t, ok := query.AsTime(raw)
	if !ok {
		return nil, fmt.Errorf("%s must be a date-time", f.Name)
	}
	return t.UTC(), nil
}

func rule(f Field) string {
	var tags []string
	if f.Required {
		tags = append(tags, "required")
	} else {
		tags = append(tags, "omitempty")
	}

	switch f.Type {
	case Email:
		tags = append(tags, "email")
	case URL:
		tags = append(tags, "uri")
	case Date:
		tags = append(tags, "datetime=2006-01-02")
	case Phone:
		tags = append(tags, "max=32")
	}

	if len(tags) == 1 && tags[0] == "omitempty" {
		return ""
	}
	return strings.Join(tags, ",")
}

func describe(f Field, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%s is invalid", f.Name)
	}

	switch verrs[0].Tag() {
	case "required":
		return fmt.Errorf("%s is required", f.Name)
	case "email":
		return fmt.Errorf("%s must be a valid email address", f.Name)
	case "uri":
		return fmt.Errorf("%s must be a valid URL", f.Name)
	case "datetime":
		return fmt.Errorf("%s must be a date (YYYY-MM-DD)", f.Name)
	case "max":
		return fmt.Errorf("%s is too long", f.Name)
	}
	return fmt.Errorf("%s is invalid", f.Name)
}
