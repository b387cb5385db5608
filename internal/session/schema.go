package session

import "fmt"

// SchemaVersion identifies the preference/profile key schema. Bump when keys
// are added or retyped so persisted exports can be told apart.
const SchemaVersion = 1

// SchemaError reports a preference or profile entry that does not fit the
// schema.
type SchemaError struct {
	Key string
	Msg string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %q: %s", e.Key, e.Msg)
}

type valueKind int

const (
	kindString valueKind = iota
	kindNumber
	kindStringList
)

// Enumerated preference keys. Values are typed but not range-checked.
var preferenceKeys = map[string]valueKind{
	"risk_tolerance":     kindString,
	"investment_horizon": kindString,
	"financial_goals":    kindStringList,
	"current_savings":    kindNumber,
	"monthly_income":     kindNumber,
	"monthly_expenses":   kindNumber,
}

// Enumerated financial profile keys.
var profileKeys = map[string]valueKind{
	"age":               kindNumber,
	"monthly_income":    kindNumber,
	"monthly_expenses":  kindNumber,
	"current_savings":   kindNumber,
	"total_debt":        kindNumber,
	"employment_status": kindString,
}

// ValidatePreferences checks every entry against the preference schema.
// Unknown keys and mistyped values are rejected.
func ValidatePreferences(m map[string]any) error {
	return validate(m, preferenceKeys)
}

// ValidateProfile checks every entry against the financial profile schema.
func ValidateProfile(m map[string]any) error {
	return validate(m, profileKeys)
}

func validate(m map[string]any, schema map[string]valueKind) error {
	for key, value := range m {
		kind, ok := schema[key]
		if !ok {
			return &SchemaError{Key: key, Msg: "unknown key"}
		}
		if err := checkKind(key, value, kind); err != nil {
			return err
		}
	}
	return nil
}

func checkKind(key string, value any, kind valueKind) error {
	switch kind {
	case kindString:
		if _, ok := value.(string); !ok {
			return &SchemaError{Key: key, Msg: "expected a string"}
		}
	case kindNumber:
		// JSON decodes numbers as float64; direct callers may pass ints.
		switch value.(type) {
		case float64, float32, int, int32, int64:
		default:
			return &SchemaError{Key: key, Msg: "expected a number"}
		}
	case kindStringList:
		switch list := value.(type) {
		case []string:
		case []any:
			for _, item := range list {
				if _, ok := item.(string); !ok {
					return &SchemaError{Key: key, Msg: "expected a list of strings"}
				}
			}
		default:
			return &SchemaError{Key: key, Msg: "expected a list of strings"}
		}
	}
	return nil
}
