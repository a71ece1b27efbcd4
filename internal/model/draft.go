package model

import (
    "bytes"
    "encoding/json"
    "fmt"
    "strings"
)

// Draft is an unsubmitted reservation form.  Every value is kept as the raw
// string the renter typed so a saved draft reloads exactly as entered.
type Draft struct {
    Name      string `json:"name" form:"name"`
    Phone     string `json:"phone" form:"phone"`
    Email     string `json:"email" form:"email"`
    License   string `json:"license" form:"license"`
    StartDate string `json:"start_date" form:"start_date"`
    Days      string `json:"days" form:"days"`
}

// Field names of the reservation form, in display order.
const (
    FieldName      = "name"
    FieldPhone     = "phone"
    FieldEmail     = "email"
    FieldLicense   = "license"
    FieldStartDate = "start_date"
    FieldDays      = "days"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldPhone, FieldEmail, FieldLicense, FieldStartDate, FieldDays}

// Value returns the trimmed value of the named field.
func (d Draft) Value(field string) string {
    var v string
    switch field {
    case FieldName:
        v = d.Name
    case FieldPhone:
        v = d.Phone
    case FieldEmail:
        v = d.Email
    case FieldLicense:
        v = d.License
    case FieldStartDate:
        v = d.StartDate
    case FieldDays:
        v = d.Days
    }
    return strings.TrimSpace(v)
}

func (d *Draft) field(name string) *string {
    switch name {
    case FieldName:
        return &d.Name
    case FieldPhone:
        return &d.Phone
    case FieldEmail:
        return &d.Email
    case FieldLicense:
        return &d.License
    case FieldStartDate:
        return &d.StartDate
    case FieldDays:
        return &d.Days
    }
    return nil
}

// UnmarshalJSON accepts each field as a string or a JSON number, so
// {"days": 3} and {"days": "3"} decode alike.  Numbers keep their literal
// text.  Other value types are rejected.
func (d *Draft) UnmarshalJSON(b []byte) error {
    var raw map[string]json.RawMessage
    if err := json.Unmarshal(b, &raw); err != nil {
        return err
    }
    for _, name := range Fields {
        v, ok := raw[name]
        if !ok {
            continue
        }
        s, err := scalarText(v)
        if err != nil {
            return fmt.Errorf("draft field %s: %w", name, err)
        }
        *d.field(name) = s
    }
    return nil
}

func scalarText(v json.RawMessage) (string, error) {
    v = bytes.TrimSpace(v)
    switch {
    case len(v) == 0 || string(v) == "null":
        return "", nil
    case v[0] == '"':
        var s string
        err := json.Unmarshal(v, &s)
        return s, err
    case v[0] == '-' || (v[0] >= '0' && v[0] <= '9'):
        var n json.Number
        if err := json.Unmarshal(v, &n); err != nil {
            return "", err
        }
        return n.String(), nil
    }
    return "", fmt.Errorf("expected string or number, got %s", v)
}
