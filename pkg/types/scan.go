package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Scan реализует sql.Scanner
// PostgreSQL DATE приходит из драйвера как time.Time
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := NewDateFromString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := NewDateFromString(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = ""
		return nil
	default:
		return fmt.Errorf("types.Date: cannot scan %T", src)
	}
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return string(d), nil
}
