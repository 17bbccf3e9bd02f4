package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StringList is a list of strings persisted as a JSON array column
type StringList []string

// Scan implements the sql.Scanner interface for StringList
func (sl *StringList) Scan(value interface{}) error {
	if value == nil {
		*sl = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	return json.Unmarshal(bytes, sl)
}

// Value implements the driver.Valuer interface for StringList
func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		sl = StringList{}
	}
	return json.Marshal(sl)
}

// GormDataType gorm common data type
func (StringList) GormDataType() string {
	return "jsonb"
}

// GormValue implements the GormValuerInterface
func (sl StringList) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	if sl == nil {
		sl = StringList{}
	}
	data, err := json.Marshal(sl)
	if err != nil {
		// JSON marshaling of a string slice should never fail
		panic(fmt.Sprintf("Failed to marshal StringList to JSON: %v", err))
	}

	// SQLite stores JSON as TEXT, PostgreSQL needs the jsonb cast
	sqlExpr := "?::jsonb"
	if db.Dialector.Name() == "sqlite" {
		sqlExpr = "?"
	}

	return clause.Expr{
		SQL:  sqlExpr,
		Vars: []interface{}{string(data)},
	}
}
