package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a JSON-encoded list column, used for a printer target's
// accepted document kinds and served profiles.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("cannot scan %T into StringList", value)
}

// Contains reports whether the list holds s.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// PrinterTarget is an administrator-managed physical or logical printer. A
// target with a RelayURL is reached through the print relay agent; otherwise
// the server spools to the named local driver directly. An active target must
// accept at least one document kind and serve at least one profile.
type PrinterTarget struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	DriverName    string     `gorm:"size:150;not null" json:"driver_name"`
	DocumentKinds StringList `gorm:"type:json;not null" json:"document_kinds"`
	Profiles      StringList `gorm:"type:json;not null" json:"profiles"`
	Width         int        `gorm:"not null;default:42" json:"width"`
	CutPaper      bool       `gorm:"not null;default:true" json:"cut_paper"`
	FeedLines     int        `gorm:"not null;default:3" json:"feed_lines"`
	RelayURL      *string    `gorm:"size:200" json:"relay_url,omitempty"`
	Active        bool       `gorm:"not null;default:true;index" json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName returns the table name for the PrinterTarget model
func (PrinterTarget) TableName() string {
	return "printer_targets"
}

// Remote reports whether jobs for this target go through a relay agent.
func (t *PrinterTarget) Remote() bool {
	return t.RelayURL != nil && *t.RelayURL != ""
}
