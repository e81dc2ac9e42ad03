// Package model contains the devirtualization report model for the database.
package model

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("no report found")
)

// Run is one invocation of the restore command.
type Run struct {
	gorm.Model
	Constraint string    `json:"constraint,omitempty"`
	Strict     bool      `json:"strict,omitempty"`
	Started    time.Time `json:"started"`
	Finished   time.Time `json:"finished"`
	Modules    []Module  `gorm:"foreignKey:RunID" json:"modules,omitempty"`
}

// Module is the outcome for one protected module.
type Module struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RunID           uint      `gorm:"index" json:"run_id"`
	Path            string    `gorm:"index;not null" json:"path"`
	Name            string    `json:"name"`
	VMName          string    `json:"vm_name,omitempty"`
	Catalog         string    `json:"catalog,omitempty"`
	Converted       int       `json:"converted"`
	Warned          int       `json:"warned"`
	Skipped         int       `json:"skipped"`
	ResourceRemoved bool      `json:"resource_removed"`
	Error           string    `gorm:"type:text" json:"error,omitempty"`
	Methods         []Method  `gorm:"foreignKey:ModuleID" json:"methods,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Method is the outcome for one virtualized method.
type Method struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ModuleID uint   `gorm:"index;not null" json:"module_id"`
	Token    uint32 `gorm:"index" json:"token"`
	GUID     string `json:"guid"`
	Name     string `json:"name,omitempty"`
	Restored bool   `json:"restored"`
	Skipped  bool   `json:"skipped"`
	Warnings string `gorm:"type:text" json:"warnings,omitempty"` // newline separated
	Error    string `gorm:"type:text" json:"error,omitempty"`
}

// WarningList splits the stored warnings.
func (m *Method) WarningList() []string {
	if m.Warnings == "" {
		return nil
	}
	return strings.Split(m.Warnings, "\n")
}
