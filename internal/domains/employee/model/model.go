package model

import (
	"encoding/json"
	"strings"

	"lodge/infras/jwt"
	"lodge/shared/constant"
	"lodge/shared/model"
)

const EntityName = "employee"

// Duty statuses the upstream is known to send. Anything else is kept verbatim.
const (
	StatusActive  = "ACTIVE"
	StatusOnDuty  = "ON_DUTY"
	StatusOffDuty = "OFF_DUTY"
)

var Roles = []string{constant.RoleAdmin, constant.RoleReceptionist, constant.RoleCleaner, constant.RoleUser}

type Employee struct {
	ID          model.FlexString `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	PhoneNumber string           `json:"phoneNumber"`
	Role        string           `json:"role"`
	Status      string           `json:"status"`
}

// UnmarshalJSON accepts fullName or username when name is missing.
func (e *Employee) UnmarshalJSON(b []byte) error {
	type alias Employee

	var raw struct {
		alias
		FullName string `json:"fullName"`
		Username string `json:"username"`
	}

	if err := json.Unmarshal(b, &raw); err != nil {
		return err //nolint:wrapcheck
	}

	*e = Employee(raw.alias)

	if e.Name == "" {
		e.Name = raw.FullName
	}

	if e.Name == "" {
		e.Name = raw.Username
	}

	e.Role = NormalizeRole(e.Role)

	return nil
}

func NormalizeRole(role string) string {
	return jwt.NormalizeRole(role)
}

// NormalizeStatus compares loosely: "on-duty", "On Duty" and "ON_DUTY" are the same.
func NormalizeStatus(status string) string {
	return strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(strings.TrimSpace(status)))
}

// IsStaff excludes guest accounts.
func (e Employee) IsStaff() bool {
	return e.Role != "" && e.Role != constant.RoleUser
}

func (e Employee) OnDuty() bool {
	switch NormalizeStatus(e.Status) {
	case StatusActive, StatusOnDuty:
		return true
	default:
		return false
	}
}
