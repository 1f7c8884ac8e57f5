package model_test

import (
	"encoding/json"
	"testing"

	"lodge/internal/domains/employee/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployee_UnmarshalJSON(t *testing.T) {
	var employees []model.Employee

	err := json.Unmarshal([]byte(`[
		{"id": 1, "name": "Ada", "role": "role_admin", "status": "Active"},
		{"id": "2", "fullName": "Grace", "role": "Receptionist", "status": "off-duty"},
		{"id": 3, "username": "alan", "role": "CLEANER", "status": "on duty"}
	]`), &employees)
	require.NoError(t, err)

	assert.Equal(t, model.Employee{ID: "1", Name: "Ada", Role: "ADMIN", Status: "Active"}, employees[0])
	assert.Equal(t, "Grace", employees[1].Name)
	assert.Equal(t, "RECEPTIONIST", employees[1].Role)
	assert.Equal(t, "alan", employees[2].Name)
}

func TestEmployee_OnDuty(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: "active", want: true},
		{status: " ON-DUTY ", want: true},
		{status: "On Duty", want: true},
		{status: "off-duty", want: false},
		{status: "", want: false},
		{status: "sick", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, model.Employee{Status: tt.status}.OnDuty(), tt.status)
	}
}

func TestEmployee_IsStaff(t *testing.T) {
	assert.True(t, model.Employee{Role: "CLEANER"}.IsStaff())
	assert.False(t, model.Employee{Role: "USER"}.IsStaff())
	assert.False(t, model.Employee{}.IsStaff())
}
