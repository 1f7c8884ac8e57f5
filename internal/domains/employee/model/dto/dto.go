package dto

import (
	"strings"

	"lodge/internal/domains/employee/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
)

type RegisterEmployeeRequest struct {
	Name        string `json:"name"         validate:"required,min=2,max=100"`
	Email       string `json:"email"        validate:"required,email,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	Password    string `json:"password"     validate:"required,min=8,max=72"`
	Role        string `json:"role"         validate:"required,oneof=ADMIN RECEPTIONIST CLEANER admin receptionist cleaner"`
}

// UpstreamRegisterRequest is the body of POST /api/auth/register-employee.
type UpstreamRegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

func (r RegisterEmployeeRequest) ToUpstream() UpstreamRegisterRequest {
	return UpstreamRegisterRequest{
		Name:        strings.TrimSpace(r.Name),
		Email:       strings.ToLower(strings.TrimSpace(r.Email)),
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
		Password:    r.Password,
		Role:        model.NormalizeRole(r.Role),
	}
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	OnDuty      bool   `json:"on_duty"`
}

func (r *EmployeeResponse) FromModel(m model.Employee) {
	r.ID = m.ID.String()
	r.Name = m.Name
	r.Email = m.Email
	r.PhoneNumber = m.PhoneNumber
	r.Role = m.Role
	r.Status = m.Status
	r.OnDuty = m.OnDuty()
}

type GetEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetEmployeesResponse) FromModels(models []model.Employee, params gDto.QueryParams) {
	r.TotalData = len(models)
	r.TotalPage = shared.CalculateTotalPage(len(models), params.Limit)

	page := shared.Paginate(models, params)

	r.Employees = make([]EmployeeResponse, len(page))
	for i, m := range page {
		r.Employees[i].FromModel(m)
	}
}
