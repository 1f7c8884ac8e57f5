package dto_test

import (
	"testing"

	"lodge/internal/domains/auth/model"
	"lodge/internal/domains/auth/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestUpdateProfileRequest_ToUpstream(t *testing.T) {
	name := " Ada King "
	email := "ADA@Lodge.test"

	current := model.Profile{ID: "7", Name: "Ada", Email: "ada@old.test", PhoneNumber: "0812", Role: "USER"}
	req := dto.UpdateProfileRequest{Name: &name, Email: &email}

	assert.False(t, req.IsEmpty())
	assert.Equal(t, model.Profile{ID: "7", Name: "Ada King", Email: "ada@lodge.test", PhoneNumber: "0812", Role: "USER"}, req.ToUpstream(current))
	assert.True(t, dto.UpdateProfileRequest{}.IsEmpty())
}

func TestLoginResponse_FromSession(t *testing.T) {
	var res dto.LoginResponse

	res.FromSession(model.Session{Token: "tok", Username: "ada"}, "role_receptionist")

	assert.Equal(t, "RECEPTIONIST", res.Role)
	assert.Equal(t, "tok", res.Token)
}
