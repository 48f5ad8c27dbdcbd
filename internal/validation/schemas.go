package validation

import "github.com/aadeshbhujbal/healthcare-auth/domain"

// LoginInput is the password login form
type LoginInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	RememberMe bool   `json:"rememberMe"`
}

// Validate checks the login form
func (in LoginInput) Validate() Errors { return check(in) }

// OTPRequestInput asks the backend to issue a one-time password
type OTPRequestInput struct {
	// Identifier is an email address or phone number
	Identifier string `json:"identifier" validate:"required"`
}

// Validate checks the OTP request form
func (in OTPRequestInput) Validate() Errors { return check(in) }

// OTPVerifyInput exchanges a one-time password for a session
type OTPVerifyInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code" validate:"required,len=6"`
}

// Validate checks the OTP verification form
func (in OTPVerifyInput) Validate() Errors { return check(in) }

// RegisterInput is the account registration form
type RegisterInput struct {
	FirstName       string `json:"firstName" validate:"required,min=2"`
	LastName        string `json:"lastName" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=10"`
	Password        string `json:"password" validate:"required,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,oneof=SUPER_ADMIN CLINIC_ADMIN DOCTOR RECEPTIONIST PATIENT"`
	Gender          string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Age             int    `json:"age" validate:"omitempty,gte=1"`
	DateOfBirth     string `json:"dateOfBirth"`
	Address         string `json:"address"`
	Terms           bool   `json:"terms" validate:"eq=true"`
}

// Normalize applies the registration defaults for omitted fields
func (in *RegisterInput) Normalize() {
	if in.Role == "" {
		in.Role = string(domain.RolePatient)
	}
	if in.Gender == "" {
		in.Gender = string(domain.GenderMale)
	}
	if in.Age == 0 {
		in.Age = 18
	}
}

// Validate normalizes the form and checks it
func (in *RegisterInput) Validate() Errors {
	in.Normalize()
	return check(*in)
}

// Request converts a validated form into the backend payload
func (in RegisterInput) Request() domain.RegisterRequest {
	return domain.RegisterRequest{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		Password:    in.Password,
		Role:        domain.Role(in.Role),
		Gender:      domain.Gender(in.Gender),
		Age:         in.Age,
		DateOfBirth: in.DateOfBirth,
		Address:     in.Address,
	}
}

// ClinicRegisterInput registers a patient under a clinic tenant
type ClinicRegisterInput struct {
	RegisterInput
	ClinicID string `json:"clinicId" validate:"required"`
	AppName  string `json:"appName"`
}

// Validate normalizes the embedded registration form and checks everything
func (in *ClinicRegisterInput) Validate() Errors {
	in.RegisterInput.Normalize()
	return check(*in)
}

// Request converts a validated form into the backend payload
func (in ClinicRegisterInput) Request() domain.ClinicRegisterRequest {
	return domain.ClinicRegisterRequest{
		RegisterRequest: in.RegisterInput.Request(),
		ClinicID:        in.ClinicID,
		AppName:         in.AppName,
	}
}

// ForgotPasswordInput starts the password reset flow
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// Validate checks the forgot-password form
func (in ForgotPasswordInput) Validate() Errors { return check(in) }

// ResetPasswordInput completes a password reset with an emailed token
type ResetPasswordInput struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Validate checks the reset-password form
func (in ResetPasswordInput) Validate() Errors { return check(in) }

// ChangePasswordInput rotates the password of a logged-in user
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// Validate checks the change-password form
func (in ChangePasswordInput) Validate() Errors { return check(in) }
