package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName:       "Jo",
		LastName:        "Shah",
		Email:           "jo.shah@example.com",
		Phone:           "+911234567890",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		Terms:           true,
	}
}

func TestLoginInput_Email(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"plain address", "a@b.com", true},
		{"subdomain", "jo.shah@mail.clinic.example", true},
		{"plus tag", "jo+tag@example.com", true},
		{"missing at", "jo.example.com", false},
		{"missing domain", "jo@", false},
		{"missing local part", "@example.com", false},
		{"empty", "", false},
		{"spaces", "jo shah@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := LoginInput{Email: tt.email, Password: "longenough"}
			errs := in.Validate()
			if tt.valid {
				assert.Empty(t, errs.Field("email"), "expected %q to be accepted", tt.email)
			} else {
				assert.NotEmpty(t, errs.Field("email"), "expected %q to be rejected", tt.email)
			}
		})
	}
}

func TestLoginInput_PasswordLength(t *testing.T) {
	short := LoginInput{Email: "a@b.com", Password: "seven77"}
	assert.NotEmpty(t, short.Validate().Field("password"))

	ok := LoginInput{Email: "a@b.com", Password: "eight888"}
	assert.False(t, ok.Validate().Any())
}

func TestOTPVerifyInput_CodeLength(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"123456", true},
		{"12345", false},
		{"1234567", false},
		{"", false},
	}

	for _, tt := range tests {
		in := OTPVerifyInput{Identifier: "a@b.com", Code: tt.code}
		errs := in.Validate()
		if tt.valid {
			assert.False(t, errs.Any(), "code %q should pass", tt.code)
		} else {
			assert.NotEmpty(t, errs.Field("code"), "code %q should fail", tt.code)
		}
	}
}

func TestStrongPassword_DistinctMessages(t *testing.T) {
	tests := []struct {
		name     string
		password string
		missing  string
	}{
		{"too short", "Ab1!", "must be at least 8 characters"},
		{"no uppercase", "abcdef1!", "must contain an uppercase letter"},
		{"no lowercase", "ABCDEF1!", "must contain a lowercase letter"},
		{"no digit", "Abcdefg!", "must contain a digit"},
		{"no special", "Abcdefg1", "must contain a special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegisterInput()
			in.Password = tt.password
			in.ConfirmPassword = tt.password
			errs := in.Validate()

			found := false
			for _, msg := range errs.Field("password") {
				if msg == tt.missing {
					found = true
				}
			}
			assert.True(t, found, "expected %q among %v", tt.missing, errs.Field("password"))
		})
	}
}

func TestStrongPassword_AllConditionsMet(t *testing.T) {
	in := validRegisterInput()
	errs := in.Validate()
	assert.False(t, errs.Any(), "unexpected errors: %v", errs)
}

func TestStrongPassword_ReportsEveryMissingCondition(t *testing.T) {
	in := validRegisterInput()
	in.Password = "aaaaaaaa" // long enough, lowercase only
	in.ConfirmPassword = in.Password
	messages := in.Validate().Field("password")
	assert.Len(t, messages, 3)
}

func TestRegisterInput_ConfirmPasswordMismatch(t *testing.T) {
	in := validRegisterInput()
	in.ConfirmPassword = "Different1!"
	errs := in.Validate()

	assert.NotEmpty(t, errs.Field("confirmPassword"))
	assert.Contains(t, errs.Field("confirmPassword"), "passwords do not match")
	assert.Empty(t, errs.Field("password"), "mismatch must attach to confirmPassword only")
}

func TestRegisterInput_Terms(t *testing.T) {
	in := validRegisterInput()
	in.Terms = false
	errs := in.Validate()
	assert.Contains(t, errs.Field("terms"), "you must accept the terms and conditions")
}

func TestRegisterInput_Defaults(t *testing.T) {
	in := validRegisterInput()
	errs := in.Validate()
	assert.False(t, errs.Any())

	req := in.Request()
	assert.Equal(t, domain.RolePatient, req.Role)
	assert.Equal(t, domain.GenderMale, req.Gender)
	assert.Equal(t, 18, req.Age)
}

func TestRegisterInput_RoleRestrictedToClosedSet(t *testing.T) {
	in := validRegisterInput()
	in.Role = "NURSE"
	errs := in.Validate()
	assert.NotEmpty(t, errs.Field("role"))

	in.Role = "DOCTOR"
	assert.False(t, in.Validate().Any())
}

func TestRegisterInput_FieldMinimums(t *testing.T) {
	in := validRegisterInput()
	in.FirstName = "J"
	in.Phone = "12345"
	errs := in.Validate()

	assert.Contains(t, errs.Field("firstName"), "must be at least 2 characters")
	assert.Contains(t, errs.Field("phone"), "must be at least 10 characters")
}

func TestClinicRegisterInput(t *testing.T) {
	in := ClinicRegisterInput{RegisterInput: validRegisterInput()}
	errs := in.Validate()
	assert.NotEmpty(t, errs.Field("clinicId"))

	in.ClinicID = "clinic_42"
	assert.False(t, in.Validate().Any())

	req := in.Request()
	assert.Equal(t, "clinic_42", req.ClinicID)
	assert.Equal(t, domain.RolePatient, req.Role)
}

func TestResetPasswordInput_ConfirmMismatch(t *testing.T) {
	in := ResetPasswordInput{Token: "tok", Password: "newpassword", ConfirmPassword: "otherpassword"}
	errs := in.Validate()
	assert.Contains(t, errs.Field("confirmPassword"), "passwords do not match")
}

func TestChangePasswordInput(t *testing.T) {
	in := ChangePasswordInput{
		CurrentPassword: "OldPass1!",
		NewPassword:     "NewPass1!",
		ConfirmPassword: "NewPass1!",
	}
	assert.False(t, in.Validate().Any())

	in.NewPassword = "weak"
	in.ConfirmPassword = "weak"
	errs := in.Validate()
	assert.NotEmpty(t, errs.Field("newPassword"))
}

func TestErrors_First(t *testing.T) {
	var empty Errors
	assert.Equal(t, "", empty.First())
	assert.False(t, empty.Any())

	in := LoginInput{}
	errs := in.Validate()
	assert.True(t, errs.Any())
	assert.NotEqual(t, "", errs.First())
}

func TestValidationNeverPanics(t *testing.T) {
	// Hostile inputs go through the same path as well-formed ones.
	in := RegisterInput{
		FirstName: strings.Repeat("x", 10000),
		Email:     "\x00\xff",
		Password:  "\t\n",
	}
	_ = in.Validate()
}
