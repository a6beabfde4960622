// ABOUTME: Credential input schemas for the sign-in, sign-up, and password recovery forms
// ABOUTME: Validation rules live in struct tags; user-facing messages are keyed by field and rule

package form

// Flow identifies which credential form an input belongs to
type Flow string

const (
	FlowSignIn         Flow = "sign-in"
	FlowSignUp         Flow = "sign-up"
	FlowForgotPassword Flow = "forgot-password"
	FlowResetPassword  Flow = "reset-password"
)

// Input is the constraint satisfied by every credential form payload.
// Inputs must be comparable so a form can tell when it differs from its defaults.
type Input interface {
	comparable
	Flow() Flow
	Messages() map[string]string
}

const (
	msgEmailRequired   = "You must enter an email"
	msgEmailInvalid    = "You must enter a valid email"
	msgPasswordMissing = "Please enter your password."
	msgConfirmRequired = "Password confirmation is required"
	msgPasswordsMatch  = "Passwords must match"
)

// SignInInput is the sign-in form. Remember never leaves the client.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	Remember bool   `json:"remember"`
}

// DefaultSignIn returns the values the sign-in form mounts with
func DefaultSignIn() SignInInput {
	return SignInInput{Remember: true}
}

func (SignInInput) Flow() Flow { return FlowSignIn }

func (SignInInput) Messages() map[string]string { return signInMessages }

var signInMessages = map[string]string{
	"email.required":    msgEmailRequired,
	"email.email":       msgEmailInvalid,
	"password.required": msgPasswordMissing,
	"password.min":      "Password is too short - must be at least 4 chars.",
}

// SignUpInput is the registration form
type SignUpInput struct {
	Domain                string `json:"domain" validate:"required"`
	Name                  string `json:"name" validate:"required"`
	Email                 string `json:"email" validate:"required,email"`
	Official              string `json:"official,omitempty"`
	Phone                 string `json:"phone" validate:"required"`
	Birthday              string `json:"birthday,omitempty"`
	Password              string `json:"password" validate:"required,min=8"`
	PasswordConfirm       string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	AcceptTermsConditions bool   `json:"acceptTermsConditions" validate:"required"`
}

func (SignUpInput) Flow() Flow { return FlowSignUp }

func (SignUpInput) Messages() map[string]string { return signUpMessages }

var signUpMessages = map[string]string{
	"domain.required":                "You must enter your domain name",
	"name.required":                  "You must enter your display name",
	"email.required":                 msgEmailRequired,
	"email.email":                    msgEmailInvalid,
	"phone.required":                 "You must enter your phone number",
	"password.required":              msgPasswordMissing,
	"password.min":                   "Password is too short - should be 8 chars minimum.",
	"passwordConfirm.required":       msgConfirmRequired,
	"passwordConfirm.eqfield":        msgPasswordsMatch,
	"acceptTermsConditions.required": "The terms and conditions must be accepted.",
}

// ForgotPasswordInput requests a reset code for an account
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

func (ForgotPasswordInput) Flow() Flow { return FlowForgotPassword }

func (ForgotPasswordInput) Messages() map[string]string { return forgotMessages }

var forgotMessages = map[string]string{
	"email.required": msgEmailRequired,
	"email.email":    msgEmailInvalid,
}

// ResetPasswordInput completes a reset with the code delivered out of band
type ResetPasswordInput struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

func (ResetPasswordInput) Flow() Flow { return FlowResetPassword }

func (ResetPasswordInput) Messages() map[string]string { return resetMessages }

var resetMessages = map[string]string{
	"token.required":           "You must enter the reset code",
	"password.required":        msgPasswordMissing,
	"password.min":             "Password is too short - should be 8 chars minimum.",
	"passwordConfirm.required": msgConfirmRequired,
	"passwordConfirm.eqfield":  msgPasswordsMatch,
}
