// ABOUTME: Request DTOs for account endpoints

package requests

// SignupRequest is the body of POST /signup. Fields are optional in the schema;
// the handler reports missing credentials itself.
type SignupRequest struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	Email    string   `json:"email,omitempty" doc:"Account email"`
	Password string   `json:"password,omitempty" doc:"Account password"`
	Name     string   `json:"name,omitempty" doc:"Display name"`
}
