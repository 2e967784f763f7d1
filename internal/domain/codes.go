package domain

// Code identifies one entry of the API error catalogue. Every response body
// carries a code so clients can branch without parsing messages.
type Code int

const (
	CodeOK      Code = 0
	CodeCreated Code = 1

	CodeClientError    Code = 40000
	CodePhoneInvalid   Code = 40001
	CodeNameTooLong    Code = 40002
	CodeBadCredentials Code = 40003

	CodeUnauthorized Code = 40100

	// One distinct code per denied capability path, never a generic 403.
	CodeNoReadUser   Code = 40310
	CodeNoCreateUser Code = 40311
	CodeNoEditUser   Code = 40312
	CodeNoDeleteUser Code = 40313

	CodeNotFound   Code = 40400
	CodeUserExists Code = 40900

	CodeServerError Code = 50000
)

var codeMessages = map[Code]string{
	CodeOK:      "ok",
	CodeCreated: "created",

	CodeClientError:    "bad request",
	CodePhoneInvalid:   "phone number format is invalid",
	CodeNameTooLong:    "name is too long",
	CodeBadCredentials: "phone or password is incorrect",

	CodeUnauthorized: "please log in first",

	CodeNoReadUser:   "you may not view other users",
	CodeNoCreateUser: "you may not create users",
	CodeNoEditUser:   "you may not edit users",
	CodeNoDeleteUser: "you may not delete users",

	CodeNotFound:   "not found",
	CodeUserExists: "user already exists",

	CodeServerError: "internal server error",
}

// Message returns the catalogue message for code, or the generic client
// error message when the code is unknown.
func Message(code Code) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return codeMessages[CodeClientError]
}
