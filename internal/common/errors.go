package common

import "errors"

var (

	// request errors
	ErrorValidation  = errors.New("validation error")
	ErrorEmptyUpdate = errors.New("no fields to update")

	// repository specific errors
	// ErrorNotFound covers both "no such row" and "row owned by someone else".
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorPersistence   = errors.New("persistence failure")

	// auth-specific errors
	ErrorNoCredential       = errors.New("no credential presented")
	ErrorInvalidToken       = errors.New("invalid token")
	ErrorInvalidCredentials = errors.New("invalid credentials")
)
