package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeUnauthorized   Code = "UNAUTHORIZED"
	CodeForbidden      Code = "FORBIDDEN"
	CodeNotFound       Code = "NOT_FOUND"
	CodeConflict       Code = "CONFLICT"
	CodeOutOfStock     Code = "OUT_OF_STOCK"
	CodeStockLimit     Code = "STOCK_LIMIT_REACHED"
	CodeSessionExpired Code = "SESSION_EXPIRED"
	CodeRemote         Code = "REMOTE_ERROR"
	CodeDependency     Code = "DEPENDENCY_ERROR"
	CodeInternal       Code = "INTERNAL_ERROR"
)

// Metadata drives how a code is presented to the operator.
type Metadata struct {
	PublicMessage string
	Retryable     bool
	Fatal         bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		PublicMessage: "los datos ingresados no son válidos",
		Retryable:     false,
	},
	CodeUnauthorized: {
		PublicMessage: "credenciales inválidas",
		Retryable:     false,
	},
	CodeForbidden: {
		PublicMessage: "no tenés permisos para esta operación",
		Retryable:     false,
	},
	CodeNotFound: {
		PublicMessage: "el registro no existe",
		Retryable:     false,
	},
	CodeConflict: {
		PublicMessage: "el registro entra en conflicto con otro existente",
		Retryable:     false,
	},
	CodeOutOfStock: {
		PublicMessage: "el producto no tiene unidades disponibles",
		Retryable:     false,
	},
	CodeStockLimit: {
		PublicMessage: "límite de stock alcanzado",
		Retryable:     false,
	},
	CodeSessionExpired: {
		PublicMessage: "la sesión expiró, iniciá sesión nuevamente",
		Retryable:     false,
		Fatal:         true,
	},
	CodeRemote: {
		PublicMessage: "el servidor rechazó la operación",
		Retryable:     false,
	},
	CodeDependency: {
		PublicMessage: "no se pudo contactar al servidor",
		Retryable:     true,
	},
	CodeInternal: {
		PublicMessage: "error interno",
		Retryable:     true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// FromHTTPStatus maps a remote API status code onto the local taxonomy.
// The mapping only changes user-facing wording, never control flow.
func FromHTTPStatus(status int) Code {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	}
	if status >= 500 {
		return CodeDependency
	}
	return CodeRemote
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// PublicMessage returns the message meant for the operator: the remote
// detail when one was captured, otherwise the generic wording for the code.
func (e *Error) PublicMessage() string {
	if e == nil {
		return MetadataFor(CodeInternal).PublicMessage
	}
	if e.message != "" {
		return e.message
	}
	return MetadataFor(e.code).PublicMessage
}

// Fatal reports whether the error must abort the current screen.
func (e *Error) Fatal() bool {
	return MetadataFor(e.Code()).Fatal
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf extracts the code from any error, defaulting to CodeInternal.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	if err == nil {
		return ""
	}
	return CodeInternal
}
