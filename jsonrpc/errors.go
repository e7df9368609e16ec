package jsonrpc

import "fmt"

type Error interface {
	Error() string
	ErrorCode() int
}

type invalidParamsError struct {
	err string
}

func (e *invalidParamsError) Error() string {
	return e.err
}

func (e *invalidParamsError) ErrorCode() int {
	return -32602
}

func NewInvalidParamsError(msg string) *invalidParamsError {
	return &invalidParamsError{msg}
}

type internalError struct {
	err string
}

func (e *internalError) Error() string {
	return e.err
}

func (e *internalError) ErrorCode() int {
	return -32603
}

func NewInternalError(msg string) *internalError {
	return &internalError{msg}
}

type invalidRequestError struct {
	err string
}

func (e *invalidRequestError) Error() string {
	return e.err
}

func (e *invalidRequestError) ErrorCode() int {
	return -32600
}

func NewInvalidRequestError(msg string) *invalidRequestError {
	return &invalidRequestError{msg}
}

type methodNotFoundError struct {
	method string
}

func (e *methodNotFoundError) Error() string {
	return fmt.Sprintf("the method %s does not exist/is not available", e.method)
}

func (e *methodNotFoundError) ErrorCode() int {
	return -32601
}

func NewMethodNotFoundError(method string) *methodNotFoundError {
	return &methodNotFoundError{method}
}

// authorityError reports a request the authority refused
type authorityError struct {
	err string
}

func (e *authorityError) Error() string {
	return e.err
}

func (e *authorityError) ErrorCode() int {
	return -32000
}

func NewAuthorityError(err error) *authorityError {
	return &authorityError{err.Error()}
}
