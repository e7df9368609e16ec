package jsonrpc

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dogechain-lab/objectchain/types"
)

// Request is a jsonrpc request
type Request struct {
	ID     interface{}     `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is a jsonrpc response interface
type Response interface {
	GetID() interface{}
	Data() json.RawMessage
	Bytes() ([]byte, error)
}

// ErrorResponse is a jsonrpc error response
type ErrorResponse struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      interface{}  `json:"id,omitempty"`
	Error   *ObjectError `json:"error"`
}

// GetID returns error response id
func (e *ErrorResponse) GetID() interface{} {
	return e.ID
}

// Data returns ObjectError
func (e *ErrorResponse) Data() json.RawMessage {
	data, err := json.Marshal(e.Error)
	if err != nil {
		return json.RawMessage(err.Error())
	}

	return data
}

// Bytes return the serialized response
func (e *ErrorResponse) Bytes() ([]byte, error) {
	return json.Marshal(e)
}

// SuccessResponse is a jsonrpc success response
type SuccessResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *ObjectError    `json:"error,omitempty"`
}

// GetID returns success response id
func (s *SuccessResponse) GetID() interface{} {
	return s.ID
}

// Data returns the result
func (s *SuccessResponse) Data() json.RawMessage {
	if s.Result != nil {
		return s.Result
	}

	return json.RawMessage("No Data")
}

// Bytes return the serialized response
func (s *SuccessResponse) Bytes() ([]byte, error) {
	return json.Marshal(s)
}

// ObjectError is a jsonrpc error
type ObjectError struct {
	// Code is the error code
	Code int `json:"code"`

	// Message is the error message
	Message string `json:"message"`

	// Data is the error data
	Data interface{} `json:"data,omitempty"`
}

func (e *ObjectError) Error() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("jsonrpc.internal marshal error: %v", err)
	}

	return string(data)
}

// NewRPCResponse returns a success response, or an error response when err is set
func NewRPCResponse(id interface{}, jsonrpcver string, reply []byte, err Error) Response {
	var response Response

	switch err.(type) {
	case nil:
		response = &SuccessResponse{JSONRPC: jsonrpcver, ID: id, Result: reply}
	default:
		response = NewRPCErrorResponse(id, jsonrpcver, reply, err)
	}

	return response
}

// NewRPCErrorResponse is used to create a custom error response
func NewRPCErrorResponse(id interface{}, jsonrpcver string, reply []byte, err Error) Response {
	errObject := &ObjectError{
		Code:    err.ErrorCode(),
		Message: err.Error(),
	}

	if reply != nil {
		errObject.Data = string(reply)
	}

	return &ErrorResponse{JSONRPC: jsonrpcver, ID: id, Error: errObject}
}

// argBytes is a byte slice travelling as a 0x prefixed hex string
type argBytes []byte

func (b argBytes) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(b)), nil
}

func (b *argBytes) UnmarshalText(input []byte) error {
	str := strings.TrimPrefix(strings.TrimPrefix(string(input), "0x"), "0X")
	if len(str)%2 == 1 {
		str = "0" + str
	}

	buf, err := hex.DecodeString(str)
	if err != nil {
		return err
	}

	*b = buf

	return nil
}

// argUint64 is an unsigned number travelling as a 0x prefixed hex string
type argUint64 uint64

func (u argUint64) MarshalText() ([]byte, error) {
	return []byte("0x" + strconv.FormatUint(uint64(u), 16)), nil
}

func (u *argUint64) UnmarshalText(input []byte) error {
	str := string(input)
	if !strings.HasPrefix(str, "0x") {
		return fmt.Errorf("number %q has no 0x prefix", str)
	}

	num, err := strconv.ParseUint(str[2:], 16, 64)
	if err != nil {
		return err
	}

	*u = argUint64(num)

	return nil
}

// objectRef is the json form of an object reference
type objectRef struct {
	ObjectID types.ObjectID `json:"objectId"`
	Version  argUint64      `json:"version"`
	Digest   types.Digest   `json:"digest"`
}

func toObjectRef(ref types.ObjectRef) objectRef {
	return objectRef{
		ObjectID: ref.ObjectID,
		Version:  argUint64(ref.Version),
		Digest:   ref.Digest,
	}
}

// accountInfo is the json form of an account info response
type accountInfo struct {
	Account types.Address `json:"account"`
	Objects []objectRef   `json:"objects"`
}

func toAccountInfo(resp *types.AccountInfoResponse) *accountInfo {
	info := &accountInfo{
		Account: resp.Account,
		Objects: make([]objectRef, len(resp.Objects)),
	}

	for i, ref := range resp.Objects {
		info.Objects[i] = toObjectRef(ref)
	}

	return info
}
