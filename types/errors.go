package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Client input errors
var (
	ErrInvalidSignature             = errors.New("invalid signature")
	ErrObjectInputArityViolation    = errors.New("object input arity violation")
	ErrDuplicateObjectRefInput      = errors.New("duplicate object ref input")
	ErrCannotTransferReadOnlyObject = errors.New("cannot transfer read-only object")
	ErrInvalidDecoding              = errors.New("invalid decoding")
)

// Consistency errors, aggregated into LockErrors by the lock phase
var (
	ErrObjectNotFound           = errors.New("object not found")
	ErrUnexpectedSequenceNumber = errors.New("unexpected sequence number")
	ErrInvalidSequenceNumber    = errors.New("invalid sequence number")
	ErrInvalidObjectDigest      = errors.New("invalid object digest")
	ErrInsufficientGas          = errors.New("insufficient gas")
	ErrIncorrectSigner          = errors.New("incorrect signer")
	ErrMoveObjectAsPackage      = errors.New("move object used as package")
	ErrMovePackageAsObject      = errors.New("move package used as object")
	ErrGasBudgetTooHigh         = errors.New("gas budget exceeds gas balance")
	ErrGasBudgetTooLow          = errors.New("gas budget below minimum")
	ErrLockErrors               = errors.New("lock errors")
)

// Concurrency and certificate errors
var (
	ErrLockConflict          = errors.New("conflicting order")
	ErrOrderLockDoesNotExist = errors.New("order lock does not exist")
	ErrInvalidCertificate    = errors.New("invalid certificate")
	ErrCertificateNotFound   = errors.New("certificate not found")
	ErrUnknownSigner         = errors.New("unknown signer")
	ErrOrderNotFound         = errors.New("order not found")
)

// Execution errors. These end up as the text of a failure status.
var (
	ErrModuleNotFound   = errors.New("module not found")
	ErrFunctionNotFound = errors.New("function not found")
	ErrInvalidModule    = errors.New("invalid module")
	ErrMoveAbort        = errors.New("move abort")
	ErrTypeError        = errors.New("type error")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// ConflictingOrderError is returned when an input is already locked by a
// different order
type ConflictingOrderError struct {
	Ref     ObjectRef
	Pending TransactionDigest
}

func (e *ConflictingOrderError) Error() string {
	return fmt.Sprintf("%s: %s locked by %s", ErrLockConflict, e.Ref, e.Pending)
}

func (e *ConflictingOrderError) Unwrap() error {
	return ErrLockConflict
}

// LockErrors aggregates every per-input failure found while checking an order
type LockErrors struct {
	merr *multierror.Error
}

func (e *LockErrors) Error() string {
	msgs := make([]string, 0, len(e.merr.Errors))
	for _, err := range e.merr.Errors {
		msgs = append(msgs, err.Error())
	}

	return fmt.Sprintf("%s: [%s]", ErrLockErrors, strings.Join(msgs, "; "))
}

func (e *LockErrors) Is(target error) bool {
	return target == ErrLockErrors
}

func (e *LockErrors) Unwrap() error {
	return e.merr.Unwrap()
}

// Errors returns the collected errors in the order they were added
func (e *LockErrors) Errors() []error {
	return e.merr.Errors
}

// LockErrorsBuilder collects errors instead of failing on the first one
type LockErrorsBuilder struct {
	merr *multierror.Error
}

func (b *LockErrorsBuilder) Add(err error) {
	if err == nil {
		return
	}

	b.merr = multierror.Append(b.merr, err)
}

func (b *LockErrorsBuilder) Len() int {
	if b.merr == nil {
		return 0
	}

	return len(b.merr.Errors)
}

// ErrorOrNil returns a *LockErrors, or nil when nothing was added
func (b *LockErrorsBuilder) ErrorOrNil() error {
	if b.Len() == 0 {
		return nil
	}

	return &LockErrors{merr: b.merr}
}
