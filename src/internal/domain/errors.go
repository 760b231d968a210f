package domain

import "fmt"

type ErrorKind string

const (
	KindAccountNotFound         ErrorKind = "ACCOUNT_NOT_FOUND"
	KindLoanNotFound            ErrorKind = "LOAN_NOT_FOUND"
	KindTransactionNotFound     ErrorKind = "TRANSACTION_NOT_FOUND"
	KindCustomerNotFound        ErrorKind = "CUSTOMER_NOT_FOUND"
	KindIllegalAccountStatus    ErrorKind = "ILLEGAL_ACCOUNT_STATUS"
	KindInsufficientBalance     ErrorKind = "INSUFFICIENT_BALANCE"
	KindInvalidLoanAccount      ErrorKind = "INVALID_LOAN_ACCOUNT"
	KindNotValidLoanAccount     ErrorKind = "NOT_VALID_LOAN_ACCOUNT"
	KindIllegalLoanStatus       ErrorKind = "ILLEGAL_LOAN_STATUS"
	KindLoanPaymentNotAvailable ErrorKind = "LOAN_PAYMENT_NOT_AVAILABLE"
	KindUnknownRate             ErrorKind = "UNKNOWN_RATE"
	KindUnknownStatus           ErrorKind = "UNKNOWN_STATUS"
	KindInvalidAccountCustomer  ErrorKind = "INVALID_ACCOUNT_CUSTOMER"
	KindIllegalNationalCode     ErrorKind = "ILLEGAL_NATIONAL_CODE"
	KindNationalCodeTaken       ErrorKind = "NATIONAL_CODE_TAKEN"
	KindIllegalCustomerDelete   ErrorKind = "ILLEGAL_CUSTOMER_DELETE"
	KindInvalidArgument         ErrorKind = "INVALID_ARGUMENT"
	KindConcurrentUpdate        ErrorKind = "CONCURRENT_UPDATE"
	KindLedgerUnavailable       ErrorKind = "LEDGER_UNAVAILABLE"
)

// Error is a business failure. Two errors match under errors.Is when their
// kinds agree, so the exported sentinels below work as match targets for
// errors built with a specific message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrAccountNotFound         = &Error{Kind: KindAccountNotFound}
	ErrLoanNotFound            = &Error{Kind: KindLoanNotFound}
	ErrTransactionNotFound     = &Error{Kind: KindTransactionNotFound}
	ErrCustomerNotFound        = &Error{Kind: KindCustomerNotFound}
	ErrIllegalAccountStatus    = &Error{Kind: KindIllegalAccountStatus}
	ErrInsufficientBalance     = &Error{Kind: KindInsufficientBalance}
	ErrInvalidLoanAccount      = &Error{Kind: KindInvalidLoanAccount}
	ErrNotValidLoanAccount     = &Error{Kind: KindNotValidLoanAccount}
	ErrIllegalLoanStatus       = &Error{Kind: KindIllegalLoanStatus}
	ErrLoanPaymentNotAvailable = &Error{Kind: KindLoanPaymentNotAvailable}
	ErrUnknownRate             = &Error{Kind: KindUnknownRate}
	ErrUnknownStatus           = &Error{Kind: KindUnknownStatus}
	ErrInvalidAccountCustomer  = &Error{Kind: KindInvalidAccountCustomer}
	ErrIllegalNationalCode     = &Error{Kind: KindIllegalNationalCode}
	ErrNationalCodeTaken       = &Error{Kind: KindNationalCodeTaken}
	ErrIllegalCustomerDelete   = &Error{Kind: KindIllegalCustomerDelete}
	ErrInvalidArgument         = &Error{Kind: KindInvalidArgument}
	ErrConcurrentUpdate        = &Error{Kind: KindConcurrentUpdate}
	ErrLedgerUnavailable       = &Error{Kind: KindLedgerUnavailable}
)

func newError(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func AccountNotFound(id int64) error {
	return newError(KindAccountNotFound, "Account: %d not found!", id)
}

func LoanNotFound(id int64) error {
	return newError(KindLoanNotFound, "Loan: %d not found!", id)
}

func TransactionNotFound(id int64) error {
	return newError(KindTransactionNotFound, "Transaction: %d not found!", id)
}

func CustomerNotFound(id int64) error {
	return newError(KindCustomerNotFound, "Customer: %d not found!", id)
}

func IllegalAccountStatus(message string) error {
	return &Error{Kind: KindIllegalAccountStatus, Message: message}
}

func InsufficientBalance(id int64) error {
	return newError(KindInsufficientBalance, "Account: %d does not have enough balance!", id)
}

func InvalidLoanAccount(accountID int64) error {
	return newError(KindInvalidLoanAccount, "Account: %d not found!", accountID)
}

func NotValidLoanAccount(accountID int64) error {
	return newError(KindNotValidLoanAccount, "Account: %d does not belong to this loan!", accountID)
}

func IllegalLoanStatus(loanID int64) error {
	return newError(KindIllegalLoanStatus, "Loan: %d is closed!", loanID)
}

func LoanPaymentNotAvailable(accountID int64) error {
	return newError(KindLoanPaymentNotAvailable, "Account: %d is not available for withdrawal!", accountID)
}

func UnknownRate(name string) error {
	return newError(KindUnknownRate, "Rate: %q is unknown!", name)
}

func UnknownStatus(name string) error {
	return newError(KindUnknownStatus, "Status: %q is unknown!", name)
}

func InvalidAccountCustomer(customerID int64) error {
	return newError(KindInvalidAccountCustomer, "Customer: %d not found!", customerID)
}

func IllegalNationalCode(message string) error {
	return &Error{Kind: KindIllegalNationalCode, Message: message}
}

func NationalCodeTaken(code string) error {
	return newError(KindNationalCodeTaken, "National code: %s is already taken!", code)
}

func IllegalCustomerDelete(customerID int64) error {
	return newError(KindIllegalCustomerDelete, "Customer: %d has some accounts!", customerID)
}

func InvalidArgument(format string, args ...any) error {
	return newError(KindInvalidArgument, format, args...)
}

func ConcurrentUpdate(entity string, id int64) error {
	return newError(KindConcurrentUpdate, "%s: %d was modified concurrently", entity, id)
}

func LedgerUnavailable(err error) error {
	return newError(KindLedgerUnavailable, "ledger unavailable: %v", err)
}
