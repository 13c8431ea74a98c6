package httperr

import "errors"

// BusinessError is an expected failure identified by a stable snake_case code.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extracts the code of a BusinessError anywhere in err's chain.
func AsBusiness(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// UpstreamError reports that the workflow platform rejected a call whose
// outcome the caller depends on.
type UpstreamError struct {
	Code string
	Err  error
}

func (e UpstreamError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return e.Code + ": " + e.Err.Error()
}

func (e UpstreamError) Unwrap() error {
	return e.Err
}

func ErrUpstream(code string, err error) error {
	return UpstreamError{Code: code, Err: err}
}
