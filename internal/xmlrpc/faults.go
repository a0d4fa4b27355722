package xmlrpc

import (
	"errors"
	"strconv"
)

// Fault codes of the authoring APIs. Remote clients match on these values.
const (
	CodeAuthorization = 1
	CodeUnknown       = 1000
	CodeUnsupported   = 1001
	CodeInvalidPostID = 2000
	CodeNoBlogs       = 3000
	CodePermission    = 4000
)

// Fault codes of the pingback API.
const (
	PingbackGeneric           = 0
	PingbackSourceNotFound    = 16
	PingbackNoLinkToTarget    = 17
	PingbackTargetNotFound    = 32
	PingbackTargetNotEnabled  = 33
	PingbackAlreadyRegistered = 48
	PingbackAccessDenied      = 49
	PingbackUpstreamError     = 50
)

// Fault is an XML-RPC error answer. Methods return it as their error.
type Fault struct {
	Code    int
	Message string
}

func (f *Fault) Error() string {
	return "fault " + strconv.Itoa(f.Code) + ": " + f.Message
}

func NewFault(code int, message string) *Fault {
	return &Fault{Code: code, Message: message}
}

var (
	ErrAuthorization = NewFault(CodeAuthorization, "Invalid username and/or password")
	ErrUnknown       = NewFault(CodeUnknown, "An error occured processing your request")
	ErrUnsupported   = NewFault(CodeUnsupported, "Unsupported method")
	ErrInvalidPostID = NewFault(CodeInvalidPostID, "The entry postid you submitted is invalid")
	ErrNoBlogs       = NewFault(CodeNoBlogs, "There are no categories defined")
	ErrPermission    = NewFault(CodePermission, "User does not have permission to use this XML-RPC method")
)

// AsFault returns the fault carried by err, or ErrUnknown.
func AsFault(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return ErrUnknown
}
