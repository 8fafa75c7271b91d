package bithumb

import "bithumbbot/ds"

// Status is the business result code every response carries in "status".
type Status struct {
	Code string
}

var (
	StatusOK               = Status{"0000"}
	StatusBadRequest       = Status{"5100"}
	StatusNotMember        = Status{"5200"}
	StatusInvalidAPIKey    = Status{"5300"}
	StatusMethodNotAllowed = Status{"5302"}
	StatusDatabaseFail     = Status{"5400"}
	StatusInvalidParameter = Status{"5500"}
	// StatusNoOrder means the order (or any order) does not exist; it is not a failure.
	StatusNoOrder      = Status{"5600"}
	StatusUnknownError = Status{"5900"}
)

var knownStatuses = map[string]Status{
	StatusOK.Code:               StatusOK,
	StatusBadRequest.Code:       StatusBadRequest,
	StatusNotMember.Code:        StatusNotMember,
	StatusInvalidAPIKey.Code:    StatusInvalidAPIKey,
	StatusMethodNotAllowed.Code: StatusMethodNotAllowed,
	StatusDatabaseFail.Code:     StatusDatabaseFail,
	StatusInvalidParameter.Code: StatusInvalidParameter,
	StatusNoOrder.Code:          StatusNoOrder,
	StatusUnknownError.Code:     StatusUnknownError,
}

// ParseStatus keeps unknown codes verbatim so they still show up in errors.
func ParseStatus(code string) Status {
	if s, ok := knownStatuses[code]; ok {
		return s
	}
	return Status{Code: code}
}

func (s Status) Known() bool {
	_, ok := knownStatuses[s.Code]
	return ok
}

func (s Status) OK() bool { return s == StatusOK }

func (s Status) String() string { return s.Code }

func (s Status) Err(op, message string) error {
	var kind Kind
	switch s {
	case StatusOK:
		return nil
	case StatusNoOrder:
		kind = KindNotFound
	case StatusNotMember, StatusInvalidAPIKey:
		kind = KindAuth
	default:
		kind = KindRejected
	}
	return &Error{Kind: kind, Op: op, Status: s, Message: message}
}

// statusOf reads the status and message fields of a decoded response.
func statusOf(op string, resp ds.Record) (Status, string, error) {
	code, ok := resp["status"].(string)
	if !ok {
		return Status{}, "", decodeErr(op, "response has no status")
	}
	message, _ := resp["message"].(string)
	return ParseStatus(code), message, nil
}

// checkStatus fails on anything but StatusOK.
func checkStatus(op string, resp ds.Record) error {
	status, message, err := statusOf(op, resp)
	if err != nil {
		return err
	}
	return status.Err(op, message)
}
