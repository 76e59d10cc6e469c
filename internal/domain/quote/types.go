package quote

const (
	// DefaultRequestExpiryDays is how long a request accepts bids.
	DefaultRequestExpiryDays = 7

	// DefaultResponseValidityDays is how long a bid stands.
	DefaultResponseValidityDays = 5
)

type RequestStatus string

const (
	RequestOpen      RequestStatus = "open"
	RequestQuoted    RequestStatus = "quoted"
	RequestAccepted  RequestStatus = "accepted"
	RequestExpired   RequestStatus = "expired"
	RequestCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) IsTerminal() bool {
	switch s {
	case RequestAccepted, RequestExpired, RequestCancelled:
		return true
	default:
		return false
	}
}

type ResponseStatus string

const (
	ResponsePending  ResponseStatus = "pending"
	ResponseAccepted ResponseStatus = "accepted"
	ResponseRejected ResponseStatus = "rejected"
	ResponseExpired  ResponseStatus = "expired"
)

func (s ResponseStatus) String() string {
	return string(s)
}
