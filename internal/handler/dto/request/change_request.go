package request

type SubmitChangeRequestRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type RejectChangeRequestRequest struct {
	Note string `json:"note"`
}
