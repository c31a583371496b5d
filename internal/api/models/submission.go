package models

// ContactRequest is the body of POST /v1/contacts.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// AllowRequestRequest is the body of POST /v1/allow-requests.
type AllowRequestRequest struct {
	Email string `json:"email"`
	Note  string `json:"note,omitempty"`
}

// PartRequestRequest is the body of POST /v1/part-requests.
type PartRequestRequest struct {
	Animal string `json:"animal"`
	Part   string `json:"part"`
	Grams  int    `json:"grams"`
	Email  string `json:"email,omitempty"`
}

// SubmissionResponse is returned for every accepted public submission.
type SubmissionResponse struct {
	ID        string    `json:"id"`
	Stream    string    `json:"stream"`
	CreatedAt Timestamp `json:"createdAt"`
}
