package service

// Envelope is the uniform response wrapper every operation returns: status
// code, human-readable message, optional payload and pagination metadata.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page window a FindAll response was cut from.
// Total is the full row count for the filter, regardless of page.
type Pagination struct {
	Total int `json:"total"`
	Limit int `json:"limit"`
	Page  int `json:"page"`
}
