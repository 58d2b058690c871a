package models

// JobTitle is an open position applicants can choose. Inactive titles stay
// visible to HR but are hidden from the applicant form.
type JobTitle struct {
	JobTitleID ID     `json:"jobTitleId"`
	Title      string `json:"title"`
	IsActive   bool   `json:"isActive"`
}
