package domain

// ServiceHealth is the health verdict of one dependency.
type ServiceHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message"`
}
