// internal/models/application.go
package models

import "time"

// ApplicationStatus is the server-owned review state of an application.
type ApplicationStatus string

const (
	StatusPending              ApplicationStatus = "pending"
	StatusReviewed             ApplicationStatus = "reviewed"
	StatusRejected             ApplicationStatus = "rejected"
	StatusAcceptedForInterview ApplicationStatus = "accepted_for_interview"
	StatusAcceptedToJoin       ApplicationStatus = "accepted_to_join"
)

// AllStatuses lists the statuses in dashboard order.
var AllStatuses = []ApplicationStatus{
	StatusPending,
	StatusReviewed,
	StatusRejected,
	StatusAcceptedForInterview,
	StatusAcceptedToJoin,
}

// PersonalInfo is the applicant profile collected by the first form step.
// Age is derived from DateOfBirth and never entered directly.
type PersonalInfo struct {
	Name                  string `json:"name"`
	DateOfBirth           string `json:"dateOfBirth"`
	Age                   *int   `json:"age,omitempty"`
	Gender                string `json:"gender"`
	Governorate           string `json:"governorate"`
	Area                  string `json:"area"`
	Address               string `json:"address"`
	NationalID            string `json:"nationalId"`
	Nationality           string `json:"nationality"`
	WhatsappNumber        string `json:"whatsappNumber"`
	MobileNumber          string `json:"mobileNumber"`
	PhoneNumber           string `json:"phoneNumber,omitempty"`
	EmergencyNumber       string `json:"emergencyNumber,omitempty"`
	Email                 string `json:"email,omitempty"`
	MilitaryServiceStatus string `json:"militaryServiceStatus,omitempty"`
	SocialStatus          string `json:"socialStatus"`
	HasVehicle            string `json:"hasVehicle,omitempty"`
	DrivingLicense        string `json:"drivingLicense,omitempty"`
	EducationStatus       string `json:"educationStatus,omitempty"`
}

// JobSelection is the second form step.
type JobSelection struct {
	JobTitle string `json:"jobTitle"`
}

// ApplicationForm is everything the applicant submits.
type ApplicationForm struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	AppliedJob   JobSelection `json:"appliedJob"`
	Comments     string       `json:"comments,omitempty"`
}

// Application is a submitted form as returned by the server. Read-only here.
type Application struct {
	ApplicationID   ID                `json:"applicationId"`
	PersonalInfo    PersonalInfo      `json:"personalInfo"`
	JobTitle        string            `json:"jobTitle"`
	EducationStatus string            `json:"educationStatus,omitempty"`
	Email           string            `json:"email,omitempty"`
	Status          ApplicationStatus `json:"status"`
	Comments        string            `json:"comments,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// ApplicationStats is the dashboard summary.
type ApplicationStats struct {
	TotalApplications int                       `json:"totalApplications"`
	ByStatus          map[ApplicationStatus]int `json:"byStatus"`
}
