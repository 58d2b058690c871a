package form

import (
	"strings"

	"hr-tracker/internal/models"
)

func trim(s string) string { return strings.TrimSpace(s) }

// Value returns the current value of a named field.
func Value(f models.ApplicationForm, field string) (string, bool) {
	p := f.PersonalInfo
	switch field {
	case FieldName:
		return p.Name, true
	case FieldDateOfBirth:
		return p.DateOfBirth, true
	case FieldGender:
		return p.Gender, true
	case FieldGovernorate:
		return p.Governorate, true
	case FieldArea:
		return p.Area, true
	case FieldAddress:
		return p.Address, true
	case FieldNationalID:
		return p.NationalID, true
	case FieldNationality:
		return p.Nationality, true
	case FieldWhatsappNumber:
		return p.WhatsappNumber, true
	case FieldMobileNumber:
		return p.MobileNumber, true
	case FieldPhoneNumber:
		return p.PhoneNumber, true
	case FieldEmergencyNumber:
		return p.EmergencyNumber, true
	case FieldEmail:
		return p.Email, true
	case FieldMilitaryServiceStatus:
		return p.MilitaryServiceStatus, true
	case FieldSocialStatus:
		return p.SocialStatus, true
	case FieldHasVehicle:
		return p.HasVehicle, true
	case FieldDrivingLicense:
		return p.DrivingLicense, true
	case FieldEducationStatus:
		return p.EducationStatus, true
	case FieldJobTitle:
		return f.AppliedJob.JobTitle, true
	case FieldComments:
		return f.Comments, true
	}
	return "", false
}

func setValue(f *models.ApplicationForm, field, v string) bool {
	p := &f.PersonalInfo
	switch field {
	case FieldName:
		p.Name = v
	case FieldDateOfBirth:
		p.DateOfBirth = v
	case FieldGender:
		p.Gender = v
	case FieldGovernorate:
		p.Governorate = v
	case FieldArea:
		p.Area = v
	case FieldAddress:
		p.Address = v
	case FieldNationalID:
		p.NationalID = v
	case FieldNationality:
		p.Nationality = v
	case FieldWhatsappNumber:
		p.WhatsappNumber = v
	case FieldMobileNumber:
		p.MobileNumber = v
	case FieldPhoneNumber:
		p.PhoneNumber = v
	case FieldEmergencyNumber:
		p.EmergencyNumber = v
	case FieldEmail:
		p.Email = v
	case FieldMilitaryServiceStatus:
		p.MilitaryServiceStatus = v
	case FieldSocialStatus:
		p.SocialStatus = v
	case FieldHasVehicle:
		p.HasVehicle = v
	case FieldDrivingLicense:
		p.DrivingLicense = v
	case FieldEducationStatus:
		p.EducationStatus = v
	case FieldJobTitle:
		f.AppliedJob.JobTitle = v
	case FieldComments:
		f.Comments = v
	default:
		return false
	}
	return true
}
