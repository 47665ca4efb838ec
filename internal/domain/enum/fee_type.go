package enum

// FeeType represents the category of a fee payment
type FeeType string

const (
	FeeTypeTuition     FeeType = "Tuition Fee"
	FeeTypeAdmission   FeeType = "Admission Fee"
	FeeTypeExamination FeeType = "Examination Fee"
	FeeTypeTransport   FeeType = "Transport Fee"
	FeeTypeLibrary     FeeType = "Library Fee"
	FeeTypeSports      FeeType = "Sports Fee"
	FeeTypeAnnual      FeeType = "Annual Fee"
	FeeTypeOther       FeeType = "Other"
)

// AllFeeTypes returns all valid fee types
func AllFeeTypes() []FeeType {
	return []FeeType{
		FeeTypeTuition,
		FeeTypeAdmission,
		FeeTypeExamination,
		FeeTypeTransport,
		FeeTypeLibrary,
		FeeTypeSports,
		FeeTypeAnnual,
		FeeTypeOther,
	}
}

// IsValid checks if the fee type is one of the known values
func (f FeeType) IsValid() bool {
	for _, t := range AllFeeTypes() {
		if f == t {
			return true
		}
	}
	return false
}

func (f FeeType) String() string {
	return string(f)
}
