package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

type LoginForm struct {
	Email    string `json:"email" validate:"trimmed_required,loose_email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

var loginMessages = map[string]string{
	"email.trimmed_required": "Email requis.",
	"email.loose_email":      "Email invalide.",
	"password":               "Mot de passe requis.",
}

func ValidateLogin(f LoginForm) Errors {
	return check(f, loginMessages)
}

const (
	RoleStudent = "student"
	RoleExpert  = "expert"

	EducationOther = "autre"
)

// RegisterForm is the sign-up form. The CV fields describe a file the
// browser already uploaded through a presigned URL.
type RegisterForm struct {
	FirstName       string `json:"firstName" validate:"trimmed_required"`
	LastName        string `json:"lastName" validate:"trimmed_required"`
	Email           string `json:"email" validate:"trimmed_required,loose_email"`
	Profession      string `json:"profession" validate:"trimmed_required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	LinkedinURL     string `json:"linkedinUrl" validate:"http_url"`
	Role            string `json:"role" validate:"oneof=student expert"`
	EducationLevel  string `json:"educationLevel"`
	Specialty       string `json:"specialty"`
	Parcours        string `json:"parcours"`
	IsMentor        bool   `json:"isMentor"`
	CVFileName      string `json:"cvFileName"`
	CVContentType   string `json:"cvContentType"`
	CVObjectKey     string `json:"cvObjectKey"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"required"`
}

var registerMessages = map[string]string{
	"firstName":                "Prénom requis.",
	"lastName":                 "Nom requis.",
	"email.trimmed_required":   "Email requis.",
	"email.loose_email":        "Email invalide.",
	"profession":               "Email/activité pro requis.",
	"password.required":        "Mot de passe requis.",
	"password.min":             "8 caractères minimum.",
	"confirmPassword.required": "Confirmation requise.",
	"confirmPassword.eqfield":  "Les mots de passe ne correspondent pas.",
	"linkedinUrl":              "Lien LinkedIn invalide (doit commencer par http/https).",
	"role":                     "Rôle invalide.",
	"educationLevel":           "Niveau scolaire requis.",
	"specialty":                "Précise ton profil (ex: UX designer, Dev web...).",
	"parcours":                 "Parcours professionnel requis.",
	"cvFile.required":          "CV requis (PDF).",
	"cvFile.pdf":               "Le CV doit être en format PDF.",
	"acceptTerms":              "Vous devez accepter les conditions.",
}

func ValidateRegister(f RegisterForm) Errors {
	return check(f, registerMessages)
}

func registerStructLevel(sl validator.StructLevel) {
	f := sl.Current().Interface().(RegisterForm)

	switch f.Role {
	case RoleStudent:
		if f.EducationLevel == "" {
			sl.ReportError(f.EducationLevel, "educationLevel", "EducationLevel", "required", "")
		}
		if f.EducationLevel == EducationOther && strings.TrimSpace(f.Specialty) == "" {
			sl.ReportError(f.Specialty, "specialty", "Specialty", "required", "")
		}
	case RoleExpert:
		if strings.TrimSpace(f.Parcours) == "" {
			sl.ReportError(f.Parcours, "parcours", "Parcours", "required", "")
		}
		if f.CVFileName == "" {
			sl.ReportError(f.CVFileName, "cvFile", "CVFileName", "required", "")
		} else if !IsPDF(f.CVFileName, f.CVContentType) {
			sl.ReportError(f.CVFileName, "cvFile", "CVFileName", "pdf", "")
		}
	}
}

type DonationForm struct {
	FirstName string `json:"firstName" validate:"trimmed_required"`
	LastName  string `json:"lastName" validate:"trimmed_required"`
	Email     string `json:"email" validate:"trimmed_required,loose_email"`
	Amount    string `json:"amount" validate:"trimmed_required,amount"`
	Message   string `json:"message"`
}

var DonationOrder = []string{"firstName", "lastName", "email", "amount"}

var donationMessages = map[string]string{
	"firstName":               "Prénom requis.",
	"lastName":                "Nom requis.",
	"email.trimmed_required":  "Email requis.",
	"email.loose_email":       "Email invalide.",
	"amount.trimmed_required": "Montant requis.",
	"amount.amount":           "Montant invalide.",
}

// ValidateDonation checks the form after trimming, the way it is sent.
func ValidateDonation(f DonationForm) Errors {
	return check(f.Normalized(), donationMessages)
}

// Normalized is the payload form of a donation: trimmed, lower-cased email,
// amount with a period as decimal separator.
func (f DonationForm) Normalized() DonationForm {
	return DonationForm{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.ToLower(strings.TrimSpace(f.Email)),
		Amount:    NormalizeAmount(f.Amount),
		Message:   strings.TrimSpace(f.Message),
	}
}

type FeedbackForm struct {
	Rating  int    `json:"rating"`
	Message string `json:"message" validate:"trimmed_required"`
}

var feedbackMessages = map[string]string{
	"message": "Message requis.",
}

func ValidateFeedback(f FeedbackForm) Errors {
	return check(f, feedbackMessages)
}

// ClampRating keeps a star rating within 1..5; 0 means unset and becomes 5.
func ClampRating(r int) int {
	switch {
	case r == 0:
		return 5
	case r < 1:
		return 1
	case r > 5:
		return 5
	}
	return r
}

// CVUploadRequest asks for a presigned URL for a CV file.
type CVUploadRequest struct {
	FileName    string `json:"fileName" validate:"trimmed_required,pdf"`
	ContentType string `json:"contentType"`
}

var cvUploadMessages = map[string]string{
	"fileName.trimmed_required": "CV requis (PDF).",
	"fileName.pdf":              "Le CV doit être en format PDF.",
}

func ValidateCVUpload(r CVUploadRequest) Errors {
	return check(r, cvUploadMessages)
}

// ValidDraft reports whether a message draft has content once trimmed.
func ValidDraft(draft string) bool {
	return strings.TrimSpace(draft) != ""
}
