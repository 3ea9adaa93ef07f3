// Package notify is the single user-facing notice type returned by every
// route next to its payload.
package notify

type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func InfoNotice(msg string) Notice    { return Notice{Severity: Info, Message: msg} }
func SuccessNotice(msg string) Notice { return Notice{Severity: Success, Message: msg} }
func WarningNotice(msg string) Notice { return Notice{Severity: Warning, Message: msg} }
func ErrorNotice(msg string) Notice   { return Notice{Severity: Error, Message: msg} }

// Notices collects notices for one response; the zero value is ready to use
// and always encodes as a JSON array.
type Notices []Notice

func (n *Notices) Add(notice Notice) { *n = append(*n, notice) }

func (n Notices) List() []Notice {
	if n == nil {
		return []Notice{}
	}
	return n
}

// Messages used across routes.
const (
	MsgMessageSendFailed   = "Erreur envoi message ❌"
	MsgFeedbackThanks      = "Merci pour ton feedback 💜"
	MsgFeedbackFailed      = "Erreur feedback ❌"
	MsgMentoratFeedbackOK  = "Feedback mentorat envoyé ✨"
	MsgMentoratFeedbackErr = "Erreur feedback mentorat ❌"
	MsgDonationThanks      = "Merci 💗 Nous vous contacterons par email très bientôt."
	MsgDonationFailed      = "Envoi du don impossible pour le moment."
	MsgCVUploadOff         = "Dépôt de CV indisponible pour le moment."
	MsgCVUploadFailed      = "Impossible de préparer l'envoi du CV."
	MsgRegisterFailed      = "Inscription impossible. Vérifie tes informations."
	MsgLoginFailed         = "Connexion impossible. Vérifie ton email et ton mot de passe."
	MsgLoadFailed          = "Impossible de charger les données pour le moment."
)
