package candidature

import (
	"strings"
	"time"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

// Candidature is a candidate's dossier, one per user
type Candidature struct {
	ID                      kernel.CandidatureID    `json:"_id"`
	UserID                  kernel.UserID           `json:"userId"`
	PersonalInformation     PersonalInformation     `json:"personalInformation"`
	ProfessionalInformation ProfessionalInformation `json:"professionalInformation"`
	CreatedAt               time.Time               `json:"createdAt"`
	UpdatedAt               time.Time               `json:"updatedAt"`
}

type PersonalInformation struct {
	Prenom              string                  `json:"prenom"`
	Nom                 string                  `json:"nom"`
	PrenomAr            string                  `json:"prenomAr"`
	NomAr               string                  `json:"nomAr"`
	Email               string                  `json:"email"`
	CIN                 string                  `json:"cin"`
	DateNaissance       string                  `json:"dateNaissance"`
	Situation           string                  `json:"situation"`
	Telephone           string                  `json:"telephone"`
	Adresse             string                  `json:"adresse"`
	AdresseAr           string                  `json:"adresseAr"`
	LieuNaissance       string                  `json:"lieuNaissance"`
	Sexe                string                  `json:"sexe"`
	Experiences         PublicServiceExperience `json:"experiences"`
	SituationDeHandicap Disability              `json:"situationDeHandicap"`
	Files               PersonalFiles           `json:"files"`
}

// PublicServiceExperience describes a candidate already employed by the state
type PublicServiceExperience struct {
	Fonctionnaire *bool  `json:"fonctionnaire,omitempty"`
	Fonction      string `json:"fonction,omitempty"`
	PPR           string `json:"ppr,omitempty"`
	Attestation   string `json:"attestation,omitempty"`
}

type Disability struct {
	Handicap     *bool  `json:"handicap,omitempty"`
	TypeHandicap string `json:"typeHandicap,omitempty"`
}

type PersonalFiles struct {
	CvPdf       string `json:"cvPdf"`
	CinPdf      string `json:"cinPdf"`
	BacPdf      string `json:"bacPdf"`
	Attestation string `json:"attestation"`
}

type ProfessionalInformation struct {
	ParcoursEtDiplomes    []Diploma                     `json:"parcoursEtDiplomes"`
	NiveauxLangues        []LanguageLevel               `json:"niveauxLangues"`
	Experiences           []WorkExperience              `json:"experiences"`
	ExperiencePedagogique OneOrMany[TeachingExperience] `json:"experiencePedagogique"`
	Publications          []Publication                 `json:"publications"`
	Communications        []Communication               `json:"communications"`
	Residanat             OneOrMany[Residanat]          `json:"residanat"`
	AutresDocuments       []OtherDocument               `json:"autresDocuments"`
}

type Diploma struct {
	IntituleDiplome string       `json:"intituleDiplome"`
	DiplomeType     string       `json:"diplomeType"`
	Specialite      string       `json:"specialite"`
	AnneeObtention  string       `json:"anneeObtention"`
	Etablissement   string       `json:"etablissement"`
	Files           *DiplomaFile `json:"files,omitempty"`
}

type DiplomaFile struct {
	DiplomePdf string `json:"diplomePdf,omitempty"`
}

type LanguageLevel struct {
	Langue string               `json:"langue"`
	Niveau string               `json:"niveau"`
	Files  *LanguageCertificate `json:"files,omitempty"`
}

type LanguageCertificate struct {
	CertificatLanguePdf string `json:"certificatLanguePdf,omitempty"`
}

type WorkExperience struct {
	Position         string            `json:"position"`
	Company          string            `json:"company"`
	StartDate        string            `json:"startDate"`
	EndDate          string            `json:"endDate,omitempty"`
	CurrentlyWorking bool              `json:"currentlyWorking,omitempty"`
	Description      string            `json:"description,omitempty"`
	Highlights       OneOrMany[string] `json:"highlights,omitempty"`
}

type TeachingExperience struct {
	ExperiencePedagogiqueEnHeures *float64 `json:"experiencePedagogiqueEnHeures,omitempty"`
	Poste                         string   `json:"poste,omitempty"`
	Etablissement                 string   `json:"etablissement,omitempty"`
	DateDebut                     string   `json:"dateDebut,omitempty"`
	DateFin                       string   `json:"dateFin,omitempty"`
	Ville                         string   `json:"ville,omitempty"`
	Description                   string   `json:"description,omitempty"`
}

type Publication struct {
	Titre            string          `json:"titre"`
	AnneePublication int             `json:"anneePublication"`
	Type             string          `json:"type"`
	URL              string          `json:"url"`
	Files            *PublicationPdf `json:"files,omitempty"`
}

type PublicationPdf struct {
	PublicationPdf string `json:"publicationPdf,omitempty"`
}

type Communication struct {
	Titre              string            `json:"titre"`
	AnneeCommunication int               `json:"anneeCommunication"`
	URL                string            `json:"url"`
	Files              *CommunicationPdf `json:"files,omitempty"`
}

type CommunicationPdf struct {
	CommunicationPdf string `json:"communicationPdf,omitempty"`
}

type Residanat struct {
	ResidanatPdf string `json:"residanatPdf,omitempty"`
}

type OtherDocument struct {
	Intitule    string `json:"intitule"`
	DocumentPdf string `json:"documentPdf,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (c *Candidature) Email() string {
	return strings.TrimSpace(c.PersonalInformation.Email)
}

func (c *Candidature) CIN() string {
	return strings.TrimSpace(c.PersonalInformation.CIN)
}

// FullName joins first and last name in latin script
func (c *Candidature) FullName() string {
	return joinName(c.PersonalInformation.Prenom, c.PersonalInformation.Nom)
}

// ArabicName joins first and last name in arabic script
func (c *Candidature) ArabicName() string {
	return joinName(c.PersonalInformation.PrenomAr, c.PersonalInformation.NomAr)
}

// LatestDiploma returns the title of the last listed diploma, if any
func (c *Candidature) LatestDiploma() string {
	d := c.ProfessionalInformation.ParcoursEtDiplomes
	if len(d) == 0 {
		return ""
	}
	return d[len(d)-1].IntituleDiplome
}

// Languages formats the declared levels as "langue (niveau)"
func (c *Candidature) Languages() []string {
	out := make([]string, 0, len(c.ProfessionalInformation.NiveauxLangues))
	for _, l := range c.ProfessionalInformation.NiveauxLangues {
		if l.Langue == "" {
			continue
		}
		if l.Niveau == "" {
			out = append(out, l.Langue)
			continue
		}
		out = append(out, l.Langue+" ("+l.Niveau+")")
	}
	return out
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
