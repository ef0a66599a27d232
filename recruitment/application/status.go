package application

import (
	"strings"

	"github.com/0Omaaar/iRecruitApp/pkg/kernel"
)

// Status is the canonical review state of an application
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var statusLabels = map[Status]kernel.LocalizedText{
	StatusPending:  {Fr: "En attente", En: "Pending", Ar: "قيد الانتظار"},
	StatusAccepted: {Fr: "Accepté", En: "Accepted", Ar: "مقبول"},
	StatusRejected: {Fr: "Rejeté", En: "Rejected", Ar: "مرفوض"},
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the localized label shown to candidates
func (s Status) Label() kernel.LocalizedText {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusPending]
}

// IsDecided reports whether an admin already accepted or rejected
func (s Status) IsDecided() bool {
	return s == StatusAccepted || s == StatusRejected
}

// StatusFromLabel maps a free-text localized label, as stored by older
// rows, to a canonical status. Matching is case-insensitive across all locales.
func StatusFromLabel(label kernel.LocalizedText) Status {
	raw := label.Joined()
	switch {
	case strings.Contains(raw, "accept"):
		return StatusAccepted
	case strings.Contains(raw, "reject"), strings.Contains(raw, "refus"), strings.Contains(raw, "rejet"):
		return StatusRejected
	default:
		return StatusPending
	}
}
