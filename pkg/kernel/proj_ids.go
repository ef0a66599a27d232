package kernel

type JobOfferID string

func NewJobOfferID(id string) JobOfferID { return JobOfferID(id) }
func (r JobOfferID) String() string      { return string(r) }
func (r JobOfferID) IsEmpty() bool       { return string(r) == "" }

type SessionID string

func NewSessionID(id string) SessionID { return SessionID(id) }
func (r SessionID) String() string     { return string(r) }
func (r SessionID) IsEmpty() bool      { return string(r) == "" }

type TrancheID string

func NewTrancheID(id string) TrancheID { return TrancheID(id) }
func (r TrancheID) String() string     { return string(r) }
func (r TrancheID) IsEmpty() bool      { return string(r) == "" }

type CandidatureID string

func NewCandidatureID(id string) CandidatureID { return CandidatureID(id) }
func (r CandidatureID) String() string         { return string(r) }
func (r CandidatureID) IsEmpty() bool          { return string(r) == "" }

type ExportJobID string

func NewExportJobID(id string) ExportJobID { return ExportJobID(id) }
func (r ExportJobID) String() string       { return string(r) }
func (r ExportJobID) IsEmpty() bool        { return string(r) == "" }
