package catalog

import (
	"slices"
	"strings"
)

// Vendor is the organization issuing a certification.
type Vendor string

// Known vendors.
const (
	VendorAWS        Vendor = "AWS"
	VendorAzure      Vendor = "Azure"
	VendorGCP        Vendor = "GCP"
	VendorMicrosoft  Vendor = "Microsoft"
	VendorGitHub     Vendor = "GitHub"
	VendorRedHat     Vendor = "RedHat"
	VendorHashiCorp  Vendor = "HashiCorp"
	VendorKubernetes Vendor = "Kubernetes"
)

// Vendors lists every known vendor in display order.
var Vendors = []Vendor{
	VendorAWS, VendorAzure, VendorGCP, VendorMicrosoft,
	VendorGitHub, VendorRedHat, VendorHashiCorp, VendorKubernetes,
}

// Valid reports whether v is one of the known vendors.
func (v Vendor) Valid() bool { return slices.Contains(Vendors, v) }

// ParseVendor resolves a vendor name case-insensitively.
func ParseVendor(s string) (Vendor, bool) {
	for _, v := range Vendors {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, true
		}
	}
	return "", false
}

// Level is the coarse difficulty tier used for the layout axis and for
// cross-vendor comparison.
type Level string

// Known levels, in ordinal order.
const (
	LevelFundamentals Level = "Fundamentals"
	LevelAssociate    Level = "Associate"
	LevelProfessional Level = "Professional-Expert"
	LevelSpecialty    Level = "Specialty"
)

// Levels lists every known level in ordinal order.
var Levels = []Level{LevelFundamentals, LevelAssociate, LevelProfessional, LevelSpecialty}

// Index returns the fixed ordinal rank of the level, or -1 when the level
// is not one of the four known values.
func (l Level) Index() int { return slices.Index(Levels, l) }

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool { return l.Index() >= 0 }

// RoleTrack tags the job role a certification targets.
type RoleTrack string

// Known role tracks.
const (
	RoleGeneral   RoleTrack = "General"
	RoleArchitect RoleTrack = "Architect"
	RoleDevOps    RoleTrack = "DevOps"
	RoleDataAI    RoleTrack = "Data&AI"
	RoleSecurity  RoleTrack = "Security"
	RoleSysAdmin  RoleTrack = "SysAdmin"
)

// RoleTracks lists every known role track.
var RoleTracks = []RoleTrack{RoleGeneral, RoleArchitect, RoleDevOps, RoleDataAI, RoleSecurity, RoleSysAdmin}

// Valid reports whether r is one of the known role tracks.
func (r RoleTrack) Valid() bool { return slices.Contains(RoleTracks, r) }

// LinkType distinguishes hard prerequisites from soft suggestions.
type LinkType string

// Link types.
const (
	LinkRequired    LinkType = "required"
	LinkRecommended LinkType = "recommended"
)

// Valid reports whether t is a known link type.
func (t LinkType) Valid() bool { return t == LinkRequired || t == LinkRecommended }

// Resource is an official study resource for a certification.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Cert is one certification, exam or course offered by a vendor.
//
// Only ID, Vendor, Level, Title, Roles and Domain drive layout and
// filtering; the remaining fields are carried for presentation.
type Cert struct {
	ID           string      `json:"id"`
	Vendor       Vendor      `json:"vendor"`
	Level        Level       `json:"level"`
	LevelDisplay string      `json:"levelDisplay,omitempty"`
	Title        string      `json:"title"`
	Exam         string      `json:"exam,omitempty"`
	Roles        []RoleTrack `json:"roles"`
	RolesDisplay []string    `json:"rolesDisplay,omitempty"`
	Domain       string      `json:"domain,omitempty"`

	URL               string     `json:"url,omitempty"`
	Description       string     `json:"description,omitempty"`
	Price             string     `json:"price,omitempty"`
	LastUpdate        string     `json:"lastUpdate,omitempty"`
	ScoreToPass       int        `json:"scoreToPass,omitempty"`
	Prerequisites     string     `json:"prerequisites,omitempty"`
	ValidityPeriod    string     `json:"validityPeriod,omitempty"`
	ExamLength        string     `json:"examLength,omitempty"`
	ExamFormat        string     `json:"examFormat,omitempty"`
	ExamLanguages     []string   `json:"examLanguages,omitempty"`
	RenewalAvailable  bool       `json:"renewalAvailable,omitempty"`
	RenewalPrice      string     `json:"renewalPrice,omitempty"`
	OfficialResources []Resource `json:"officialResources,omitempty"`
}

// DisplayLevel returns the vendor-specific level name, falling back to
// the coarse level.
func (c *Cert) DisplayLevel() string {
	if c.LevelDisplay != "" {
		return c.LevelDisplay
	}
	return string(c.Level)
}

// Link is a directed relationship between two certifications.
type Link struct {
	ID       string   `json:"id"`
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Type     LinkType `json:"type"`

	// Optional training resource shown on the edge.
	TrainingTitle string `json:"trainingTitle,omitempty"`
	TrainingURL   string `json:"trainingUrl,omitempty"`
}

// Catalog is a validated set of certifications and links. It is treated
// as read-only reference data once returned by Parse.
type Catalog struct {
	Certs []Cert `json:"certs"`
	Links []Link `json:"links"`

	// Warnings lists optional fields Parse dropped as malformed.
	Warnings []string `json:"-"`
}
