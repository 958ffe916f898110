package model

import (
	"time"
)

// OrgCategory splits organizations into work and personal buckets
type OrgCategory string

const (
	OrgWork     OrgCategory = "work"
	OrgPersonal OrgCategory = "personal"
)

// Organization is a grouping key for tasks. Deleting one does not cascade;
// orphaned tasks keep their org id and render as unassigned.
type Organization struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	Category  OrgCategory `json:"category"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrgByID looks an organization up in a registry slice
func OrgByID(orgs []Organization, id string) (Organization, bool) {
	for _, o := range orgs {
		if o.ID == id {
			return o, true
		}
	}
	return Organization{}, false
}
