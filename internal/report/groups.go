// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import "github.com/pdiddy/contact-finder/pkg/types"

// RoleGroup is a fixed keyword set searched as one sub-query per company.
type RoleGroup struct {
	Label    types.RoleGroupLabel
	Keywords []string
}

// RoleGroups are searched in this order; their sub-counts come from SplitCount.
var RoleGroups = [3]RoleGroup{
	{
		Label:    types.GroupHR,
		Keywords: []string{"Recruiter", "Talent Acquisition", "HR", "Human Resources"},
	},
	{
		Label:    types.GroupProductLeadership,
		Keywords: []string{"Product Leader", "Product Lead", "Group Product Manager", "Head of Product"},
	},
	{
		Label:    types.GroupSeniorLeadership,
		Keywords: []string{"VP", "Vice President", "Senior Director", "Director"},
	},
}

// SplitCount divides total across the three role groups at roughly
// 30/30/40. The first two shares truncate and the third takes the remainder.
// When total is at least 3 the first two groups get at least one each, which
// for small totals can leave the third group below its nominal share.
func SplitCount(total int) (c1, c2, c3 int) {
	c1 = int(float64(total) * 0.3)
	c2 = int(float64(total) * 0.3)
	c3 = total - c1 - c2

	if total >= 3 {
		c1 = max(1, c1)
		c2 = max(1, c2)
		c3 = total - c1 - c2
	}
	return c1, c2, c3
}
