package models

import "slices"

type Role string

const (
	RoleUser      Role = "User"
	RoleCompanyHR Role = "Company_HR"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleCompanyHR }

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

func (s Status) Valid() bool { return s == StatusOnline || s == StatusOffline }

type JobLocation string

const (
	LocationOnsite   JobLocation = "onsite"
	LocationRemotely JobLocation = "remotely"
	LocationHybrid   JobLocation = "hybrid"
)

func (l JobLocation) Valid() bool {
	return l == LocationOnsite || l == LocationRemotely || l == LocationHybrid
}

type WorkingTime string

const (
	PartTime WorkingTime = "part-time"
	FullTime WorkingTime = "full-time"
)

func (w WorkingTime) Valid() bool { return w == PartTime || w == FullTime }

type SeniorityLevel string

const (
	SeniorityJunior   SeniorityLevel = "Junior"
	SeniorityMidLevel SeniorityLevel = "Mid-Level"
	SenioritySenior   SeniorityLevel = "Senior"
	SeniorityTeamLead SeniorityLevel = "Team-Lead"
	SeniorityCTO      SeniorityLevel = "CTO"
)

var seniorityLevels = []SeniorityLevel{
	SeniorityJunior, SeniorityMidLevel, SenioritySenior, SeniorityTeamLead, SeniorityCTO,
}

func (s SeniorityLevel) Valid() bool { return slices.Contains(seniorityLevels, s) }

// EmployeeRange is the head-count bucket a company reports.
type EmployeeRange string

var employeeRanges = []EmployeeRange{"1-10", "11-20", "21-50", "51-100", "101-500", "500+"}

func (e EmployeeRange) Valid() bool { return slices.Contains(employeeRanges, e) }
