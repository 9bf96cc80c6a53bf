package dataset

import "strings"

// DateLayout is the calendar-date format used by every date field.
const DateLayout = "2006-01-02"

// Assignment statuses.
const (
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
	StatusInactive  = "INACTIVE"
)

// Fallbacks written into an assignment whose cagId has no CAGMapping.
const (
	UnknownName      = "Unknown"
	UnknownCarrierID = "CAR999"
	UnknownAccountID = "AC999"
	UnknownGroupID   = "GR999"
)

// AssignmentLevel is the tier of the carrier/account/group hierarchy an
// assignment applies at.
type AssignmentLevel string

// Assignment levels.
const (
	LevelCarrier AssignmentLevel = "CARRIER"
	LevelAccount AssignmentLevel = "ACCOUNT"
	LevelGroup   AssignmentLevel = "GROUP"
)

// AssignmentLevels lists the accepted levels in hierarchy order.
var AssignmentLevels = []AssignmentLevel{LevelCarrier, LevelAccount, LevelGroup}

// ParseAssignmentLevel matches s case-insensitively against the known levels.
func ParseAssignmentLevel(s string) (AssignmentLevel, bool) {
	for _, l := range AssignmentLevels {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}
	return "", false
}

// Client is a customer organisation.
type Client struct {
	ClientID          string `json:"clientId" yaml:"clientId"`
	ClientName        string `json:"clientName" yaml:"clientName"`
	ClientReferenceID string `json:"clientReferenceId" yaml:"clientReferenceId"`
}

// Contract belongs to a Client. A nil TerminateDate means open-ended.
type Contract struct {
	ClientID           string  `json:"clientId" yaml:"clientId"`
	ContractInternalID string  `json:"contractInternalId" yaml:"contractInternalId"`
	ContractID         string  `json:"contractId" yaml:"contractId"`
	EffectiveDate      string  `json:"effectiveDate" yaml:"effectiveDate"`
	TerminateDate      *string `json:"terminateDate" yaml:"terminateDate"`
}

// ContractSummary is a Contract without its client key, as returned by
// ContractsByClient.
type ContractSummary struct {
	ContractInternalID string  `json:"contractInternalId"`
	ContractID         string  `json:"contractId"`
	EffectiveDate      string  `json:"effectiveDate"`
	TerminateDate      *string `json:"terminateDate"`
}

// OperationUnit is a subdivision of a Contract.
type OperationUnit struct {
	ContractInternalID      string `json:"contractInternalId" yaml:"contractInternalId"`
	OperationUnitInternalID string `json:"operationUnitInternalId" yaml:"operationUnitInternalId"`
	OperationUnitID         string `json:"operationUnitId" yaml:"operationUnitId"`
	OperationUnitName       string `json:"operationUnitName" yaml:"operationUnitName"`
}

// OperationUnitSummary is an OperationUnit without its contract key.
type OperationUnitSummary struct {
	OperationUnitInternalID string `json:"operationUnitInternalId"`
	OperationUnitID         string `json:"operationUnitId"`
	OperationUnitName       string `json:"operationUnitName"`
}

// AssignedCAG links an OperationUnit to a CAG. The assigmentStatus spelling is
// part of the published contract.
type AssignedCAG struct {
	OuCagID                 string          `json:"ouCagId" yaml:"ouCagId"`
	OperationUnitID         string          `json:"operationUnitId" yaml:"operationUnitId"`
	OperationUnitInternalID string          `json:"operationUnitInternalId" yaml:"operationUnitInternalId"`
	CagID                   string          `json:"cagId" yaml:"cagId"`
	EffectiveStartDate      string          `json:"effectiveStartDate" yaml:"effectiveStartDate"`
	EffectiveEndDate        *string         `json:"effectiveEndDate" yaml:"effectiveEndDate"`
	AssignmentStatus        string          `json:"assigmentStatus" yaml:"assigmentStatus"`
	CarrierID               string          `json:"carrierId" yaml:"carrierId"`
	CarrierName             string          `json:"carrierName" yaml:"carrierName"`
	AssignmentLevel         AssignmentLevel `json:"assignmentLevel" yaml:"assignmentLevel"`
	AccountID               string          `json:"accountId" yaml:"accountId"`
	AccountName             string          `json:"accountName" yaml:"accountName"`
	GroupID                 string          `json:"groupId" yaml:"groupId"`
	GroupName               string          `json:"groupName" yaml:"groupName"`
}

// CAGMapping resolves a cagId to its carrier, account and group.
type CAGMapping struct {
	CagID       string `json:"cagId" yaml:"cagId"`
	CarrierID   string `json:"carrierId" yaml:"carrierId"`
	CarrierName string `json:"carrierName" yaml:"carrierName"`
	AccountID   string `json:"accountId" yaml:"accountId"`
	AccountName string `json:"accountName" yaml:"accountName"`
	GroupID     string `json:"groupId" yaml:"groupId"`
	GroupName   string `json:"groupName" yaml:"groupName"`
}

// Dataset is the full record graph.
type Dataset struct {
	Clients        []Client        `json:"clients" yaml:"clients"`
	Contracts      []Contract      `json:"contracts" yaml:"contracts"`
	OperationUnits []OperationUnit `json:"operationUnits" yaml:"operationUnits"`
	AssignedCAGs   []AssignedCAG   `json:"assignedCAGs" yaml:"assignedCAGs"`
	CAGMappings    []CAGMapping    `json:"cagMappings" yaml:"cagMappings"`
}

// Stats reports record counts per collection.
type Stats struct {
	Clients        int `json:"clients"`
	Contracts      int `json:"contracts"`
	OperationUnits int `json:"operationUnits"`
	AssignedCAGs   int `json:"assignedCAGs"`
	CAGMappings    int `json:"cagMappings"`
}

// MappingConditions are the optional equality filters of SearchMappings.
// Empty fields are not applied. AssignmentLevel, StartDate and EndDate are
// accepted for contract compatibility and have no effect.
type MappingConditions struct {
	CarrierID   string
	CarrierName string
	AccountID   string
	AccountName string
	GroupID     string
	GroupName   string

	AssignmentLevel string
	StartDate       string
	EndDate         string
}

// UpdateStatusRequest overwrites the status of the listed assignments.
type UpdateStatusRequest struct {
	OuCagIDs []string `json:"ouCagIds" validate:"required"`
	Status   string   `json:"status" validate:"required"`
}

// AssignRequest creates one assignment per CAG id for an operation unit.
type AssignRequest struct {
	OperationUnitInternalID string   `json:"operationUnitInternalId" validate:"required"`
	AssignmentType          string   `json:"assignmentType" validate:"required,assignmentlevel"`
	CagIDs                  []string `json:"cagIds" validate:"required"`
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func (c Contract) clone() Contract {
	c.TerminateDate = cloneString(c.TerminateDate)
	return c
}

func (c Contract) summary() ContractSummary {
	return ContractSummary{
		ContractInternalID: c.ContractInternalID,
		ContractID:         c.ContractID,
		EffectiveDate:      c.EffectiveDate,
		TerminateDate:      cloneString(c.TerminateDate),
	}
}

func (ou OperationUnit) summary() OperationUnitSummary {
	return OperationUnitSummary{
		OperationUnitInternalID: ou.OperationUnitInternalID,
		OperationUnitID:         ou.OperationUnitID,
		OperationUnitName:       ou.OperationUnitName,
	}
}

func (a AssignedCAG) clone() AssignedCAG {
	a.EffectiveEndDate = cloneString(a.EffectiveEndDate)
	return a
}

// Clone returns a deep copy of d.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{
		Clients:        append([]Client(nil), d.Clients...),
		OperationUnits: append([]OperationUnit(nil), d.OperationUnits...),
		CAGMappings:    append([]CAGMapping(nil), d.CAGMappings...),
		Contracts:      make([]Contract, len(d.Contracts)),
		AssignedCAGs:   make([]AssignedCAG, len(d.AssignedCAGs)),
	}
	for i, c := range d.Contracts {
		out.Contracts[i] = c.clone()
	}
	for i, a := range d.AssignedCAGs {
		out.AssignedCAGs[i] = a.clone()
	}
	return out
}

// Stats counts the records in d.
func (d *Dataset) Stats() Stats {
	return Stats{
		Clients:        len(d.Clients),
		Contracts:      len(d.Contracts),
		OperationUnits: len(d.OperationUnits),
		AssignedCAGs:   len(d.AssignedCAGs),
		CAGMappings:    len(d.CAGMappings),
	}
}
