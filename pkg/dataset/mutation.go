package dataset

import "github.com/cagmock/cagmock/internal/id"

// UpdateStatus sets the status of every listed assignment that exists and
// returns how many were changed. Unknown ids are skipped.
func (s *Store) UpdateStatus(req UpdateStatusRequest) (int, error) {
	if err := s.check(req); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int, len(s.live.AssignedCAGs))
	for i, a := range s.live.AssignedCAGs {
		index[a.OuCagID] = i
	}

	updated := 0
	for _, ouCagID := range req.OuCagIDs {
		i, ok := index[ouCagID]
		if !ok {
			continue
		}
		s.live.AssignedCAGs[i].AssignmentStatus = req.Status
		updated++
	}

	s.log.Debug("assignment status updated",
		"status", req.Status, "requested", len(req.OuCagIDs), "updated", updated)
	return updated, nil
}

// Assign appends one ACTIVE assignment per CAG id to the operation unit and
// returns the new records. Carrier, account and group details come from the
// CAG mapping table, or the Unknown fallbacks when a cagId has no mapping.
func (s *Store) Assign(req AssignRequest) ([]AssignedCAG, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	level, _ := ParseAssignmentLevel(req.AssignmentType)

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().UTC().Format(DateLayout)
	operationUnitID := s.operationUnitID(req.OperationUnitInternalID)

	taken := make(map[string]bool, len(s.live.AssignedCAGs)+len(req.CagIDs))
	for _, a := range s.live.AssignedCAGs {
		taken[a.OuCagID] = true
	}

	// Ids continue from the collection size; a taken id moves the counter on.
	next := len(s.live.AssignedCAGs) + 1
	created := make([]AssignedCAG, 0, len(req.CagIDs))
	for _, cagID := range req.CagIDs {
		for taken[id.Assignment(next)] {
			next++
		}
		ouCagID := id.Assignment(next)
		taken[ouCagID] = true
		next++

		a := AssignedCAG{
			OuCagID:                 ouCagID,
			OperationUnitID:         operationUnitID,
			OperationUnitInternalID: req.OperationUnitInternalID,
			CagID:                   cagID,
			EffectiveStartDate:      today,
			EffectiveEndDate:        nil,
			AssignmentStatus:        StatusActive,
			AssignmentLevel:         level,
		}
		s.enrich(&a)
		created = append(created, a)
	}

	s.live.AssignedCAGs = append(s.live.AssignedCAGs, created...)

	s.log.Debug("CAGs assigned",
		"operationUnitInternalId", req.OperationUnitInternalID,
		"level", level, "created", len(created))

	out := make([]AssignedCAG, len(created))
	for i, a := range created {
		out[i] = a.clone()
	}
	return out, nil
}

// operationUnitID resolves the business id of an operation unit by internal
// id. It returns "" when the unit is unknown. Callers hold s.mu.
func (s *Store) operationUnitID(internalID string) string {
	for _, ou := range s.live.OperationUnits {
		if ou.OperationUnitInternalID == internalID {
			return ou.OperationUnitID
		}
	}
	return ""
}

// enrich fills the carrier, account and group fields of a from the mapping of
// a.CagID. Fields the mapping lacks get the Unknown fallbacks. Callers hold s.mu.
func (s *Store) enrich(a *AssignedCAG) {
	var m CAGMapping
	for _, candidate := range s.live.CAGMappings {
		if candidate.CagID == a.CagID {
			m = candidate
			break
		}
	}

	a.CarrierID = orDefault(m.CarrierID, UnknownCarrierID)
	a.CarrierName = orDefault(m.CarrierName, UnknownName)
	a.AccountID = orDefault(m.AccountID, UnknownAccountID)
	a.AccountName = orDefault(m.AccountName, UnknownName)
	a.GroupID = orDefault(m.GroupID, UnknownGroupID)
	a.GroupName = orDefault(m.GroupName, UnknownName)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
