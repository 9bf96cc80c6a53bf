package dataset

// ActiveClients returns every client.
func (s *Store) ActiveClients() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Client, len(s.live.Clients))
	copy(out, s.live.Clients)
	return out
}

// ContractsByClient returns the contracts whose clientId equals clientID,
// without the clientId field.
func (s *Store) ContractsByClient(clientID string) []ContractSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ContractSummary, 0)
	for _, c := range s.live.Contracts {
		if c.ClientID == clientID {
			out = append(out, c.summary())
		}
	}
	return out
}

// OperationUnitsByContract returns the operation units of a contract, without
// the contractInternalId field.
func (s *Store) OperationUnitsByContract(contractInternalID string) []OperationUnitSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]OperationUnitSummary, 0)
	for _, ou := range s.live.OperationUnits {
		if ou.ContractInternalID == contractInternalID {
			out = append(out, ou.summary())
		}
	}
	return out
}

// AssignedCAGs returns one page of the assignments of an operation unit and
// the number of assignments before paging.
func (s *Store) AssignedCAGs(operationUnitInternalID string, p Page) ([]AssignedCAG, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := filter(s.live.AssignedCAGs, func(a AssignedCAG) bool {
		return a.OperationUnitInternalID == operationUnitInternalID
	})

	page := Paginate(matched, p)
	out := make([]AssignedCAG, len(page))
	for i, a := range page {
		out[i] = a.clone()
	}
	return out, len(matched)
}

// SearchMappings returns the CAG mappings matching every non-empty condition.
func (s *Store) SearchMappings(c MappingConditions) []CAGMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.live.CAGMappings, c.matches)
}

func (c MappingConditions) matches(m CAGMapping) bool {
	return equalIfSet(c.CarrierID, m.CarrierID) &&
		equalIfSet(c.CarrierName, m.CarrierName) &&
		equalIfSet(c.AccountID, m.AccountID) &&
		equalIfSet(c.AccountName, m.AccountName) &&
		equalIfSet(c.GroupID, m.GroupID) &&
		equalIfSet(c.GroupName, m.GroupName)
}
