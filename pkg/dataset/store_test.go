package dataset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cagmock/cagmock/pkg/logging"
)

func TestNewStore_Errors(t *testing.T) {
	_, err := NewStore(nil)
	assert.EqualError(t, err, "seed dataset cannot be nil")

	bad := DefaultSeed()
	bad.OperationUnits[0].ContractInternalID = "gone"
	_, err = NewStore(bad)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestNewStore_CopiesSeed(t *testing.T) {
	seed := DefaultSeed()
	s, err := NewStore(seed)
	require.NoError(t, err)

	seed.Clients[0].ClientName = "changed after construction"
	assert.Equal(t, "Acmsad Health", s.ActiveClients()[0].ClientName)
}

func TestStore_Reset(t *testing.T) {
	var logs bytes.Buffer
	s := newTestStore(t, WithLogger(logging.New(logging.Config{Output: &logs})))

	_, err := s.Assign(AssignRequest{
		OperationUnitInternalID: unitOU001,
		AssignmentType:          string(LevelCarrier),
		CagIDs:                  []string{"CAG001"},
	})
	require.NoError(t, err)
	_, err = s.UpdateStatus(UpdateStatusRequest{OuCagIDs: []string{"OUCAG001"}, Status: StatusInactive})
	require.NoError(t, err)
	require.Equal(t, 6, s.Stats().AssignedCAGs)

	stats := s.Reset()

	assert.Equal(t, 5, stats.AssignedCAGs)
	assert.Equal(t, DefaultSeed(), s.Snapshot())
	assert.Contains(t, logs.String(), "dataset reset to seed")

	created, err := s.Assign(AssignRequest{
		OperationUnitInternalID: unitOU001,
		AssignmentType:          string(LevelCarrier),
		CagIDs:                  []string{"CAG001"},
	})
	require.NoError(t, err)
	assert.Equal(t, "OUCAG006", created[0].OuCagID, "ids restart after reset")
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore(t)

	snap := s.Snapshot()
	*snap.Contracts[0].TerminateDate = "1999-01-01"
	snap.AssignedCAGs = snap.AssignedCAGs[:1]

	again := s.Snapshot()
	assert.Equal(t, "2026-12-31", *again.Contracts[0].TerminateDate)
	assert.Len(t, again.AssignedCAGs, 5)
}

func TestParseAssignmentLevel(t *testing.T) {
	for _, in := range []string{"CARRIER", "carrier", "Account", "group"} {
		_, ok := ParseAssignmentLevel(in)
		assert.True(t, ok, in)
	}
	l, ok := ParseAssignmentLevel("Group")
	assert.True(t, ok)
	assert.Equal(t, LevelGroup, l)

	_, ok = ParseAssignmentLevel("region")
	assert.False(t, ok)
}
