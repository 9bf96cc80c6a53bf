package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	clientAramex   = "04a3832e-0b8a-40bc-8626-392cf860835d"
	contractCON003 = "571027ad-84fe-40bc-b555-8c3dac5d56ec"
	unitOU001      = "f1a2b3c4-d5e6-7890-abcd-ef1234567890"
	unitOU006      = "e559a889-ddb2-4004-9c30-3be455cdbdd1"
)

var fixedNow = time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := NewStore(DefaultSeed(), opts...)
	require.NoError(t, err)
	return s
}
