package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	tcs := []struct {
		name     string
		selector Selector
		expected ID
	}{
		{
			name:     "CUP",
			selector: Selector{Category: CategoryCSI, Argc: 2, Final: 'H'},
			expected: CUP,
		},
		{
			name:     "CUP without params",
			selector: Selector{Category: CategoryCSI, Argc: 0, Final: 'H'},
			expected: CUP,
		},
		{
			name:     "SGR",
			selector: Selector{Category: CategoryCSI, Argc: 5, Final: 'm'},
			expected: SGR,
		},
		{
			name:     "DECSM wants the leader",
			selector: Selector{Category: CategoryCSI, Leader: '?', Argc: 1, Final: 'h'},
			expected: DECSM,
		},
		{
			name:     "SM without leader",
			selector: Selector{Category: CategoryCSI, Argc: 1, Final: 'h'},
			expected: SM,
		},
		{
			name:     "SCOSC vs DECSLRM by arity: zero args",
			selector: Selector{Category: CategoryCSI, Argc: 0, Final: 's'},
			expected: SCOSC,
		},
		{
			name:     "SCOSC vs DECSLRM by arity: two args",
			selector: Selector{Category: CategoryCSI, Argc: 2, Final: 's'},
			expected: DECSLRM,
		},
		{
			name:     "DECRQSS",
			selector: Selector{Category: CategoryDCS, Argc: 0, Intermediate: '$', Final: 'q'},
			expected: DECRQSS,
		},
		{
			name:     "DECSIXEL",
			selector: Selector{Category: CategoryDCS, Argc: 2, Final: 'q'},
			expected: DECSIXEL,
		},
		{
			name:     "ESC with intermediate",
			selector: Selector{Category: CategoryESC, Intermediate: '(', Final: 'B'},
			expected: SCSG0USASCII,
		},
		{
			name:     "C0",
			selector: Selector{Category: CategoryC0, Final: 0x0A},
			expected: LF,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			def := Select(tc.selector)
			require.NotNil(t, def)
			assert.Equal(t, tc.expected, def.ID)
		})
	}
}

func TestSelectUnknown(t *testing.T) {
	assert.Nil(t, Select(Selector{Category: CategoryCSI, Final: '+'}))
	assert.Nil(t, SelectOSC(9999))
	// arity outside the declared window fails the match
	assert.Nil(t, Select(Selector{Category: CategoryCSI, Argc: 1, Final: 's'}))
}

func TestSelectOSC(t *testing.T) {
	tcs := []struct {
		code     int
		expected ID
	}{
		{0, SETTITLE},
		{2, SETWINTITLE},
		{8, HYPERLINK},
		{10, COLORFG},
		{52, CLIPBOARD},
		{112, RCOLORCURSOR},
		{777, NOTIFY},
		{888, DUMPSTATE},
	}
	for _, tc := range tcs {
		def := SelectOSC(tc.code)
		require.NotNil(t, def, "OSC %d", tc.code)
		assert.Equal(t, tc.expected, def.ID)
	}
}

func TestSelectHelpers(t *testing.T) {
	require.NotNil(t, SelectC0(0x08))
	assert.Equal(t, BS, SelectC0(0x08).ID)

	require.NotNil(t, SelectESC(0, 'M'))
	assert.Equal(t, RI, SelectESC(0, 'M').ID)

	require.NotNil(t, SelectCSI('?', 1, 0, 'l'))
	assert.Equal(t, DECRM, SelectCSI('?', 1, 0, 'l').ID)

	require.NotNil(t, SelectDCS(0, 0, '$', 'q'))
	assert.Equal(t, DECRQSS, SelectDCS(0, 0, '$', 'q').ID)
}

func TestBatchable(t *testing.T) {
	batchable := []Selector{
		{Category: CategoryCSI, Argc: 2, Final: 'H'},            // CUP
		{Category: CategoryCSI, Argc: 1, Final: 'J'},            // ED
		{Category: CategoryCSI, Argc: 1, Final: 'm'},            // SGR
		{Category: CategoryC0, Final: 0x0A},                     // LF
		{Category: CategoryESC, Final: 'M'},                     // RI
		{Category: CategoryOSC, Argc: 8},                        // HYPERLINK
	}
	for _, sel := range batchable {
		def := Select(sel)
		require.NotNil(t, def)
		assert.True(t, def.Batchable, "%s should be batchable", def.Mnemonic)
	}

	notBatchable := []Selector{
		{Category: CategoryCSI, Leader: '?', Argc: 1, Final: 'h'}, // DECSM
		{Category: CategoryCSI, Leader: '?', Argc: 1, Final: 'l'}, // DECRM
		{Category: CategoryCSI, Argc: 1, Final: 'n'},              // CPR
		{Category: CategoryCSI, Argc: 1, Final: 'c'},              // DA1
		{Category: CategoryC0, Final: 0x07},                       // BEL
		{Category: CategoryOSC, Argc: 52},                         // CLIPBOARD
	}
	for _, sel := range notBatchable {
		def := Select(sel)
		require.NotNil(t, def)
		assert.False(t, def.Batchable, "%s should not be batchable", def.Mnemonic)
	}
}
