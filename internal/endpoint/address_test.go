package endpoint

import (
	"testing"

	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedAddr *Address
	}{
		{
			name:         "bare instance",
			raw:          "src",
			expectedAddr: &Address{Instance: "src", Index: -1},
		},
		{
			name:         "pad index",
			raw:          "split[1]",
			expectedAddr: &Address{Instance: "split", Index: 1},
		},
		{
			name:         "pad name",
			raw:          "crop_1.default",
			expectedAddr: &Address{Instance: "crop_1", Pad: "default", Index: -1},
		},
		{
			name:         "hyphenated",
			raw:          "raw-out[0]",
			expectedAddr: &Address{Instance: "raw-out", Index: 0},
		},
		{name: "error - empty", raw: "", expectErr: true},
		{name: "error - bad index", raw: "split[x]", expectErr: true},
		{name: "error - nested pad", raw: "a.b.c", expectErr: true},
		{name: "error - index and pad", raw: "a[0].b", expectErr: true},
		{name: "error - empty pad", raw: "a.", expectErr: true},
		{name: "error - lone hyphen", raw: "-", expectErr: true},
		{name: "error - leading hyphen", raw: "-src", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedAddr, addr)
		})
	}
}

func TestAddress_RoundTrip(t *testing.T) {
	for _, raw := range []string{"src", "split[12]", "crop.out"} {
		t.Run(raw, func(t *testing.T) {
			addr, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, addr.String())

			again, err := Parse(addr.String())
			require.NoError(t, err)
			assert.True(t, addr.Equal(again))
		})
	}
	assert.Equal(t, "", (*Address)(nil).String())
}

func TestAddress_Equal(t *testing.T) {
	a1, _ := Parse("split[0]")
	a2, _ := Parse("split[0]")
	a3, _ := Parse("split[1]")
	a4, _ := Parse("split")

	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(a3))
	assert.False(t, a1.Equal(a4))
	assert.False(t, a1.Equal(nil))
	assert.True(t, (*Address)(nil).Equal(nil))
}

func TestAddress_Resolve(t *testing.T) {
	pads := []graph.Pad{{Name: "left"}, {Name: "right"}}

	testCases := []struct {
		raw     string
		want    int
		wantErr error
	}{
		{raw: "s", want: 0},
		{raw: "s[1]", want: 1},
		{raw: "s.right", want: 1},
		{raw: "s[2]", wantErr: graph.ErrPadIndex},
		{raw: "s.middle", wantErr: ErrUnknownPad},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			addr, err := Parse(tc.raw)
			require.NoError(t, err)

			got, err := addr.Resolve(pads)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	addr, _ := Parse("sink")
	_, err := addr.Resolve(nil)
	require.ErrorIs(t, err, graph.ErrPadIndex, "a stage without pads cannot be linked")
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"src", "crop_1", "raw-out", "output0", "_tmp"} {
		assert.True(t, ValidName(name), name)
	}
	for _, name := range []string{"", "-", "-src", "a.b", "split[0]", "with space"} {
		assert.False(t, ValidName(name), name)
	}
}
