package csvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogs(t *testing.T) {
	all := Catalogs()
	require.Len(t, all, 3)
	for _, c := range all {
		t.Run(c.String(), func(t *testing.T) {
			require.Len(t, c.Signatures, NumHandlers)
			seen := make(map[string]bool)
			for _, sig := range c.Signatures {
				assert.False(t, seen[sig.Name], "duplicate %s", sig.Name)
				seen[sig.Name] = true
				assert.NotNil(t, sig.Decode, sig.Name)
				assert.Equal(t, 2, sig.Virtual, sig.Name)
			}
		})
	}

	all[0] = nil
	assert.NotNil(t, Catalogs()[0], "Catalogs returns a copy")
}

func TestSelectCatalogs(t *testing.T) {
	tests := []struct {
		constraint string
		want       []string
		wantErr    bool
	}{
		{constraint: "", want: []string{"1.0", "1.1", "1.2"}},
		{constraint: ">= 1.1", want: []string{"1.1", "1.2"}},
		{constraint: "1.0", want: []string{"1.0"}},
		{constraint: "~> 1.1", want: []string{"1.1", "1.2"}},
		{constraint: "> 2.0", wantErr: true},
		{constraint: "not a version", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			got, err := SelectCatalogs(tt.constraint)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var versions []string
			for _, c := range got {
				versions = append(versions, c.Version.Original())
			}
			assert.Equal(t, tt.want, versions)
		})
	}
}

func TestFieldTypes(t *testing.T) {
	a := NewFieldTypes("System.UInt32", EnumField, "System.UInt32")
	b := NewFieldTypes(EnumField, "System.UInt32", "System.UInt32")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewFieldTypes("System.UInt32", EnumField)))
	assert.False(t, a.Equal(NewFieldTypes("System.UInt32", "System.UInt32", "System.Int32")))
	assert.Equal(t, []string{"<enum>", "System.UInt32", "System.UInt32"}, a.Names())
	assert.Equal(t, "{System.UInt32×2, <enum>×1}", a.String())
}
