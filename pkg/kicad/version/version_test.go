package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "empty is default", in: "", want: DefaultMajor},
		{name: "latest", in: "latest", want: DefaultMajor},
		{name: "bare major", in: "8", want: 8},
		{name: "full release", in: "8.0.4", want: 8},
		{name: "prefixed", in: "v9.0", want: 9},
		{name: "too old", in: "7.0.1", wantErr: true},
		{name: "too new", in: "10", wantErr: true},
		{name: "garbage", in: "kicad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupported))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Major)
		})
	}
}

func TestTableDifferences(t *testing.T) {
	v8, err := Lookup(8)
	require.NoError(t, err)
	v9, err := Lookup(9)
	require.NoError(t, err)

	assert.False(t, v8.HasGeneratorVersion())
	assert.True(t, v9.HasGeneratorVersion())
	assert.Less(t, v8.FootprintVersion, v9.FootprintVersion)
	assert.Less(t, v8.SymbolVersion, v9.SymbolVersion)
	assert.Equal(t, []int{8, 9}, Supported())

	_, err = Lookup(6)
	assert.ErrorIs(t, err, ErrUnsupported)
}
