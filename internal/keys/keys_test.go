package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_NavigationAssignments(t *testing.T) {
	k := DefaultKeyMap()

	require.Equal(t, []string{"k", "up"}, k.Up.Keys())
	require.Equal(t, []string{"j", "down"}, k.Down.Keys())
	require.Equal(t, []string{"g", "home"}, k.Home.Keys())
	require.Equal(t, []string{"G", "end"}, k.End.Keys())
}

func TestDefaultKeyMap_AllBindingsHaveHelp(t *testing.T) {
	k := DefaultKeyMap()

	for _, group := range k.FullHelp() {
		for _, b := range group {
			help := b.Help()
			require.NotEmpty(t, help.Key)
			require.NotEmpty(t, help.Desc)
		}
	}
}

func TestDefaultKeyMap_NoDuplicateKeys(t *testing.T) {
	k := DefaultKeyMap()

	seen := map[string]string{}
	for _, group := range k.FullHelp() {
		for _, b := range group {
			for _, keyName := range b.Keys() {
				prev, dup := seen[keyName]
				require.False(t, dup, "key %q bound to both %q and %q", keyName, prev, b.Help().Desc)
				seen[keyName] = b.Help().Desc
			}
		}
	}
}

func TestShortHelp_SubsetOfFullHelp(t *testing.T) {
	k := DefaultKeyMap()
	require.NotEmpty(t, k.ShortHelp())
	require.Len(t, k.FullHelp(), 3)
}
