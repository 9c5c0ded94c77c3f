package prospect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hotprospects/hotprospects/internal/database/repository"
)

func TestSearch(t *testing.T) {
	list := []repository.Prospect{
		{ID: "1", Name: "Paul Hudson", EmailAddress: "paul@hackingwithswift.com"},
		{ID: "2", Name: "Taylor Swift", EmailAddress: "taylor@example.com"},
	}
	require.Nil(t, Search("  "))

	ids := func(q string) []string {
		var out []string
		for _, p := range Apply(list, Search(q)) {
			out = append(out, p.ID)
		}
		return out
	}
	require.Equal(t, []string{"1"}, ids("hudson"))
	require.Equal(t, []string{"1", "2"}, ids("swift"))
	require.Equal(t, []string{"2"}, ids("example"))
	require.Equal(t, []string{"1"}, ids("hudsen"))
	require.Equal(t, []string{"2"}, ids("tailor"))
	require.Empty(t, ids("zz"))
}
