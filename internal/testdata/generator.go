package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hotprospects/hotprospects/internal/database/repository"
)

var (
	firstNames = []string{"Amy", "Bob", "Cleo", "Dev", "Erin", "Femi", "Gus", "Hana", "Ivo", "Jade", "Kofi", "Lena"}
	lastNames  = []string{"Hudson", "Okafor", "Nakamura", "Silva", "Novak", "Reyes", "Lindqvist", "Baker"}
	domains    = []string{"example.com", "mail.test", "prospects.dev"}
)

// Seed inserts n random prospects drawn from rng. About a third are marked
// contacted so every tab has rows.
func Seed(ctx context.Context, repo *repository.ProspectRepo, n int, rng *rand.Rand) ([]repository.Prospect, error) {
	out := make([]repository.Prospect, 0, n)
	for i := 0; i < n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		p := repository.Prospect{
			Name:         first + " " + last,
			EmailAddress: fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), domains[rng.Intn(len(domains))]),
			IsContacted:  rng.Intn(3) == 0,
		}
		saved, err := repo.Insert(ctx, p)
		if err != nil {
			return out, fmt.Errorf("seed prospect %d: %w", i, err)
		}
		out = append(out, saved)
	}
	return out, nil
}
