package customer

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultCount = 1000

var (
	firstNames = []string{
		"Aarav", "Alice", "Ananya", "Arjun", "Bob", "Chen", "Diya", "Elena",
		"Fatima", "Gabriel", "Hana", "Ishaan", "Jonas", "Kavya", "Liam",
		"Meera", "Noah", "Olivia", "Priya", "Quentin", "Rohan", "Sara",
		"Tariq", "Uma", "Vikram", "Wei", "Ximena", "Yusuf", "Zara",
	}
	lastNames = []string{
		"Kumar", "Singh", "Raj", "Sharma", "Patel", "Nguyen", "Garcia",
		"Okafor", "Kowalski", "Rossi", "Müller", "Tanaka", "Haddad",
		"Iyer", "Silva", "Novak", "Cohen", "Mensah", "Larsen", "Reddy",
	}
	domains = []string{
		"example.com", "mail.test", "inbox.dev", "acme.io", "customer.org",
	}
	addedBy = []string{
		"Kartikey Mishra", "Ayesha Khan", "Support Bot", "Import", "Sales Team",
		"Nikhil Rao", "Web Form",
	}
)

// Generate returns n deterministic customers for seed, with last-message
// timestamps in the year before now. Roughly one in ten has no avatar.
func Generate(n int, seed uint64, now time.Time) []Record {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := make([]Record, n)
	for i := range records {
		first := firstNames[rng.IntN(len(firstNames))]
		last := lastNames[rng.IntN(len(lastNames))]
		name := first + " " + last
		id := i + 1
		email := fmt.Sprintf("%s.%s%d@%s",
			strings.ToLower(first),
			strings.ToLower(last),
			id,
			domains[rng.IntN(len(domains))],
		)

		var avatar string
		if rng.IntN(10) != 0 {
			avatar = "https://i.pravatar.cc/150?u=" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(email)).String()
		}

		records[i] = Record{
			ID:            id,
			Name:          name,
			Email:         email,
			Phone:         fmt.Sprintf("+91 %d%09d", 6+rng.IntN(4), rng.IntN(1_000_000_000)),
			Score:         rng.IntN(MaxScore + 1),
			LastMessageAt: now.Add(-time.Duration(rng.Int64N(int64(365 * 24 * time.Hour)))).Truncate(time.Minute),
			AddedBy:       addedBy[rng.IntN(len(addedBy))],
			Avatar:        avatar,
		}
	}
	return records
}
