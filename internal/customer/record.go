package customer

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/zeebo/xxh3"
)

// Record is a single customer. Records are immutable once they enter a
// Dataset; identity is the ID.
type Record struct {
	ID            int       `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Email         string    `json:"email" yaml:"email"`
	Phone         string    `json:"phone" yaml:"phone"`
	Score         int       `json:"score" yaml:"score"`
	LastMessageAt time.Time `json:"last_message_at" yaml:"last_message_at"`
	AddedBy       string    `json:"added_by" yaml:"added_by"`
	Avatar        string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

const (
	MinScore = 0
	MaxScore = 100
)

// Dataset is the ordered, immutable source of records for a session.
type Dataset struct {
	records     []Record
	fingerprint uint64
}

// NewDataset copies records into a new dataset. IDs must be unique and
// scores must be within [MinScore, MaxScore].
func NewDataset(records []Record) (*Dataset, error) {
	seen := make(map[int]struct{}, len(records))
	h := xxh3.New()
	for i, r := range records {
		if _, ok := seen[r.ID]; ok {
			return nil, fmt.Errorf("duplicate customer id %d at position %d", r.ID, i)
		}
		seen[r.ID] = struct{}{}
		if r.Score < MinScore || r.Score > MaxScore {
			return nil, fmt.Errorf("customer %d has score %d outside [%d, %d]", r.ID, r.Score, MinScore, MaxScore)
		}

		writeInt(h, int64(r.ID))
		writeString(h, r.Name)
		writeString(h, r.Email)
		writeString(h, r.Phone)
		writeInt(h, int64(r.Score))
		writeInt(h, r.LastMessageAt.UnixNano())
		writeString(h, r.AddedBy)
		writeString(h, r.Avatar)
	}

	owned := make([]Record, len(records))
	copy(owned, records)
	return &Dataset{
		records:     owned,
		fingerprint: h.Sum64(),
	}, nil
}

func writeInt(h *xxh3.Hasher, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, _ = h.Write(buf[:])
}

// writeString prefixes s with its length so adjacent fields cannot shift
// bytes into each other.
func writeString(h *xxh3.Hasher, s string) {
	writeInt(h, int64(len(s)))
	_, _ = h.WriteString(s)
}

// MustDataset is NewDataset for inputs known to be valid, such as the
// output of Generate.
func MustDataset(records []Record) *Dataset {
	d, err := NewDataset(records)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// Fingerprint is a content digest of the dataset, stable for equal
// record sequences.
func (d *Dataset) Fingerprint() uint64 {
	if d == nil {
		return 0
	}
	return d.fingerprint
}
