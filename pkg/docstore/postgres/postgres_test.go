package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/JaimeStill/tour-desk/pkg/docstore"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, docstore.ErrNotFound},
		{"bad conn", fmt.Errorf("query: %w", driver.ErrBadConn), docstore.ErrUnavailable},
		{"deadline", context.DeadlineExceeded, docstore.ErrUnavailable},
		{"conn done", sql.ErrConnDone, docstore.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapError(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("mapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}

	other := errors.New("syntax error")
	if got := mapError(other); got != other {
		t.Errorf("unclassified error should pass through, got %v", got)
	}
}

func TestInvalidIDIsNotFound(t *testing.T) {
	c := &collection{name: "services"}
	ctx := context.Background()

	if _, err := c.Get(ctx, "not-a-uuid"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("Get() error = %v", err)
	}
	if err := c.Update(ctx, "not-a-uuid", nil); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("Update() error = %v", err)
	}
	if err := c.Delete(ctx, "not-a-uuid"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestEncode(t *testing.T) {
	data, err := encode(nil)
	if err != nil || string(data) != "{}" {
		t.Errorf("encode(nil) = %s, %v", data, err)
	}

	if _, err := encode(map[string]any{"bad": make(chan int)}); !errors.Is(err, docstore.ErrInvalidField) {
		t.Errorf("encode(chan) error = %v, want ErrInvalidField", err)
	}
}

func TestEncode_TimestampsSortByInstant(t *testing.T) {
	base := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	times := []time.Time{
		base,
		base.Add(500 * time.Millisecond),
		base.Add(time.Second).In(time.FixedZone("EET", 2*60*60)),
	}

	encoded := make([]string, len(times))
	for i, ts := range times {
		data, err := encode(map[string]any{"timestamp": ts})
		if err != nil {
			t.Fatal(err)
		}
		var fields map[string]string
		if err := json.Unmarshal(data, &fields); err != nil {
			t.Fatal(err)
		}
		encoded[i] = fields["timestamp"]

		parsed, err := time.Parse(time.RFC3339Nano, encoded[i])
		if err != nil || !parsed.Equal(ts) {
			t.Errorf("encoded %q does not round-trip to %v", encoded[i], ts)
		}
	}

	for i := 1; i < len(encoded); i++ {
		if encoded[i-1] >= encoded[i] {
			t.Errorf("%q sorts after %q", encoded[i-1], encoded[i])
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("len(migrations) = %d, want up and down", len(entries))
	}
}
