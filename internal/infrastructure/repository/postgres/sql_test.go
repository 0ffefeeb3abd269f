package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
)

func TestIsBindParameterMismatch(t *testing.T) {
	t.Run("matches bind mismatch error", func(t *testing.T) {
		err := fakeErr("pq: bind message supplies 2 parameters, but prepared statement \"\" requires 1 (08P01)")
		if !isBindParameterMismatch(err) {
			t.Fatalf("expected true for bind mismatch error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation formations does not exist")
		if isBindParameterMismatch(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := fakeErr("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("matches by 26000 code", func(t *testing.T) {
		err := fakeErr("pq: prepared statement missing (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for 26000 prepared statement error")
		}
	})

	t.Run("ignores nil", func(t *testing.T) {
		if isUnnamedPreparedStatementMissing(nil) {
			t.Fatalf("expected false for nil error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get formation: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if isNotFound(fakeErr("pq: connection refused")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullableConversions(t *testing.T) {
	if got := nullInt64ToIntPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for null int, got %d", *got)
	}
	got := nullInt64ToIntPtr(sql.NullInt64{Int64: 7, Valid: true})
	if got == nil || *got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
	if back := intPtrToNullInt64(got); !back.Valid || back.Int64 != 7 {
		t.Fatalf("unexpected round trip: %+v", back)
	}
	if v := stringToNullString("  "); v.Valid {
		t.Fatalf("blank string must be null")
	}
	if v := nullStringValue(sql.NullString{String: " GK ", Valid: true}); v != "GK" {
		t.Fatalf("unexpected string value: %q", v)
	}
}

func TestPositionsRoundTrip(t *testing.T) {
	slotIDs, playerIDs := splitPositions(samplePositions())
	if len(slotIDs) != 3 || playerIDs[1] != "" {
		t.Fatalf("unexpected split: %v %v", slotIDs, playerIDs)
	}

	positions, err := joinPositions(slotIDs, playerIDs)
	if err != nil {
		t.Fatalf("join positions: %v", err)
	}
	if len(positions) != 3 || positions[0].PlayerID != "1" || !positions[1].PlayerID.IsZero() {
		t.Fatalf("unexpected positions: %+v", positions)
	}

	if _, err := joinPositions([]string{"gk"}, nil); err == nil {
		t.Fatalf("expected error for mismatched arrays")
	}
}

func samplePositions() []formation.Assignment {
	return []formation.Assignment{
		{SlotID: "gk", PlayerID: "1"},
		{SlotID: "lb"},
		{SlotID: "cb1", PlayerID: "4"},
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

func TestRemovePlayerQuery_SoftDeletesActiveRow(t *testing.T) {
	query, args, err := removePlayerQuery("demo-fc", "9007199254740993")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "UPDATE players SET deleted_at = NOW(), updated_at = NOW() WHERE team_public_id = $1 AND public_id = $2 AND deleted_at IS NULL"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "demo-fc" || args[1] != "9007199254740993" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
