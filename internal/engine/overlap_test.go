package engine

import (
	"context"
	"reflect"
	"testing"
)

func TestFindOverlapsTransferable(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	eng.AddVideo(ctx, video("x", "Shared video", "shared"))
	eng.AddVideo(ctx, video("y", "Great video", "great"))

	// Both users watch x; u1 also watches y and rates it highly
	eng.RecordWatch(ctx, "u1", "x", rating(4.5))
	eng.RecordWatch(ctx, "u1", "y", rating(4.8))
	eng.RecordWatch(ctx, "u2", "x", rating(4.0))

	overlaps := eng.FindOverlaps()
	if len(overlaps) != 1 {
		t.Fatalf("expected 1 overlap, got %d", len(overlaps))
	}

	o := overlaps[0]
	if o.UserA != "u1" || o.UserB != "u2" {
		t.Errorf("expected pair (u1, u2), got (%s, %s)", o.UserA, o.UserB)
	}
	if !reflect.DeepEqual(o.CommonVideoIDs, []string{"x"}) {
		t.Errorf("expected common {x}, got %v", o.CommonVideoIDs)
	}
	if !reflect.DeepEqual(o.TransferableRecommendations, []string{"y"}) {
		t.Errorf("expected transferable {y}, got %v", o.TransferableRecommendations)
	}
}

func TestFindOverlapsNoCommonVideos(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	eng.AddVideo(ctx, video("a", "A", "a"))
	eng.AddVideo(ctx, video("b", "B", "b"))
	eng.RecordWatch(ctx, "u1", "a", rating(5.0))
	eng.RecordWatch(ctx, "u2", "b", rating(5.0))

	if overlaps := eng.FindOverlaps(); len(overlaps) != 0 {
		t.Errorf("expected no overlaps for disjoint watch sets, got %v", overlaps)
	}
}

func TestFindOverlapsSkipsUnratedUsers(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	eng.AddVideo(ctx, video("x", "Shared", "x"))
	eng.RecordWatch(ctx, "u1", "x", rating(5.0))
	eng.RecordWatch(ctx, "u2", "x", nil) // no rating: excluded from the scan

	if overlaps := eng.FindOverlaps(); len(overlaps) != 0 {
		t.Errorf("expected unrated users excluded, got %v", overlaps)
	}
}

func TestFindOverlapsDeterministicOrder(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)

	eng.AddVideo(ctx, video("x", "Shared", "x"))
	for _, u := range []string{"carol", "alice", "bob"} {
		eng.RecordWatch(ctx, u, "x", rating(4.0))
	}

	overlaps := eng.FindOverlaps()
	if len(overlaps) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(overlaps))
	}
	wantPairs := [][2]string{{"alice", "bob"}, {"alice", "carol"}, {"bob", "carol"}}
	for i, want := range wantPairs {
		if overlaps[i].UserA != want[0] || overlaps[i].UserB != want[1] {
			t.Errorf("pair %d: expected %v, got (%s, %s)", i, want, overlaps[i].UserA, overlaps[i].UserB)
		}
	}
}
