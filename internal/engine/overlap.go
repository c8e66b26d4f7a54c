package engine

import (
	"sort"

	"github.com/rcliao/vidrec/internal/model"
)

// FindOverlaps scans every unordered pair of users holding at least one
// rated watch event and reports pairs whose watched-video sets
// intersect, along with videos the first user rated at or above
// LikedRatingThreshold that the second has not watched.
//
// This is an O(U²·V) pairwise scan over users and their watched sets,
// which is fine at this system's scale. Large user counts would want an
// inverted index from video id to watching users instead of enumerating
// pairs.
func (r *Recommender) FindOverlaps() []model.Overlap {
	type userView struct {
		watched   map[string]bool
		highRated []string
	}

	views := map[string]*userView{}
	for userID, p := range r.profiles {
		rated := false
		uv := &userView{watched: map[string]bool{}}
		high := map[string]bool{}
		for _, ev := range p.history {
			uv.watched[ev.VideoID] = true
			if ev.Rating != nil {
				rated = true
				if *ev.Rating >= LikedRatingThreshold && !high[ev.VideoID] {
					high[ev.VideoID] = true
					uv.highRated = append(uv.highRated, ev.VideoID)
				}
			}
		}
		if rated {
			sort.Strings(uv.highRated)
			views[userID] = uv
		}
	}

	users := make([]string, 0, len(views))
	for id := range views {
		users = append(users, id)
	}
	sort.Strings(users)

	var overlaps []model.Overlap
	for i, a := range users {
		for _, b := range users[i+1:] {
			va, vb := views[a], views[b]

			var common []string
			for id := range va.watched {
				if vb.watched[id] {
					common = append(common, id)
				}
			}
			if len(common) == 0 {
				continue
			}
			sort.Strings(common)

			var transferable []string
			for _, id := range va.highRated {
				if !vb.watched[id] {
					transferable = append(transferable, id)
				}
			}

			overlaps = append(overlaps, model.Overlap{
				UserA:                       a,
				UserB:                       b,
				CommonVideoIDs:              common,
				TransferableRecommendations: transferable,
			})
		}
	}
	return overlaps
}
