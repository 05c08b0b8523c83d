package content

import "time"

// ScheduleItem assigns a content id to a display window. Zero StartTime or
// EndTime means the bound is open on that side.
type ScheduleItem struct {
	ID        string    `json:"id"`
	ContentID string    `json:"contentId"`
	StartTime time.Time `json:"startTime,omitempty"`
	EndTime   time.Time `json:"endTime,omitempty"`
	Priority  int       `json:"priority"`
}

// covers reports whether the item's window contains t.
func (s ScheduleItem) covers(t time.Time) bool {
	if !s.StartTime.IsZero() && t.Before(s.StartTime) {
		return false
	}
	if !s.EndTime.IsZero() && !t.Before(s.EndTime) {
		return false
	}
	return true
}

// Schedule is the ordered list of windows a display works through.
type Schedule struct {
	Items []ScheduleItem `json:"items"`
}

// ActiveAt returns the schedule item that should be current at t: the
// highest-priority item whose window covers t, ties broken by list order.
// When no window covers t the first item is returned as a fallback so the
// display is never intentionally blank.
func (s Schedule) ActiveAt(t time.Time) (ScheduleItem, bool) {
	var best ScheduleItem
	found := false
	for _, item := range s.Items {
		if !item.covers(t) {
			continue
		}
		if !found || item.Priority > best.Priority {
			best = item
			found = true
		}
	}
	if found {
		return best, true
	}
	if len(s.Items) > 0 {
		return s.Items[0], true
	}
	return ScheduleItem{}, false
}

// UpcomingIDs returns up to n distinct content ids from the front of the
// schedule, in order. Feed for the prefetch queue.
func (s Schedule) UpcomingIDs(n int) []string {
	seen := make(map[string]bool, n)
	var ids []string
	for _, item := range s.Items {
		if len(ids) >= n {
			break
		}
		if item.ContentID == "" || seen[item.ContentID] {
			continue
		}
		seen[item.ContentID] = true
		ids = append(ids, item.ContentID)
	}
	return ids
}
