package application

import (
	"math"
	"sort"
	"time"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
)

// Limits of the stats view.
const (
	FavoriteDestinationsLimit  = 5
	PhotographedLocationsLimit = 3
	RecentTripsLimit           = 5
	TimelineMonths             = 12
	UnknownLocation            = "Unknown"
)

type Destination struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalTrips            int            `json:"totalTrips"`
	TotalCountries        int            `json:"totalCountries"`
	Countries             []string       `json:"countries"`
	FavoriteDestinations  []Destination  `json:"favoriteDestinations"`
	MonthlyActivity       map[string]int `json:"monthlyActivity"`
	MonthlyTimeline       []MonthCount   `json:"monthlyTimeline"`
	AvgTripDuration       int            `json:"avgTripDuration"`
	PhotographedLocations []Destination  `json:"photographedLocations"`
	RecentTrips           []entity.Story `json:"recentTrips"`
}

type SpendingRow struct {
	ID       string                  `json:"id"`
	Title    string                  `json:"title"`
	Location string                  `json:"location"`
	Amount   float64                 `json:"amount"`
	Date     time.Time               `json:"date"`
	Category entity.SpendingCategory `json:"category"`
}

type Spending struct {
	TotalSpending float64       `json:"totalSpending"`
	SpendingData  []SpendingRow `json:"spendingData"`
	AvgPerTrip    float64       `json:"avgPerTrip"`
}

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// MonthKey buckets t by its UTC calendar month, e.g. "2024-03".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func TotalTrips(stories []entity.Story) int { return len(stories) }

// DistinctCountries lists every visited location once, in first-seen order.
func DistinctCountries(stories []entity.Story) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range stories {
		for _, loc := range s.VisitedLocation {
			if _, ok := seen[loc]; ok {
				continue
			}
			seen[loc] = struct{}{}
			out = append(out, loc)
		}
	}
	return out
}

// FavoriteDestinations counts locations of favourite stories only and returns
// the top n by count. Ties keep first-seen order.
func FavoriteDestinations(stories []entity.Story, n int) []Destination {
	idx := make(map[string]int)
	out := make([]Destination, 0)
	for _, s := range stories {
		if !s.IsFavourite {
			continue
		}
		for _, loc := range s.VisitedLocation {
			if i, ok := idx[loc]; ok {
				out[i].Count++
				continue
			}
			idx[loc] = len(out)
			out = append(out, Destination{Location: loc, Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthlyActivity counts stories per visited month.
func MonthlyActivity(stories []entity.Story) map[string]int {
	out := make(map[string]int)
	for _, s := range stories {
		out[MonthKey(s.VisitedDate)]++
	}
	return out
}

// MonthlyTimeline returns the last n months of activity in ascending order.
func MonthlyTimeline(activity map[string]int, n int) []MonthCount {
	months := make([]string, 0, len(activity))
	for m := range activity {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > n {
		months = months[len(months)-n:]
	}
	out := make([]MonthCount, 0, len(months))
	for _, m := range months {
		out = append(out, MonthCount{Month: m, Count: activity[m]})
	}
	return out
}

// AverageTripDuration is the rounded mean duration; 1 for no stories.
func AverageTripDuration(stories []entity.Story) int {
	if len(stories) == 0 {
		return entity.DefaultTripDuration
	}
	sum := 0
	for i := range stories {
		sum += stories[i].Duration()
	}
	return int(roundHalfUp(float64(sum) / float64(len(stories))))
}

// PhotographedLocations is the head of the favourite destinations.
func PhotographedLocations(favorites []Destination, n int) []Destination {
	if len(favorites) > n {
		favorites = favorites[:n]
	}
	out := make([]Destination, len(favorites))
	copy(out, favorites)
	return out
}

// RecentTrips returns the last n stories in storage order, newest first.
func RecentTrips(stories []entity.Story, n int) []entity.Story {
	start := len(stories) - n
	if start < 0 {
		start = 0
	}
	out := make([]entity.Story, 0, len(stories)-start)
	for i := len(stories) - 1; i >= start; i-- {
		out = append(out, stories[i])
	}
	return out
}

// SpendingRows projects each story to a spending row with defaults applied.
func SpendingRows(stories []entity.Story) []SpendingRow {
	out := make([]SpendingRow, 0, len(stories))
	for _, s := range stories {
		loc := UnknownLocation
		if len(s.VisitedLocation) > 0 && s.VisitedLocation[0] != "" {
			loc = s.VisitedLocation[0]
		}
		amount := s.Spending
		if amount < 0 || math.IsNaN(amount) {
			amount = 0
		}
		out = append(out, SpendingRow{
			ID:       s.ID,
			Title:    s.Title,
			Location: loc,
			Amount:   amount,
			Date:     s.VisitedDate,
			Category: s.SpendingCategory.OrDefault(),
		})
	}
	return out
}

func TotalSpending(rows []SpendingRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.Amount
	}
	return total
}

// AveragePerTrip is the rounded mean spending; 0 for no trips.
func AveragePerTrip(total float64, trips int) float64 {
	if trips == 0 {
		return 0
	}
	return roundHalfUp(total / float64(trips))
}

// BuildStats folds stories (in creation order) into the stats view.
func BuildStats(stories []entity.Story) Stats {
	countries := DistinctCountries(stories)
	favorites := FavoriteDestinations(stories, FavoriteDestinationsLimit)
	activity := MonthlyActivity(stories)
	return Stats{
		TotalTrips:            TotalTrips(stories),
		TotalCountries:        len(countries),
		Countries:             countries,
		FavoriteDestinations:  favorites,
		MonthlyActivity:       activity,
		MonthlyTimeline:       MonthlyTimeline(activity, TimelineMonths),
		AvgTripDuration:       AverageTripDuration(stories),
		PhotographedLocations: PhotographedLocations(favorites, PhotographedLocationsLimit),
		RecentTrips:           RecentTrips(stories, RecentTripsLimit),
	}
}

// BuildSpending folds stories into the spending view.
func BuildSpending(stories []entity.Story) Spending {
	rows := SpendingRows(stories)
	total := TotalSpending(rows)
	return Spending{
		TotalSpending: total,
		SpendingData:  rows,
		AvgPerTrip:    AveragePerTrip(total, len(stories)),
	}
}
