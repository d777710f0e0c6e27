package features

// Settings mirrors the vault configuration block, the middle layer of the
// resolution. Pointer fields keep "unset" distinct from "explicitly false":
// a key the block does not mention falls through to the built-in default.
//
// The block is fenced TOML inside the vault's saga.md page:
//
//	```toml
//	journals_folder = "daily"
//	event_files = ["events/recurring.md"]
//
//	[day]
//	day_of_week = true
//	nav_link = false
//	```
type Settings struct {
	JournalsFolder string         `toml:"journals_folder"`
	EventFiles     []string       `toml:"event_files"`
	Day            *DaySettings   `toml:"day"`
	Week           *WeekSettings  `toml:"week"`
	Month          *MonthSettings `toml:"month"`
	Year           *YearSettings  `toml:"year"`
}

// DaySettings is the day page table of the configuration block.
type DaySettings struct {
	DayOfWeek   *bool `toml:"day_of_week"`
	LinkToWeek  *bool `toml:"link_to_week"`
	LinkToMonth *bool `toml:"link_to_month"`
	NavLink     *bool `toml:"nav_link"`
	Events      *bool `toml:"events"`
}

// WeekSettings is the week page table of the configuration block.
type WeekSettings struct {
	Week        *bool `toml:"week"`
	LinkToMonth *bool `toml:"link_to_month"`
	NavLink     *bool `toml:"nav_link"`
}

// MonthSettings is the month page table of the configuration block.
type MonthSettings struct {
	Month   *bool `toml:"month"`
	NavLink *bool `toml:"nav_link"`
}

// YearSettings is the year page table of the configuration block.
type YearSettings struct {
	Month   *bool `toml:"month"`
	NavLink *bool `toml:"nav_link"`
}

// Merge folds a later configuration block into this one. Scalar values and
// page tables keep the first occurrence; event files accumulate, unseen
// entries appended in order.
func (s *Settings) Merge(other Settings) {
	if s.JournalsFolder == "" {
		s.JournalsFolder = other.JournalsFolder
	}
	if s.Day == nil {
		s.Day = other.Day
	}
	if s.Week == nil {
		s.Week = other.Week
	}
	if s.Month == nil {
		s.Month = other.Month
	}
	if s.Year == nil {
		s.Year = other.Year
	}

	for _, file := range other.EventFiles {
		if !contains(s.EventFiles, file) {
			s.EventFiles = append(s.EventFiles, file)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func overlay(value bool, setting *bool) bool {
	if setting != nil {
		return *setting
	}
	return value
}
