package dashboard

import (
	"time"

	"github.com/vzahanych/weather-dashboard/internal/forecast"
	"github.com/vzahanych/weather-dashboard/internal/series"
	"github.com/vzahanych/weather-dashboard/internal/units"
)

// View is everything a presentation layer needs for one render.
type View struct {
	Snapshot    *forecast.Snapshot `json:"snapshot"`
	Days        []series.DayBucket `json:"days"`
	SelectedDay string             `json:"selected_day"`
	Display     *Display           `json:"display,omitempty"`
}

type Display struct {
	Location      string        `json:"location"`
	Date          string        `json:"date"`
	Icon          string        `json:"icon"`
	Temperature   string        `json:"temperature"`
	FeelsLike     string        `json:"feels_like"`
	Humidity      string        `json:"humidity"`
	WindSpeed     string        `json:"wind_speed"`
	Precipitation string        `json:"precipitation"`
	Daily         []DayDisplay  `json:"daily"`
	Hourly        []HourDisplay `json:"hourly"`
}

type DayDisplay struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Max  string `json:"max"`
	Min  string `json:"min"`
}

type HourDisplay struct {
	Time        string `json:"time"`
	Icon        string `json:"icon"`
	Temperature string `json:"temperature"`
}

// BuildView aligns snap from now and formats it. selected is kept while it
// still has hours left.
func BuildView(snap *forecast.Snapshot, now time.Time, selected string) View {
	if snap == nil {
		return View{Days: []series.DayBucket{}, SelectedDay: selected}
	}

	days := series.AlignFrom(snap, now)
	selected = series.SelectDay(days, selected)

	return View{
		Snapshot:    snap,
		Days:        days,
		SelectedDay: selected,
		Display:     display(snap, days, selected, snap.Today(now)),
	}
}

func display(snap *forecast.Snapshot, days []series.DayBucket, selected, today string) *Display {
	u := snap.Units

	d := &Display{
		Location:      snap.Location.DisplayName(),
		Date:          forecast.FullDate(today),
		Icon:          forecast.IconName(snap.Current.WeatherCode),
		Temperature:   units.FormatTemperature(snap.Current.Temperature, u),
		FeelsLike:     units.FormatTemperature(snap.FeelsLike, u),
		Humidity:      units.FormatHumidity(snap.Humidity),
		WindSpeed:     units.FormatWindSpeed(snap.Current.WindSpeed, u),
		Precipitation: units.FormatPrecipitation(snap.Precipitation, u),
		Daily:         make([]DayDisplay, 0, len(snap.Daily)),
		Hourly:        []HourDisplay{},
	}

	for _, day := range snap.Daily {
		d.Daily = append(d.Daily, DayDisplay{
			Date: day.Date,
			Name: forecast.ShortDayName(day.Date, today),
			Icon: forecast.IconName(day.WeatherCode),
			Max:  units.FormatTemperature(day.MaxTemperature, u),
			Min:  units.FormatTemperature(day.MinTemperature, u),
		})
	}

	for _, b := range days {
		if b.Date != selected {
			continue
		}
		for _, h := range b.Hours {
			d.Hourly = append(d.Hourly, HourDisplay{
				Time:        forecast.FormatTime(h.Time),
				Icon:        forecast.IconName(h.WeatherCode),
				Temperature: units.FormatTemperature(h.Temperature, u),
			})
		}
		break
	}

	return d
}
